package fractal

import (
	"image/color"
	"math"
	"math/cmplx"
)

// newtonTolerance is the distance below which z counts as sitting on a root.
const newtonTolerance = 1e-4

// cubeRoots are the three roots of z³ - 1, in channel order R, G, B.
var cubeRoots = [3]complex128{
	complex(1, 0),
	complex(-0.5, math.Sin(2*math.Pi/3)),
	complex(-0.5, -math.Sin(2*math.Pi/3)),
}

type newton struct {
	maxIterations uint64
}

// Compute runs z -= (z³-1)/(3z²) from z = p until z is within tolerance of
// any of the three roots or the iteration limit is hit. The update is
// skipped while z = 0, where the derivative vanishes.
func (n *newton) Compute(p complex128) (PixelResult, error) {
	z := p
	var (
		it   uint64
		dist [3]float64
	)
	for {
		if cmplx.Abs(z) > 0 {
			z -= (z*z*z - 1) / (3 * z * z)
		}
		it++
		for i, r := range cubeRoots {
			dist[i] = cmplx.Abs(z - r)
		}
		if it >= n.maxIterations || dist[0] < newtonTolerance ||
			dist[1] < newtonTolerance || dist[2] < newtonTolerance {
			break
		}
	}
	return PixelResult{Iterations: it, LastZ: z, RootDistances: dist}, nil
}

// ColorFor lights the channel of the root z converged to with intensity
// 255 - floor(255*it/largest), so it falls towards 0 as the count approaches
// the largest one observed. Unconverged points are black.
func (n *newton) ColorFor(r PixelResult, s Frozen) (color.RGBA, error) {
	largest := s.LargestIteration
	if largest == 0 {
		largest = 1
	}

	level := uint8(clampIndex(colorDepth - int(float64(r.Iterations)*colorDepth/float64(largest))))

	switch {
	case r.RootDistances[0] < newtonTolerance:
		return color.RGBA{R: level, A: 255}, nil
	case r.RootDistances[1] < newtonTolerance:
		return color.RGBA{G: level, A: 255}, nil
	case r.RootDistances[2] < newtonTolerance:
		return color.RGBA{B: level, A: 255}, nil
	default:
		return color.RGBA{A: 255}, nil
	}
}
