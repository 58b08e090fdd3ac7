package fractal

import (
	"image/color"
	"math"
	"math/cmplx"
)

type mandelbrot struct {
	maxIterations uint64
	radius        float64
	palette       Palette
}

// Compute iterates z = z² + c from z = 0 with c = p.
// At least one iteration always runs.
func (m *mandelbrot) Compute(p complex128) (PixelResult, error) {
	var (
		z  complex128
		it uint64
	)
	for {
		z = z*z + p
		it++
		if cmplx.Abs(z) >= m.radius || it >= m.maxIterations {
			break
		}
	}
	return PixelResult{Iterations: it, LastZ: z}, nil
}

// ColorFor uses index 255*(it/max)^(it/max), a curve that stays bright for
// fast escapes, dips around it/max = 1/e and climbs back near the boundary.
// Points that never escape take index 0.
func (m *mandelbrot) ColorFor(r PixelResult, _ Frozen) (color.RGBA, error) {
	if r.Iterations >= m.maxIterations {
		return m.palette.At(0), nil
	}
	f := float64(r.Iterations) / float64(m.maxIterations)
	return m.palette.At(clampIndex(int(colorDepth * math.Pow(f, f)))), nil
}
