package fractal

import (
	"image/color"
	"math/cmplx"
)

type julia struct {
	maxIterations uint64
	radius        float64
	c             complex128
	palette       Palette
}

// Compute iterates z = z² + c from z = p.
func (j *julia) Compute(p complex128) (PixelResult, error) {
	z := p
	var it uint64
	for {
		z = z*z + j.c
		it++
		if cmplx.Abs(z) >= j.radius || it >= j.maxIterations {
			break
		}
	}
	return PixelResult{Iterations: it, LastZ: z}, nil
}

// ColorFor maps the iteration count linearly: index = floor(255*it/max).
func (j *julia) ColorFor(r PixelResult, _ Frozen) (color.RGBA, error) {
	idx := int(float64(r.Iterations) * colorDepth / float64(j.maxIterations))
	return j.palette.At(clampIndex(idx)), nil
}
