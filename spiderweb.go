package fractal

import (
	"fmt"
	"image/color"
)

// spiderweb reserves the Spiderweb variant. Every call fails.
type spiderweb struct{}

func (spiderweb) Compute(complex128) (PixelResult, error) {
	return PixelResult{}, fmt.Errorf("%w: %s compute", ErrUnsupported, Spiderweb)
}

func (spiderweb) ColorFor(PixelResult, Frozen) (color.RGBA, error) {
	return color.RGBA{}, fmt.Errorf("%w: %s colouring", ErrUnsupported, Spiderweb)
}
