package fractal

import (
	"fmt"
	"math"

	"github.com/gogpu/fractal/internal/raster"
)

// MaxPixels is the largest Width*Height a Config accepts.
const MaxPixels = 1 << 26

// Config describes a single render. It is read-only once rendering starts.
type Config struct {
	// Variant selects the fractal algorithm.
	Variant Variant

	// Width and Height are the image size in pixels.
	Width, Height int

	// Center is the plane point shown at the centre of the image.
	Center complex128

	// Zoom scales the plane region; the visible width is 8/Zoom.
	Zoom float64

	// Radius is the escape radius of the Mandelbrot and Julia iterations.
	Radius float64

	// MaxIterations caps every per-pixel loop.
	MaxIterations uint64

	// Light lightens the palette, from 0 (unchanged) to 1 (white).
	Light float64

	// Depth is the number of bytes per output pixel: 1, 3 or 4.
	Depth int

	// JuliaC is the constant added on every Julia iteration.
	JuliaC complex128

	// Palette is the primary colour table.
	Palette Palette

	// Mix, when set, is blended half-way into Palette.
	Mix *Palette
}

// DefaultConfig returns the configuration used when nothing is overridden:
// a 320x200 Mandelbrot centred on (-0.5, 0) with 256 iterations.
func DefaultConfig() Config {
	return Config{
		Variant:       Mandelbrot,
		Width:         320,
		Height:        200,
		Center:        complex(-0.5, 0),
		Zoom:          1,
		Radius:        10e19,
		MaxIterations: 256,
		Light:         0,
		Depth:         3,
		JuliaC:        complex(-0.2, 0.75),
		Palette:       HSVPalette(),
	}
}

// Validate reports the first configuration error. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	if !c.Variant.IsValid() {
		return fmt.Errorf("%w: unknown fractal variant %d", ErrInvalidConfig, c.Variant)
	}
	if _, err := NewViewport(c.Width, c.Height, c.Center, c.Zoom); err != nil {
		return err
	}
	if c.Width > MaxPixels/c.Height {
		return fmt.Errorf("%w: image size %dx%d exceeds %d pixels", ErrInvalidConfig, c.Width, c.Height, MaxPixels)
	}
	if c.MaxIterations == 0 {
		return fmt.Errorf("%w: max iterations must be positive", ErrInvalidConfig)
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: escape radius %v must be positive and finite", ErrInvalidConfig, c.Radius)
	}
	if !(c.Light >= 0 && c.Light <= 1) {
		return fmt.Errorf("%w: light %v must be within [0, 1]", ErrInvalidConfig, c.Light)
	}
	if _, err := raster.FormatForDepth(c.Depth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if math.IsNaN(real(c.JuliaC)) || math.IsNaN(imag(c.JuliaC)) {
		return fmt.Errorf("%w: julia constant %v is not a number", ErrInvalidConfig, c.JuliaC)
	}
	return nil
}

// EffectivePalette returns the palette used for colour lookups: Palette
// blended half-way with Mix when Mix is set, then lightened by Light.
func (c Config) EffectivePalette() Palette {
	p := c.Palette
	if c.Mix != nil {
		p = p.Mix(*c.Mix, 0.5)
	}
	return p.Lighten(c.Light)
}
