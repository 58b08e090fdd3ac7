package fractal

import (
	"fmt"
	"image/color"
	"strings"
)

// Variant identifies a fractal algorithm.
type Variant uint8

const (
	// Mandelbrot iterates z = z² + c with z₀ = 0 and c the pixel point.
	Mandelbrot Variant = iota

	// Julia iterates z = z² + c with z₀ the pixel point and c fixed.
	Julia

	// Newton applies Newton's method to z³ - 1 from the pixel point.
	Newton

	// Spiderweb is declared but has no algorithm.
	Spiderweb

	variantCount
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case Mandelbrot:
		return "Mandelbrot"
	case Julia:
		return "Julia"
	case Newton:
		return "Newton"
	case Spiderweb:
		return "Spiderweb"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// IsValid returns true if v names a known variant.
func (v Variant) IsValid() bool {
	return v < variantCount
}

// ParseVariant returns the variant with the given name, ignoring case.
func ParseVariant(name string) (Variant, error) {
	for v := range variantCount {
		if strings.EqualFold(name, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown fractal variant %q", ErrInvalidConfig, name)
}

// UnmarshalText implements encoding.TextUnmarshaler so a Variant can be
// used directly as a command-line flag value.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Algorithm computes and colours one pixel of a fractal.
//
// Compute depends only on the plane point and the configuration captured
// when the algorithm was built, so it may run concurrently for different
// pixels. ColorFor reads the stored result and the frozen statistics.
type Algorithm interface {
	// Compute iterates from plane point p until the loop escapes,
	// converges or reaches the iteration limit.
	Compute(p complex128) (PixelResult, error)

	// ColorFor maps a stored result to its display colour.
	ColorFor(r PixelResult, s Frozen) (color.RGBA, error)
}

// NewAlgorithm returns the algorithm for cfg.Variant. cfg is assumed valid.
func NewAlgorithm(cfg Config) (Algorithm, error) {
	switch cfg.Variant {
	case Mandelbrot:
		return &mandelbrot{
			maxIterations: cfg.MaxIterations,
			radius:        cfg.Radius,
			palette:       cfg.EffectivePalette(),
		}, nil
	case Julia:
		return &julia{
			maxIterations: cfg.MaxIterations,
			radius:        cfg.Radius,
			c:             cfg.JuliaC,
			palette:       cfg.EffectivePalette(),
		}, nil
	case Newton:
		return &newton{maxIterations: cfg.MaxIterations}, nil
	case Spiderweb:
		return spiderweb{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown fractal variant %d", ErrInvalidConfig, cfg.Variant)
	}
}

// colorDepth is the largest palette index and channel intensity.
const colorDepth = 255

// clampIndex limits a colour index to [0, colorDepth].
func clampIndex(i int) int {
	switch {
	case i < 0:
		return 0
	case i > colorDepth:
		return colorDepth
	default:
		return i
	}
}
