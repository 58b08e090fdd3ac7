package fractal

import (
	"errors"

	"github.com/gogpu/fractal/internal/raster"
)

var (
	// ErrInvalidConfig is returned when a render configuration is rejected
	// before any computation starts.
	ErrInvalidConfig = errors.New("fractal: invalid configuration")

	// ErrUnsupported is returned by fractal variants that are declared but
	// have no algorithm.
	ErrUnsupported = errors.New("fractal: unsupported operation")

	// ErrNotComputed is returned when Paint runs before a successful Compute.
	ErrNotComputed = errors.New("fractal: invalid operation: paint before compute")

	// ErrOutOfRange is returned when a pixel index lies outside the image,
	// by the result grid and by the raster alike.
	ErrOutOfRange = raster.ErrOutOfRange
)
