package fractal

import (
	"fmt"
	"math"
)

// planeSpan is the width of the complex plane shown at zoom 1.
const planeSpan = 8.0

// Viewport maps between pixel indices and points of the complex plane.
//
// A Viewport is immutable once built and safe for concurrent use.
type Viewport struct {
	width  int
	height int
	center complex128
	zoom   float64

	planeWidth  float64
	planeHeight float64
	xMin, yMin  float64
}

// NewViewport derives the plane region shown by a width x height image
// centred on center at the given zoom.
//
// The plane is 8/zoom units wide and height*planeWidth/width units tall.
func NewViewport(width, height int, center complex128, zoom float64) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, width, height)
	}
	if zoom == 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return Viewport{}, fmt.Errorf("%w: zoom %v must be finite and non-zero", ErrInvalidConfig, zoom)
	}
	if math.IsNaN(real(center)) || math.IsNaN(imag(center)) ||
		math.IsInf(real(center), 0) || math.IsInf(imag(center), 0) {
		return Viewport{}, fmt.Errorf("%w: centre %v must be finite", ErrInvalidConfig, center)
	}

	pw := planeSpan / zoom
	ph := float64(height) * pw / float64(width)

	return Viewport{
		width:       width,
		height:      height,
		center:      center,
		zoom:        zoom,
		planeWidth:  pw,
		planeHeight: ph,
		xMin:        real(center) - pw/2,
		yMin:        imag(center) - ph/2,
	}, nil
}

// Width returns the image width in pixels.
func (v Viewport) Width() int { return v.width }

// Height returns the image height in pixels.
func (v Viewport) Height() int { return v.height }

// Center returns the plane point at the centre of the image.
func (v Viewport) Center() complex128 { return v.center }

// Zoom returns the zoom factor.
func (v Viewport) Zoom() float64 { return v.zoom }

// PlaneWidth returns the horizontal extent of the plane region.
func (v Viewport) PlaneWidth() float64 { return v.planeWidth }

// PlaneHeight returns the vertical extent of the plane region.
func (v Viewport) PlaneHeight() float64 { return v.planeHeight }

// XMin returns the real coordinate of the left image edge.
func (v Viewport) XMin() float64 { return v.xMin }

// XMax returns the real coordinate of the right image edge.
func (v Viewport) XMax() float64 { return v.xMin + v.planeWidth }

// YMin returns the imaginary coordinate of the top image edge.
func (v Viewport) YMin() float64 { return v.yMin }

// YMax returns the imaginary coordinate of the bottom image edge.
func (v Viewport) YMax() float64 { return v.yMin + v.planeHeight }

// PixelToHorizontal returns the real coordinate of pixel column x.
func (v Viewport) PixelToHorizontal(x int) float64 {
	return float64(x)*v.planeWidth/float64(v.width) + v.xMin
}

// PixelToVertical returns the imaginary coordinate of pixel row y.
func (v Viewport) PixelToVertical(y int) float64 {
	return float64(y)*v.planeHeight/float64(v.height) + v.yMin
}

// HorizontalToPixel returns the pixel column containing real coordinate h,
// truncated toward zero.
func (v Viewport) HorizontalToPixel(h float64) int {
	return int((h - v.xMin) * float64(v.width) / v.planeWidth)
}

// VerticalToPixel returns the pixel row containing imaginary coordinate im,
// truncated toward zero.
func (v Viewport) VerticalToPixel(im float64) int {
	return int((im - v.yMin) * float64(v.height) / v.planeHeight)
}

// Point returns the plane point of pixel (x, y).
func (v Viewport) Point(x, y int) complex128 {
	return complex(v.PixelToHorizontal(x), v.PixelToVertical(y))
}
