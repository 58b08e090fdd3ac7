// Package raster provides the output pixel store for rendered fractals.
//
// A Buffer holds width*height pixels at 1, 3 or 4 bytes per pixel in the
// little-endian byte order used by device-independent bitmaps (B, G, R[, A]).
// Writes normally go through a Frame obtained from Buffer.Lock, which works on
// a private copy and flushes it back in one step on Unlock.
package raster

import "fmt"

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatBGR8 is 24-bit colour stored B, G, R (3 bytes per pixel).
	FormatBGR8

	// FormatBGRA8 is 32-bit colour stored B, G, R, A (4 bytes per pixel).
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {BytesPerPixel: 1, IsGrayscale: true},
	FormatBGR8:  {BytesPerPixel: 3},
	FormatBGRA8: {BytesPerPixel: 4, HasAlpha: true},
}

// FormatForDepth returns the format storing depth bytes per pixel.
// Only 1, 3 and 4 are supported.
func FormatForDepth(depth int) (Format, error) {
	switch depth {
	case 1:
		return FormatGray8, nil
	case 3:
		return FormatBGR8, nil
	case 4:
		return FormatBGRA8, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes per pixel", ErrInvalidFormat, depth)
	}
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatBGR8:
		return "BGR8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}
