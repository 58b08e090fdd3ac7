package raster

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
)

// Common errors for raster operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrOutOfRange is returned when pixel coordinates are outside the buffer.
	ErrOutOfRange = errors.New("raster: pixel index out of range")

	// ErrLocked is returned by Lock while another Frame holds the buffer.
	ErrLocked = errors.New("raster: buffer already locked")

	// ErrReleased is returned when a Frame is used after Unlock or Discard.
	ErrReleased = errors.New("raster: frame already released")
)

// Buffer is the backing store of a rendered image.
//
// Pixels are laid out row-major with no padding, so the byte offset of
// pixel (x, y) is (y*width + x) * bytesPerPixel.
//
// Thread safety: Lock and Unlock are safe for concurrent use. SetPixel on the
// Buffer itself requires external synchronization; concurrent writers should
// share one Frame and write disjoint pixels.
type Buffer struct {
	data   []byte
	width  int
	height int
	stride int
	format Format

	mu     sync.Mutex
	locked bool
}

// New creates a zeroed buffer with the given dimensions and format.
func New(width, height int, format Format) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &Buffer{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// Data returns the raw backing store.
// Its contents only reflect writes made through a Frame after that Frame is unlocked.
func (b *Buffer) Data() []byte {
	return b.data
}

// PixelOffset returns the byte offset of pixel (x, y).
// Returns -1 if coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// GetPixel returns the colour stored at (x, y) in the backing store.
func (b *Buffer) GetPixel(x, y int) (color.RGBA, error) {
	return b.get(b.data, x, y)
}

// SetPixel writes c at (x, y) directly into the backing store.
func (b *Buffer) SetPixel(x, y int, c color.RGBA) error {
	return b.set(b.data, x, y, c)
}

// Lock begins exclusive access and returns a Frame holding a copy of the
// backing store. The caller must end the scope with Unlock or Discard;
// deferring Discard right after Lock is always safe.
func (b *Buffer) Lock() (*Frame, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locked {
		return nil, ErrLocked
	}
	b.locked = true

	pixels := make([]byte, len(b.data))
	copy(pixels, b.data)

	return &Frame{buf: b, pixels: pixels}, nil
}

func (b *Buffer) release(flush []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if flush != nil {
		copy(b.data, flush)
	}
	b.locked = false
}

func (b *Buffer) get(data []byte, x, y int) (color.RGBA, error) {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return color.RGBA{}, b.rangeError(x, y)
	}
	return decodePixel(b.format, data[offset:offset+b.format.BytesPerPixel()]), nil
}

func (b *Buffer) set(data []byte, x, y int, c color.RGBA) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return b.rangeError(x, y)
	}
	encodePixel(b.format, data[offset:offset+b.format.BytesPerPixel()], c)
	return nil
}

func (b *Buffer) rangeError(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, b.width, b.height)
}

// Frame is the working buffer of a locked Buffer.
//
// Frame.SetPixel may be called from multiple goroutines as long as they
// write different pixels. Unlock and Discard must be called by the owner
// once all writers are done.
type Frame struct {
	buf      *Buffer
	pixels   []byte
	released bool
}

// SetPixel writes c at (x, y) in the working buffer.
func (f *Frame) SetPixel(x, y int, c color.RGBA) error {
	if f.released {
		return ErrReleased
	}
	return f.buf.set(f.pixels, x, y, c)
}

// GetPixel returns the colour at (x, y) in the working buffer.
func (f *Frame) GetPixel(x, y int) (color.RGBA, error) {
	if f.released {
		return color.RGBA{}, ErrReleased
	}
	return f.buf.get(f.pixels, x, y)
}

// Data returns the working buffer bytes.
func (f *Frame) Data() []byte {
	return f.pixels
}

// Unlock flushes the working buffer into the backing store and ends the scope.
func (f *Frame) Unlock() error {
	if f.released {
		return ErrReleased
	}
	f.released = true
	f.buf.release(f.pixels)
	f.pixels = nil
	return nil
}

// Discard ends the scope without touching the backing store.
// It is a no-op after Unlock.
func (f *Frame) Discard() {
	if f.released {
		return
	}
	f.released = true
	f.buf.release(nil)
	f.pixels = nil
}

// encodePixel stores c into pixel using the byte layout of format.
func encodePixel(format Format, pixel []byte, c color.RGBA) {
	switch format {
	case FormatGray8:
		// Standard luminance: 0.299*R + 0.587*G + 0.114*B
		pixel[0] = byte((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	case FormatBGR8:
		pixel[0] = c.B
		pixel[1] = c.G
		pixel[2] = c.R
	case FormatBGRA8:
		pixel[0] = c.B
		pixel[1] = c.G
		pixel[2] = c.R
		pixel[3] = c.A
	}
}

// decodePixel reads a pixel stored with the byte layout of format.
// Formats without alpha decode as opaque.
func decodePixel(format Format, pixel []byte) color.RGBA {
	switch format {
	case FormatGray8:
		v := pixel[0]
		return color.RGBA{R: v, G: v, B: v, A: 255}
	case FormatBGR8:
		return color.RGBA{R: pixel[2], G: pixel[1], B: pixel[0], A: 255}
	case FormatBGRA8:
		return color.RGBA{R: pixel[2], G: pixel[1], B: pixel[0], A: pixel[3]}
	default:
		return color.RGBA{}
	}
}
