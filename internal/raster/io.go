package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedEncoding is returned when no encoder matches the requested output.
var ErrUnsupportedEncoding = errors.New("raster: unsupported encoding")

// Encoding selects the file format written by Encode.
type Encoding uint8

const (
	// EncodingBMP writes a Windows bitmap (8-bit gray, 24-bit or 32-bit).
	EncodingBMP Encoding = iota

	// EncodingPNG writes a PNG image.
	EncodingPNG

	// EncodingTIFF writes an uncompressed TIFF image.
	EncodingTIFF
)

// String returns the conventional file extension of the encoding without the dot.
func (e Encoding) String() string {
	switch e {
	case EncodingBMP:
		return "bmp"
	case EncodingPNG:
		return "png"
	case EncodingTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// EncodingForPath picks an encoding from the file extension of path.
func EncodingForPath(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return EncodingBMP, nil
	case ".png":
		return EncodingPNG, nil
	case ".tif", ".tiff":
		return EncodingTIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, filepath.Ext(path))
	}
}

// Image converts the backing store to a standard library image.
// Returns *image.Gray for grayscale and *image.NRGBA otherwise.
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.data[y*b.stride:(y+1)*b.stride])
		}
		return gray

	default:
		bpp := b.format.BytesPerPixel()
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			row := b.data[y*b.stride : (y+1)*b.stride]
			dstStart := y * nrgba.Stride
			for x := range b.width {
				c := decodePixel(b.format, row[x*bpp:(x+1)*bpp])
				off := dstStart + x*4
				nrgba.Pix[off] = c.R
				nrgba.Pix[off+1] = c.G
				nrgba.Pix[off+2] = c.B
				nrgba.Pix[off+3] = c.A
			}
		}
		return nrgba
	}
}

// Encode writes img to w in the requested encoding.
func Encode(w io.Writer, img image.Image, enc Encoding) error {
	var err error
	switch enc {
	case EncodingBMP:
		err = bmp.Encode(w, img)
	case EncodingPNG:
		err = png.Encode(w, img)
	case EncodingTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedEncoding, enc)
	}
	if err != nil {
		return fmt.Errorf("raster: encode %s: %w", enc, err)
	}
	return nil
}

// SaveImage writes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	enc, err := EncodingForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("raster: create file: %w", err)
	}

	if err := Encode(f, img, enc); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Save writes the backing store to path.
func (b *Buffer) Save(path string) error {
	return SaveImage(path, b.Image())
}

// Downsample scales img to width x height with a Lanczos3 filter.
// Used to fold a supersampled render back to its target size.
func Downsample(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
