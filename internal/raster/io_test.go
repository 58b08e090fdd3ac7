package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestEncodingForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Encoding
		wantErr bool
	}{
		{"output.bmp", EncodingBMP, false},
		{"OUT.BMP", EncodingBMP, false},
		{"a/b/c.png", EncodingPNG, false},
		{"x.tif", EncodingTIFF, false},
		{"x.tiff", EncodingTIFF, false},
		{"x.jpg", 0, true},
		{"noext", 0, true},
	}

	for _, tt := range tests {
		got, err := EncodingForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("EncodingForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("EncodingForPath(%q) error = %v, want ErrUnsupportedEncoding", tt.path, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("EncodingForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestImage(t *testing.T) {
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}

	gray, _ := New(2, 2, FormatGray8)
	_ = gray.SetPixel(1, 0, color.RGBA{R: 77, G: 77, B: 77, A: 255})
	gi, ok := gray.Image().(*image.Gray)
	if !ok {
		t.Fatalf("Gray8 Image() = %T, want *image.Gray", gray.Image())
	}
	if gi.GrayAt(1, 0).Y != 77 {
		t.Errorf("GrayAt(1, 0) = %d, want 77", gi.GrayAt(1, 0).Y)
	}

	rgb, _ := New(2, 2, FormatBGR8)
	_ = rgb.SetPixel(0, 1, c)
	ni, ok := rgb.Image().(*image.NRGBA)
	if !ok {
		t.Fatalf("BGR8 Image() = %T, want *image.NRGBA", rgb.Image())
	}
	if got := ni.NRGBAAt(0, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("NRGBAAt(0, 1) = %v", got)
	}
}

func TestEncodeBMPRoundTrip(t *testing.T) {
	buf, _ := New(3, 2, FormatBGR8)
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	_ = buf.SetPixel(2, 1, c)

	var out bytes.Buffer
	if err := Encode(&out, buf.Image(), EncodingBMP); err != nil {
		t.Fatal(err)
	}

	img, err := bmp.Decode(&out)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if uint8(r>>8) != c.R || uint8(g>>8) != c.G || uint8(b>>8) != c.B {
		t.Errorf("decoded pixel = (%d, %d, %d), want %v", r>>8, g>>8, b>>8, c)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	buf, _ := New(4, 4, FormatBGRA8)

	for _, name := range []string{"a.bmp", "a.png", "a.tiff"} {
		path := filepath.Join(dir, name)
		if err := buf.Save(path); err != nil {
			t.Errorf("Save(%q) error = %v", name, err)
			continue
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("Save(%q) wrote nothing: %v", name, err)
		}
	}

	if err := buf.Save(filepath.Join(dir, "a.gif")); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Save(.gif) error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	got := Downsample(src, 4, 3)
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("Downsample bounds = %v, want 4x3", b)
	}
	if Downsample(src, 8, 6) != image.Image(src) {
		t.Error("Downsample to the same size should return the source")
	}
}
