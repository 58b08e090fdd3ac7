package palette

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/fractal"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"1 0 0",
		"  0.0  1.0  0.0",
		"not a colour",
		"0 0 1 extra fields",
		"0.5 0.5",
		"2 -0 0.25",
		"-0.5 0.5 1",
		"NaN 0 0",
	}, "\n")

	p, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		index int
		want  color.RGBA
	}{
		{0, color.RGBA{R: 255, A: 255}},
		{1, color.RGBA{G: 255, A: 255}},
		{2, color.RGBA{A: 255}},
		{3, color.RGBA{B: 255, A: 255}},
		{4, color.RGBA{A: 255}},
		{5, color.RGBA{R: 255, B: 64, A: 255}}, // clamped red, 0.25 rounds to 64
		{6, color.RGBA{G: 128, B: 255, A: 255}}, // clamped red
		{7, color.RGBA{A: 255}},
		{8, color.RGBA{A: 255}},
		{255, color.RGBA{A: 255}},
	}

	for _, tt := range tests {
		if p[tt.index] != tt.want {
			t.Errorf("p[%d] = %v, want %v", tt.index, p[tt.index], tt.want)
		}
	}
}

func TestParse_IgnoresExtraLines(t *testing.T) {
	var b strings.Builder
	for range fractal.PaletteSize {
		b.WriteString("0 0 0\n")
	}
	b.WriteString("1 1 1\n")

	p, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if p[fractal.PaletteSize-1] != (color.RGBA{A: 255}) {
		t.Errorf("last entry = %v, want black", p[fractal.PaletteSize-1])
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "a b c\n"} {
		if _, err := Parse(strings.NewReader(input)); !errors.Is(err, ErrNoColors) {
			t.Errorf("Parse(%q) error = %v, want ErrNoColors", input, err)
		}
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fire.txt")
	if err := os.WriteFile(path, []byte("1 0.5 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	resolved, err := Resolve("fire.txt", dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved != path {
		t.Errorf("Resolve() = %q, want %q", resolved, path)
	}

	// An existing path is used as given.
	if got, err := Resolve(path, "elsewhere"); err != nil || got != path {
		t.Errorf("Resolve(full path) = %q, %v", got, err)
	}

	p, err := Load(resolved)
	if err != nil {
		t.Fatal(err)
	}
	if p[0] != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Errorf("p[0] = %v", p[0])
	}

	if _, err := Resolve("missing.txt", dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Resolve(missing) error = %v, want os.ErrNotExist", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}
