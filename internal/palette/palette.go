// Package palette reads colour tables from text files.
//
// A palette file holds one colour per line as three whitespace-separated
// fractions in [0, 1] (red, green, blue). Line n fills palette entry n; lines
// that do not start with three numbers leave their entry black, and lines
// past the last entry are ignored. Components outside [0, 1] are clamped.
package palette

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/fractal"
)

// DefaultDir is the directory searched for palettes given by bare name.
const DefaultDir = "palettes"

// ErrNoColors is returned when a palette file contains no usable line.
var ErrNoColors = errors.New("palette: no colours found")

// Load reads the palette file at path.
func Load(path string) (fractal.Palette, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fractal.Palette{}, fmt.Errorf("palette: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := Parse(f)
	if err != nil {
		return fractal.Palette{}, fmt.Errorf("palette: %s: %w", path, err)
	}
	return p, nil
}

// Parse reads a palette from r.
func Parse(r io.Reader) (fractal.Palette, error) {
	var (
		p     fractal.Palette
		found int
	)
	for i := range p {
		p[i] = color.RGBA{A: 255}
	}

	sc := bufio.NewScanner(r)
	for line := 0; sc.Scan(); line++ {
		if line >= fractal.PaletteSize {
			continue
		}
		c, ok := parseLine(sc.Text())
		if !ok {
			continue
		}
		r, g, b := c.Clamped().RGB255()
		p[line] = color.RGBA{R: r, G: g, B: b, A: 255}
		found++
	}
	if err := sc.Err(); err != nil {
		return fractal.Palette{}, fmt.Errorf("read: %w", err)
	}
	if found == 0 {
		return fractal.Palette{}, ErrNoColors
	}
	return p, nil
}

func parseLine(line string) (colorful.Color, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return colorful.Color{}, false
	}
	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(v) {
			return colorful.Color{}, false
		}
		rgb[i] = v
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, true
}

// Resolve returns the file path for a palette name. Names that already
// point to an existing file are returned as is; otherwise the name is looked
// up in dir.
func Resolve(name, dir string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("palette: empty name: %w", os.ErrNotExist)
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return name, nil
	}

	path := filepath.Join(dir, name)
	st, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("palette: %q: %w", name, err)
	}
	if st.IsDir() {
		return "", fmt.Errorf("palette: %q is a directory", path)
	}
	return path, nil
}
