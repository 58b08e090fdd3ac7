package fractal

import "fmt"

// PixelResult is the outcome of the compute phase for one pixel.
type PixelResult struct {
	// Iterations is the number of iterations performed before the loop stopped.
	Iterations uint64

	// LastZ is the last value of the iterated complex number.
	LastZ complex128

	// RootDistances holds |z - r| for the three cube roots of unity.
	// Only the Newton variant fills it.
	RootDistances [3]float64
}

// Grid stores one PixelResult per pixel in a flat row-major slice.
//
// Each cell is written once by the compute phase and then only read.
// Concurrent writers must target distinct cells.
type Grid struct {
	width  int
	height int
	cells  []PixelResult
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]PixelResult, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the result stored for pixel (x, y).
func (g *Grid) At(x, y int) (PixelResult, error) {
	i, err := g.index(x, y)
	if err != nil {
		return PixelResult{}, err
	}
	return g.cells[i], nil
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, g.width, g.height)
	}
	return y*g.width + x, nil
}
