package dted

import "fmt"

// A Grid is a dense rows x cols grid of elevation samples. Samples are
// stored one column after another, matching the record order of a DTED
// elevation data block.
type Grid struct {
	rows    int
	cols    int
	samples []int16
}

// NewGrid returns a Grid backed by samples, which must hold rows*cols
// values in column-major order. The Grid takes ownership of samples.
func NewGrid(rows, cols int, samples []int16) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("non-positive grid shape %dx%d", rows, cols)
	}
	if len(samples) != rows*cols {
		return nil, fmt.Errorf("grid shape %dx%d requires %d samples, got %d", rows, cols, rows*cols, len(samples))
	}
	return &Grid{rows: rows, cols: cols, samples: samples}, nil
}

// Rows returns the number of rows in g.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in g.
func (g *Grid) Cols() int { return g.cols }

// At returns the sample at (row, col). It panics if either index is out of
// bounds: an out-of-range row could otherwise still land inside the backing
// slice, in a neighboring column.
func (g *Grid) At(row, col int) int16 {
	if row < 0 || g.rows <= row || col < 0 || g.cols <= col {
		panic(fmt.Sprintf("grid index (%d, %d) out of range %dx%d", row, col, g.rows, g.cols))
	}
	return g.samples[col*g.rows+row]
}
