package dted_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-dted"
)

func TestNewGrid(t *testing.T) {
	for _, tc := range []struct {
		name        string
		rows        int
		cols        int
		samples     []int16
		expectedErr bool
	}{
		{name: "ok", rows: 2, cols: 3, samples: make([]int16, 6)},
		{name: "single", rows: 1, cols: 1, samples: make([]int16, 1)},
		{name: "zero_rows", rows: 0, cols: 3, expectedErr: true},
		{name: "zero_cols", rows: 2, cols: 0, expectedErr: true},
		{name: "negative_rows", rows: -1, cols: 3, expectedErr: true},
		{name: "short_samples", rows: 2, cols: 3, samples: make([]int16, 5), expectedErr: true},
		{name: "long_samples", rows: 2, cols: 3, samples: make([]int16, 7), expectedErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := dted.NewGrid(tc.rows, tc.cols, tc.samples)
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.rows, grid.Rows())
				assert.Equal(t, tc.cols, grid.Cols())
			}
		})
	}
}

func TestGrid_At(t *testing.T) {
	// Samples hold each column in turn, south row first.
	grid, err := dted.NewGrid(2, 3, []int16{
		10, 11,
		20, 21,
		30, 31,
	})
	assert.NoError(t, err)
	assert.Equal(t, int16(10), grid.At(0, 0))
	assert.Equal(t, int16(11), grid.At(1, 0))
	assert.Equal(t, int16(20), grid.At(0, 1))
	assert.Equal(t, int16(21), grid.At(1, 1))
	assert.Equal(t, int16(30), grid.At(0, 2))
	assert.Equal(t, int16(31), grid.At(1, 2))
}

func TestGrid_At_OutOfRange(t *testing.T) {
	grid, err := dted.NewGrid(2, 3, make([]int16, 6))
	assert.NoError(t, err)
	for _, tc := range []struct {
		name string
		row  int
		col  int
	}{
		{name: "row_negative", row: -1, col: 0},
		{name: "row_too_large", row: 2, col: 0},
		{name: "col_negative", row: 0, col: -1},
		{name: "col_too_large", row: 0, col: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() {
				grid.At(tc.row, tc.col)
			})
		})
	}
}
