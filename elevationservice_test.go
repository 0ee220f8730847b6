package dted

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/twpayne/go-proj/v11"
)

func TestElevationService_Elevation(t *testing.T) {
	elevationService, err := NewElevationService(testTileSetFS())
	assert.NoError(t, err)

	for _, tc := range []struct {
		name     string
		coord    []float64
		expected float64
	}{
		{name: "zurich", coord: []float64{8.5, 47.4}, expected: 100},
		{name: "st_gallen", coord: []float64{9.4, 47.4}, expected: 200},
		{name: "valparaiso", coord: []float64{-71.62, -33.05}, expected: 300},
		{name: "null_island", coord: []float64{0, 0}, expected: math.NaN()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := elevationService.Elevation([][]float64{tc.coord})
			assert.NoError(t, err)
			if math.IsNaN(tc.expected) {
				assert.Equal(t, 1, len(actual))
				assert.True(t, math.IsNaN(actual[0]))
			} else {
				assert.Equal(t, []float64{tc.expected}, actual)
			}
		})
	}
}

func TestElevationService_Elevation_OutOfRange(t *testing.T) {
	elevationService, err := NewElevationService(testTileSetFS())
	assert.NoError(t, err)

	_, err = elevationService.Elevation([][]float64{{0, 91}})
	assert.IsError(t, err, ErrLatitudeOutOfRange)

	_, err = elevationService.Elevation([][]float64{{181, 0}})
	assert.IsError(t, err, ErrLongitudeOutOfRange)
}

func TestElevationService_Elevation3857(t *testing.T) {
	elevationService, err := NewElevationService(testTileSetFS())
	assert.NoError(t, err)

	// Project the query coordinates to EPSG:3857 with the inverse of the
	// transform the service applies.
	pj, err := proj.NewCRSToCRS("epsg:4326", "epsg:3857", nil)
	assert.NoError(t, err)
	coords3857 := [][]float64{
		{47.4, 8.5},
		{0, 0},
	}
	assert.NoError(t, pj.ForwardFloat64Slices(coords3857))

	actual, err := elevationService.Elevation3857(coords3857)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(actual))
	assert.Equal(t, 100.0, actual[0])
	assert.True(t, math.IsNaN(actual[1]))
}

func TestElevationService_Elevation3857_InputUnchanged(t *testing.T) {
	elevationService, err := NewElevationService(testTileSetFS())
	assert.NoError(t, err)

	coords3857 := [][]float64{{946355, 6003319}}
	_, err = elevationService.Elevation3857(coords3857)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{946355, 6003319}}, coords3857)
}
