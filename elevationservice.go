package dted

import (
	"io/fs"
	"slices"

	"github.com/twpayne/go-proj/v11"
)

type ElevationService struct {
	tileSet *TileSet
	pj      *proj.PJ
}

func NewElevationService(fsys fs.FS, options ...TileSetOption) (*ElevationService, error) {
	tileSet, err := NewTileSet(slices.Concat(
		[]TileSetOption{
			WithFS(fsys),
		},
		options,
	)...)
	if err != nil {
		return nil, err
	}
	pj, err := proj.NewCRSToCRS("epsg:3857", "epsg:4326", nil)
	if err != nil {
		return nil, err
	}
	return &ElevationService{
		tileSet: tileSet,
		pj:      pj,
	}, nil
}

// Elevation returns the elevations in meters at each longitude, latitude
// EPSG:4326 coordinate pair in coords. Missing samples are represented by
// NaNs.
func (s *ElevationService) Elevation(coords [][]float64) ([]float64, error) {
	coordinates := make([]Coordinate, len(coords))
	for i, coord := range coords {
		coordinate, err := NewCoordinateFromDegrees(coord[1], coord[0])
		if err != nil {
			return nil, err
		}
		coordinates[i] = coordinate
	}
	return s.tileSet.Samples(coordinates)
}

// Elevation3857 returns the elevations in meters at each x, y EPSG:3857
// coordinate pair in coords3857.
func (s *ElevationService) Elevation3857(coords3857 [][]float64) ([]float64, error) {
	coords4326 := cloneCoords(coords3857)
	if err := s.pj.ForwardFloat64Slices(coords4326); err != nil {
		return nil, err
	}
	// PROJ returns EPSG:4326 coordinates in latitude, longitude order.
	flipCoords(coords4326)
	return s.Elevation(coords4326)
}

func cloneCoords(coords [][]float64) [][]float64 {
	clonedCoordsFlat := make([]float64, 2*len(coords))
	clonedCoords := make([][]float64, len(coords))
	for i, coord := range coords {
		copy(clonedCoordsFlat[2*i:2*i+2], coord)
		clonedCoords[i] = clonedCoordsFlat[2*i : 2*i+2]
	}
	return clonedCoords
}

func flipCoords(coords [][]float64) {
	for i, coord := range coords {
		coords[i][0], coords[i][1] = coord[1], coord[0]
	}
}
