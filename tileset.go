package dted

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	missingTileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_missing_tile_cache_hits_total",
		Help: "The total number of hits on the missing tile cache",
	})
	missingTileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_missing_tile_cache_misses_total",
		Help: "The total number of misses on the missing tile cache",
	})
	tileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_hits_total",
		Help: "The total number of hits on the tile cache",
	})
	tileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_misses_total",
		Help: "The total number of misses on the tile cache",
	})
	tileCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_evictions_total",
		Help: "The total number of evictions from the tile cache",
	})
)

// A TileCoord identifies a tile by the integer degrees of its south-west
// corner.
type TileCoord struct {
	LatDeg int
	LonDeg int
}

// TileCoordOf returns the TileCoord of the tile containing coord. A
// coordinate on a seam between tiles resolves to the tile whose origin it
// is; neighboring tiles duplicate seam rows and columns, so the elevation
// is the same either way.
func TileCoordOf(coord Coordinate) TileCoord {
	return TileCoord{
		LatDeg: int(math.Floor(coord.LatDeg())),
		LonDeg: int(math.Floor(coord.LonDeg())),
	}
}

// A TileFilenameFunc returns the tile filename for a tile coordinate.
type TileFilenameFunc func(TileCoord) string

// DefaultTileFilename returns the filename of the tile at tileCoord in the
// standard per-longitude directory layout, for example "e008/n47.dt2".
func DefaultTileFilename(tileCoord TileCoord) string {
	latHemisphere, latDeg := 'n', tileCoord.LatDeg
	if latDeg < 0 {
		latHemisphere, latDeg = 's', -latDeg
	}
	lonHemisphere, lonDeg := 'e', tileCoord.LonDeg
	if lonDeg < 0 {
		lonHemisphere, lonDeg = 'w', -lonDeg
	}
	return fmt.Sprintf("%c%03d/%c%02d.dt2", lonHemisphere, lonDeg, latHemisphere, latDeg)
}

// A TileSet is a set of DTED tiles read on demand from a filesystem.
type TileSet struct {
	mutex            sync.Mutex
	fsys             fs.FS
	tileFilenameFunc TileFilenameFunc
	missingTiles     sync.Map
	cacheSize        int
	tileCache        *lru.Cache[TileCoord, *Tile]
}

// A TileSetOption sets an option on a TileSet.
type TileSetOption func(*TileSet)

// NewTileSet returns a new TileSet with the given options.
func NewTileSet(options ...TileSetOption) (*TileSet, error) {
	s := &TileSet{
		tileFilenameFunc: DefaultTileFilename,
		cacheSize:        32,
	}
	for _, option := range options {
		option(s)
	}

	var err error
	s.tileCache, err = lru.New[TileCoord, *Tile](s.cacheSize)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func WithCacheSize(cacheSize int) TileSetOption {
	return func(s *TileSet) {
		s.cacheSize = cacheSize
	}
}

func WithFS(fsys fs.FS) TileSetOption {
	return func(s *TileSet) {
		s.fsys = fsys
	}
}

func WithTileFilenameFunc(tileFilenameFunc TileFilenameFunc) TileSetOption {
	return func(s *TileSet) {
		s.tileFilenameFunc = tileFilenameFunc
	}
}

// Sample returns the elevation in meters at coord. Coordinates not covered
// by any tile return NaN.
func (s *TileSet) Sample(coord Coordinate) (float64, error) {
	tile, err := s.getTileCached(TileCoordOf(coord))
	if err != nil {
		return 0, err
	}
	if tile == nil {
		return math.NaN(), nil
	}
	elevation, ok := tile.ElevationM(coord)
	if !ok {
		return math.NaN(), nil
	}
	return float64(elevation), nil
}

// Samples returns the elevations in meters at coords. Missing samples are
// represented by NaNs.
func (s *TileSet) Samples(coords []Coordinate) ([]float64, error) {
	samples := make([]float64, len(coords))

	// Group indexes by tile coord.
	indexesByTileCoord := make(map[TileCoord][]int)
	for index, coord := range coords {
		tileCoord := TileCoordOf(coord)
		indexesByTileCoord[tileCoord] = append(indexesByTileCoord[tileCoord], index)
	}

	// Populate samples one tile at a time.
	for tileCoord, indexes := range indexesByTileCoord {
		tile, err := s.getTileCached(tileCoord)
		if err != nil {
			return nil, err
		}
		if tile == nil {
			for _, index := range indexes {
				samples[index] = math.NaN()
			}
			continue
		}
		for _, index := range indexes {
			if elevation, ok := tile.ElevationM(coords[index]); ok {
				samples[index] = float64(elevation)
			} else {
				samples[index] = math.NaN()
			}
		}
	}

	return samples, nil
}

// getTile returns the tile at the given tile coordinate.
func (s *TileSet) getTile(tileCoord TileCoord) (*Tile, error) {
	filename := s.tileFilenameFunc(tileCoord)
	switch tile, err := ReadTile(s.fsys, filename); {
	case errors.Is(err, fs.ErrNotExist):
		s.missingTiles.Store(tileCoord, struct{}{})
		missingTileCacheMisses.Inc()
		return nil, nil
	case err != nil:
		return nil, err
	default:
		return tile, nil
	}
}

// getTileCached returns the tile at the given tile coordinate, using the
// cache if possible.
func (s *TileSet) getTileCached(tileCoord TileCoord) (*Tile, error) {
	if _, ok := s.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := s.tileCache.Get(tileCoord); ok {
		tileCacheHits.Inc()
		return tile, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.missingTiles.Load(tileCoord); ok {
		missingTileCacheHits.Inc()
		return nil, nil
	}

	if tile, ok := s.tileCache.Get(tileCoord); ok {
		tileCacheHits.Inc()
		return tile, nil
	}

	tileCacheMisses.Inc()

	tile, err := s.getTile(tileCoord)
	if err != nil {
		return nil, err
	}

	if eviction := s.tileCache.Add(tileCoord, tile); eviction {
		tileCacheEvictions.Inc()
	}

	return tile, nil
}
