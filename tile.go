package dted

// A Header is the decoded User Header Label of a DTED tile.
type Header struct {
	origin Coordinate
	numLat int
	numLon int
}

// Origin returns the tile's origin, its south-west corner.
func (h Header) Origin() Coordinate { return h.origin }

// NumLat returns the number of latitude points (rows) in the tile.
func (h Header) NumLat() int { return h.numLat }

// NumLon returns the number of longitude points (columns) in the tile.
func (h Header) NumLon() int { return h.numLon }

// A Tile is a decoded DTED tile: a header plus a NumLat x NumLon grid of
// elevations covering a 1x1 degree cell. Tiles are immutable and safe for
// concurrent use.
type Tile struct {
	header Header
	grid   *Grid
}

// Header returns t's header.
func (t *Tile) Header() Header { return t.header }

// MinLatDeg returns the latitude of t's southern edge in degrees.
func (t *Tile) MinLatDeg() float64 { return t.header.origin.LatDeg() }

// MaxLatDeg returns the latitude of t's northern edge in degrees.
func (t *Tile) MaxLatDeg() float64 { return t.header.origin.LatDeg() + 1 }

// MinLonDeg returns the longitude of t's western edge in degrees.
func (t *Tile) MinLonDeg() float64 { return t.header.origin.LonDeg() }

// MaxLonDeg returns the longitude of t's eastern edge in degrees.
func (t *Tile) MaxLonDeg() float64 { return t.header.origin.LonDeg() + 1 }

// Contains reports whether coord lies within t's bounding box, inclusive
// on all edges.
func (t *Tile) Contains(coord Coordinate) bool {
	latDeg, lonDeg := coord.LatDeg(), coord.LonDeg()
	return t.MinLatDeg() <= latDeg && latDeg <= t.MaxLatDeg() &&
		t.MinLonDeg() <= lonDeg && lonDeg <= t.MaxLonDeg()
}

// ElevationM returns the elevation in meters of the grid cell containing
// coord, or false if coord is outside t. Coordinates exactly on the
// northern or eastern edge belong to the last row or column.
func (t *Tile) ElevationM(coord Coordinate) (int16, bool) {
	if !t.Contains(coord) {
		return 0, false
	}
	latIndex := int((coord.LatDeg() - t.MinLatDeg()) * float64(t.header.numLat))
	lonIndex := int((coord.LonDeg() - t.MinLonDeg()) * float64(t.header.numLon))
	// The scale factor is the point count, so the exact maximum edges land
	// one past the last point; clamp them in.
	latIndex = min(latIndex, t.header.numLat-1)
	lonIndex = min(lonIndex, t.header.numLon-1)
	return t.grid.At(latIndex, lonIndex), true
}
