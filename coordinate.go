package dted

import "errors"

var (
	ErrLatitudeOutOfRange  = errors.New("latitude out of range")
	ErrLongitudeOutOfRange = errors.New("longitude out of range")
)

// A Coordinate is a geographic point stored as a latitude and a longitude
// normalized to [0, 1].
type Coordinate struct {
	lat01 float64
	lon01 float64
}

// NewCoordinate returns a Coordinate with the given normalized latitude and
// longitude, both of which must be in [0, 1]. Latitude is checked first.
func NewCoordinate(lat01, lon01 float64) (Coordinate, error) {
	if !(0 <= lat01 && lat01 <= 1) {
		return Coordinate{}, ErrLatitudeOutOfRange
	}
	if !(0 <= lon01 && lon01 <= 1) {
		return Coordinate{}, ErrLongitudeOutOfRange
	}
	return Coordinate{lat01: lat01, lon01: lon01}, nil
}

// NewCoordinateFromDegrees returns a Coordinate with the given latitude in
// [-90, 90] and longitude in [-180, 180].
func NewCoordinateFromDegrees(latDeg, lonDeg float64) (Coordinate, error) {
	return NewCoordinate((latDeg+90)/180, (lonDeg+180)/360)
}

// LatDeg returns c's latitude in degrees, in [-90, 90].
func (c Coordinate) LatDeg() float64 {
	return c.lat01*180 - 90
}

// LonDeg returns c's longitude in degrees, in [-180, 180].
func (c Coordinate) LonDeg() float64 {
	return c.lon01*360 - 180
}
