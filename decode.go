// Package dted reads DTED (Digital Terrain Elevation Data) Level 2 tiles.
//
// A DTED tile covers a 1x1 degree cell and stores elevations as big-endian
// sign-magnitude samples, one checksummed record per longitude line. The
// format is specified in MIL-PRF-89020B.
package dted

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
)

// ErrInvalid indicates that the input is not a valid DTED Level 2 tile.
// Errors returned by ParseTile wrap ErrInvalid with a description of the
// failing field.
var ErrInvalid = errors.New("invalid DTED tile")

const (
	uhlSentinel = "UHL1"

	// dsiAccLen is the combined length of the Data Set Identification (648
	// bytes) and Accuracy (2700 bytes) records, which are not decoded.
	dsiAccLen = 3348

	recordHeaderLen   = 8
	recordChecksumLen = 4
)

// skip discards the next n bytes and returns the remainder.
func skip(data []byte, n int) ([]byte, error) {
	if len(data) < n {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrInvalid)
	}
	return data[n:], nil
}

// parseASCIIInt parses a zero-padded ASCII decimal field of the given
// width. All width bytes must be digits.
func parseASCIIInt(data []byte, width int) (int, []byte, error) {
	if len(data) < width {
		return 0, nil, fmt.Errorf("%w: unexpected end of input", ErrInvalid)
	}
	value := 0
	for _, b := range data[:width] {
		if b < '0' || '9' < b {
			return 0, nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalid, data[:width])
		}
		value = 10*value + int(b-'0')
	}
	return value, data[width:], nil
}

// parseAngle parses an 8-byte DDDMMSSH angle field: three ASCII degree
// digits, the MMSS bytes (always zero for tile origins, not part of the
// value), and a hemisphere letter supplying the sign. No range check is
// applied here.
func parseAngle(data []byte) (float64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("%w: unexpected end of input", ErrInvalid)
	}
	degrees, _, err := parseASCIIInt(data, 3)
	if err != nil {
		return 0, nil, err
	}
	var sign float64
	switch hemisphere := data[7]; hemisphere {
	case 'N', 'E':
		sign = 1
	case 'S', 'W':
		sign = -1
	default:
		return 0, nil, fmt.Errorf("%w: invalid hemisphere %q", ErrInvalid, hemisphere)
	}
	return sign * float64(degrees), data[8:], nil
}

// parseHeader parses the 80-byte User Header Label at the start of a tile.
func parseHeader(data []byte) (Header, []byte, error) {
	if len(data) < len(uhlSentinel) || string(data[:len(uhlSentinel)]) != uhlSentinel {
		return Header{}, nil, fmt.Errorf("%w: missing %q sentinel", ErrInvalid, uhlSentinel)
	}
	rest := data[len(uhlSentinel):]

	originLon, rest, err := parseAngle(rest)
	if err != nil {
		return Header{}, nil, err
	}
	if !(-180 < originLon && originLon < 180) {
		return Header{}, nil, fmt.Errorf("%w: origin longitude %v out of range", ErrInvalid, originLon)
	}
	originLat, rest, err := parseAngle(rest)
	if err != nil {
		return Header{}, nil, err
	}
	if !(-90 < originLat && originLat < 90) {
		return Header{}, nil, fmt.Errorf("%w: origin latitude %v out of range", ErrInvalid, originLat)
	}

	// Longitude and latitude intervals, absolute accuracy, security code,
	// and unique reference.
	rest, err = skip(rest, 27)
	if err != nil {
		return Header{}, nil, err
	}

	numLon, rest, err := parseASCIIInt(rest, 4)
	if err != nil {
		return Header{}, nil, err
	}
	numLat, rest, err := parseASCIIInt(rest, 4)
	if err != nil {
		return Header{}, nil, err
	}
	if numLon == 0 || numLat == 0 {
		return Header{}, nil, fmt.Errorf("%w: zero point count %dx%d", ErrInvalid, numLat, numLon)
	}

	// Multiple accuracy flag and reserved bytes.
	rest, err = skip(rest, 25)
	if err != nil {
		return Header{}, nil, err
	}

	origin, err := NewCoordinateFromDegrees(originLat, originLon)
	if err != nil {
		// The origin range checks above are strictly tighter than the
		// constructor's.
		panic(err)
	}
	return Header{origin: origin, numLat: numLat, numLon: numLon}, rest, nil
}

// toElevation converts a sign-magnitude sample to a two's-complement
// elevation in meters. Bit 15 is the sign, bits 0-14 the magnitude; the
// negative-zero pattern 0x8000 decodes to 0.
func toElevation(sample uint16) int16 {
	magnitude := int16(sample & 0x7fff)
	if sample&0x8000 != 0 {
		return -magnitude
	}
	return magnitude
}

// parseRecords parses the elevation data block: one record per longitude
// line, each filling one column of the grid, south row first. Each record
// is an 8-byte record header, numLat sign-magnitude samples, and a 32-bit
// checksum equal to the byte sum of everything before it.
func parseRecords(data []byte, header Header) (*Grid, []byte, error) {
	numLat, numLon := header.numLat, header.numLon
	recordLen := recordHeaderLen + 2*numLat + recordChecksumLen
	if len(data) < numLon*recordLen {
		return nil, nil, fmt.Errorf("%w: %d bytes of elevation data, need %d", ErrInvalid, len(data), numLon*recordLen)
	}

	samples := make([]int16, numLat*numLon)
	for col := 0; col < numLon; col++ {
		record := data[col*recordLen : (col+1)*recordLen]
		payload := record[:recordHeaderLen+2*numLat]

		var checksum uint32
		for _, b := range payload {
			checksum += uint32(b)
		}
		if stored := binary.BigEndian.Uint32(record[len(record)-recordChecksumLen:]); checksum != stored {
			return nil, nil, fmt.Errorf("%w: record %d: checksum mismatch: computed 0x%08x, stored 0x%08x", ErrInvalid, col, checksum, stored)
		}

		heights := payload[recordHeaderLen:]
		column := samples[col*numLat : (col+1)*numLat]
		for row := range column {
			column[row] = toElevation(binary.BigEndian.Uint16(heights[2*row:]))
		}
	}
	grid := &Grid{rows: numLat, cols: numLon, samples: samples}
	return grid, data[numLon*recordLen:], nil
}

// ParseTile parses a complete DTED Level 2 tile. Any parse failure aborts
// the whole decode: ParseTile never returns a partially decoded tile.
// Trailing bytes after the elevation data block are ignored.
func ParseTile(data []byte) (*Tile, error) {
	header, rest, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	rest, err = skip(rest, dsiAccLen)
	if err != nil {
		return nil, err
	}
	grid, _, err := parseRecords(rest, header)
	if err != nil {
		return nil, err
	}
	return &Tile{header: header, grid: grid}, nil
}

// ReadTile reads and parses the DTED tile in filename. The file is read in
// full before parsing begins; read errors are returned as-is.
func ReadTile(fsys fs.FS, filename string) (*Tile, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	return ParseTile(data)
}
