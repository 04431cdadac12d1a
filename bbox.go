package geohash

import (
	"fmt"
)

// MaxBBoxCells caps how many cells a single bounding-box enumeration may return.
const MaxBBoxCells = 1 << 20

// BBoxes returns every hash of chars characters covering box. Cells are emitted row by
// row from south to north, west to east within a row, so the cell holding the
// north-east corner comes last. A box with MinLon > MaxLon wraps across the antimeridian.
func BBoxes(box Box, chars int) ([]string, error) {
	if chars <= 0 || chars > maxIntChars {
		return nil, fmt.Errorf("%w: %d characters, want 1..%d", ErrInvalidPrecision, chars, maxIntChars)
	}

	codes, err := sweep(box, uint(chars)*bitsPerChar)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = intToString(code, chars)
	}
	return out, nil
}

// BBoxesInt is BBoxes for integer hashes of bits bits.
func BBoxesInt(box Box, bits uint) ([]uint64, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}
	return sweep(box, bits)
}

func sweep(box Box, n uint) ([]uint64, error) {
	if err := checkCoordinates(box.MinLat, box.MinLon); err != nil {
		return nil, err
	}
	if err := checkCoordinates(box.MaxLat, box.MaxLon); err != nil {
		return nil, err
	}
	if box.MinLat > box.MaxLat {
		return nil, fmt.Errorf("%w: min latitude %v above max latitude %v", ErrInvalidBox, box.MinLat, box.MaxLat)
	}

	southWest := encodeBits(box.MinLat, box.MinLon, n)
	northEast := encodeBits(box.MaxLat, box.MaxLon, n)

	lonMask, latMask := axisMasks(n)
	rows := extract(northEast, latMask) - extract(southWest, latMask) + 1
	cols := (extract(northEast, lonMask)-extract(southWest, lonMask))&lowMask(axisWidth(lonMask)) + 1
	if rows > MaxBBoxCells || cols > MaxBBoxCells || rows*cols > MaxBBoxCells {
		return nil, fmt.Errorf("%w: %d x %d cells, limit %d", ErrTooManyCells, rows, cols, MaxBBoxCells)
	}

	out := make([]uint64, 0, rows*cols)
	for r := range int(rows) {
		row := move(southWest, latMask, r)
		for c := range int(cols) {
			out = append(out, move(row, lonMask, c))
		}
	}
	return out, nil
}
