package geohash

import (
	"fmt"
	"math"
)

// bounds is the cell being narrowed by successive bisections. Even bit indexes
// split longitude, odd ones split latitude.
type bounds struct {
	latMin, latMax float64
	lonMin, lonMax float64
}

func world() bounds {
	return bounds{latMin: minLat, latMax: maxLat, lonMin: minLon, lonMax: maxLon}
}

// bisect halves the axis selected by bit index i towards the point and returns the chosen half.
func (b *bounds) bisect(i uint, lat, lon float64) uint64 {
	if i%2 == 0 {
		mid := (b.lonMin + b.lonMax) / 2
		if lon >= mid {
			b.lonMin = mid
			return 1
		}
		b.lonMax = mid
		return 0
	}

	mid := (b.latMin + b.latMax) / 2
	if lat >= mid {
		b.latMin = mid
		return 1
	}
	b.latMax = mid
	return 0
}

// refine halves the axis selected by bit index i, keeping the half named by bit.
func (b *bounds) refine(i uint, bit uint64) {
	if i%2 == 0 {
		mid := (b.lonMin + b.lonMax) / 2
		if bit == 1 {
			b.lonMin = mid
		} else {
			b.lonMax = mid
		}
		return
	}

	mid := (b.latMin + b.latMax) / 2
	if bit == 1 {
		b.latMin = mid
	} else {
		b.latMax = mid
	}
}

func (b bounds) cell() Cell {
	return Cell{
		Latitude:  (b.latMin + b.latMax) / 2,
		Longitude: (b.lonMin + b.lonMax) / 2,
		Error: Coordinates{
			Latitude:  (b.latMax - b.latMin) / 2,
			Longitude: (b.lonMax - b.lonMin) / 2,
		},
	}
}

func (b bounds) box() Box {
	return Box{MinLat: b.latMin, MinLon: b.lonMin, MaxLat: b.latMax, MaxLon: b.lonMax}
}

// encodeBits interleaves bits bisections of the point into the low bits of a uint64,
// first bisection in the most significant position. bits must not exceed 64.
func encodeBits(lat, lon float64, bits uint) uint64 {
	b := world()
	var code uint64
	for i := uint(0); i < bits; i++ {
		code = code<<1 | b.bisect(i, lat, lon)
	}
	return code
}

// decodeBits replays the bisections recorded in the low bits of code.
func decodeBits(code uint64, bits uint) bounds {
	b := world()
	for i := uint(0); i < bits; i++ {
		b.refine(i, code>>(bits-1-i)&1)
	}
	return b
}

func checkCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < minLat || lat > maxLat {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, lat)
	}
	if math.IsNaN(lon) || lon < minLon || lon > maxLon {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, lon)
	}
	return nil
}

// checkBits validates an integer hash bit depth: even, non-zero, at most 64.
func checkBits(bits uint) error {
	if bits == 0 || bits > MaxBitsPrecision || bits%2 != 0 {
		return fmt.Errorf("%w: bit precision %d must be even and within 2..%d",
			ErrInvalidPrecision, bits, MaxBitsPrecision)
	}
	return nil
}
