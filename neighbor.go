package geohash

import (
	"math/bits"
)

// Direction is a step in cells: Lat moves north (+) or south (-), Lon moves east (+) or west (-).
type Direction struct {
	Lat int
	Lon int
}

// Compass directions.
var (
	North     = Direction{Lat: 1, Lon: 0}
	NorthEast = Direction{Lat: 1, Lon: 1}
	East      = Direction{Lat: 0, Lon: 1}
	SouthEast = Direction{Lat: -1, Lon: 1}
	South     = Direction{Lat: -1, Lon: 0}
	SouthWest = Direction{Lat: -1, Lon: -1}
	West      = Direction{Lat: 0, Lon: -1}
	NorthWest = Direction{Lat: 1, Lon: -1}
)

// Compass lists the eight directions in the order Neighbors reports them.
var Compass = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

const (
	evenBits = 0x5555555555555555
	oddBits  = 0xaaaaaaaaaaaaaaaa
)

// Neighbor returns the hash of the cell dir steps away from hash, at the same length.
// Both axes wrap around. The result is lowercase.
func Neighbor(hash string, dir Direction) (string, error) {
	code, n, err := stringToInt(hash)
	if err != nil {
		return "", err
	}
	return intToString(shift(code, n, dir), len(hash)), nil
}

// NeighborInt returns the integer hash of the cell dir steps away from hash.
func NeighborInt(hash uint64, dir Direction, bits uint) (uint64, error) {
	if err := checkBits(bits); err != nil {
		return 0, err
	}
	return shift(hash&lowMask(bits), bits, dir), nil
}

// Neighbors returns the eight adjacent cells in Compass order.
func Neighbors(hash string) ([]string, error) {
	code, n, err := stringToInt(hash)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(Compass))
	for _, dir := range Compass {
		out = append(out, intToString(shift(code, n, dir), len(hash)))
	}
	return out, nil
}

// NeighborsInt returns the eight adjacent integer cells in Compass order.
func NeighborsInt(hash uint64, bits uint) ([]uint64, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}

	hash &= lowMask(bits)
	out := make([]uint64, 0, len(Compass))
	for _, dir := range Compass {
		out = append(out, shift(hash, bits, dir))
	}
	return out, nil
}

// shift moves code by dir on each axis independently, modulo the axis width.
func shift(code uint64, n uint, dir Direction) uint64 {
	lonMask, latMask := axisMasks(n)
	code = move(code, latMask, dir.Lat)
	return move(code, lonMask, dir.Lon)
}

// axisMasks selects the longitude and latitude bits of an n-bit code. The most
// significant bit is always longitude, so the parity of n decides the layout.
func axisMasks(n uint) (lonMask, latMask uint64) {
	full := lowMask(n)
	if n%2 == 1 {
		return evenBits & full, oddBits & full
	}
	return oddBits & full, evenBits & full
}

// move adds delta to the axis selected by mask. Carries and borrows skip the other
// axis' bits, and overflow wraps within the mask.
func move(code, mask uint64, delta int) uint64 {
	axis := code & mask
	switch {
	case delta > 0:
		axis = (axis | ^mask) + deposit(uint64(delta), mask)
	case delta < 0:
		axis -= deposit(uint64(-delta), mask)
	default:
		return code
	}
	return code&^mask | axis&mask
}

// deposit scatters the low bits of v into the set bits of mask, lowest first.
func deposit(v, mask uint64) uint64 {
	var out uint64
	for m := mask; m != 0 && v != 0; m &= m - 1 {
		if v&1 == 1 {
			out |= m & -m
		}
		v >>= 1
	}
	return out
}

// extract gathers the bits of code selected by mask into the low bits of the result.
func extract(code, mask uint64) uint64 {
	var out uint64
	var pos uint
	for m := mask; m != 0; m &= m - 1 {
		low := m & -m
		if code&low != 0 {
			out |= 1 << pos
		}
		pos++
	}
	return out
}

func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

func axisWidth(mask uint64) uint {
	return uint(bits.OnesCount64(mask))
}
