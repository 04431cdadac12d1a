// Package geohash converts between WGS84 coordinates and geohashes, in both the
// base32 string form and the interleaved integer form.
//
// A geohash is built by bisecting the longitude and latitude ranges in turn,
// longitude first, and emitting one bit per bisection. Strings pack the bits in
// groups of five; integers keep them as-is in the low bits of a uint64.
//
// Every function in this package is pure and safe for concurrent use.
package geohash

import (
	"errors"
)

const (
	// DefaultPrecision is the number of characters produced by Encode.
	DefaultPrecision = 9
	// MaxPrecision is the longest string hash accepted. Past 18 characters the
	// cells get narrower than a float64 coordinate can resolve.
	MaxPrecision = 18
	// DefaultBitsPrecision is the conventional bit depth for integer hashes.
	DefaultBitsPrecision = 52
	// MaxBitsPrecision is the widest integer hash that fits a uint64.
	MaxBitsPrecision = 64
	// EncodeAuto requests a precision derived from the decimal digits of textual input.
	EncodeAuto = -1

	// maxIntChars is the longest string hash that still fits the integer form.
	maxIntChars = MaxBitsPrecision / bitsPerChar

	minLat = -90.0
	maxLat = 90.0
	minLon = -180.0
	maxLon = 180.0
)

// Errors returned by the package. They are wrapped with context, match them with errors.Is.
var (
	ErrInvalidCharacter = errors.New("invalid geohash character")
	ErrInvalidInput     = errors.New("invalid input")
	ErrOutOfRange       = errors.New("coordinates out of range")
	ErrInvalidPrecision = errors.New("invalid precision")
	ErrInvalidBox       = errors.New("invalid bounding box")
	ErrTooManyCells     = errors.New("bounding box covers too many cells")
)

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude in degrees, [-90, 90].
	Longitude float64 `json:"longitude"` // Longitude in degrees, [-180, 180].
}

// Cell is a decoded geohash: the center of the cell and the half-extent on each axis.
type Cell struct {
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Error     Coordinates `json:"error"`
}

// Box is a rectangle in degrees. A box with MinLon > MaxLon crosses the antimeridian.
type Box struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Center returns the midpoint of the box.
func (b Box) Center() Coordinates {
	return Coordinates{
		Latitude:  (b.MinLat + b.MaxLat) / 2,
		Longitude: (b.MinLon + b.MaxLon) / 2,
	}
}

// Contains reports whether the point lies inside the box, bounds included.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
