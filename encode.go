package geohash

import "fmt"

// Encode returns the geohash of the point at DefaultPrecision characters.
func Encode(lat, lon float64) (string, error) {
	return EncodeWithPrecision(lat, lon, DefaultPrecision)
}

// EncodeWithPrecision returns the geohash of the point with the given number of characters.
// Numeric input carries no digit count, so EncodeAuto is rejected; use EncodeAuto or
// EncodeDecimal with textual coordinates instead.
func EncodeWithPrecision(lat, lon float64, chars int) (string, error) {
	if chars == EncodeAuto {
		return "", fmt.Errorf("%w: auto precision requires textual decimal coordinates", ErrInvalidInput)
	}
	if chars <= 0 || chars > MaxPrecision {
		return "", fmt.Errorf("%w: %d characters, want 1..%d", ErrInvalidPrecision, chars, MaxPrecision)
	}
	if err := checkCoordinates(lat, lon); err != nil {
		return "", err
	}

	return encodeString(lat, lon, chars), nil
}

// encodeString bisects continuously across characters, so the length is not bound by uint64.
func encodeString(lat, lon float64, chars int) string {
	b := world()
	buf := make([]byte, chars)
	var i uint
	for c := range buf {
		var group uint64
		for range bitsPerChar {
			group = group<<1 | b.bisect(i, lat, lon)
			i++
		}
		buf[c] = bits5ToChar(group)
	}
	return string(buf)
}

// Decode returns the center and error bounds of the cell named by hash. Case is ignored.
func Decode(hash string) (Cell, error) {
	b, err := decodeString(hash)
	if err != nil {
		return Cell{}, err
	}
	return b.cell(), nil
}

// DecodeBBox returns the bounds of the cell named by hash.
func DecodeBBox(hash string) (Box, error) {
	b, err := decodeString(hash)
	if err != nil {
		return Box{}, err
	}
	return b.box(), nil
}

func decodeString(hash string) (bounds, error) {
	if hash == "" {
		return bounds{}, fmt.Errorf("%w: empty geohash", ErrInvalidInput)
	}
	if len(hash) > MaxPrecision {
		return bounds{}, fmt.Errorf("%w: geohash %q longer than %d characters", ErrInvalidPrecision, hash, MaxPrecision)
	}

	b := world()
	var i uint
	for c := 0; c < len(hash); c++ {
		group, err := charToBits5(hash[c])
		if err != nil {
			return bounds{}, fmt.Errorf("failed to decode %q: %w", hash, err)
		}
		for shift := bitsPerChar - 1; shift >= 0; shift-- {
			b.refine(i, group>>uint(shift)&1)
			i++
		}
	}
	return b, nil
}
