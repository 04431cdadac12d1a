package geohash

// EncodeInt returns the integer geohash of the point using bits bits of precision.
// bits must be even, since every level consumes one longitude and one latitude bit.
func EncodeInt(lat, lon float64, bits uint) (uint64, error) {
	if err := checkBits(bits); err != nil {
		return 0, err
	}
	if err := checkCoordinates(lat, lon); err != nil {
		return 0, err
	}
	return encodeBits(lat, lon, bits), nil
}

// DecodeInt returns the center and error bounds of an integer geohash of bits bits.
func DecodeInt(hash uint64, bits uint) (Cell, error) {
	if err := checkBits(bits); err != nil {
		return Cell{}, err
	}
	return decodeBits(hash, bits).cell(), nil
}

// DecodeBBoxInt returns the bounds of an integer geohash of bits bits.
func DecodeBBoxInt(hash uint64, bits uint) (Box, error) {
	if err := checkBits(bits); err != nil {
		return Box{}, err
	}
	return decodeBits(hash, bits).box(), nil
}
