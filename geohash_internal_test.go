package geohash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase32RoundTrip(t *testing.T) {
	for v := uint64(0); v < 32; v++ {
		got, err := charToBits5(bits5ToChar(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCharToBits5(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		lower, err := charToBits5('q')
		require.NoError(t, err)
		upper, err := charToBits5('Q')
		require.NoError(t, err)
		assert.Equal(t, lower, upper)
		assert.Equal(t, uint64(22), lower)
	})

	t.Run("excluded letters", func(t *testing.T) {
		for _, c := range []byte("aAiIlLoO!-") {
			_, err := charToBits5(c)
			require.ErrorIs(t, err, ErrInvalidCharacter, "character %q", c)
		}
	})
}

func TestEncodeDecodeBits(t *testing.T) {
	code := encodeBits(37.8324, 112.5584, 52)
	assert.Equal(t, uint64(4064984913515641), code)

	cell := decodeBits(code, 52).cell()
	assert.InDelta(t, 37.8324, cell.Latitude, cell.Error.Latitude)
	assert.InDelta(t, 112.5584, cell.Longitude, cell.Error.Longitude)
}

func TestEncodeBitsOddWidth(t *testing.T) {
	// lon 1, lat 0, lon 1: east half, south half, east quarter.
	assert.Equal(t, uint64(0b101), encodeBits(-10, 100, 3))

	b := decodeBits(0b101, 3)
	assert.Equal(t, Box{MinLat: -90, MinLon: 90, MaxLat: 0, MaxLon: 180}, b.box())
}

func TestEncodeBitsEdges(t *testing.T) {
	assert.Equal(t, lowMask(10), encodeBits(90, 180, 10))
	assert.Equal(t, uint64(0), encodeBits(-90, -180, 10))
	// the midpoint belongs to the upper half
	assert.Equal(t, uint64(0b11), encodeBits(0, 0, 2))
}

func TestAxisMasks(t *testing.T) {
	lon, lat := axisMasks(5)
	assert.Equal(t, uint64(0b10101), lon)
	assert.Equal(t, uint64(0b01010), lat)

	lon, lat = axisMasks(4)
	assert.Equal(t, uint64(0b1010), lon)
	assert.Equal(t, uint64(0b0101), lat)

	lon, lat = axisMasks(64)
	assert.Equal(t, uint64(oddBits), lon)
	assert.Equal(t, uint64(evenBits), lat)
}

func TestMove(t *testing.T) {
	const mask = 0b1010

	tests := []struct {
		name  string
		code  uint64
		delta int
		want  uint64
	}{
		{name: "increment skips other axis", code: 0b0011, delta: 1, want: 0b1001},
		{name: "increment wraps", code: 0b1111, delta: 1, want: 0b0101},
		{name: "decrement borrows", code: 0b1000, delta: -1, want: 0b0010},
		{name: "decrement wraps", code: 0b0101, delta: -1, want: 0b1111},
		{name: "multi step", code: 0b0000, delta: 3, want: 0b1010},
		{name: "zero", code: 0b0110, delta: 0, want: 0b0110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, move(tt.code, mask, tt.delta))
		})
	}
}

func TestDepositExtract(t *testing.T) {
	const mask = evenBits & 0xff
	for v := uint64(0); v < 16; v++ {
		assert.Equal(t, v, extract(deposit(v, mask), mask))
	}
	assert.Equal(t, uint64(0b01000101), deposit(0b1011, mask))
}

func TestStringIntConversion(t *testing.T) {
	code, n, err := stringToInt("DQCJQ")
	require.NoError(t, err)
	assert.Equal(t, uint(25), n)
	assert.Equal(t, "dqcjq", intToString(code, 5))

	_, _, err = stringToInt("0123456789bcd")
	require.ErrorIs(t, err, ErrInvalidPrecision)

	_, _, err = stringToInt("")
	require.ErrorIs(t, err, ErrInvalidInput)
}
