package geohash_test

import (
	"math/rand"
	"testing"

	"github.com/UnknownOlympus/geohash"
	ref "github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeInt(t *testing.T) {
	hash, err := geohash.EncodeInt(37.8324, 112.5584, 52)
	require.NoError(t, err)
	assert.Equal(t, uint64(4064984913515641), hash)

	t.Run("invalid precision", func(t *testing.T) {
		for _, bits := range []uint{0, 7, 66} {
			_, err := geohash.EncodeInt(1, 1, bits)
			require.ErrorIs(t, err, geohash.ErrInvalidPrecision, "bits %d", bits)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := geohash.EncodeInt(-91, 0, 52)
		require.ErrorIs(t, err, geohash.ErrOutOfRange)
	})

	t.Run("full width", func(t *testing.T) {
		hash, err := geohash.EncodeInt(90, 180, geohash.MaxBitsPrecision)
		require.NoError(t, err)
		assert.Equal(t, ^uint64(0), hash)
	})
}

func TestDecodeInt(t *testing.T) {
	cell, err := geohash.DecodeInt(4064984913515641, geohash.DefaultBitsPrecision)
	require.NoError(t, err)
	assert.InDelta(t, 37.8324, cell.Latitude, 0.0001)
	assert.InDelta(t, 112.5584, cell.Longitude, 0.0001)

	_, err = geohash.DecodeInt(1, 31)
	require.ErrorIs(t, err, geohash.ErrInvalidPrecision)
}

func TestDecodeBBoxInt(t *testing.T) {
	box, err := geohash.DecodeBBoxInt(0b11, 2)
	require.NoError(t, err)
	assert.Equal(t, geohash.Box{MinLat: 0, MinLon: 0, MaxLat: 90, MaxLon: 180}, box)
}

func TestIntMatchesString(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))

	for range 200 {
		lat := rnd.Float64()*180 - 90
		lon := rnd.Float64()*360 - 180

		str, err := geohash.EncodeWithPrecision(lat, lon, 12)
		require.NoError(t, err)
		fromStr, err := geohash.Decode(str)
		require.NoError(t, err)

		code, err := geohash.EncodeInt(lat, lon, 60)
		require.NoError(t, err)
		fromInt, err := geohash.DecodeInt(code, 60)
		require.NoError(t, err)

		assert.Equal(t, fromStr, fromInt)
		assert.Equal(t, ref.EncodeIntWithPrecision(lat, lon, 52), code>>8)
	}
}
