package geohash_test

import (
	"math/rand"
	"testing"

	"github.com/UnknownOlympus/geohash"
	ref "github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbor(t *testing.T) {
	tests := []struct {
		hash string
		dir  geohash.Direction
		want string
	}{
		{hash: "dqcjq", dir: geohash.North, want: "dqcjw"},
		{hash: "DQCJQ", dir: geohash.SouthWest, want: "dqcjj"},
		{hash: "r", dir: geohash.NorthEast, want: "8"},
		{hash: "r", dir: geohash.East, want: "2"},
		{hash: "r", dir: geohash.SouthEast, want: "0"},
		{hash: "21202", dir: geohash.West, want: "rcrbr"},
		{hash: "dqcjq", dir: geohash.Direction{Lat: 0, Lon: 0}, want: "dqcjq"},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			got, err := geohash.Neighbor(tt.hash, tt.dir)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeighborErrors(t *testing.T) {
	_, err := geohash.Neighbor("dqcja", geohash.North)
	require.ErrorIs(t, err, geohash.ErrInvalidCharacter)

	_, err = geohash.Neighbor("dqcjqdqcjqdqc", geohash.North)
	require.ErrorIs(t, err, geohash.ErrInvalidPrecision)

	_, err = geohash.NeighborInt(1, geohash.North, 33)
	require.ErrorIs(t, err, geohash.ErrInvalidPrecision)
}

func TestNeighborWrapsAtPoles(t *testing.T) {
	north, err := geohash.Neighbor("z", geohash.North)
	require.NoError(t, err)

	box, err := geohash.DecodeBBox(north)
	require.NoError(t, err)
	assert.InDelta(t, -90.0, box.MinLat, 1e-9, "moving north of the top row wraps to the bottom row")
	assert.Equal(t, "p", north)
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		hash string
		want []string
	}{
		{hash: "dqcjq", want: []string{"dqcjw", "dqcjx", "dqcjr", "dqcjp", "dqcjn", "dqcjj", "dqcjm", "dqcjt"}},
		{hash: "DQCJQ", want: []string{"dqcjw", "dqcjx", "dqcjr", "dqcjp", "dqcjn", "dqcjj", "dqcjm", "dqcjt"}},
		{hash: "21202", want: []string{"21208", "21209", "21203", "21201", "21200", "rcrbp", "rcrbr", "rcrbx"}},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			got, err := geohash.Neighbors(tt.hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			for i, dir := range geohash.Compass {
				one, err := geohash.Neighbor(tt.hash, dir)
				require.NoError(t, err)
				assert.Equal(t, got[i], one)
			}
		})
	}
}

func TestNeighborInt(t *testing.T) {
	north, err := geohash.NeighborInt(1702789509, geohash.North, 32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1702789520), north)

	southWest, err := geohash.NeighborInt(27898503327470, geohash.SouthWest, 46)
	require.NoError(t, err)
	assert.Equal(t, uint64(27898503327465), southWest)

	atDefault, err := geohash.NeighborInt(1702789509, geohash.North, geohash.DefaultBitsPrecision)
	require.NoError(t, err)
	assert.Equal(t, north, atDefault)
}

func TestNeighborsInt(t *testing.T) {
	tests := []struct {
		hash uint64
		bits uint
		want []uint64
	}{
		{
			hash: 1702789509,
			bits: 32,
			want: []uint64{
				1702789520, 1702789522, 1702789511, 1702789510,
				1702789508, 1702789422, 1702789423, 1702789434,
			},
		},
		{
			hash: 27898503327470,
			bits: 46,
			want: []uint64{
				27898503327471, 27898503349317, 27898503349316, 27898503349313,
				27898503327467, 27898503327465, 27898503327468, 27898503327469,
			},
		},
	}

	for _, tt := range tests {
		got, err := geohash.NeighborsInt(tt.hash, tt.bits)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNeighborsMatchReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))

	for range 200 {
		lat := rnd.Float64()*160 - 80
		lon := rnd.Float64()*340 - 170
		chars := 3 + rnd.Intn(10)

		hash, err := geohash.EncodeWithPrecision(lat, lon, chars)
		require.NoError(t, err)

		got, err := geohash.Neighbors(hash)
		require.NoError(t, err)
		assert.Equal(t, ref.Neighbors(hash), got, "neighbors of %s", hash)
	}
}

func TestNeighborIsAdjacent(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))

	for range 100 {
		lat := rnd.Float64()*170 - 85
		lon := rnd.Float64()*350 - 175

		code, err := geohash.EncodeInt(lat, lon, 40)
		require.NoError(t, err)
		center, err := geohash.DecodeInt(code, 40)
		require.NoError(t, err)

		for _, dir := range geohash.Compass {
			next, err := geohash.NeighborInt(code, dir, 40)
			require.NoError(t, err)
			cell, err := geohash.DecodeInt(next, 40)
			require.NoError(t, err)

			assert.InDelta(t, center.Latitude+float64(dir.Lat)*2*center.Error.Latitude, cell.Latitude, 1e-9)
			assert.InDelta(t, center.Longitude+float64(dir.Lon)*2*center.Error.Longitude, cell.Longitude, 1e-9)
		}
	}
}
