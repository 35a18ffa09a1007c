package hex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func disc(radius int) Set {
	s := Set{}
	for r := 0; r <= radius; r++ {
		for _, h := range Ring(Hex{}, r) {
			s.Add(h)
		}
	}
	return s
}

func TestCoordinates(t *testing.T) {
	t.Run("distance in axial coordinates", func(t *testing.T) {
		require.Equal(t, 4, Distance(Hex{0, 0}, Hex{3, 1}))
		require.Equal(t, 2, Distance(Hex{0, 0}, Hex{2, -1}))
		require.Equal(t, 0, Distance(Hex{5, -3}, Hex{5, -3}))
	})

	t.Run("parse and format the QxR notation", func(t *testing.T) {
		h, err := Parse("-4x2")
		require.NoError(t, err)
		require.Equal(t, Hex{Q: -4, R: 2}, h)
		require.Equal(t, "-4x2", h.String())

		_, err = Parse("4")
		require.Error(t, err)
		_, err = Parse("ax2")
		require.Error(t, err)
	})

	t.Run("rings walk clockwise from the south-west corner", func(t *testing.T) {
		ring := Ring(Hex{}, 1)
		require.Len(t, ring, 6)
		require.Equal(t, Directions[4], ring[0])

		outer := Ring(Hex{2, 2}, 2)
		require.Len(t, outer, 12)
		for _, h := range outer {
			require.Equal(t, 2, Distance(Hex{2, 2}, h))
		}
		require.Len(t, disc(2), 19)
	})

	t.Run("six rotations return to the start", func(t *testing.T) {
		require.Equal(t, Hex{0, 1}, Hex{1, 0}.Rotate(1))
		require.Equal(t, Hex{3, -1}, Hex{3, -1}.Rotate(6))
		require.Equal(t, Distance(Hex{}, Hex{3, -1}), Distance(Hex{}, Hex{3, -1}.Rotate(2)))
	})

	t.Run("connectivity and components", func(t *testing.T) {
		require.True(t, Connected([]Hex{{0, 0}, {1, 0}, {2, -1}}))
		require.False(t, Connected([]Hex{{0, 0}, {2, 0}}))

		groups := Components([]Hex{{0, 0}, {3, 0}, {1, 0}, {3, 1}})
		require.Equal(t, [][]Hex{{{0, 0}, {1, 0}}, {{3, 0}, {3, 1}}}, groups)
	})
}
