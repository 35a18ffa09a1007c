package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gaia/hex"
	"gaia/player"
)

func TestMap(t *testing.T) {
	m, err := NewMap([]string{"1", "2", "3"})
	require.NoError(t, err)

	t.Run("sectors are laid out on the positions", func(t *testing.T) {
		require.Len(t, m.Hexes, 3*19)
		require.Equal(t, hex.Hex{Q: 5, R: -2}, m.Sectors[1].Center)

		center, ok := m.Get(hex.Hex{})
		require.True(t, ok)
		require.Equal(t, player.Empty, center.Planet)
		require.Equal(t, NoPlayer, center.Owner)

		terra, ok := m.Get(hex.Hex{Q: 0, R: 1})
		require.True(t, ok)
		require.Equal(t, player.Terra, terra.Planet)
		require.Equal(t, "1", terra.Sector)
	})

	t.Run("relative coordinates", func(t *testing.T) {
		for text, expected := range map[string]hex.Hex{
			"1C":   {Q: 0, R: 0},
			"1B1":  {Q: 0, R: 1},
			"1A4":  {Q: 2, R: 0},
			"2A0":  {Q: 3, R: 0},
			"2A9":  {Q: 4, R: -3},
			"3A11": {Q: 0, R: 4},
			"-1x2": {Q: -1, R: 2},
		} {
			h, err := m.ParseCoordinate(text)
			require.NoError(t, err, text)
			require.Equal(t, expected, h, text)
		}
		for _, h := range m.All() {
			parsed, err := m.ParseCoordinate(m.RelativeName(h))
			require.NoError(t, err)
			require.Equal(t, h, parsed)
		}
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		for _, text := range []string{"", "1", "1B6", "1A12", "1C1", "9A1", "B1", "1Bx"} {
			_, err := m.ParseCoordinate(text)
			require.Error(t, err, text)
		}
	})

	t.Run("rotation moves planets around the center", func(t *testing.T) {
		rotated, err := NewMap([]string{"1r1"})
		require.NoError(t, err)
		require.Equal(t, 1, rotated.Sectors[0].Rotation)
		count := func(m Map, planet player.Planet) int {
			n := 0
			for _, g := range m.Hexes {
				if g.Planet == planet {
					n++
				}
			}
			return n
		}
		plain, err := NewMap([]string{"1"})
		require.NoError(t, err)
		require.Equal(t, count(plain, player.Desert), count(rotated, player.Desert))
		require.NotEqual(t, plain.Hexes[hex.Hex{Q: 0, R: 1}].Planet, rotated.Hexes[hex.Hex{Q: 0, R: 1}].Planet)
		terra, err := rotated.ParseCoordinate("1B1")
		require.NoError(t, err)
		require.Equal(t, player.Terra, rotated.Hexes[terra].Planet)
	})

	t.Run("unknown sectors", func(t *testing.T) {
		_, err := NewMap([]string{"42"})
		require.Error(t, err)
	})

	t.Run("copies are independent", func(t *testing.T) {
		copied := m.Copy()
		g := copied.Hexes[hex.Hex{Q: 0, R: 1}]
		g.Owner = 0
		g.Building = player.Mine
		copied.Set(hex.Hex{Q: 0, R: 1}, g)
		require.Equal(t, NoPlayer, m.Hexes[hex.Hex{Q: 0, R: 1}].Owner)
		require.Equal(t, []hex.Hex{{Q: 0, R: 1}}, copied.Structures(0))
		require.Empty(t, m.Structures(0))
	})
}

func TestNames(t *testing.T) {
	names := Names(map[string]int{"booster10": 0, "booster2": 0, "booster1": 0, "adv3": 0})
	require.Equal(t, []string{"adv3", "booster1", "booster2", "booster10"}, names)
}
