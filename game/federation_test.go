package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gaia/hex"
	"gaia/meta"
	"gaia/player"
)

// federationState puts a PI on 1B1, an academy on 1A4 and a lab on 1A6,
// each two hexes from the next.
func federationState(t *testing.T) *State {
	t.Helper()
	s := NewState(2, "federation", Options{})
	m, err := NewMap([]string{"1"})
	require.NoError(t, err)
	s.Map = m
	s.Players[0].Faction = player.Terrans
	for h, b := range map[hex.Hex]player.Building{
		{Q: 0, R: 1}:  player.PlanetaryInstitute,
		{Q: 2, R: 0}:  player.Academy1,
		{Q: 2, R: -2}: player.ResearchLab,
	} {
		g := s.Map.Hexes[h]
		g.Owner, g.Building = 0, b
		s.Map.Set(h, g)
	}
	return s
}

func TestFederationOptions(t *testing.T) {
	t.Run("buildings are joined with satellites", func(t *testing.T) {
		s := federationState(t)
		options := s.FederationOptions(0)
		require.Len(t, options, 1)
		option := options[0]
		require.Equal(t, 2, option.Satellites)
		require.Len(t, option.Hexes, 5)
		for _, h := range []hex.Hex{{Q: 0, R: 1}, {Q: 2, R: 0}, {Q: 2, R: -2}} {
			require.Contains(t, option.Hexes, h)
		}
		require.True(t, hex.Connected(option.Hexes))
		require.Empty(t, option.Warning)
	})

	t.Run("too little power value", func(t *testing.T) {
		s := federationState(t)
		g := s.Map.Hexes[hex.Hex{Q: 2, R: -2}]
		g.Building = player.Mine
		s.Map.Set(hex.Hex{Q: 2, R: -2}, g)
		require.Empty(t, s.FederationOptions(0))
	})

	t.Run("satellites are limited by power tokens", func(t *testing.T) {
		s := federationState(t)
		s.Players[0].Data.Power = player.Power{Area1: 1}
		require.Empty(t, s.FederationOptions(0))
	})

	t.Run("charged tokens are flagged", func(t *testing.T) {
		s := federationState(t)
		s.Players[0].Data.Power = player.Power{Area1: 1, Area3: 3}
		options := s.FederationOptions(0)
		require.Len(t, options, 1)
		require.Equal(t, "federation-with-charged-tokens", options[0].Warning)
	})

	t.Run("federated buildings are left out", func(t *testing.T) {
		s := federationState(t)
		g := s.Map.Hexes[hex.Hex{Q: 0, R: 1}]
		g.Federations = []int{0}
		s.Map.Set(hex.Hex{Q: 0, R: 1}, g)
		require.Empty(t, s.FederationOptions(0))
	})
}

func TestCheckFederation(t *testing.T) {
	t.Run("generated options are accepted in any order", func(t *testing.T) {
		s := federationState(t)
		option := s.FederationOptions(0)[0]
		reversed := make([]hex.Hex, len(option.Hexes))
		for i, h := range option.Hexes {
			reversed[len(reversed)-1-i] = h
		}
		checked, err := s.CheckFederation(0, reversed)
		require.NoError(t, err)
		require.Equal(t, option, checked)
	})

	t.Run("other hexes are refused", func(t *testing.T) {
		s := federationState(t)
		_, err := s.CheckFederation(0, []hex.Hex{{Q: 0, R: 1}, {Q: 2, R: 0}})
		require.Error(t, err)
	})

	t.Run("without checks any valid federation goes", func(t *testing.T) {
		s := federationState(t)
		s.Options.NoFedCheck = true
		hexes := []hex.Hex{{Q: 0, R: 1}, {Q: 1, R: 0}, {Q: 2, R: 0}, {Q: 2, R: -1}, {Q: 2, R: -2}}
		option, err := s.CheckFederation(0, hexes)
		require.NoError(t, err)
		require.Equal(t, 2, option.Satellites)

		_, err = s.CheckFederation(0, []hex.Hex{{Q: 0, R: 1}, {Q: 2, R: 0}, {Q: 2, R: -2}})
		require.Error(t, err)

		_, err = s.CheckFederation(0, []hex.Hex{{Q: 0, R: 1}, {Q: 1, R: 0}, {Q: 2, R: 0}})
		require.Error(t, err)
	})
}

func TestMinimalSubsets(t *testing.T) {
	t.Run("supersets of a reaching set are left out", func(t *testing.T) {
		require.Equal(t, [][]int{{2}, {0, 1}}, minimalSubsets([]int{3, 4, 7}, 7, 10))
	})

	t.Run("late groups are reached with many groups", func(t *testing.T) {
		values := make([]int, 14)
		for i := range values {
			values[i] = 1
		}
		values[13] = 7
		subsets := minimalSubsets(values, 7, meta.MAX_FEDERATION_COMBINATIONS)
		require.Equal(t, []int{13}, subsets[0])
		require.LessOrEqual(t, len(subsets), meta.MAX_FEDERATION_COMBINATIONS)
	})

	t.Run("limit bounds the result", func(t *testing.T) {
		require.Len(t, minimalSubsets([]int{1, 1, 1, 1}, 1, 2), 2)
	})
}
