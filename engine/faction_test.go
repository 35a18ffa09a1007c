package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gaia/game"
	"gaia/hex"
	"gaia/player"
	"gaia/reward"
)

func TestGaiaTrades(t *testing.T) {
	// gaiaTurn gives the terrans tokens in the gaia area and runs the gaia phase.
	gaiaTurn := func(t *testing.T, f player.Faction, tokens int) *Engine {
		t.Helper()
		e := toRoundOne(t)
		pl := e.State.Players[0]
		pl.Faction = f
		pl.Data.Buildings[player.PlanetaryInstitute] = 1
		pl.Data.Power.Gaia = tokens
		gaiaPhase(e.State)
		require.Equal(t, game.RoundGaia, e.State.Phase)
		require.Equal(t, []game.GaiaTrade{{Player: 0, Budget: tokens}}, e.State.Turn.Gaia)
		return e
	}

	t.Run("terrans trade gaia tokens before the moves", func(t *testing.T) {
		e := gaiaTurn(t, player.Terrans, 3)
		before := e.State.Players[0].Data
		require.NoError(t, e.Move("terrans spend 3tg for o"))

		after := e.State.Players[0].Data
		require.Equal(t, before.Ore+1, after.Ore)
		require.Equal(t, before.Power.Area2+3, after.Power.Area2)
		require.Zero(t, after.Power.Gaia)
		require.Equal(t, game.RoundMove, e.State.Phase)
		require.Empty(t, e.State.Turn.Gaia)
	})

	t.Run("the rest of the budget can still be traded", func(t *testing.T) {
		e := gaiaTurn(t, player.Terrans, 4)
		require.NoError(t, e.Move("terrans spend 3tg for o"))
		require.Equal(t, game.RoundGaia, e.State.Phase)
		require.Equal(t, 1, e.State.Turn.Gaia[0].Budget)

		err := e.Move("terrans spend 3tg for o")
		require.Error(t, err)
		require.NoError(t, e.Move("terrans spend tg for c"))
		require.Equal(t, game.RoundMove, e.State.Phase)
	})

	t.Run("declining returns the tokens untraded", func(t *testing.T) {
		e := gaiaTurn(t, player.Terrans, 3)
		before := e.State.Players[0].Data
		require.NoError(t, e.Move("terrans decline"))
		after := e.State.Players[0].Data
		require.Equal(t, before.Ore, after.Ore)
		require.Equal(t, before.Power.Area2+3, after.Power.Area2)
		require.Equal(t, game.RoundMove, e.State.Phase)
	})

	t.Run("itars discard the tokens they trade", func(t *testing.T) {
		e := gaiaTurn(t, player.Itars, 4)
		require.NoError(t, e.Move("itars spend 4tg for tech"))
		require.Zero(t, e.State.Players[0].Data.Power.Gaia)
		require.Equal(t, game.RoundGaia, e.State.Phase)
		require.Equal(t, game.PendingTech, e.State.Turn.Pending[0].Kind)
	})

	t.Run("no trade without the planetary institute", func(t *testing.T) {
		e := toRoundOne(t)
		pl := e.State.Players[0]
		pl.Data.Power.Gaia = 3
		area2 := pl.Data.Power.Area2
		gaiaPhase(e.State)
		require.Equal(t, game.RoundMove, e.State.Phase)
		require.Equal(t, area2+3, e.State.Players[0].Data.Power.Area2)
	})
}

func TestFactionBuilds(t *testing.T) {
	t.Run("lantids join a planet and collect knowledge", func(t *testing.T) {
		e := toRoundOne(t)
		lantids := e.State.Players[0]
		lantids.Faction = player.Lantids
		require.NoError(t, lantids.AddBuilding(player.PlanetaryInstitute))
		knowledge := lantids.Data.Knowledge

		require.NoError(t, e.Move("lantids build m 2x0"))
		g := e.State.Map.Hexes[hex.Hex{Q: 2, R: 0}]
		require.Equal(t, 1, g.Owner)
		require.Equal(t, player.Mine, g.Building)
		require.NotNil(t, g.AdditionalMine)
		require.Equal(t, 0, *g.AdditionalMine)
		require.Equal(t, player.Mine, g.BuildingOf(0))
		require.Equal(t, 3, e.State.Players[0].Data.Buildings[player.Mine])
		require.Equal(t, knowledge+2, e.State.Players[0].Data.Knowledge)
	})

	t.Run("firaks downgrade a lab for a free step", func(t *testing.T) {
		e := toRoundOne(t)
		s := e.State
		home := hex.Hex{Q: 0, R: 1}
		firaks := s.Players[0]
		firaks.Faction = player.Firaks
		firaks.RemoveBuilding(player.Mine)
		require.NoError(t, firaks.AddBuilding(player.ResearchLab))
		g := s.Map.Hexes[home]
		g.Building = player.ResearchLab
		s.Map.Set(home, g)

		gain(s, 0, reward.MustParse("down-lab"), "pi")
		require.Equal(t, game.PendingDowngrade, s.Turn.Pending[0].Kind)
		require.NoError(t, e.Move("firaks build ts 0x1"))

		s = e.State
		require.Equal(t, player.TradingStation, s.Map.Hexes[home].Building)
		require.Zero(t, s.Players[0].Data.Buildings[player.ResearchLab])
		require.Equal(t, 1, s.Players[0].Data.Buildings[player.TradingStation])
		require.Equal(t, game.PendingUp, s.Turn.Pending[0].Kind)
		require.True(t, s.Turn.Pending[0].Free)
		require.Empty(t, s.Turn.Leech)
	})

	t.Run("the lost planet lands on empty space", func(t *testing.T) {
		e := toRoundOne(t)
		gain(e.State, 0, reward.MustParse("lost-planet"), "nav")
		build, ok := game.Find(e.GenerateAvailableCommandsIfNeeded(), 0, game.CmdBuild)
		require.True(t, ok)
		options := build.Data.(game.BuildData).Buildings
		require.NotEmpty(t, options)
		h := options[0].Hex
		require.NoError(t, e.Move(fmt.Sprintf("terrans build lp %s", h)))

		g := e.State.Map.Hexes[h]
		require.Equal(t, player.Lost, g.Planet)
		require.Equal(t, player.LostPlanet, g.Building)
		require.Equal(t, 0, g.Owner)
		require.Equal(t, 1, e.State.Players[0].Data.Buildings[player.LostPlanet])
		require.Equal(t, game.BeforeMove, e.State.Turn.SubPhase)
		for _, o := range e.State.BuildOptions(0, nil) {
			require.NotEqual(t, h, o.Hex)
		}
	})
}

func TestNeutralScoring(t *testing.T) {
	// score runs the final scoring of a single tile and returns what each
	// player got for it.
	score := func(t *testing.T, tile string) []int {
		t.Helper()
		e := toRoundOne(t)
		s := e.State
		s.Tiles.FinalScoring = []string{tile}
		expected := make([]int, len(s.Players))
		for i, pl := range s.Players {
			expected[i] = pl.Data.VictoryPoints + pl.Data.ResourceScore()
		}
		finalScoring(s)
		got := make([]int, len(s.Players))
		for i, pl := range s.Players {
			got[i] = pl.Data.VictoryPoints - expected[i]
		}
		return got
	}

	t.Run("the neutral player takes a rank", func(t *testing.T) {
		require.Equal(t, []int{6, 12}, score(t, "final1"))
	})

	t.Run("ties below the neutral player share", func(t *testing.T) {
		require.Equal(t, []int{9, 9}, score(t, "final2"))
	})
}
