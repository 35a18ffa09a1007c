package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gaia/autocharge"
	"gaia/game"
	"gaia/gameerr"
	"gaia/hex"
	"gaia/player"
)

// fixedSetup reaches the end of setup building on the fixed layout:
// terrans on 1B1 and 2A9, xenos on 1A4, 2A0 and 3A11.
var fixedSetup = []string{
	"init 2 fixed",
	"p1 faction terrans",
	"p2 faction xenos",
	"terrans build m 0x1",
	"xenos build m 2x0",
	"xenos build m 3x0",
	"terrans build m 4x-3",
	"xenos build m 0x4",
}

func fixedOptions() Option {
	return WithOptions(game.Options{Layout: game.FixedLayout})
}

func digest(t *testing.T, e *Engine) string {
	t.Helper()
	d, err := e.Digest()
	require.NoError(t, err)
	return d
}

// toRoundOne plays the fixed setup and both booster picks.
func toRoundOne(t *testing.T) *Engine {
	t.Helper()
	e, err := New(fixedSetup, fixedOptions())
	require.NoError(t, err)
	require.Equal(t, game.SetupBooster, e.State.Phase)
	for _, name := range []string{"xenos", "terrans"} {
		booster := e.State.Tiles.Boosters[0]
		require.NoError(t, e.Move(fmt.Sprintf("%s booster %s", name, booster)))
	}
	require.Equal(t, 1, e.State.Round)
	return e
}

func TestInit(t *testing.T) {
	t.Run("fixed layout places sectors in order", func(t *testing.T) {
		e, err := New([]string{"init 2 fixed"}, fixedOptions())
		require.NoError(t, err)
		require.Equal(t, game.SetupFaction, e.State.Phase)
		require.Len(t, e.State.Map.Sectors, 7)
		for i, sector := range e.State.Map.Sectors {
			require.Equal(t, fmt.Sprint(i+1), sector.Name)
		}
		require.Len(t, e.State.Players, 2)
	})

	t.Run("player count is bounded", func(t *testing.T) {
		_, err := New([]string{"init 5 seed"})
		require.True(t, gameerr.IsIllegalMove(err))
		_, err = New([]string{"init 1 seed"})
		require.True(t, gameerr.IsIllegalMove(err))
	})

	t.Run("unknown layouts are rejected", func(t *testing.T) {
		_, err := New(nil, WithOptions(game.Options{Layout: "spiral"}))
		require.Error(t, err)
	})

	t.Run("same seed gives the same game", func(t *testing.T) {
		a, err := New([]string{"init 3 same"})
		require.NoError(t, err)
		b, err := New([]string{"init 3 same"})
		require.NoError(t, err)
		require.Equal(t, digest(t, a), digest(t, b))

		c, err := New([]string{"init 3 other"})
		require.NoError(t, err)
		require.NotEqual(t, digest(t, a), digest(t, c))
	})
}

func TestMove(t *testing.T) {
	t.Run("illegal move leaves the state unchanged", func(t *testing.T) {
		e, err := New([]string{"init 2 randomSeed", "p1 faction terrans", "p2 faction xenos"})
		require.NoError(t, err)
		before := digest(t, e)

		err = e.Move("p1 build m 0x0")
		require.Error(t, err)
		require.True(t, gameerr.IsIllegalMove(err))
		require.Equal(t, before, digest(t, e))
		require.Len(t, e.State.MoveHistory, 3)
	})

	t.Run("unknown commands are parse errors", func(t *testing.T) {
		e, err := New([]string{"init 2 seed"})
		require.NoError(t, err)
		err = e.Move("p1 teleport 0x0")
		require.True(t, gameerr.IsParse(err))
		err = e.Move("p1")
		require.True(t, gameerr.IsParse(err))
	})

	t.Run("moves by the wrong player are illegal", func(t *testing.T) {
		e, err := New([]string{"init 2 seed"})
		require.NoError(t, err)
		err = e.Move("p2 faction xenos")
		require.True(t, gameerr.IsIllegalMove(err))
	})

	t.Run("factions sharing a home planet are exclusive", func(t *testing.T) {
		e, err := New([]string{"init 2 seed", "p1 faction terrans"})
		require.NoError(t, err)
		err = e.Move("p2 faction lantids")
		require.True(t, gameerr.IsIllegalMove(err))
	})

	t.Run("setup mines follow the placement queue", func(t *testing.T) {
		e, err := New(fixedSetup[:3], fixedOptions())
		require.NoError(t, err)
		require.Equal(t, game.SetupBuilding, e.State.Phase)

		err = e.Move("xenos build m 2x0")
		require.True(t, gameerr.IsIllegalMove(err))

		require.NoError(t, e.Move("terrans build m 1B1"))
		g, ok := e.State.Map.Get(hex.Hex{Q: 0, R: 1})
		require.True(t, ok)
		require.Equal(t, player.Mine, g.Building)
		require.Equal(t, 0, g.Owner)
	})

	t.Run("setup ends with booster selection in reverse order", func(t *testing.T) {
		e, err := New(fixedSetup, fixedOptions())
		require.NoError(t, err)
		require.Equal(t, game.SetupBooster, e.State.Phase)
		require.Equal(t, 1, e.State.Current)
		require.Equal(t, 3, e.State.Players[1].Data.Buildings[player.Mine])
		require.Equal(t, 2, e.State.Players[0].Data.Buildings[player.Mine])
	})
}

func TestRound(t *testing.T) {
	t.Run("first round starts with the first player", func(t *testing.T) {
		e := toRoundOne(t)
		require.Equal(t, game.RoundMove, e.State.Phase)
		require.Equal(t, 0, e.State.Current)
		require.Len(t, e.State.Tiles.Boosters, 3)
		require.NotEmpty(t, e.State.Players[0].Booster)
		require.NotEqual(t, e.State.Players[0].Booster, e.State.Players[1].Booster)
	})

	t.Run("upgrade next to a neighbour offers a leech", func(t *testing.T) {
		e := toRoundOne(t)
		terrans := e.State.Players[0]
		ore := terrans.Data.Ore
		require.NoError(t, e.Move("terrans build ts 0x1"))
		require.Equal(t, ore-2, e.State.Players[0].Data.Ore)
		require.Equal(t, 1, e.State.Players[0].Data.Buildings[player.TradingStation])
		require.Equal(t, 1, e.State.Players[0].Data.Buildings[player.Mine])

		require.Equal(t, game.RoundLeech, e.State.Phase)
		require.Equal(t, []game.Leech{{Player: 1, From: 0, Amount: 1}}, e.State.Turn.Leech)

		commands := e.GenerateAvailableCommandsIfNeeded()
		charge, ok := game.Find(commands, 1, game.CmdCharge)
		require.True(t, ok)
		offers := charge.Data.(game.ChargeData).Offers
		require.Len(t, offers, 1)
		require.Equal(t, "1pw", offers[0].Offer)
		require.Equal(t, 0, offers[0].Cost)

		expected := e.State.Players[1].Data.Power
		expected.Charge(1)
		require.NoError(t, e.Move("xenos charge 1pw"))
		require.Equal(t, expected, e.State.Players[1].Data.Power)
		require.Equal(t, game.RoundMove, e.State.Phase)
		require.Equal(t, 1, e.State.Current)
	})

	t.Run("declined leech changes nothing", func(t *testing.T) {
		e := toRoundOne(t)
		require.NoError(t, e.Move("terrans build ts 0x1"))
		before := e.State.Players[1].Data
		require.NoError(t, e.Move("xenos decline"))
		require.Equal(t, before.Power, e.State.Players[1].Data.Power)
		require.Equal(t, before.VictoryPoints, e.State.Players[1].Data.VictoryPoints)
	})

	t.Run("automatic charge takes a free leech", func(t *testing.T) {
		e := toRoundOne(t)
		require.NoError(t, e.Move("terrans build ts 0x1"))
		played, err := e.AutoMoves()
		require.NoError(t, err)
		require.Equal(t, 1, played)
		require.Equal(t, "xenos charge 1pw", e.State.MoveHistory[len(e.State.MoveHistory)-1])
	})

	t.Run("passing takes the remaining booster", func(t *testing.T) {
		e := toRoundOne(t)
		left := e.State.Tiles.Boosters[0]
		held := e.State.Players[0].Booster
		require.NoError(t, e.Move("terrans pass "+left))
		require.Equal(t, left, e.State.Players[0].Booster)
		require.Contains(t, e.State.Tiles.Boosters, held)
		require.NotContains(t, e.State.Tiles.Boosters, left)
		require.Len(t, e.State.Tiles.Boosters, 3)
		require.True(t, e.State.HasPassed(0))
		require.Equal(t, 1, e.State.Current)
	})

	t.Run("advanced log records changes per move", func(t *testing.T) {
		e := toRoundOne(t)
		require.NoError(t, e.Move("terrans build ts 0x1"))
		var found bool
		for _, entry := range e.State.AdvancedLog {
			if entry.Move != nil && *entry.Move == len(fixedSetup)+2 && entry.Player != nil && *entry.Player == 0 {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("only round markers carry a round", func(t *testing.T) {
		e := toRoundOne(t)
		require.NoError(t, e.Move("terrans build ts 0x1"))
		require.NoError(t, e.Move("xenos charge 1pw"))
		var markers int
		for _, entry := range e.State.AdvancedLog {
			if entry.Round == nil {
				continue
			}
			markers++
			require.Nil(t, entry.Move)
			require.Nil(t, entry.Player)
			require.Empty(t, entry.Changes)
			require.Empty(t, entry.Phase)
		}
		require.Equal(t, 1, markers)
	})
}

func TestSnapshot(t *testing.T) {
	e := toRoundOne(t)
	require.NoError(t, e.Move("terrans build ts 0x1"))

	t.Run("compressed snapshots round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, e.WriteSnapshot(&buf, true))
		restored, err := ReadSnapshot(&buf, true)
		require.NoError(t, err)
		require.Equal(t, digest(t, e), digest(t, restored))
	})

	t.Run("plain snapshots round trip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, e.WriteSnapshot(&buf, false))
		restored, err := ReadSnapshot(&buf, false)
		require.NoError(t, err)
		require.Equal(t, digest(t, e), digest(t, restored))

		require.NoError(t, restored.Move("xenos decline"))
		require.Equal(t, game.RoundMove, restored.State.Phase)
	})

	t.Run("replaying the history gives the same state", func(t *testing.T) {
		replayed, err := New(e.State.MoveHistory, WithOptions(e.State.Options))
		require.NoError(t, err)
		require.Equal(t, digest(t, e), digest(t, replayed))
	})

	t.Run("boolean board actions are migrated", func(t *testing.T) {
		data, err := json.Marshal(e.State)
		require.NoError(t, err)
		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		legacy := map[string]bool{}
		for name := range e.State.BoardActions {
			legacy[name] = false
		}
		legacy["power1"] = true
		raw["boardActions"] = legacy
		raw["playerToMove"] = 1
		data, err = json.Marshal(raw)
		require.NoError(t, err)

		restored, err := FromData(data)
		require.NoError(t, err)
		require.NotNil(t, restored.State.BoardActions["power1"])
		require.Equal(t, 1, *restored.State.BoardActions["power1"])
		for name, owner := range restored.State.BoardActions {
			if name != "power1" {
				require.Nil(t, owner, name)
			}
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := FromData([]byte("{"))
		require.Error(t, err)
	})
}

func TestRollout(t *testing.T) {
	for _, tc := range []struct {
		name    string
		players int
		options game.Options
		opts    []RolloutOption
	}{
		{"two players on the fixed map", 2, game.Options{Layout: game.FixedLayout}, []RolloutOption{WithFirstChoice()}},
		{"three players on a random map", 3, game.Options{}, []RolloutOption{WithFirstChoice()}},
		{"four players with rotated sectors", 4, game.Options{Advanced: true}, []RolloutOption{WithFirstChoice()}},
		{"random moves", 3, game.Options{}, nil},
		{"random moves with an auction", 2, game.Options{Auction: true}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New([]string{fmt.Sprintf("init %d rollout", tc.players)}, WithOptions(tc.options))
			require.NoError(t, err)
			result, err := e.Rollout(rand.New(rand.NewSource(7)), tc.opts...)
			require.NoError(t, err)
			require.True(t, result.Ended)
			require.Equal(t, game.Ended, e.State.Phase)
			require.Len(t, e.State.MoveHistory, result.Moves+1)
			require.Empty(t, e.GenerateAvailableCommandsIfNeeded())

			replayed, err := New(e.State.MoveHistory, WithOptions(tc.options))
			require.NoError(t, err)
			require.Equal(t, digest(t, e), digest(t, replayed))
		})
	}

	t.Run("cutoff", func(t *testing.T) {
		e, err := New([]string{"init 2 cutoff"})
		require.NoError(t, err)
		result, err := e.Rollout(rand.New(rand.NewSource(1)), WithCutoff(3))
		require.NoError(t, err)
		require.Equal(t, RolloutResult{Moves: 3}, result)
	})
}

func TestMoveText(t *testing.T) {
	e := toRoundOne(t)
	first := func(int) int { return 0 }
	commands := e.GenerateAvailableCommandsIfNeeded()
	build, ok := game.Find(commands, 0, game.CmdBuild)
	require.True(t, ok)
	option := build.Data.(game.BuildData).Buildings[0]
	require.Equal(t, fmt.Sprintf("terrans build %s %s", option.Building, option.Hex), MoveText(e.State, build, first))

	pass, ok := game.Find(commands, 0, game.CmdPass)
	require.True(t, ok)
	require.Equal(t, "terrans pass "+e.State.Tiles.Boosters[0], MoveText(e.State, pass, first))
	require.NoError(t, e.Move(MoveText(e.State, pass, first)))
}

func TestSlowMotion(t *testing.T) {
	var phases []game.Phase
	e, err := SlowMotion(fixedSetup, func(i int, e *Engine) error {
		phases = append(phases, e.State.Phase)
		return nil
	}, fixedOptions())
	require.NoError(t, err)
	require.Len(t, phases, len(fixedSetup))
	require.Equal(t, game.SetupFaction, phases[0])
	require.Equal(t, game.SetupBooster, phases[len(phases)-1])
	require.NotEmpty(t, e.GenerateAvailableCommandsIfNeeded())
}

func TestSettings(t *testing.T) {
	t.Run("asking players are not charged automatically", func(t *testing.T) {
		e := toRoundOne(t)
		settings, err := e.Settings(1)
		require.NoError(t, err)
		settings.AutoCharge = autocharge.Ask
		require.NoError(t, e.SetSettings(1, settings))

		require.NoError(t, e.Move("terrans build ts 0x1"))
		played, err := e.AutoMoves()
		require.NoError(t, err)
		require.Equal(t, 0, played)
		require.Equal(t, game.RoundLeech, e.State.Phase)
	})

	t.Run("settings survive snapshots", func(t *testing.T) {
		e := toRoundOne(t)
		require.NoError(t, e.SetSettings(0, player.Settings{AutoCharge: 3, AutoIncome: true}))
		var buf bytes.Buffer
		require.NoError(t, e.WriteSnapshot(&buf, false))
		restored, err := ReadSnapshot(&buf, false)
		require.NoError(t, err)
		settings, err := restored.Settings(0)
		require.NoError(t, err)
		require.Equal(t, player.Settings{AutoCharge: 3, AutoIncome: true}, settings)
	})

	t.Run("unknown players and policies are refused", func(t *testing.T) {
		e := toRoundOne(t)
		require.True(t, gameerr.IsIllegalMove(e.SetSettings(2, player.DefaultSettings())))
		require.True(t, gameerr.IsIllegalMove(e.SetSettings(0, player.Settings{AutoCharge: -3})))
		_, err := e.Settings(-1)
		require.Error(t, err)
	})
}
