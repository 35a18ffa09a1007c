package engine

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gaia/game"
)

const DEFAULT_ROLLOUT_CUTOFF = 10000

type rollout struct {
	cutoff int
	first  bool
}

type RolloutOption func(*rollout)

// WithCutoff stops a rollout after depth moves.
func WithCutoff(depth int) RolloutOption {
	return func(r *rollout) {
		r.cutoff = depth
	}
}

// WithFirstChoice always plays the first command with its first option
// instead of a random one.
func WithFirstChoice() RolloutOption {
	return func(r *rollout) {
		r.first = true
	}
}

// RolloutResult says how far a rollout went.
type RolloutResult struct {
	Moves int
	Ended bool
}

// Rollout plays random legal moves until the game ends or the cutoff is
// reached. Every move goes through Move.
func (e *Engine) Rollout(rng *rand.Rand, opts ...RolloutOption) (RolloutResult, error) {
	r := rollout{cutoff: DEFAULT_ROLLOUT_CUTOFF}
	for _, opt := range opts {
		opt(&r)
	}
	pick := func(n int) int {
		if r.first || n <= 1 {
			return 0
		}
		return rng.Intn(n)
	}

	result := RolloutResult{}
	for result.Moves < r.cutoff {
		commands := e.GenerateAvailableCommandsIfNeeded()
		if len(commands) == 0 {
			break
		}
		move := MoveText(e.State, commands[pick(len(commands))], pick)
		if err := e.Move(move); err != nil {
			return result, fmt.Errorf("failed to play %q: %w", move, err)
		}
		result.Moves++
	}
	result.Ended = e.State.Phase == game.Ended
	log.Debug().Int("moves", result.Moves).Bool("ended", result.Ended).Msg("rollout finished")
	return result, nil
}

// MoveText writes the move taking an option of an available command, pick
// choosing among n options.
func MoveText(s *game.State, c game.AvailableCommand, pick func(n int) int) string {
	name := s.Players[c.Player].Name()
	args := ""
	switch data := c.Data.(type) {
	case game.SetupData:
		args = fmt.Sprintf("%s %s", data.Kind, data.Options[pick(len(data.Options))])
	case game.FactionData:
		args = string(data.Factions[pick(len(data.Factions))])
	case game.BidData:
		bid := data.Bids[pick(len(data.Bids))]
		args = fmt.Sprintf("%s %d", bid.Faction, bid.MinVP)
	case game.BuildData:
		b := data.Buildings[pick(len(data.Buildings))]
		args = fmt.Sprintf("%s %s", b.Building, b.Hex)
	case game.BoosterData:
		args = data.Boosters[pick(len(data.Boosters))]
	case game.IncomeData:
		args = data.Chunks[pick(len(data.Chunks))]
	case game.ChargeData:
		args = data.Offers[pick(len(data.Offers))].Offer
	case game.PassData:
		if len(data.Boosters) > 0 {
			args = data.Boosters[pick(len(data.Boosters))]
		}
	case game.UpData:
		args = string(data.Tracks[pick(len(data.Tracks))].Track)
	case game.TechData:
		args = data.Tiles[pick(len(data.Tiles))].Tile
	case game.CoverData:
		args = data.Tiles[pick(len(data.Tiles))]
	case game.ActionData:
		args = data.Actions[pick(len(data.Actions))].Source
	case game.FederationData:
		tile := data.Tiles[pick(len(data.Tiles))]
		if data.Rescore {
			args = tile
			break
		}
		option := data.Federations[pick(len(data.Federations))]
		hexes := make([]string, len(option.Hexes))
		for i, h := range option.Hexes {
			hexes[i] = h.String()
		}
		args = strings.Join(hexes, ",") + " " + tile
	case game.SpendData:
		conversion := data.Conversions[pick(len(data.Conversions))]
		args = conversion.Cost + " for " + conversion.Gain
	case game.BurnData:
		args = fmt.Sprint(1 + pick(data.Max))
	case game.BrainstoneData:
		args = data.Options[pick(len(data.Options))].String()
	case game.SwapData:
		args = data.Hexes[pick(len(data.Hexes))].String()
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", name, c.Name, args))
}
