// Package engine folds move strings into a game state. Every move is
// applied to a copy which replaces the state only when the whole move is legal.
package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"lukechampine.com/blake3"

	"gaia/game"
	"gaia/gameerr"
)

type Engine struct {
	State *game.State

	available []game.AvailableCommand
	generated bool
}

type Option func(*Engine)

// WithOptions sets the rule variants the init move uses.
func WithOptions(options game.Options) Option {
	return func(e *Engine) {
		e.State.Options = options
	}
}

// New replays moves from the start of a game.
func New(moves []string, opts ...Option) (*Engine, error) {
	e := &Engine{State: game.NewState(0, "", game.Options{})}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.State.Options.Validate(); err != nil {
		return nil, gameerr.Wrap(gameerr.CodeIllegalMove, "invalid options", err)
	}
	if err := e.LoadMoves(moves); err != nil {
		return nil, err
	}
	return e, nil
}

// SlowMotion replays moves one by one and calls visit after each, with
// the commands that are available at that point already generated.
func SlowMotion(moves []string, visit func(i int, e *Engine) error, opts ...Option) (*Engine, error) {
	e, err := New(nil, opts...)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		if err := e.Move(m); err != nil {
			return e, fmt.Errorf("failed to replay move %d %q: %w", i+1, m, err)
		}
		e.GenerateAvailableCommandsIfNeeded()
		if visit == nil {
			continue
		}
		if err := visit(i, e); err != nil {
			return e, err
		}
	}
	return e, nil
}

func (e *Engine) LoadMoves(moves []string) error {
	for i, m := range moves {
		if err := e.Move(m); err != nil {
			return fmt.Errorf("failed to replay move %d %q: %w", i+1, m, err)
		}
	}
	return nil
}

// Move applies one move. On error the state is left as it was.
func (e *Engine) Move(text string) error {
	text = strings.TrimSpace(text)
	next := e.State.Copy()
	round, phase := next.Round, next.Phase
	if err := apply(next, text); err != nil {
		return err
	}
	next.Normalize()
	e.State = next
	e.generated = false

	log.Debug().Str("move", text).Str("phase", next.Phase.String()).Msg("move applied")
	if next.Round != round && next.Round > 0 {
		log.Info().Int("round", next.Round).Msg("round started")
	}
	if next.Phase == game.Ended && phase != game.Ended {
		for _, p := range next.Players {
			log.Info().Str("player", p.Name()).Int("vp", p.Data.VictoryPoints).Msg("final score")
		}
	}
	return nil
}

// GenerateAvailableCommandsIfNeeded returns the commands legal in the
// current state, computing them once per state.
func (e *Engine) GenerateAvailableCommandsIfNeeded() []game.AvailableCommand {
	if !e.generated {
		e.available = game.AvailableCommands(e.State)
		e.generated = true
	}
	return e.available
}

// Digest is the blake3 hash of the canonical JSON state.
func (e *Engine) Digest() (string, error) {
	data, err := json.Marshal(e.State)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	sum := blake3.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}

// FromData restores an engine from a JSON snapshot without replaying moves.
func FromData(data []byte) (*Engine, error) {
	data, err := migrate(data)
	if err != nil {
		return nil, err
	}
	var s game.State
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if err := s.Options.Validate(); err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvariant, "invalid options in snapshot", err)
	}
	s.Normalize()
	return &Engine{State: &s}, nil
}

// migrate rewrites board actions stored as booleans: true becomes the
// player to move, false an unused action.
func migrate(data []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	actions, ok := raw["boardActions"]
	if !ok {
		return data, nil
	}
	var legacy map[string]any
	if err := json.Unmarshal(actions, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode board actions: %w", err)
	}
	var current int
	if v, ok := raw["playerToMove"]; ok {
		if err := json.Unmarshal(v, &current); err != nil {
			return nil, fmt.Errorf("failed to decode player to move: %w", err)
		}
	}
	migrated := make(map[string]*int, len(legacy))
	changed := false
	for name, v := range legacy {
		switch v := v.(type) {
		case bool:
			changed = true
			if v {
				owner := current
				migrated[name] = &owner
			} else {
				migrated[name] = nil
			}
		case float64:
			owner := int(v)
			migrated[name] = &owner
		default:
			migrated[name] = nil
		}
	}
	if !changed {
		return data, nil
	}
	encoded, err := json.Marshal(migrated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode board actions: %w", err)
	}
	raw["boardActions"] = encoded
	return json.Marshal(raw)
}
