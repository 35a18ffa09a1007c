package engine

import (
	"fmt"

	"gaia/autocharge"
	"gaia/game"
	"gaia/gameerr"
	"gaia/player"
)

// AutoMove plays one decision the player's settings can take: a leech
// offer, or a brainstone placement when the brainstone is automatic. It
// reports whether a move was made. Moves are played through Move so that
// they land in the move history.
func (e *Engine) AutoMove() (bool, error) {
	s := e.State
	var move string
	var who *player.Player
	switch {
	case s.Phase == game.RoundLeech && len(s.Turn.Leech) > 0:
		l := s.Turn.Leech[0]
		who = s.Players[l.Player]
		name := who.Name()
		decision := autocharge.Decide(chargeRequest(s, l))
		switch decision.Decision {
		case autocharge.Yes:
			move = fmt.Sprintf("%s charge %s", name, decision.Offer.Offer)
		case autocharge.No:
			move = name + " decline"
		default:
			return false, nil
		}
	case s.Phase == game.RoundMove && pendingKind(s) == game.PendingBrainstone:
		pending := s.Turn.Pending[0]
		who = s.Players[pending.Player]
		if !who.Settings.AutoBrainstone || pending.Choice == nil || len(pending.Choice.Options) == 0 {
			return false, nil
		}
		move = fmt.Sprintf("%s brainstone %s", who.Name(), pending.Choice.Options[0])
	default:
		return false, nil
	}
	if err := e.Move(move); err != nil {
		return false, err
	}
	logAutomatic(who, move)
	return true, nil
}

// AutoMoves plays automatic decisions until one needs a player.
func (e *Engine) AutoMoves() (int, error) {
	played := 0
	for {
		ok, err := e.AutoMove()
		if err != nil || !ok {
			return played, err
		}
		played++
	}
}

// SetSettings replaces the automation preferences of player p. They are
// kept in the state and so travel with snapshots, not with the move history.
func (e *Engine) SetSettings(p int, settings player.Settings) error {
	if p < 0 || p >= len(e.State.Players) {
		return gameerr.IllegalMove("there is no player %d", p+1)
	}
	if settings.AutoCharge < autocharge.DeclineCost {
		return gameerr.IllegalMove("unknown auto charge policy %d", settings.AutoCharge)
	}
	e.State.Players[p].Settings = settings
	e.generated = false
	return nil
}

// Settings returns the automation preferences of player p.
func (e *Engine) Settings(p int) (player.Settings, error) {
	if p < 0 || p >= len(e.State.Players) {
		return player.Settings{}, gameerr.IllegalMove("there is no player %d", p+1)
	}
	return e.State.Players[p].Settings, nil
}
