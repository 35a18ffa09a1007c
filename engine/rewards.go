package engine

import (
	"fmt"

	"gaia/game"
	"gaia/gameerr"
	"gaia/meta"
	"gaia/player"
	"gaia/reward"
)

func brainstoneUse(p *player.Player) player.BrainstoneUse {
	if p.Settings.AutoBrainstone {
		return player.BrainstoneMove
	}
	return player.BrainstoneAsk
}

// gain applies rewards to p. Rewards the ledger cannot resolve alone
// become pending choices ahead of the ones already queued.
func gain(s *game.State, p int, rewards []reward.Reward, source string) {
	gainWith(s, p, rewards, source, brainstoneUse(s.Players[p]))
}

func gainWith(s *game.State, p int, rewards []reward.Reward, source string, use player.BrainstoneUse) {
	result := s.Players[p].Gain(rewards, source, use)
	var pending []game.Pending
	if result.Choice != nil {
		pending = append(pending, game.Pending{
			Kind:      game.PendingBrainstone,
			Player:    p,
			Source:    source,
			Choice:    result.Choice,
			Remaining: reward.Format(result.Remaining),
		})
	}
	for _, r := range result.Deferred {
		pending = append(pending, deferred(s, p, r, source)...)
	}
	s.Turn.Pending = append(pending, s.Turn.Pending...)
}

// pay takes positive costs from p.
func pay(s *game.State, p int, costs []reward.Reward, source string) {
	gain(s, p, reward.Negate(costs), source)
}

// deferred resolves a reward that needs the game state, or returns the
// choices it asks for.
func deferred(s *game.State, p int, r reward.Reward, source string) []game.Pending {
	var pending []game.Pending
	for i := 0; i < r.Count; i++ {
		if t, ok := player.TrackOf(r.Type); ok {
			if s.CanAdvance(p, t) {
				advance(s, p, t, true)
			}
			continue
		}
		switch r.Type {
		case reward.UpAny:
			pending = append(pending, game.Pending{Kind: game.PendingUp, Player: p, Source: source, Free: true})
		case reward.UpLowest:
			switch tracks := s.LowestTracks(p); len(tracks) {
			case 0:
			case 1:
				advance(s, p, tracks[0], true)
			default:
				pending = append(pending, game.Pending{Kind: game.PendingUp, Player: p, Source: source, Free: true, Tracks: tracks})
			}
		case reward.Tech:
			pending = append(pending, game.Pending{Kind: game.PendingTech, Player: p, Source: source})
		case reward.TerraFederation:
			takeTerraFederation(s, p)
		case reward.RescoreFederation:
			pending = append(pending, game.Pending{Kind: game.PendingFederation, Player: p, Source: source})
		case reward.SpaceStation:
			pending = append(pending, game.Pending{Kind: game.PendingBuild, Player: p, Source: source, Buildings: []player.Building{player.SpaceStation}})
		case reward.SwapPI:
			pending = append(pending, game.Pending{Kind: game.PendingSwap, Player: p, Source: source})
		case reward.DowngradeLab:
			pending = append(pending, game.Pending{Kind: game.PendingDowngrade, Player: p, Source: source})
		case reward.LostPlanet:
			pending = append(pending, game.Pending{Kind: game.PendingBuild, Player: p, Source: source, Buildings: []player.Building{player.LostPlanet}})
		}
	}
	return pending
}

// advance raises p one level on t, paying knowledge unless free.
func advance(s *game.State, p int, t player.Track, free bool) error {
	if !s.CanAdvance(p, t) {
		return gameerr.IllegalMove("cannot advance on %s", t)
	}
	pl := s.Players[p]
	source := "research-" + string(t)
	if !free {
		pay(s, p, reward.MustParse(fmt.Sprintf("%dk", meta.RESEARCH_COST)), source)
	}
	if pl.Data.Research[t] == meta.MAX_RESEARCH_LEVEL-1 {
		pl.UseGreenFederation()
	}
	for _, e := range pl.LevelUp(t) {
		gain(s, p, s.EventRewards(p, e), source)
	}
	trigger(s, p, reward.ResearchStep, 1)
	return nil
}

// trigger fires the ">>" events of p and of the round scoring tile.
func trigger(s *game.State, p int, cond reward.Condition, times int) {
	if times <= 0 {
		return
	}
	rewards := s.Players[p].Triggered(cond)
	if s.Phase == game.RoundMove {
		for _, e := range s.RoundEvents() {
			if e.Operator == reward.Trigger && e.Condition == cond {
				rewards = append(rewards, e.Rewards...)
			}
		}
	}
	if len(rewards) == 0 {
		return
	}
	gain(s, p, reward.Scale(reward.Merge(rewards), times), string(cond))
}

// takeTerraFederation gives the federation tile lying on the terraforming track.
func takeTerraFederation(s *game.State, p int) {
	tile := s.Tiles.TerraFed
	if tile == "" {
		return
	}
	s.Tiles.TerraFed = ""
	takeFederationTile(s, p, tile)
}

func takeFederationTile(s *game.State, p int, tile string) {
	data := game.Content().Federations[tile]
	pl := s.Players[p]
	pl.Federations = append(pl.Federations, player.FederationTile{Tile: tile, Green: data.Green})
	gain(s, p, reward.MustParse(data.Rewards), tile)
}

// onceRewards evaluates the ">" events among events.
func onceRewards(s *game.State, p int, events []reward.Event) []reward.Reward {
	var rewards []reward.Reward
	for _, e := range events {
		if e.Operator == reward.Once {
			rewards = append(rewards, s.EventRewards(p, e)...)
		}
	}
	return rewards
}
