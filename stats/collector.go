// Package stats turns the advanced log of a game into per round resource
// statistics and exports them as CSV.
package stats

import (
	"sort"

	"gaia/game"
	"gaia/reward"
)

// Change is the net amount of one resource a player got from one source in a round.
type Change struct {
	Round    int // 0 for setup
	Player   int
	Source   string
	Resource reward.Resource
	Amount   int
}

// PlayerRecord is the end state of one seat.
type PlayerRecord struct {
	Player        int
	Faction       string
	DisplayName   string
	VictoryPoints int
	Rank          int
}

type key struct {
	round    int
	player   int
	source   string
	resource reward.Resource
}

type Collector struct {
	totals map[key]int
	moves  int
	round  int
	rounds int
}

func NewCollector() *Collector {
	return &Collector{totals: make(map[key]int)}
}

// Add folds one advanced log entry. Change entries count towards the round
// of the last round marker, phase markers carry no changes.
func (c *Collector) Add(entry game.LogEntry) {
	if entry.Round != nil {
		c.round = *entry.Round
		if c.round > c.rounds {
			c.rounds = c.round
		}
	}
	if entry.Move != nil && *entry.Move+1 > c.moves {
		c.moves = *entry.Move + 1
	}
	if entry.Player == nil {
		return
	}
	for source, changes := range entry.Changes {
		for resource, amount := range changes {
			c.totals[key{c.round, *entry.Player, source, resource}] += amount
		}
	}
}

func (c *Collector) Moves() int {
	return c.moves
}

func (c *Collector) Rounds() int {
	return c.rounds
}

// Complete returns the non zero totals ordered by round, player, source and resource.
func (c *Collector) Complete() []Change {
	changes := make([]Change, 0, len(c.totals))
	for k, amount := range c.totals {
		if amount == 0 {
			continue
		}
		changes = append(changes, Change{Round: k.round, Player: k.player, Source: k.source, Resource: k.resource, Amount: amount})
	}
	sort.Slice(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Resource < b.Resource
	})
	return changes
}

// Collect aggregates a whole advanced log.
func Collect(log []game.LogEntry) []Change {
	c := NewCollector()
	for _, entry := range log {
		c.Add(entry)
	}
	return c.Complete()
}

// Players ranks the seats of s by victory points, tied players sharing a rank.
func Players(s *game.State) []PlayerRecord {
	records := make([]PlayerRecord, len(s.Players))
	rank := 1
	for _, group := range s.Rank(func(p int) int { return s.Players[p].Data.VictoryPoints }) {
		for _, p := range group {
			pl := s.Players[p]
			records[p] = PlayerRecord{
				Player:        p,
				Faction:       string(pl.Faction),
				DisplayName:   pl.Faction.DisplayName(),
				VictoryPoints: pl.Data.VictoryPoints,
				Rank:          rank,
			}
		}
		rank += len(group)
	}
	return records
}
