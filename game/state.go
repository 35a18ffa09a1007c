package game

import (
	"fmt"
	"sort"
	"strings"

	"gaia/gameerr"
	"gaia/hex"
	"gaia/meta"
	"gaia/player"
	"gaia/reward"
	"gaia/setup"
	"gaia/utils"
)

// Leech is a queued power offer to a neighbour of a new building.
type Leech struct {
	Player int `json:"player"`
	From   int `json:"from"`
	Amount int `json:"amount"`
}

type PendingKind string

const (
	PendingTech       PendingKind = "tech"
	PendingCover      PendingKind = "cover"
	PendingUp         PendingKind = "up"
	PendingFederation PendingKind = "federation"
	PendingBuild      PendingKind = "build"
	PendingSwap       PendingKind = "swap"
	PendingBrainstone PendingKind = "brainstone"
	PendingDowngrade  PendingKind = "downgrade"
)

// Pending is a decision the player owes before the turn can go on.
type Pending struct {
	Kind   PendingKind `json:"kind"`
	Player int         `json:"player"`
	Source string      `json:"source,omitempty"`
	// Tracks limits an up choice; empty means any track.
	Tracks []player.Track `json:"tracks,omitempty"`
	// Free up choices cost no knowledge.
	Free      bool              `json:"free,omitempty"`
	Buildings []player.Building `json:"buildings,omitempty"`
	Tile      string            `json:"tile,omitempty"`
	Choice    *player.Choice    `json:"choice,omitempty"`
	// Remaining holds the rewards to apply once the brainstone is placed.
	Remaining string `json:"remaining,omitempty"`
}

// IncomeChoice holds the power income chunks whose order a player decides.
type IncomeChoice struct {
	Player int      `json:"player"`
	Chunks []string `json:"chunks"`
}

// GaiaTrade is a player spending the tokens of the gaia area in the gaia phase.
type GaiaTrade struct {
	Player int `json:"player"`
	Budget int `json:"budget"`
}

// Turn is the transient state of the player to move.
type Turn struct {
	SubPhase SubPhase       `json:"subPhase"`
	Pending  []Pending      `json:"pending,omitempty"`
	Leech    []Leech        `json:"leech,omitempty"`
	Income   []IncomeChoice `json:"income,omitempty"`
	Gaia     []GaiaTrade    `json:"gaia,omitempty"`
}

// Tiles are the shared tiles on the board.
type Tiles struct {
	Boosters []string `json:"boosters"`
	// Techs maps a slot (a track or common1-3) to its standard tech tile.
	Techs map[string]string `json:"techs"`
	// AdvTechs maps a track to the advanced tile above it, "" once taken.
	AdvTechs     map[string]string `json:"advTechs"`
	Federations  map[string]int    `json:"federations"`
	TerraFed     string            `json:"terraFed"`
	RoundScoring []string          `json:"roundScoring"`
	FinalScoring []string          `json:"finalScoring"`
}

// TechSlot returns the slot holding a standard tech tile.
func (t Tiles) TechSlot(tile string) (string, bool) {
	for slot, name := range t.Techs {
		if name == tile {
			return slot, true
		}
	}
	return "", false
}

// AdvTechSlot returns the track under an advanced tile.
func (t Tiles) AdvTechSlot(tile string) (string, bool) {
	for slot, name := range t.AdvTechs {
		if name == tile && name != "" {
			return slot, true
		}
	}
	return "", false
}

func (t Tiles) Copy() Tiles {
	copied := t
	copied.Boosters = append([]string(nil), t.Boosters...)
	copied.Techs = utils.CopyMap(t.Techs)
	copied.AdvTechs = utils.CopyMap(t.AdvTechs)
	copied.Federations = utils.CopyMap(t.Federations)
	copied.RoundScoring = append([]string(nil), t.RoundScoring...)
	copied.FinalScoring = append([]string(nil), t.FinalScoring...)
	return copied
}

// Bid is the best offer on a faction in an auction.
type Bid struct {
	Faction player.Faction `json:"faction"`
	Player  int            `json:"player"`
	VP      int            `json:"vp"`
}

type Auction struct {
	Bids []Bid `json:"bids"`
}

// LogEntry is one record of the advanced log. A round field alone marks a
// round boundary, a phase field alone a phase change.
type LogEntry struct {
	Round   *int                               `json:"round,omitempty"`
	Move    *int                               `json:"move,omitempty"`
	Phase   string                             `json:"phase,omitempty"`
	Player  *int                               `json:"player,omitempty"`
	Changes map[string]map[reward.Resource]int `json:"changes,omitempty"`
}

// State is everything a game is, serializable to JSON.
type State struct {
	Options        Options          `json:"options"`
	Seed           string           `json:"seed"`
	Phase          Phase            `json:"phase"`
	Round          int              `json:"round"`
	Players        []*player.Player `json:"players"`
	TurnOrder      []int            `json:"turnOrder"`
	Current        int              `json:"playerToMove"`
	Passed         []int            `json:"passedPlayers"`
	Queue          []int            `json:"queue,omitempty"`
	Map            Map              `json:"map"`
	Tiles          Tiles            `json:"tiles"`
	BoardActions   map[string]*int  `json:"boardActions"`
	Turn           Turn             `json:"turn"`
	Setup          *setup.Setup     `json:"setup,omitempty"`
	Auction        *Auction         `json:"auction,omitempty"`
	RandomFactions []player.Faction `json:"randomFactions,omitempty"`
	MoveHistory    []string         `json:"moveHistory"`
	AdvancedLog    []LogEntry       `json:"advancedLog"`
}

// NewState seats players without factions.
func NewState(players int, seed string, options Options) *State {
	s := &State{
		Options:      options,
		Seed:         seed,
		Phase:        SetupInit,
		BoardActions: make(map[string]*int),
	}
	for i := 0; i < players; i++ {
		s.Players = append(s.Players, player.NewPlayer(i))
		s.TurnOrder = append(s.TurnOrder, i)
	}
	for _, name := range Names(content.BoardActions) {
		s.BoardActions[name] = nil
	}
	s.Normalize()
	return s
}

// Copy returns a deep copy sharing nothing with s.
func (s *State) Copy() *State {
	copied := *s
	copied.Players = make([]*player.Player, len(s.Players))
	for i, p := range s.Players {
		copied.Players[i] = p.Copy()
	}
	copied.TurnOrder = append([]int(nil), s.TurnOrder...)
	copied.Passed = append([]int(nil), s.Passed...)
	copied.Queue = append([]int(nil), s.Queue...)
	copied.Map = s.Map.Copy()
	copied.Tiles = s.Tiles.Copy()
	copied.BoardActions = make(map[string]*int, len(s.BoardActions))
	for k, v := range s.BoardActions {
		if v != nil {
			owner := *v
			v = &owner
		}
		copied.BoardActions[k] = v
	}
	copied.Turn = s.Turn.copy()
	if s.Setup != nil {
		copied.Setup = s.Setup.Copy()
	}
	if s.Auction != nil {
		copied.Auction = &Auction{Bids: append([]Bid(nil), s.Auction.Bids...)}
	}
	copied.RandomFactions = append([]player.Faction(nil), s.RandomFactions...)
	copied.MoveHistory = append([]string(nil), s.MoveHistory...)
	copied.AdvancedLog = append([]LogEntry(nil), s.AdvancedLog...)
	return &copied
}

func (t Turn) copy() Turn {
	copied := t
	copied.Pending = make([]Pending, len(t.Pending))
	for i, p := range t.Pending {
		p.Tracks = append([]player.Track(nil), p.Tracks...)
		p.Buildings = append([]player.Building(nil), p.Buildings...)
		if p.Choice != nil {
			c := *p.Choice
			c.Options = append([]player.Area(nil), c.Options...)
			p.Choice = &c
		}
		copied.Pending[i] = p
	}
	copied.Leech = append([]Leech(nil), t.Leech...)
	copied.Gaia = append([]GaiaTrade(nil), t.Gaia...)
	copied.Income = make([]IncomeChoice, len(t.Income))
	for i, c := range t.Income {
		copied.Income[i] = IncomeChoice{Player: c.Player, Chunks: append([]string(nil), c.Chunks...)}
	}
	return copied
}

// Normalize puts the state in canonical form. Replayed and loaded states
// both pass through it so that they serialize identically.
func (s *State) Normalize() {
	s.TurnOrder = nonNil(s.TurnOrder)
	s.Passed = nonNil(s.Passed)
	s.MoveHistory = nonNil(s.MoveHistory)
	s.AdvancedLog = nonNil(s.AdvancedLog)
	s.Tiles.Boosters = nonNil(s.Tiles.Boosters)
	s.Tiles.RoundScoring = nonNil(s.Tiles.RoundScoring)
	s.Tiles.FinalScoring = nonNil(s.Tiles.FinalScoring)
	if len(s.Queue) == 0 {
		s.Queue = nil
	}
	if len(s.Turn.Pending) == 0 {
		s.Turn.Pending = nil
	}
	if len(s.Turn.Leech) == 0 {
		s.Turn.Leech = nil
	}
	if len(s.Turn.Income) == 0 {
		s.Turn.Income = nil
	}
	if len(s.Turn.Gaia) == 0 {
		s.Turn.Gaia = nil
	}
	if len(s.RandomFactions) == 0 {
		s.RandomFactions = nil
	}
	if s.Map.Hexes == nil {
		s.Map.Hexes = make(map[hex.Hex]GaiaHex)
	}
	s.Map.Sectors = nonNil(s.Map.Sectors)
	for h, g := range s.Map.Hexes {
		if len(g.Federations) == 0 {
			g.Federations = nil
			s.Map.Hexes[h] = g
		}
	}
	if s.Setup != nil {
		for _, f := range s.Setup.Factories {
			f.Pool = nonNil(f.Pool)
			f.Chosen = nonNil(f.Chosen)
		}
	}
	if s.Auction != nil {
		s.Auction.Bids = nonNil(s.Auction.Bids)
	}
	for _, p := range s.Players {
		p.Events = nonNil(p.Events)
		p.Techs = nonNil(p.Techs)
		p.AdvTechs = nonNil(p.AdvTechs)
		p.Covered = nonNil(p.Covered)
		p.Federations = nonNil(p.Federations)
		if p.Data.Buildings == nil {
			p.Data.Buildings = make(map[player.Building]int)
		}
		for b, n := range p.Data.Buildings {
			if n == 0 {
				delete(p.Data.Buildings, b)
			}
		}
		if p.Data.Research == nil {
			p.Data.Research = make(player.Research)
		}
		for _, t := range player.Tracks {
			p.Data.Research[t] += 0
		}
		p.Data.Occupied = nonNil(s.Map.Presence(p.Index))
		p.Data.TakeChanges()
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *State) CurrentPlayer() *player.Player {
	return s.Players[s.Current]
}

// PlayerByToken resolves "p2" or a faction name.
func (s *State) PlayerByToken(token string) (*player.Player, error) {
	if strings.HasPrefix(token, "p") {
		var n int
		if _, err := fmt.Sscanf(token, "p%d", &n); err == nil && n >= 1 && n <= len(s.Players) && fmt.Sprintf("p%d", n) == token {
			return s.Players[n-1], nil
		}
	}
	for _, p := range s.Players {
		if p.Faction != "" && string(p.Faction) == token {
			return p, nil
		}
	}
	return nil, gameerr.Parse("unknown player %q", token)
}

func (s *State) LastRound() bool {
	return s.Round >= meta.LAST_ROUND
}

func (s *State) HasPassed(p int) bool {
	for _, q := range s.Passed {
		if q == p {
			return true
		}
	}
	return false
}

// PowerValue is the federation and leech weight of a building of p.
func (s *State) PowerValue(p int, b player.Building) int {
	v := b.PowerValue()
	if (b == player.PlanetaryInstitute || b.IsAcademy()) && s.Players[p].HasSpecial(reward.PIOrAcademy, reward.ChargePower) {
		v = 4
	}
	return v
}

// Count evaluates a condition for player p.
func (s *State) Count(p int, cond reward.Condition) int {
	pl := s.Players[p]
	b := pl.Data.Buildings
	switch cond {
	case reward.Always:
		return 1
	case reward.Mine:
		return b[player.Mine]
	case reward.TradingStation:
		return b[player.TradingStation]
	case reward.ResearchLab:
		return b[player.ResearchLab]
	case reward.PlanetaryInstitute:
		return b[player.PlanetaryInstitute]
	case reward.Academy:
		return b[player.Academy1] + b[player.Academy2]
	case reward.PIOrAcademy:
		return b[player.PlanetaryInstitute] + b[player.Academy1] + b[player.Academy2]
	case reward.Federation:
		return len(pl.Federations)
	case reward.Satellite:
		return pl.Data.Satellites
	case reward.ResearchStep:
		total := 0
		for _, l := range pl.Data.Research {
			total += l
		}
		return total
	}

	planets := map[player.Planet]bool{}
	sectors := map[string]bool{}
	structures, gaia, federated := 0, 0, 0
	for _, h := range s.Map.Structures(p) {
		g := s.Map.Hexes[h]
		sectors[g.Sector] = true
		if g.BuildingOf(p) == player.SpaceStation {
			continue
		}
		structures++
		planets[g.Planet] = true
		if g.Planet == player.Gaia {
			gaia++
		}
		if g.InFederationOf(p) {
			federated++
		}
	}
	switch cond {
	case reward.Buildings:
		return structures
	case reward.GaiaPlanet:
		return gaia
	case reward.PlanetType:
		return len(planets)
	case reward.Sector:
		return len(sectors)
	case reward.FederatedBuildings:
		return federated
	}
	return 0
}

// EventRewards is what an event gives p right now: its rewards times the
// count of its condition.
func (s *State) EventRewards(p int, e reward.Event) []reward.Reward {
	return reward.Scale(e.Rewards, s.Count(p, e.Condition))
}

// RoundEvents are the events of the current round scoring tile.
func (s *State) RoundEvents() []reward.Event {
	if s.Round < 1 || s.Round > len(s.Tiles.RoundScoring) {
		return nil
	}
	events, _ := reward.ParseEvents(content.RoundScoring[s.Tiles.RoundScoring[s.Round-1]])
	return events
}

// Rank orders players by score, highest first, index breaking ties.
func (s *State) Rank(score func(p int) int) [][]int {
	indexes := make([]int, len(s.Players))
	for i := range indexes {
		indexes[i] = i
	}
	return RankOf(indexes, score)
}

// RankOf groups indexes by descending score, ties sharing a group.
func RankOf(indexes []int, score func(p int) int) [][]int {
	sort.SliceStable(indexes, func(a, b int) bool { return score(indexes[a]) > score(indexes[b]) })
	var groups [][]int
	for _, i := range indexes {
		if n := len(groups); n > 0 && score(groups[n-1][0]) == score(i) {
			groups[n-1] = append(groups[n-1], i)
			continue
		}
		groups = append(groups, []int{i})
	}
	return groups
}
