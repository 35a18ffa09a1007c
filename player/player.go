package player

import (
	"fmt"
	"sort"

	"gaia/autocharge"
	"gaia/meta"
	"gaia/reward"
)

// Settings are per-player automation preferences.
type Settings struct {
	AutoCharge     autocharge.Policy `json:"autoChargePower"`
	AutoBrainstone bool              `json:"autoBrainstone"`
	AutoIncome     bool              `json:"autoIncome"`
	PreferBurn     bool              `json:"preferBurn"`
}

func DefaultSettings() Settings {
	return Settings{AutoCharge: 1}
}

// SourcedEvent is an event together with what granted it.
type SourcedEvent struct {
	Source string       `json:"source"`
	Event  reward.Event `json:"event"`
}

// FederationTile is a federation token held by a player.
type FederationTile struct {
	Tile  string `json:"tile"`
	Green bool   `json:"green"`
}

// Player is a seat at the table and the faction playing it.
type Player struct {
	Index    int            `json:"player"`
	Faction  Faction        `json:"faction,omitempty"`
	Variant  string         `json:"variant,omitempty"`
	Data     Data           `json:"data"`
	Settings Settings       `json:"settings"`
	Events   []SourcedEvent `json:"events"`

	Booster     string           `json:"booster,omitempty"`
	Techs       []string         `json:"techs"`
	AdvTechs    []string         `json:"advTechs"`
	Covered     []string         `json:"covered"`
	Federations []FederationTile `json:"federations"`
}

// NewPlayer creates an empty seat.
func NewPlayer(index int) *Player {
	return &Player{
		Index:    index,
		Data:     NewData(),
		Settings: DefaultSettings(),
	}
}

// Copy returns a deep copy of the player.
func (p *Player) Copy() *Player {
	copied := *p
	copied.Data = p.Data.Copy()
	copied.Events = make([]SourcedEvent, len(p.Events))
	for i, e := range p.Events {
		copied.Events[i] = SourcedEvent{Source: e.Source, Event: e.Event.Clone()}
	}
	copied.Techs = append([]string(nil), p.Techs...)
	copied.AdvTechs = append([]string(nil), p.AdvTechs...)
	copied.Covered = append([]string(nil), p.Covered...)
	copied.Federations = append([]FederationTile(nil), p.Federations...)
	return &copied
}

// Name is the token identifying the player in moves.
func (p *Player) Name() string {
	if p.Faction != "" {
		return string(p.Faction)
	}
	return fmt.Sprintf("p%d", p.Index+1)
}

func (p *Player) Board() Board {
	board, err := BoardFor(p.Faction, p.Variant)
	if err != nil {
		return boards.Default
	}
	return board
}

func (p *Player) Capabilities() Capabilities {
	return p.Faction.Capabilities()
}

// SelectFaction puts the faction board in front of the player: starting
// resources, power, base income and research.
func (p *Player) SelectFaction(f Faction, variant string) ([]reward.Event, error) {
	board, err := BoardFor(f, variant)
	if err != nil {
		return nil, err
	}
	p.Faction, p.Variant = f, variant
	p.Data.Power = board.StartingPower()
	start, err := reward.Parse(board.Start)
	if err != nil {
		return nil, err
	}
	p.Data.Apply(start, "init", BrainstoneKeep)
	p.Data.VictoryPoints = meta.STARTING_VP
	if err := p.AddEvents("board", board.Income); err != nil {
		return nil, err
	}
	if err := p.AddEvents("faction", board.Events); err != nil {
		return nil, err
	}
	var once []reward.Event
	for _, t := range Tracks {
		for level := 0; level < board.Research[t]; level++ {
			once = append(once, p.LevelUp(t)...)
		}
	}
	return once, nil
}

// AddEvents parses specs and attaches them under source.
func (p *Player) AddEvents(source string, specs []string) error {
	events, err := reward.ParseEvents(specs)
	if err != nil {
		return err
	}
	for _, e := range events {
		p.Events = append(p.Events, SourcedEvent{Source: source, Event: e})
	}
	return nil
}

func (p *Player) RemoveEvents(source string) {
	kept := p.Events[:0:0]
	for _, e := range p.Events {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	p.Events = kept
}

// EventsWith returns the events using operator op, in acquisition order.
func (p *Player) EventsWith(op reward.Operator) []SourcedEvent {
	var found []SourcedEvent
	for _, e := range p.Events {
		if e.Event.Operator == op {
			found = append(found, e)
		}
	}
	return found
}

// Activation finds the unused activatable event of source.
func (p *Player) Activation(source string) (int, bool) {
	for i, e := range p.Events {
		if e.Source == source && e.Event.Operator == reward.Activate && !e.Event.Activated {
			return i, true
		}
	}
	return -1, false
}

func (p *Player) ResetActivations() {
	for i := range p.Events {
		p.Events[i].Event.Activated = false
	}
}

// Triggered sums the trigger rewards fired by cond.
func (p *Player) Triggered(cond reward.Condition) []reward.Reward {
	var gained []reward.Reward
	for _, e := range p.Events {
		if e.Event.Operator == reward.Trigger && e.Event.Condition == cond {
			gained = append(gained, e.Event.Rewards...)
		}
	}
	return reward.Merge(gained)
}

// HasSpecial reports whether an event with the special operator is held.
func (p *Player) HasSpecial(cond reward.Condition, r reward.Resource) bool {
	for _, e := range p.EventsWith(reward.Special) {
		if e.Event.Condition == cond && reward.Count(e.Event.Rewards, r) > 0 {
			return true
		}
	}
	return false
}

// LevelUp raises track t and returns the once events of the new level.
// Income events of the new level replace the previous ones.
func (p *Player) LevelUp(t Track) []reward.Event {
	p.Data.Research[t]++
	events := LevelEvents(t, p.Data.Research[t])
	source := "research-" + string(t)
	var once []reward.Event
	replaced := false
	for _, e := range events {
		if e.Operator == reward.Income {
			if !replaced {
				p.RemoveEvents(source)
				replaced = true
			}
			p.Events = append(p.Events, SourcedEvent{Source: source, Event: e})
			continue
		}
		once = append(once, e)
	}
	if !replaced {
		p.RemoveEvents(source)
	}
	return once
}

// AddBuilding counts a new building and uncovers its income slot.
func (p *Player) AddBuilding(b Building) error {
	p.Data.Buildings[b]++
	n := p.Data.Buildings[b]
	return p.AddEvents(slotSource(b, n), p.Board().IncomeSlot(b, n))
}

// RemoveBuilding takes a building back onto the board, covering its slot.
func (p *Player) RemoveBuilding(b Building) {
	n := p.Data.Buildings[b]
	if n == 0 {
		return
	}
	p.RemoveEvents(slotSource(b, n))
	p.Data.Buildings[b]--
}

func slotSource(b Building, n int) string {
	return fmt.Sprintf("%s:%d", b, n)
}

// Gain applies rewards after the faction's reward transformations.
func (p *Player) Gain(rewards []reward.Reward, source string, use BrainstoneUse) Result {
	rewards = p.Capabilities().Costs(p, rewards)
	if p.Capabilities().QicAsOre && p.Data.Buildings[Academy2] == 0 {
		transformed := make([]reward.Reward, len(rewards))
		for i, r := range rewards {
			if r.Type == reward.Qic && r.Count > 0 {
				r.Type = reward.Ore
			}
			transformed[i] = r
		}
		rewards = transformed
	}
	return p.Data.Apply(rewards, source, use)
}

// CanPay reports whether the faction can pay costs, given as positive counts.
func (p *Player) CanPay(costs []reward.Reward) bool {
	return p.Data.CanPay(reward.Negate(p.Capabilities().Costs(p, reward.Negate(costs))))
}

// FederationThreshold is the power value a new federation needs.
func (p *Player) FederationThreshold() int {
	return p.Capabilities().FederationThreshold(p)
}

// HasGreenFederation reports an unused federation token.
func (p *Player) HasGreenFederation() bool {
	for _, f := range p.Federations {
		if f.Green {
			return true
		}
	}
	return false
}

// UseGreenFederation flips the first green federation token.
func (p *Player) UseGreenFederation() bool {
	for i, f := range p.Federations {
		if f.Green {
			p.Federations[i].Green = false
			return true
		}
	}
	return false
}

// Tiles lists every tile name held, sorted.
func (p *Player) Tiles() []string {
	tiles := append(append([]string(nil), p.Techs...), p.AdvTechs...)
	if p.Booster != "" {
		tiles = append(tiles, p.Booster)
	}
	sort.Strings(tiles)
	return tiles
}

func (p *Player) String() string {
	return fmt.Sprintf("%s: %dc %do %dk %dq %dvp", p.Name(), p.Data.Credits, p.Data.Ore, p.Data.Knowledge, p.Data.Qics, p.Data.VictoryPoints)
}
