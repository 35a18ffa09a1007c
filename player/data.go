package player

import (
	"gaia/hex"
	"gaia/meta"
	"gaia/reward"
)

// Data is a player's resource ledger.
type Data struct {
	Credits       int              `json:"credits"`
	Ore           int              `json:"ore"`
	Knowledge     int              `json:"knowledge"`
	Qics          int              `json:"qics"`
	VictoryPoints int              `json:"victoryPoints"`
	Power         Power            `json:"power"`
	Research      Research         `json:"research"`
	Buildings     map[Building]int `json:"buildings"`
	// GaiaFormers counts every gaia former gained, placed ones included.
	GaiaFormers    int       `json:"gaiaformers"`
	Satellites     int       `json:"satellites"`
	TemporaryRange int       `json:"temporaryRange"`
	TemporaryStep  int       `json:"temporaryStep"`
	Occupied       []hex.Hex `json:"occupied"`

	changes map[string]map[reward.Resource]int
}

func NewData() Data {
	research := make(Research, len(Tracks))
	for _, t := range Tracks {
		research[t] = 0
	}
	return Data{
		Research:  research,
		Buildings: make(map[Building]int),
	}
}

func (d Data) Copy() Data {
	copied := d
	copied.Research = d.Research.Copy()
	copied.Buildings = make(map[Building]int, len(d.Buildings))
	for b, n := range d.Buildings {
		copied.Buildings[b] = n
	}
	copied.Occupied = append([]hex.Hex(nil), d.Occupied...)
	copied.changes = nil
	return copied
}

// Result reports what Apply could not do itself. Deferred rewards need the
// game state (research, tiles, map). When Choice is set, Remaining holds
// the rewards not applied yet, starting with the one waiting for the choice.
type Result struct {
	Deferred  []reward.Reward
	Choice    *Choice
	Remaining []reward.Reward
}

// Apply gains rewards in order; negative counts pay. Resources are capped,
// power operations are clamped.
func (d *Data) Apply(rewards []reward.Reward, source string, use BrainstoneUse) Result {
	var result Result
	for i, r := range rewards {
		switch r.Type {
		case reward.None:
		case reward.Credit:
			d.addCapped(&d.Credits, r, meta.MAX_CREDITS, source)
		case reward.Ore:
			d.addCapped(&d.Ore, r, meta.MAX_ORE, source)
		case reward.Knowledge:
			d.addCapped(&d.Knowledge, r, meta.MAX_KNOWLEDGE, source)
		case reward.Qic:
			d.addCapped(&d.Qics, r, -1, source)
		case reward.VictoryPoint:
			d.VictoryPoints += r.Count
			d.record(source, r.Type, r.Count)
		case reward.ChargePower:
			if r.Count >= 0 {
				d.record(source, r.Type, d.Power.Charge(r.Count))
				continue
			}
			out := d.Power.Spend(-r.Count, use)
			if out.Choice != nil {
				result.Choice, result.Remaining = out.Choice, rewards[i:]
				return result
			}
			d.record(source, r.Type, -out.Amount)
		case reward.GainToken:
			if r.Count >= 0 {
				d.Power.GainTokens(r.Count)
				d.record(source, r.Type, r.Count)
				continue
			}
			out := d.Power.Discard(-r.Count, use)
			if out.Choice != nil {
				result.Choice, result.Remaining = out.Choice, rewards[i:]
				return result
			}
			d.record(source, r.Type, -out.Amount)
		case reward.GaiaToken:
			if r.Count >= 0 {
				d.Power.Gaia += r.Count
				d.record(source, r.Type, r.Count)
				continue
			}
			out := d.Power.MoveToGaia(-r.Count, use)
			if out.Choice != nil {
				result.Choice, result.Remaining = out.Choice, rewards[i:]
				return result
			}
			d.record(source, r.Type, -out.Amount)
		case reward.TerraformStep:
			d.TemporaryStep += r.Count
		case reward.TemporaryRange:
			d.TemporaryRange += r.Count
		case reward.GaiaFormer:
			d.GaiaFormers += r.Count
			d.record(source, r.Type, r.Count)
		default:
			result.Deferred = append(result.Deferred, r)
		}
	}
	return result
}

func (d *Data) addCapped(field *int, r reward.Reward, cap int, source string) {
	before := *field
	*field = max(0, *field+r.Count)
	if cap >= 0 {
		*field = min(*field, cap)
	}
	d.record(source, r.Type, *field-before)
}

func (d *Data) record(source string, r reward.Resource, delta int) {
	if delta == 0 {
		return
	}
	if d.changes == nil {
		d.changes = make(map[string]map[reward.Resource]int)
	}
	if d.changes[source] == nil {
		d.changes[source] = make(map[reward.Resource]int)
	}
	d.changes[source][r] += delta
}

// TakeChanges returns and clears the deltas recorded since the last call.
func (d *Data) TakeChanges() map[string]map[reward.Resource]int {
	changes := d.changes
	d.changes = nil
	return changes
}

// CanPay reports whether every cost could be paid. Costs are positive counts.
func (d Data) CanPay(costs []reward.Reward) bool {
	need := make(map[reward.Resource]int)
	for _, c := range costs {
		need[c.Type] += c.Count
	}
	for r, n := range need {
		if n <= 0 {
			continue
		}
		if d.available(r) < n {
			return false
		}
	}
	return true
}

func (d Data) available(r reward.Resource) int {
	switch r {
	case reward.None:
		return 0
	case reward.Credit:
		return d.Credits
	case reward.Ore:
		return d.Ore
	case reward.Knowledge:
		return d.Knowledge
	case reward.Qic:
		return d.Qics
	case reward.VictoryPoint:
		return d.VictoryPoints
	case reward.ChargePower:
		return d.Power.MaxSpend()
	case reward.GainToken, reward.GaiaToken:
		return d.Power.BowlTokens()
	case reward.GaiaFormer:
		return d.AvailableGaiaFormers()
	}
	return 0
}

// Pay removes costs, which are positive counts.
func (d *Data) Pay(costs []reward.Reward, source string, use BrainstoneUse) Result {
	return d.Apply(reward.Negate(costs), source, use)
}

func (d Data) AvailableGaiaFormers() int {
	return d.GaiaFormers - d.Buildings[GaiaFormer]
}

// Range is the navigation range for the current action.
func (d Data) Range() int {
	return NavigationRange(d.Research[Navigation]) + d.TemporaryRange
}

// TerraformCost is the ore cost of steps terraforming steps after free steps.
func (d Data) TerraformCost(steps int) int {
	return max(0, steps-d.TemporaryStep) * TerraformCost(d.Research[Terraforming])
}

func (d *Data) ClearTemporary() {
	d.TemporaryRange = 0
	d.TemporaryStep = 0
}

// Occupy records a hex as holding one of the player's structures.
func (d *Data) Occupy(h hex.Hex) {
	for _, o := range d.Occupied {
		if o == h {
			return
		}
	}
	d.Occupied = append(d.Occupied, h)
	hex.Sort(d.Occupied)
}

func (d *Data) Vacate(h hex.Hex) {
	for i, o := range d.Occupied {
		if o == h {
			d.Occupied = append(d.Occupied[:i:i], d.Occupied[i+1:]...)
			return
		}
	}
}

// ResourceScore is the final scoring value of leftover resources.
func (d Data) ResourceScore() int {
	return (d.Credits + d.Ore + d.Knowledge + d.Qics) / 3
}
