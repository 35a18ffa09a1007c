package player

import (
	"fmt"
)

// Area is a position on the power cycle.
type Area int

const (
	AreaNone Area = iota // brainstone absent or discarded
	Area1
	Area2
	Area3
	AreaGaia
)

var areaNames = map[Area]string{
	AreaNone: "discard",
	Area1:    "area1",
	Area2:    "area2",
	Area3:    "area3",
	AreaGaia: "gaia",
}

func (a Area) String() string {
	return areaNames[a]
}

func ParseArea(s string) (Area, error) {
	for a, name := range areaNames {
		if name == s {
			return a, nil
		}
	}
	return AreaNone, fmt.Errorf("unknown power area %q", s)
}

func (a Area) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Area) UnmarshalText(b []byte) error {
	parsed, err := ParseArea(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// BrainstoneUse tells a power operation what to do with the brainstone when
// both outcomes are legal.
type BrainstoneUse int

const (
	BrainstoneAsk BrainstoneUse = iota
	BrainstoneMove
	BrainstoneKeep
)

// ChoiceKind is the power operation waiting for a brainstone decision.
type ChoiceKind string

const (
	SpendChoice   ChoiceKind = "spend"
	DiscardChoice ChoiceKind = "discard"
	GaiaChoice    ChoiceKind = "gaia"
)

// Choice is returned instead of mutating when the brainstone decision is
// ambiguous. Options are the areas the brainstone may end up in; the first
// one moves it, the second keeps it.
type Choice struct {
	Kind    ChoiceKind `json:"kind"`
	Amount  int        `json:"amount"`
	Options []Area     `json:"options"`
}

// Use maps a chosen destination area to the BrainstoneUse that produces it.
func (c Choice) Use(area Area) (BrainstoneUse, error) {
	for i, o := range c.Options {
		if o == area {
			if i == 0 {
				return BrainstoneMove, nil
			}
			return BrainstoneKeep, nil
		}
	}
	return BrainstoneAsk, fmt.Errorf("brainstone cannot go to %s", area)
}

// Outcome is the result of a power operation: the amount actually moved, or
// a Choice when nothing was done.
type Outcome struct {
	Amount int
	Choice *Choice
}

// Power holds the token counts of the power cycle. The brainstone is tracked
// apart from the counts.
type Power struct {
	Area1      int  `json:"area1"`
	Area2      int  `json:"area2"`
	Area3      int  `json:"area3"`
	Gaia       int  `json:"gaia"`
	Brainstone Area `json:"brainstone,omitempty"`
}

// Tokens counts every token, brainstone included.
func (p Power) Tokens() int {
	total := p.Area1 + p.Area2 + p.Area3 + p.Gaia
	if p.Brainstone != AreaNone {
		total++
	}
	return total
}

// BowlTokens counts tokens in areas 1 to 3, brainstone included.
func (p Power) BowlTokens() int {
	total := p.Area1 + p.Area2 + p.Area3
	if p.Brainstone >= Area1 && p.Brainstone <= Area3 {
		total++
	}
	return total
}

func (p Power) brainstoneIn(a Area) int {
	if p.Brainstone == a {
		return 1
	}
	return 0
}

// MaxCharge is the power needed to bring every token to area 3.
func (p Power) MaxCharge() int {
	return 2*(p.Area1+p.brainstoneIn(Area1)) + p.Area2 + p.brainstoneIn(Area2)
}

// MaxSpend is the power available in area 3, the brainstone counting three.
func (p Power) MaxSpend() int {
	return p.Area3 + 3*p.brainstoneIn(Area3)
}

// MaxBurn is the largest burn possible.
func (p Power) MaxBurn() int {
	return (p.Area2 + p.brainstoneIn(Area2)) / 2
}

// Charge moves tokens forward, moving the brainstone first in each area.
func (p *Power) Charge(n int) int {
	return p.ChargeWith(n, true)
}

// ChargeWith empties area 1 into area 2 before moving anything from area 2
// to area 3. It returns the power actually charged.
func (p *Power) ChargeWith(n int, brainstoneFirst bool) int {
	charged := 0
	step := func(from, to Area, count *int, dest *int) bool {
		if brainstoneFirst && p.Brainstone == from {
			p.Brainstone = to
			return true
		}
		if *count > 0 {
			*count--
			*dest++
			return true
		}
		if p.Brainstone == from {
			p.Brainstone = to
			return true
		}
		return false
	}
	for charged < n && step(Area1, Area2, &p.Area1, &p.Area2) {
		charged++
	}
	for charged < n && step(Area2, Area3, &p.Area2, &p.Area3) {
		charged++
	}
	return charged
}

// Spend moves power from area 3 back to area 1. A brainstone in area 3 pays
// three power. When regular tokens alone could pay, using the brainstone is a
// decision and BrainstoneAsk returns a Choice.
func (p *Power) Spend(n int, use BrainstoneUse) Outcome {
	if n <= 0 {
		return Outcome{}
	}
	if p.Brainstone != Area3 {
		k := min(n, p.Area3)
		p.Area3 -= k
		p.Area1 += k
		return Outcome{Amount: k}
	}
	if p.Area3 >= n {
		switch use {
		case BrainstoneAsk:
			return Outcome{Choice: &Choice{Kind: SpendChoice, Amount: n, Options: []Area{Area1, Area3}}}
		case BrainstoneKeep:
			p.Area3 -= n
			p.Area1 += n
			return Outcome{Amount: n}
		}
	}
	p.Brainstone = Area1
	k := min(max(n-3, 0), p.Area3)
	p.Area3 -= k
	p.Area1 += k
	return Outcome{Amount: min(n, 3+k)}
}

// Discard removes tokens from the lowest area upward.
func (p *Power) Discard(n int, use BrainstoneUse) Outcome {
	return p.remove(n, use, DiscardChoice)
}

// MoveToGaia moves tokens from the lowest area upward into the gaia area.
func (p *Power) MoveToGaia(n int, use BrainstoneUse) Outcome {
	return p.remove(n, use, GaiaChoice)
}

func (p *Power) remove(n int, use BrainstoneUse, kind ChoiceKind) Outcome {
	if n <= 0 {
		return Outcome{}
	}
	normal := p.Area1 + p.Area2 + p.Area3
	stone := p.Brainstone >= Area1 && p.Brainstone <= Area3
	dest := AreaNone
	if kind == GaiaChoice {
		dest = AreaGaia
	}

	takeStone := false
	if stone {
		switch {
		case normal < n:
			takeStone = true
		case use == BrainstoneMove:
			takeStone = true
		case use == BrainstoneAsk && p.Brainstone <= p.highestRemoved(n):
			return Outcome{Choice: &Choice{Kind: kind, Amount: n, Options: []Area{dest, p.Brainstone}}}
		}
	}

	removed := 0
	if takeStone {
		p.Brainstone = dest
		removed++
	}
	for _, area := range []*int{&p.Area1, &p.Area2, &p.Area3} {
		k := min(n-removed, *area)
		*area -= k
		removed += k
		if kind == GaiaChoice {
			p.Gaia += k
		}
	}
	return Outcome{Amount: removed}
}

// highestRemoved is the highest area a lowest-first removal of n regular tokens touches.
func (p Power) highestRemoved(n int) Area {
	switch {
	case n <= p.Area1:
		return Area1
	case n <= p.Area1+p.Area2:
		return Area2
	default:
		return Area3
	}
}

// Burn discards one token of area 2 for each token moved from area 2 to
// area 3. The brainstone moves but is never the discarded token.
func (p *Power) Burn(n int) int {
	k := min(n, p.MaxBurn())
	if k <= 0 {
		return 0
	}
	moved := k
	if p.Brainstone == Area2 {
		p.Brainstone = Area3
		moved--
	}
	p.Area2 -= moved + k
	p.Area3 += moved
	return k
}

// GainTokens adds new tokens to area 1.
func (p *Power) GainTokens(n int) {
	p.Area1 += n
}

// ReturnFromGaia empties the gaia area into the given area. The brainstone always returns to area 1.
func (p *Power) ReturnFromGaia(to Area) int {
	moved := p.Gaia
	switch to {
	case Area2:
		p.Area2 += moved
	case Area3:
		p.Area3 += moved
	default:
		p.Area1 += moved
	}
	p.Gaia = 0
	if p.Brainstone == AreaGaia {
		p.Brainstone = Area1
		moved++
	}
	return moved
}
