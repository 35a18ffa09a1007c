package game

import "fmt"

// Layout selects how sectors are placed.
type Layout string

const (
	StandardLayout Layout = "standard"
	FixedLayout    Layout = "fixed"
	CustomLayout   Layout = "custom"
)

// Options are the rule variants of a game.
type Options struct {
	Layout         Layout `json:"layout,omitempty" yaml:"layout"`
	Auction        bool   `json:"auction,omitempty" yaml:"auction"`
	FactionVariant string `json:"factionVariant,omitempty" yaml:"factionVariant"`
	RandomFactions bool   `json:"randomFactions,omitempty" yaml:"randomFactions"`
	// Advanced rotates sectors in the standard layout.
	Advanced   bool     `json:"advancedRules,omitempty" yaml:"advancedRules"`
	NoFedCheck bool     `json:"noFedCheck,omitempty" yaml:"noFedCheck"`
	Expansions []string `json:"expansions,omitempty" yaml:"expansions"`
}

func (o Options) Validate() error {
	switch o.Layout {
	case "", StandardLayout, FixedLayout, CustomLayout:
	default:
		return fmt.Errorf("unknown layout %q", o.Layout)
	}
	switch o.FactionVariant {
	case "", "standard", "more-balanced":
	default:
		return fmt.Errorf("unknown faction variant %q", o.FactionVariant)
	}
	if len(o.Expansions) > 0 {
		return fmt.Errorf("unsupported expansions %v", o.Expansions)
	}
	return nil
}

// Variant is the faction board variant passed to player boards.
func (o Options) Variant() string {
	if o.FactionVariant == "standard" {
		return ""
	}
	return o.FactionVariant
}
