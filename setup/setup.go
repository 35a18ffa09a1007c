// Package setup fills the tile and map slots of a new game, either from a
// seeded random source or one slot at a time from an outside chooser.
package setup

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"gaia/gameerr"
	"gaia/utils"
)

// Kind names a factory.
type Kind string

const (
	Boosters     Kind = "boosters"
	Techs        Kind = "techs"
	AdvTechs     Kind = "advtechs"
	TerraFed     Kind = "terra-fed"
	RoundScoring Kind = "round-scoring"
	FinalScoring Kind = "final-scoring"
	Map          Kind = "map"
)

// Order is the factory order. Seeds replay only as long as it is unchanged.
var Order = []Kind{Boosters, Techs, AdvTechs, TerraFed, RoundScoring, FinalScoring, Map}

func ParseKind(s string) (Kind, error) {
	for _, k := range Order {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown setup kind %q", s)
}

// Factory assigns options from a pool to a fixed number of slots.
type Factory struct {
	Kind   Kind     `json:"kind"`
	Pool   []string `json:"pool"`
	Slots  int      `json:"slots"`
	Chosen []string `json:"chosen"`
	// Custom factories are only filled through Apply.
	Custom bool `json:"custom,omitempty"`
	// Rotations adds a rotation to every map option: "7r3".
	Rotations bool `json:"rotations,omitempty"`
}

func (f *Factory) Done() bool {
	return len(f.Chosen) >= f.Slots
}

// Options lists what may go into the next slot.
func (f *Factory) Options() []string {
	var options []string
	for _, o := range f.Pool {
		if f.used(o) {
			continue
		}
		if !f.Rotations {
			options = append(options, o)
			continue
		}
		for r := 0; r < 6; r++ {
			options = append(options, fmt.Sprintf("%sr%d", o, r))
		}
	}
	return options
}

func (f *Factory) used(option string) bool {
	for _, c := range f.Chosen {
		if c == option || strings.HasPrefix(c, option+"r") {
			return true
		}
	}
	return false
}

// ParseSector splits a map option into sector and rotation.
func ParseSector(option string) (string, int, error) {
	sector, rotation, found := strings.Cut(option, "r")
	if !found {
		return option, 0, nil
	}
	r, err := strconv.Atoi(rotation)
	if err != nil || r < 0 || r > 5 {
		return "", 0, gameerr.Parse("invalid sector rotation in %q", option)
	}
	return sector, r, nil
}

// Setup is the ordered list of factories of one game.
type Setup struct {
	Factories []*Factory `json:"factories"`
}

// Slots gives the slot count of every factory for a player count.
func Slots(players int) map[Kind]int {
	sectors := 10
	if players <= 2 {
		sectors = 7
	}
	return map[Kind]int{
		Boosters:     players + 3,
		Techs:        9,
		AdvTechs:     6,
		TerraFed:     1,
		RoundScoring: 6,
		FinalScoring: 2,
		Map:          sectors,
	}
}

// New creates one factory per kind in Order.
func New(players int, pools map[Kind][]string) *Setup {
	slots := Slots(players)
	s := &Setup{}
	for _, k := range Order {
		s.Factories = append(s.Factories, &Factory{
			Kind:  k,
			Pool:  append([]string(nil), pools[k]...),
			Slots: min(slots[k], len(pools[k])),
		})
	}
	return s
}

func (s *Setup) Factory(kind Kind) *Factory {
	for _, f := range s.Factories {
		if f.Kind == kind {
			return f
		}
	}
	return nil
}

// Randomize fills every non custom factory in order.
func (s *Setup) Randomize(r *rand.Rand) {
	for _, f := range s.Factories {
		if f.Custom {
			continue
		}
		pool := append([]string(nil), f.Pool...)
		r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, o := range pool[:f.Slots-len(f.Chosen)] {
			if f.Rotations {
				o = fmt.Sprintf("%sr%d", o, r.Intn(6))
			}
			f.Chosen = append(f.Chosen, o)
		}
	}
}

// Fix fills a factory with its pool in order.
func (s *Setup) Fix(kind Kind) {
	f := s.Factory(kind)
	f.Custom = false
	f.Chosen = nil
	for _, o := range f.Pool[:f.Slots] {
		if f.Rotations {
			o += "r0"
		}
		f.Chosen = append(f.Chosen, o)
	}
}

// Next returns the first factory with an empty slot.
func (s *Setup) Next() (*Factory, bool) {
	for _, f := range s.Factories {
		if !f.Done() {
			return f, true
		}
	}
	return nil, false
}

func (s *Setup) Done() bool {
	_, pending := s.Next()
	return !pending
}

// Apply fills slot of kind with option. Asking for another factory or slot
// than Next is a programming error.
func (s *Setup) Apply(kind Kind, slot int, option string) error {
	f, ok := s.Next()
	if !ok || f.Kind != kind || slot != len(f.Chosen) {
		return gameerr.Invariant("setup slot %s/%d is not the next one", kind, slot)
	}
	if utils.FindIndex(f.Options(), option) < 0 {
		return gameerr.IllegalMove("%s is not an option for %s", option, kind)
	}
	f.Chosen = append(f.Chosen, option)
	return nil
}

// Chosen returns the options assigned to kind.
func (s *Setup) Chosen(kind Kind) []string {
	if f := s.Factory(kind); f != nil {
		return append([]string(nil), f.Chosen...)
	}
	return nil
}

func (s *Setup) Copy() *Setup {
	copied := &Setup{}
	for _, f := range s.Factories {
		c := *f
		c.Pool = append([]string(nil), f.Pool...)
		c.Chosen = append([]string(nil), f.Chosen...)
		copied.Factories = append(copied.Factories, &c)
	}
	return copied
}
