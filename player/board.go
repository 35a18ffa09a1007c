package player

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"gaia/reward"
)

//go:embed data/boards.yaml
var boardsYAML []byte

//go:embed data/research.yaml
var researchYAML []byte

// BuildingBoard is one building row of a faction board. Income[k] lists the
// events uncovered when the k-th copy is placed.
type BuildingBoard struct {
	Cost   string     `yaml:"cost"`
	Income [][]string `yaml:"income"`
}

type PowerBoard struct {
	Area1      int    `yaml:"area1"`
	Area2      int    `yaml:"area2"`
	Area3      int    `yaml:"area3"`
	Brainstone string `yaml:"brainstone"`
}

// Board is the printed faction board.
type Board struct {
	Planet    Planet                     `yaml:"planet"`
	Start     string                     `yaml:"start"`
	Power     *PowerBoard                `yaml:"power"`
	Income    []string                   `yaml:"income"`
	Buildings map[Building]BuildingBoard `yaml:"buildings"`
	Research  map[Track]int              `yaml:"research"`
	Events    []string                   `yaml:"events"`
}

type boardFile struct {
	Default  Board                        `yaml:"default"`
	Factions map[Faction]Board            `yaml:"factions"`
	Variants map[string]map[Faction]Board `yaml:"variants"`
}

type trackBoard struct {
	Levels [][]string `yaml:"levels"`
	events [][]reward.Event
}

type researchFile struct {
	Tracks          map[Track]*trackBoard `yaml:"tracks"`
	TerraformCost   []int                 `yaml:"terraformCost"`
	NavigationRange []int                 `yaml:"navigationRange"`
	GaiaFormingCost []int                 `yaml:"gaiaFormingCost"`
}

var (
	boards   = mustLoadBoards()
	research = mustLoadResearch()
)

func mustLoadBoards() boardFile {
	var f boardFile
	if err := yaml.Unmarshal(boardsYAML, &f); err != nil {
		panic(fmt.Errorf("failed to load faction boards: %w", err))
	}
	for faction := range f.Factions {
		if _, err := boardFor(f, faction, ""); err != nil {
			panic(err)
		}
	}
	return f
}

func mustLoadResearch() researchFile {
	var f researchFile
	if err := yaml.Unmarshal(researchYAML, &f); err != nil {
		panic(fmt.Errorf("failed to load research tracks: %w", err))
	}
	for track, board := range f.Tracks {
		for level, specs := range board.Levels {
			events, err := reward.ParseEvents(specs)
			if err != nil {
				panic(fmt.Errorf("failed to parse %s level %d: %w", track, level, err))
			}
			board.events = append(board.events, events)
		}
	}
	return f
}

// BoardFor resolves the board of a faction under a faction variant.
func BoardFor(faction Faction, variant string) (Board, error) {
	return boardFor(boards, faction, variant)
}

func boardFor(f boardFile, faction Faction, variant string) (Board, error) {
	own, ok := f.Factions[faction]
	if !ok {
		return Board{}, fmt.Errorf("unknown faction %q", faction)
	}
	board := merge(f.Default, own)
	if variant != "" {
		if overrides, ok := f.Variants[variant]; ok {
			if o, ok := overrides[faction]; ok {
				board = merge(board, o)
			}
		}
	}
	for b, row := range board.Buildings {
		if _, err := reward.Parse(row.Cost); err != nil {
			return Board{}, fmt.Errorf("%s %s cost: %w", faction, b, err)
		}
		for _, slot := range row.Income {
			if _, err := reward.ParseEvents(slot); err != nil {
				return Board{}, fmt.Errorf("%s %s income: %w", faction, b, err)
			}
		}
	}
	if _, err := reward.ParseEvents(board.Income); err != nil {
		return Board{}, fmt.Errorf("%s income: %w", faction, err)
	}
	return board, nil
}

func merge(base, o Board) Board {
	merged := base
	if o.Planet != "" {
		merged.Planet = o.Planet
	}
	if o.Start != "" {
		merged.Start = o.Start
	}
	if o.Power != nil {
		merged.Power = o.Power
	}
	if o.Income != nil {
		merged.Income = o.Income
	}
	if o.Events != nil {
		merged.Events = o.Events
	}
	merged.Buildings = make(map[Building]BuildingBoard, len(base.Buildings))
	for b, row := range base.Buildings {
		merged.Buildings[b] = row
	}
	for b, row := range o.Buildings {
		current := merged.Buildings[b]
		if row.Cost != "" {
			current.Cost = row.Cost
		}
		if row.Income != nil {
			current.Income = row.Income
		}
		merged.Buildings[b] = current
	}
	merged.Research = make(map[Track]int)
	for t, l := range base.Research {
		merged.Research[t] = l
	}
	for t, l := range o.Research {
		merged.Research[t] = l
	}
	return merged
}

// Cost is the price of building b.
func (b Board) Cost(building Building) []reward.Reward {
	return reward.MustParse(b.Buildings[building].Cost)
}

// IncomeSlot lists the events uncovered by the count-th copy of building.
func (b Board) IncomeSlot(building Building, count int) []string {
	row := b.Buildings[building].Income
	if count < 1 || count > len(row) {
		return nil
	}
	return row[count-1]
}

// StartingPower builds the initial power cycle.
func (b Board) StartingPower() Power {
	if b.Power == nil {
		return Power{}
	}
	p := Power{Area1: b.Power.Area1, Area2: b.Power.Area2, Area3: b.Power.Area3}
	if b.Power.Brainstone != "" {
		area, err := ParseArea(b.Power.Brainstone)
		if err == nil {
			p.Brainstone = area
		}
	}
	return p
}
