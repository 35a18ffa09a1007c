package game

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"gaia/hex"
	"gaia/player"
	"gaia/reward"
)

//go:embed data/sectors.yaml
var sectorsYAML []byte

//go:embed data/tiles.yaml
var tilesYAML []byte

type SectorData struct {
	Middle string `yaml:"middle"`
	Outer  string `yaml:"outer"`
}

// Planets lists the sector's planets, center first, then the middle and outer rings.
func (s SectorData) Planets() []player.Planet {
	planets := []player.Planet{player.Empty}
	for _, c := range s.Middle + s.Outer {
		planets = append(planets, player.Planet(string(c)))
	}
	return planets
}

type FederationTileData struct {
	Rewards string `yaml:"rewards"`
	Green   bool   `yaml:"green"`
}

type ConversionData struct {
	Cost string `yaml:"cost"`
	Gain string `yaml:"gain"`
}

// Data is the static game content.
type Data struct {
	Sectors      map[string]SectorData         `yaml:"sectors"`
	Positions    []hex.Hex                     `yaml:"-"`
	Boosters     map[string][]string           `yaml:"boosters"`
	Techs        map[string][]string           `yaml:"techs"`
	AdvTechs     map[string][]string           `yaml:"advtechs"`
	Federations  map[string]FederationTileData `yaml:"federations"`
	RoundScoring map[string][]string           `yaml:"roundScoring"`
	FinalScoring map[string]reward.Condition   `yaml:"finalScoring"`
	BoardActions map[string][]string           `yaml:"boardActions"`
	Conversions  []ConversionData              `yaml:"conversions"`
	// NeutralScoring is what the neutral player of a two player game counts
	// for each final scoring condition.
	NeutralScoring map[reward.Condition]int `yaml:"neutralScoring"`
}

var content = MustLoadData()

// Content returns the loaded static game content.
func Content() *Data {
	return content
}

// MustLoadData parses the embedded content and panics on malformed data.
func MustLoadData() *Data {
	d, err := LoadData(sectorsYAML, tilesYAML)
	if err != nil {
		panic(err)
	}
	return d
}

func LoadData(sectors, tiles []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(sectors, &d); err != nil {
		return nil, fmt.Errorf("failed to parse sectors: %w", err)
	}
	var positions struct {
		Positions []struct {
			Q int `yaml:"q"`
			R int `yaml:"r"`
		} `yaml:"positions"`
	}
	if err := yaml.Unmarshal(sectors, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse sector positions: %w", err)
	}
	for _, p := range positions.Positions {
		d.Positions = append(d.Positions, hex.Hex{Q: p.Q, R: p.R})
	}
	if err := yaml.Unmarshal(tiles, &d); err != nil {
		return nil, fmt.Errorf("failed to parse tiles: %w", err)
	}
	for name, s := range d.Sectors {
		if len(s.Middle) != 6 || len(s.Outer) != 12 {
			return nil, fmt.Errorf("sector %s has %d+%d hexes", name, len(s.Middle), len(s.Outer))
		}
	}
	for _, group := range []map[string][]string{d.Boosters, d.Techs, d.AdvTechs, d.RoundScoring, d.BoardActions} {
		for name, specs := range group {
			if _, err := reward.ParseEvents(specs); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
		}
	}
	for name, f := range d.Federations {
		if _, err := reward.Parse(f.Rewards); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	return &d, nil
}

// TileEvents returns the events printed on any named tile.
func (d *Data) TileEvents(name string) []string {
	for _, group := range []map[string][]string{d.Boosters, d.Techs, d.AdvTechs, d.RoundScoring, d.BoardActions} {
		if specs, ok := group[name]; ok {
			return specs
		}
	}
	return nil
}

// Names returns the keys of a tile group in numeric order: booster2 before booster10.
func Names[V any](group map[string]V) []string {
	names := make([]string, 0, len(group))
	for n := range group {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := splitName(names[i]), splitName(names[j])
		if a.prefix != b.prefix {
			return a.prefix < b.prefix
		}
		return a.number < b.number
	})
	return names
}

type tileName struct {
	prefix string
	number int
}

func splitName(s string) tileName {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	n, _ := strconv.Atoi(s[i:])
	return tileName{prefix: s[:i], number: n}
}
