package game

import (
	"fmt"
	"strconv"
	"strings"

	"gaia/gameerr"
	"gaia/hex"
	"gaia/player"
	"gaia/setup"
)

// NoPlayer marks a hex without an owner.
const NoPlayer = -1

// GaiaHex is one map cell.
type GaiaHex struct {
	Planet   player.Planet   `json:"planet"`
	Sector   string          `json:"sector"`
	Building player.Building `json:"building,omitempty"`
	Owner    int             `json:"player"`
	// AdditionalMine is the player with a second mine on the planet.
	AdditionalMine *int `json:"additionalMine,omitempty"`
	// Federations lists the players whose federation covers the hex.
	Federations []int `json:"federations,omitempty"`
}

func (g GaiaHex) HasStructure() bool {
	return g.Building != "" && g.Building != player.GaiaFormer
}

func (g GaiaHex) HasAdditionalMine(p int) bool {
	return g.AdditionalMine != nil && *g.AdditionalMine == p
}

// BuildingOf is the building p has on the hex, if any.
func (g GaiaHex) BuildingOf(p int) player.Building {
	switch {
	case g.Owner == p:
		return g.Building
	case g.HasAdditionalMine(p):
		return player.Mine
	}
	return ""
}

func (g GaiaHex) InFederationOf(p int) bool {
	for _, f := range g.Federations {
		if f == p {
			return true
		}
	}
	return false
}

// PlacedSector is a sector tile put on the table.
type PlacedSector struct {
	Name     string  `json:"name"`
	Center   hex.Hex `json:"center"`
	Rotation int     `json:"rotation"`
}

type Map struct {
	Sectors []PlacedSector      `json:"sectors"`
	Hexes   map[hex.Hex]GaiaHex `json:"hexes"`
}

// sectorOffsets lists a sector's hexes relative to its center: center,
// middle ring, outer ring.
var sectorOffsets = func() []hex.Hex {
	origin := hex.Hex{}
	offsets := []hex.Hex{origin}
	offsets = append(offsets, hex.Ring(origin, 1)...)
	return append(offsets, hex.Ring(origin, 2)...)
}()

// NewMap places sectors given as setup options ("7r3") on the positions in order.
func NewMap(options []string) (Map, error) {
	m := Map{Hexes: make(map[hex.Hex]GaiaHex)}
	if len(options) > len(content.Positions) {
		return Map{}, gameerr.Invariant("%d sectors for %d positions", len(options), len(content.Positions))
	}
	for i, option := range options {
		name, rotation, err := setup.ParseSector(option)
		if err != nil {
			return Map{}, err
		}
		data, ok := content.Sectors[name]
		if !ok {
			return Map{}, gameerr.Invariant("unknown sector %q", name)
		}
		placed := PlacedSector{Name: name, Center: content.Positions[i], Rotation: rotation}
		m.Sectors = append(m.Sectors, placed)
		for j, planet := range data.Planets() {
			m.Hexes[placed.hex(j)] = GaiaHex{Planet: planet, Sector: name, Owner: NoPlayer}
		}
	}
	return m, nil
}

func (s PlacedSector) hex(index int) hex.Hex {
	return s.Center.Add(sectorOffsets[index].Rotate(s.Rotation))
}

func (m Map) Contains(h hex.Hex) bool {
	_, ok := m.Hexes[h]
	return ok
}

func (m Map) Get(h hex.Hex) (GaiaHex, bool) {
	g, ok := m.Hexes[h]
	return g, ok
}

func (m Map) Set(h hex.Hex, g GaiaHex) {
	m.Hexes[h] = g
}

// All returns every hex in sorted order.
func (m Map) All() []hex.Hex {
	all := make([]hex.Hex, 0, len(m.Hexes))
	for h := range m.Hexes {
		all = append(all, h)
	}
	hex.Sort(all)
	return all
}

// Structures returns the hexes holding a building of p, gaia formers excluded.
func (m Map) Structures(p int) []hex.Hex {
	var found []hex.Hex
	for _, h := range m.All() {
		if g := m.Hexes[h]; (g.Owner == p && g.HasStructure()) || g.HasAdditionalMine(p) {
			found = append(found, h)
		}
	}
	return found
}

// Presence returns every hex p occupies, gaia formers included.
func (m Map) Presence(p int) []hex.Hex {
	var found []hex.Hex
	for _, h := range m.All() {
		if g := m.Hexes[h]; g.BuildingOf(p) != "" {
			found = append(found, h)
		}
	}
	return found
}

func (m Map) Copy() Map {
	copied := Map{
		Sectors: append([]PlacedSector(nil), m.Sectors...),
		Hexes:   make(map[hex.Hex]GaiaHex, len(m.Hexes)),
	}
	for h, g := range m.Hexes {
		g.Federations = append([]int(nil), g.Federations...)
		copied.Hexes[h] = g
	}
	return copied
}

// ParseCoordinate reads "QxR" or a sector relative position "5A8": sector 5,
// outer ring (A, 0-11), middle ring (B, 0-5) or center (C).
func (m Map) ParseCoordinate(s string) (hex.Hex, error) {
	if strings.Contains(s, "x") {
		return hex.Parse(s)
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return hex.Hex{}, gameerr.Parse("invalid coordinate %q", s)
	}
	name, ring, rest := s[:i], s[i], s[i+1:]
	index := 0
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return hex.Hex{}, gameerr.Parse("invalid coordinate %q", s)
		}
		index = n
	}
	var offset int
	switch {
	case ring == 'C' && index == 0:
		offset = 0
	case ring == 'B' && index < 6:
		offset = 1 + index
	case ring == 'A' && index < 12:
		offset = 7 + index
	default:
		return hex.Hex{}, gameerr.Parse("invalid coordinate %q", s)
	}
	for _, sector := range m.Sectors {
		if sector.Name == name {
			return sector.hex(offset), nil
		}
	}
	return hex.Hex{}, gameerr.Parse("sector %s is not on the map", name)
}

// RelativeName is the inverse of ParseCoordinate for hexes on the map.
func (m Map) RelativeName(h hex.Hex) string {
	for _, sector := range m.Sectors {
		for i := range sectorOffsets {
			if sector.hex(i) != h {
				continue
			}
			switch {
			case i == 0:
				return sector.Name + "C"
			case i < 7:
				return fmt.Sprintf("%sB%d", sector.Name, i-1)
			default:
				return fmt.Sprintf("%sA%d", sector.Name, i-7)
			}
		}
	}
	return h.String()
}
