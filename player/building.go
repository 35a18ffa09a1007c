package player

import "fmt"

// Building is a structure a player places on the map.
type Building string

const (
	Mine               Building = "m"
	TradingStation     Building = "ts"
	ResearchLab        Building = "lab"
	PlanetaryInstitute Building = "PI"
	Academy1           Building = "ac1"
	Academy2           Building = "ac2"
	GaiaFormer         Building = "gf"
	SpaceStation       Building = "sp"
	// LostPlanet is placed on empty space and holds a planet of its own.
	LostPlanet Building = "lp"
)

var Buildings = []Building{Mine, TradingStation, ResearchLab, PlanetaryInstitute, Academy1, Academy2, GaiaFormer, SpaceStation, LostPlanet}

var maxCounts = map[Building]int{
	Mine:               8,
	TradingStation:     4,
	ResearchLab:        3,
	PlanetaryInstitute: 1,
	Academy1:           1,
	Academy2:           1,
	SpaceStation:       1,
	LostPlanet:         1,
}

func ParseBuilding(s string) (Building, error) {
	for _, b := range Buildings {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown building %q", s)
}

// MaxCount is the number of copies on a faction board. Gaia formers are
// limited by the gaia track instead.
func (b Building) MaxCount() int {
	return maxCounts[b]
}

// PowerValue is the building's weight for federations and leech.
func (b Building) PowerValue() int {
	switch b {
	case Mine:
		return 1
	case TradingStation, ResearchLab:
		return 2
	case PlanetaryInstitute, Academy1, Academy2:
		return 3
	case SpaceStation, LostPlanet:
		return 1
	}
	return 0
}

func (b Building) IsAcademy() bool {
	return b == Academy1 || b == Academy2
}

// Upgrades lists the buildings b can be upgraded into.
func (b Building) Upgrades() []Building {
	switch b {
	case Mine:
		return []Building{TradingStation}
	case TradingStation:
		return []Building{ResearchLab, PlanetaryInstitute}
	case ResearchLab:
		return []Building{Academy1, Academy2}
	}
	return nil
}

// Planet is a planet type on the map.
type Planet string

const (
	Terra    Planet = "r"
	Oxide    Planet = "o"
	Volcanic Planet = "s"
	Desert   Planet = "d"
	Swamp    Planet = "v"
	Titanium Planet = "t"
	Ice      Planet = "i"
	Gaia     Planet = "g"
	Transdim Planet = "m"
	Empty    Planet = "e"
	Lost     Planet = "l"
)

// Wheel is the terraforming cycle.
var Wheel = []Planet{Terra, Oxide, Volcanic, Desert, Swamp, Titanium, Ice}

func (p Planet) IsHabitable() bool {
	return p == Gaia || p.wheelIndex() >= 0
}

func (p Planet) wheelIndex() int {
	for i, w := range Wheel {
		if w == p {
			return i
		}
	}
	return -1
}

// TerraformSteps is the distance between two planets on the wheel, or 0
// when either is not on it.
func (p Planet) TerraformSteps(to Planet) int {
	a, b := p.wheelIndex(), to.wheelIndex()
	if a < 0 || b < 0 {
		return 0
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, len(Wheel)-d)
}
