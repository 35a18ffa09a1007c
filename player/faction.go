package player

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gaia/meta"
	"gaia/reward"
)

// Faction identifies a faction board.
type Faction string

const (
	Terrans      Faction = "terrans"
	Lantids      Faction = "lantids"
	Xenos        Faction = "xenos"
	Gleens       Faction = "gleens"
	Taklons      Faction = "taklons"
	Ambas        Faction = "ambas"
	HadschHallas Faction = "hadsch-hallas"
	Ivits        Faction = "ivits"
	Geodens      Faction = "geodens"
	BalTaks      Faction = "bal-taks"
	Firaks       Faction = "firaks"
	Bescods      Faction = "bescods"
	Nevlas       Faction = "nevlas"
	Itars        Faction = "itars"
)

var Factions = []Faction{
	Terrans, Lantids, Xenos, Gleens, Taklons, Ambas, HadschHallas,
	Ivits, Geodens, BalTaks, Firaks, Bescods, Nevlas, Itars,
}

func ParseFaction(s string) (Faction, error) {
	for _, f := range Factions {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown faction %q", s)
}

var title = cases.Title(language.English)

// DisplayName turns "hadsch-hallas" into "Hadsch Hallas".
func (f Faction) DisplayName() string {
	return title.String(strings.ReplaceAll(string(f), "-", " "))
}

// Planet is the faction's home planet type.
func (f Faction) Planet() Planet {
	return boards.Factions[f].Planet
}

// Conversion is a free action exchanging Cost for Gain.
type Conversion struct {
	Cost string
	Gain string
}

// Capabilities collects the rule deviations of one faction. Nil functions
// fall back to the common rules.
type Capabilities struct {
	StartingMines int
	StartsWithPI  bool
	// GaiaReturn is the area gaia-area tokens return to in the gaia phase.
	GaiaReturn Area
	// QicAsOre makes QIC gains ore until the second academy is built.
	QicAsOre bool
	// WeighsBurning marks factions that may prefer keeping tokens for burning over leech.
	WeighsBurning bool

	// AdditionalMines allows a mine on a planet another player colonized.
	AdditionalMines bool
	// GaiaPlanetCost is paid once for a mine on a gaia planet.
	GaiaPlanetCost reward.Resource
	// SatelliteCost is paid per satellite of a federation.
	SatelliteCost reward.Resource
	// GaiaTradeDiscards removes the gaia area tokens spent on gaia trades.
	GaiaTradeDiscards bool

	FederationThreshold func(p *Player) int
	// ChargeOffers returns the reward strings a leech of amount may be taken as.
	ChargeOffers func(p *Player, amount int) []string
	Conversions  func(p *Player) []Conversion
	// Costs rewrites negative rewards before they are paid.
	Costs func(p *Player, rewards []reward.Reward) []reward.Reward
	// GaiaTrades lists what the gaia area tokens can buy in the gaia phase.
	// power holds the common conversions paid with power.
	GaiaTrades func(p *Player, power []Conversion) []Conversion
}

var capabilities = map[Faction]Capabilities{
	Terrans: {
		GaiaReturn: Area2,
		GaiaTrades: func(p *Player, power []Conversion) []Conversion {
			if p.Data.Buildings[PlanetaryInstitute] == 0 {
				return nil
			}
			var trades []Conversion
			for _, c := range power {
				trades = append(trades, Conversion{Cost: strings.Replace(c.Cost, string(reward.ChargePower), string(reward.GaiaToken), 1), Gain: c.Gain})
			}
			return trades
		},
	},
	Lantids: {AdditionalMines: true},
	Xenos: {
		StartingMines: 3,
		FederationThreshold: func(p *Player) int {
			if p.Data.Buildings[PlanetaryInstitute] > 0 {
				return 6
			}
			return meta.FEDERATION_THRESHOLD
		},
	},
	Gleens: {QicAsOre: true, GaiaPlanetCost: reward.Ore},
	Taklons: {
		ChargeOffers: func(p *Player, amount int) []string {
			if p.Data.Buildings[PlanetaryInstitute] == 0 {
				return nil
			}
			return []string{fmt.Sprintf("%dpw,t", amount), fmt.Sprintf("t,%dpw", amount)}
		},
	},
	HadschHallas: {
		Conversions: func(p *Player) []Conversion {
			if p.Data.Buildings[PlanetaryInstitute] == 0 {
				return nil
			}
			return []Conversion{{"4c", "q"}, {"3c", "o"}, {"4c", "k"}}
		},
	},
	Ivits:   {StartingMines: 0, StartsWithPI: true, SatelliteCost: reward.Qic},
	BalTaks: {Conversions: func(p *Player) []Conversion { return []Conversion{{"gf", "q"}} }},
	Nevlas: {
		Costs: func(p *Player, rewards []reward.Reward) []reward.Reward {
			if p.Data.Buildings[PlanetaryInstitute] == 0 {
				return rewards
			}
			halved := make([]reward.Reward, len(rewards))
			for i, r := range rewards {
				if r.Type == reward.ChargePower && r.Count < 0 {
					r.Count = -((-r.Count + 1) / 2)
				}
				halved[i] = r
			}
			return halved
		},
	},
	Itars: {
		WeighsBurning:     true,
		GaiaTradeDiscards: true,
		GaiaTrades: func(p *Player, _ []Conversion) []Conversion {
			if p.Data.Buildings[PlanetaryInstitute] == 0 {
				return nil
			}
			return []Conversion{{"4tg", "tech"}}
		},
	},
}

// Capabilities returns the faction's table with the common defaults filled in.
func (f Faction) Capabilities() Capabilities {
	c, ok := capabilities[f]
	if !ok || (c.StartingMines == 0 && !c.StartsWithPI) {
		c.StartingMines = 2
	}
	if c.GaiaReturn == AreaNone {
		c.GaiaReturn = Area1
	}
	if c.FederationThreshold == nil {
		c.FederationThreshold = func(*Player) int { return meta.FEDERATION_THRESHOLD }
	}
	if c.ChargeOffers == nil {
		c.ChargeOffers = defaultOffers
	} else {
		special := c.ChargeOffers
		c.ChargeOffers = func(p *Player, amount int) []string {
			if offers := special(p, amount); len(offers) > 0 {
				return offers
			}
			return defaultOffers(p, amount)
		}
	}
	if c.Conversions == nil {
		c.Conversions = func(*Player) []Conversion { return nil }
	}
	if c.GaiaPlanetCost == "" {
		c.GaiaPlanetCost = reward.Qic
	}
	if c.SatelliteCost == "" {
		c.SatelliteCost = reward.GainToken
	}
	if c.Costs == nil {
		c.Costs = func(_ *Player, rewards []reward.Reward) []reward.Reward { return rewards }
	}
	if c.GaiaTrades == nil {
		c.GaiaTrades = func(*Player, []Conversion) []Conversion { return nil }
	}
	return c
}

func defaultOffers(_ *Player, amount int) []string {
	return []string{fmt.Sprintf("%dpw", amount)}
}
