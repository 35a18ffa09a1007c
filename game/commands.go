package game

import (
	"gaia/autocharge"
	"gaia/hex"
	"gaia/player"
	"gaia/setup"
)

// Command is the verb of a move clause.
type Command string

const (
	CmdSetup      Command = "setup"
	CmdFaction    Command = "faction"
	CmdBid        Command = "bid"
	CmdBuild      Command = "build"
	CmdBooster    Command = "booster"
	CmdUp         Command = "up"
	CmdAction     Command = "action"
	CmdBurn       Command = "burn"
	CmdSpend      Command = "spend"
	CmdFederation Command = "federation"
	CmdPass       Command = "pass"
	CmdTech       Command = "tech"
	CmdCover      Command = "cover"
	CmdCharge     Command = "charge"
	CmdDecline    Command = "decline"
	CmdBrainstone Command = "brainstone"
	CmdIncome     Command = "income"
	CmdSwap       Command = "swap"
)

// AvailableCommand is one legal verb for a player with the parameters it accepts.
type AvailableCommand struct {
	Name   Command `json:"name"`
	Player int     `json:"player"`
	Data   any     `json:"data,omitempty"`
}

type SetupData struct {
	Kind    setup.Kind `json:"kind"`
	Slot    int        `json:"slot"`
	Options []string   `json:"options"`
}

type FactionData struct {
	Factions []player.Faction `json:"factions"`
}

type BidOption struct {
	Faction player.Faction `json:"faction"`
	MinVP   int            `json:"minVP"`
}

type BidData struct {
	Bids []BidOption `json:"bids"`
}

// BuildOption is a building that can go on a hex, with its full cost.
type BuildOption struct {
	Building player.Building `json:"building"`
	Hex      hex.Hex         `json:"coordinates"`
	Cost     string          `json:"cost"`
	Steps    int             `json:"steps,omitempty"`
	Qics     int             `json:"qics,omitempty"`
	Upgrade  bool            `json:"upgrade,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

type BuildData struct {
	Buildings []BuildOption `json:"buildings"`
}

type BoosterData struct {
	Boosters []string `json:"boosters"`
}

type TrackOption struct {
	Track player.Track `json:"track"`
	Cost  string       `json:"cost"`
}

type UpData struct {
	Tracks []TrackOption `json:"tracks"`
}

// ActionOption is an activatable event: a board action or a player's own.
type ActionOption struct {
	Source string `json:"source"`
	Cost   string `json:"cost"`
	Gain   string `json:"gain"`
}

type ActionData struct {
	Actions []ActionOption `json:"actions"`
}

type BurnData struct {
	Max int `json:"max"`
}

type ConversionOption struct {
	Cost string `json:"cost"`
	Gain string `json:"gain"`
}

type SpendData struct {
	Conversions []ConversionOption `json:"conversions"`
}

type FederationOption struct {
	Hexes      []hex.Hex `json:"hexes"`
	Satellites int       `json:"satellites"`
	Warning    string    `json:"warning,omitempty"`
}

type FederationData struct {
	Federations []FederationOption `json:"federations,omitempty"`
	Tiles       []string           `json:"tiles"`
	// Rescore is set when an owned tile is scored again.
	Rescore bool `json:"rescore,omitempty"`
}

type PassData struct {
	Boosters []string `json:"boosters"`
}

type TechOption struct {
	Tile     string `json:"tile"`
	Slot     string `json:"slot"`
	Advanced bool   `json:"advanced,omitempty"`
}

type TechData struct {
	Tiles []TechOption `json:"tiles"`
}

type CoverData struct {
	Tiles []string `json:"tiles"`
}

type ChargeData struct {
	Offers []autocharge.Offer `json:"offers"`
}

type BrainstoneData struct {
	Options []player.Area `json:"options"`
}

type IncomeData struct {
	Chunks []string `json:"chunks"`
}

type SwapData struct {
	Hexes []hex.Hex `json:"hexes"`
}

// Find returns the available command named cmd for player p.
func Find(commands []AvailableCommand, p int, cmd Command) (AvailableCommand, bool) {
	for _, c := range commands {
		if c.Player == p && c.Name == cmd {
			return c, true
		}
	}
	return AvailableCommand{}, false
}
