package game

import (
	"fmt"
	"sort"

	"gaia/autocharge"
	"gaia/hex"
	"gaia/meta"
	"gaia/player"
	"gaia/reward"
	"gaia/utils"
)

// TechSlots are the standard tech positions: one under each track, then the common row.
var TechSlots = []string{"terra", "nav", "int", "gaia", "eco", "sci", "common1", "common2", "common3"}

// AvailableCommands lists every legal command for the state. It never
// fails; a phase without choices gives no commands.
func AvailableCommands(s *State) []AvailableCommand {
	switch s.Phase {
	case SetupBoard:
		return s.setupCommands()
	case SetupFaction:
		return s.factionCommands()
	case SetupAuction:
		return s.bidCommands()
	case SetupBuilding:
		return s.setupBuildingCommands()
	case SetupBooster:
		return []AvailableCommand{{Name: CmdBooster, Player: s.Current, Data: BoosterData{Boosters: s.Tiles.Boosters}}}
	case RoundIncome:
		return s.incomeCommands()
	case RoundGaia:
		return s.gaiaCommands()
	case RoundLeech:
		return s.leechCommands()
	case RoundMove:
		return s.moveCommands()
	}
	return nil
}

func (s *State) setupCommands() []AvailableCommand {
	if s.Setup == nil {
		return nil
	}
	f, ok := s.Setup.Next()
	if !ok {
		return nil
	}
	return []AvailableCommand{{
		Name:   CmdSetup,
		Player: s.Current,
		Data:   SetupData{Kind: f.Kind, Slot: len(f.Chosen), Options: f.Options()},
	}}
}

func (s *State) factionCommands() []AvailableCommand {
	var factions []player.Faction
	if len(s.RandomFactions) > s.Current {
		factions = []player.Faction{s.RandomFactions[s.Current]}
	} else {
		for _, f := range player.Factions {
			if s.factionAvailable(f) {
				factions = append(factions, f)
			}
		}
	}
	return []AvailableCommand{{Name: CmdFaction, Player: s.Current, Data: FactionData{Factions: factions}}}
}

func (s *State) factionAvailable(f player.Faction) bool {
	var taken []player.Faction
	for _, p := range s.Players {
		if p.Faction != "" {
			taken = append(taken, p.Faction)
		}
	}
	if s.Auction != nil {
		for _, b := range s.Auction.Bids {
			taken = append(taken, b.Faction)
		}
	}
	for _, t := range taken {
		if t == f || t.Planet() == f.Planet() {
			return false
		}
	}
	return true
}

func (s *State) bidCommands() []AvailableCommand {
	if s.Auction == nil {
		return nil
	}
	var bids []BidOption
	for _, b := range s.Auction.Bids {
		minVP := 0
		if b.Player != NoPlayer {
			minVP = b.VP + 1
		}
		bids = append(bids, BidOption{Faction: b.Faction, MinVP: minVP})
	}
	return []AvailableCommand{{Name: CmdBid, Player: s.Current, Data: BidData{Bids: bids}}}
}

func (s *State) setupBuildingCommands() []AvailableCommand {
	if len(s.Queue) == 0 {
		return nil
	}
	p := s.Players[s.Queue[0]]
	building := player.Mine
	if p.Capabilities().StartsWithPI && p.Data.Buildings[player.PlanetaryInstitute] == 0 {
		building = player.PlanetaryInstitute
	}
	var options []BuildOption
	for _, h := range s.Map.All() {
		g := s.Map.Hexes[h]
		if g.Building == "" && g.Planet == p.Faction.Planet() {
			options = append(options, BuildOption{Building: building, Hex: h, Cost: "~"})
		}
	}
	return []AvailableCommand{{Name: CmdBuild, Player: p.Index, Data: BuildData{Buildings: options}}}
}

func (s *State) incomeCommands() []AvailableCommand {
	if len(s.Turn.Income) == 0 {
		return nil
	}
	c := s.Turn.Income[0]
	var chunks []string
	for _, chunk := range c.Chunks {
		if !utils.Contains(chunks, chunk) {
			chunks = append(chunks, chunk)
		}
	}
	return []AvailableCommand{{Name: CmdIncome, Player: c.Player, Data: IncomeData{Chunks: chunks}}}
}

// gaiaCommands offers the gaia area trades of the first player still
// trading. Choices the trades lead to come first.
func (s *State) gaiaCommands() []AvailableCommand {
	if len(s.Turn.Pending) > 0 {
		return s.pendingCommands(s.Turn.Pending[0])
	}
	if len(s.Turn.Leech) > 0 {
		return s.leechCommands()
	}
	if len(s.Turn.Gaia) == 0 {
		return nil
	}
	t := s.Turn.Gaia[0]
	return []AvailableCommand{
		{Name: CmdSpend, Player: t.Player, Data: SpendData{Conversions: s.GaiaTradeOptions(t.Player, t.Budget)}},
		{Name: CmdDecline, Player: t.Player},
	}
}

// GaiaTradeOptions lists the trades p can make with budget gaia area tokens.
func (s *State) GaiaTradeOptions(p int, budget int) []ConversionOption {
	pl := s.Players[p]
	var power []player.Conversion
	for _, c := range content.Conversions {
		cost := reward.MustParse(c.Cost)
		if len(cost) == 1 && cost[0].Type == reward.ChargePower {
			power = append(power, player.Conversion{Cost: c.Cost, Gain: c.Gain})
		}
	}
	var options []ConversionOption
	for _, c := range pl.Capabilities().GaiaTrades(pl, power) {
		if reward.Count(reward.MustParse(c.Cost), reward.GaiaToken) > budget {
			continue
		}
		if !s.canReceive(p, reward.MustParse(c.Gain)) {
			continue
		}
		options = append(options, ConversionOption{Cost: c.Cost, Gain: c.Gain})
	}
	return options
}

func (s *State) leechCommands() []AvailableCommand {
	if len(s.Turn.Leech) == 0 {
		return nil
	}
	l := s.Turn.Leech[0]
	return []AvailableCommand{
		{Name: CmdCharge, Player: l.Player, Data: ChargeData{Offers: s.LeechOffers(l)}},
		{Name: CmdDecline, Player: l.Player},
	}
}

// LeechOffers lists the ways p may take a leech, with the power each
// really charges and its victory point cost.
func (s *State) LeechOffers(l Leech) []autocharge.Offer {
	p := s.Players[l.Player]
	var offers []autocharge.Offer
	for _, spec := range p.Capabilities().ChargeOffers(p, l.Amount) {
		power := p.Data.Power
		charged := 0
		for _, r := range reward.MustParse(spec) {
			switch r.Type {
			case reward.ChargePower:
				charged += power.Charge(r.Count)
			case reward.GainToken:
				power.GainTokens(r.Count)
			}
		}
		offers = append(offers, autocharge.Offer{Offer: spec, Charge: charged, Cost: max(0, charged-1)})
	}
	return offers
}

func (s *State) moveCommands() []AvailableCommand {
	if len(s.Turn.Pending) > 0 {
		return s.pendingCommands(s.Turn.Pending[0])
	}
	p := s.Current
	var commands []AvailableCommand
	if s.Turn.SubPhase == BeforeMove {
		if options := s.BuildOptions(p, nil); len(options) > 0 {
			commands = append(commands, AvailableCommand{Name: CmdBuild, Player: p, Data: BuildData{Buildings: options}})
		}
		if tracks := s.UpOptions(p, false, nil); len(tracks) > 0 {
			commands = append(commands, AvailableCommand{Name: CmdUp, Player: p, Data: UpData{Tracks: tracks}})
		}
		if actions := s.ActionOptions(p); len(actions) > 0 {
			commands = append(commands, AvailableCommand{Name: CmdAction, Player: p, Data: ActionData{Actions: actions}})
		}
		if tiles := s.FederationTiles(); len(tiles) > 0 {
			if feds := s.FederationOptions(p); len(feds) > 0 {
				commands = append(commands, AvailableCommand{Name: CmdFederation, Player: p, Data: FederationData{Federations: feds, Tiles: tiles}})
			}
		}
		var boosters []string
		if !s.LastRound() {
			boosters = s.Tiles.Boosters
		}
		commands = append(commands, AvailableCommand{Name: CmdPass, Player: p, Data: PassData{Boosters: boosters}})
	}
	return append(commands, s.freeCommands(p)...)
}

func (s *State) freeCommands(p int) []AvailableCommand {
	var commands []AvailableCommand
	if burnable := s.Players[p].Data.Power.MaxBurn(); burnable > 0 {
		commands = append(commands, AvailableCommand{Name: CmdBurn, Player: p, Data: BurnData{Max: burnable}})
	}
	if conversions := s.ConversionOptions(p); len(conversions) > 0 {
		commands = append(commands, AvailableCommand{Name: CmdSpend, Player: p, Data: SpendData{Conversions: conversions}})
	}
	return commands
}

func (s *State) pendingCommands(pending Pending) []AvailableCommand {
	p := pending.Player
	switch pending.Kind {
	case PendingTech:
		return []AvailableCommand{{Name: CmdTech, Player: p, Data: TechData{Tiles: s.TechOptions(p)}}}
	case PendingCover:
		pl := s.Players[p]
		var tiles []string
		for _, t := range pl.Techs {
			if !utils.Contains(pl.Covered, t) {
				tiles = append(tiles, t)
			}
		}
		return []AvailableCommand{{Name: CmdCover, Player: p, Data: CoverData{Tiles: tiles}}}
	case PendingUp:
		return []AvailableCommand{{Name: CmdUp, Player: p, Data: UpData{Tracks: s.UpOptions(p, pending.Free, pending.Tracks)}}}
	case PendingFederation:
		var tiles []string
		for _, f := range s.Players[p].Federations {
			if !utils.Contains(tiles, f.Tile) {
				tiles = append(tiles, f.Tile)
			}
		}
		return []AvailableCommand{{Name: CmdFederation, Player: p, Data: FederationData{Tiles: tiles, Rescore: true}}}
	case PendingBuild:
		return []AvailableCommand{{Name: CmdBuild, Player: p, Data: BuildData{Buildings: s.BuildOptions(p, pending.Buildings)}}}
	case PendingDowngrade:
		return []AvailableCommand{{Name: CmdBuild, Player: p, Data: BuildData{Buildings: s.DowngradeOptions(p)}}}
	case PendingSwap:
		var hexes []hex.Hex
		for _, h := range s.Map.Structures(p) {
			if g := s.Map.Hexes[h]; g.Owner == p && g.Building == player.Mine {
				hexes = append(hexes, h)
			}
		}
		return []AvailableCommand{{Name: CmdSwap, Player: p, Data: SwapData{Hexes: hexes}}}
	case PendingBrainstone:
		var options []player.Area
		if pending.Choice != nil {
			options = pending.Choice.Options
		}
		return []AvailableCommand{{Name: CmdBrainstone, Player: p, Data: BrainstoneData{Options: options}}}
	}
	return nil
}

// BuildOptions lists new buildings and upgrades for p. A non-empty only
// restricts the result to placing those buildings, without upgrades.
func (s *State) BuildOptions(p int, only []player.Building) []BuildOption {
	pl := s.Players[p]
	board := pl.Board()
	presence := s.Map.Presence(p)
	allowed := func(b player.Building) bool {
		return len(only) == 0 || utils.Contains(only, b)
	}
	var options []BuildOption
	add := func(o BuildOption, cost []reward.Reward) {
		if !pl.CanPay(cost) {
			return
		}
		o.Cost = reward.Format(cost)
		options = append(options, o)
	}
	for _, h := range s.Map.All() {
		g := s.Map.Hexes[h]
		switch {
		case g.Building == "":
			qics := s.qicsForRange(p, h, presence)
			if qics < 0 {
				continue
			}
			extra := []reward.Reward{reward.New(qics, reward.Qic)}
			if allowed(player.Mine) && pl.Data.Buildings[player.Mine] < player.Mine.MaxCount() && g.Planet.IsHabitable() {
				steps := pl.Faction.Planet().TerraformSteps(g.Planet)
				cost := reward.Merge(board.Cost(player.Mine), extra,
					[]reward.Reward{reward.New(pl.Data.TerraformCost(steps), reward.Ore)})
				if g.Planet == player.Gaia {
					cost = reward.Merge(cost, []reward.Reward{reward.New(1, pl.Capabilities().GaiaPlanetCost)})
				}
				add(BuildOption{Building: player.Mine, Hex: h, Steps: steps, Qics: qics}, cost)
			}
			if allowed(player.GaiaFormer) && g.Planet == player.Transdim && pl.Data.AvailableGaiaFormers() > 0 {
				tokens := player.GaiaFormingCost(pl.Data.Research[player.GaiaProject])
				cost := reward.Merge(extra, []reward.Reward{reward.New(tokens, reward.GaiaToken)})
				add(BuildOption{Building: player.GaiaFormer, Hex: h, Qics: qics}, cost)
			}
			for _, b := range []player.Building{player.SpaceStation, player.LostPlanet} {
				if len(only) > 0 && allowed(b) && g.Planet == player.Empty && pl.Data.Buildings[b] < b.MaxCount() {
					add(BuildOption{Building: b, Hex: h, Qics: qics}, extra)
				}
			}
		case g.Owner != p && s.canAddMine(p, g):
			qics := s.qicsForRange(p, h, presence)
			if qics < 0 || !allowed(player.Mine) || pl.Data.Buildings[player.Mine] >= player.Mine.MaxCount() {
				continue
			}
			cost := reward.Merge(board.Cost(player.Mine), []reward.Reward{reward.New(qics, reward.Qic)})
			add(BuildOption{Building: player.Mine, Hex: h, Qics: qics}, cost)
		case g.Owner == p && g.Building == player.GaiaFormer:
			if allowed(player.Mine) && g.Planet == player.Gaia && pl.Data.Buildings[player.Mine] < player.Mine.MaxCount() {
				add(BuildOption{Building: player.Mine, Hex: h}, board.Cost(player.Mine))
			}
		case g.Owner == p && len(only) == 0 && g.Planet != player.Lost:
			for _, up := range g.Building.Upgrades() {
				if pl.Data.Buildings[up] >= up.MaxCount() {
					continue
				}
				cost := board.Cost(up)
				if up == player.TradingStation && s.hasNeighbour(p, h, meta.TRADING_STATION_DISTANCE) {
					cost = reward.Merge(cost, reward.MustParse("-3c"))
				}
				add(BuildOption{Building: up, Hex: h, Upgrade: true}, cost)
			}
		}
	}
	return options
}

// canAddMine reports whether p may put a mine next to another player's
// building on a colonized planet.
func (s *State) canAddMine(p int, g GaiaHex) bool {
	if !s.Players[p].Capabilities().AdditionalMines || g.Owner == NoPlayer || g.AdditionalMine != nil {
		return false
	}
	switch g.Building {
	case "", player.GaiaFormer, player.SpaceStation, player.LostPlanet:
		return false
	}
	return true
}

// DowngradeOptions lists the research labs p can turn back into trading stations.
func (s *State) DowngradeOptions(p int) []BuildOption {
	pl := s.Players[p]
	if pl.Data.Buildings[player.TradingStation] >= player.TradingStation.MaxCount() {
		return nil
	}
	var options []BuildOption
	for _, h := range s.Map.Structures(p) {
		if g := s.Map.Hexes[h]; g.Owner == p && g.Building == player.ResearchLab {
			options = append(options, BuildOption{Building: player.TradingStation, Hex: h, Cost: "~", Upgrade: true})
		}
	}
	return options
}

// qicsForRange is the QIC needed to reach h, or -1 when p has no presence.
func (s *State) qicsForRange(p int, h hex.Hex, presence []hex.Hex) int {
	if len(presence) == 0 {
		return -1
	}
	missing := hex.DistanceToAny(h, presence) - s.Players[p].Data.Range()
	if missing <= 0 {
		return 0
	}
	return (missing + 1) / 2
}

// hasNeighbour reports a structure of another player within distance of h.
func (s *State) hasNeighbour(p int, h hex.Hex, distance int) bool {
	for o, g := range s.Map.Hexes {
		if g.Owner != NoPlayer && g.Owner != p && g.HasStructure() && hex.Distance(o, h) <= distance {
			return true
		}
	}
	return false
}

// UpOptions lists the tracks p can advance on. Free advances cost nothing.
func (s *State) UpOptions(p int, free bool, tracks []player.Track) []TrackOption {
	pl := s.Players[p]
	if len(tracks) == 0 {
		tracks = player.Tracks
	}
	cost := fmt.Sprintf("%dk", meta.RESEARCH_COST)
	if free {
		cost = "~"
	}
	var options []TrackOption
	for _, t := range tracks {
		if !s.CanAdvance(p, t) {
			continue
		}
		if !free && !pl.CanPay(reward.MustParse(cost)) {
			continue
		}
		options = append(options, TrackOption{Track: t, Cost: cost})
	}
	return options
}

// CanAdvance checks the track limits: the last level needs a green
// federation token and belongs to a single player.
func (s *State) CanAdvance(p int, t player.Track) bool {
	level := s.Players[p].Data.Research[t]
	if level >= meta.MAX_RESEARCH_LEVEL {
		return false
	}
	if level == meta.MAX_RESEARCH_LEVEL-1 {
		if !s.Players[p].HasGreenFederation() {
			return false
		}
		for _, o := range s.Players {
			if o.Data.Research[t] >= meta.MAX_RESEARCH_LEVEL {
				return false
			}
		}
	}
	return true
}

// LowestTracks are the tracks where p has the lowest level and can advance.
func (s *State) LowestTracks(p int) []player.Track {
	lowest := meta.MAX_RESEARCH_LEVEL
	var tracks []player.Track
	for _, t := range player.Tracks {
		if !s.CanAdvance(p, t) {
			continue
		}
		level := s.Players[p].Data.Research[t]
		if level < lowest {
			lowest, tracks = level, nil
		}
		if level == lowest {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// ActionOptions lists board actions and p's own activatable events.
func (s *State) ActionOptions(p int) []ActionOption {
	pl := s.Players[p]
	var options []ActionOption
	consider := func(source string, events []reward.Event) {
		cost, gain := s.Activation(p, events)
		if !pl.CanPay(cost) || !s.canReceive(p, gain) {
			return
		}
		options = append(options, ActionOption{Source: source, Cost: reward.Format(cost), Gain: reward.Format(gain)})
	}
	for _, name := range Names(content.BoardActions) {
		if s.BoardActions[name] != nil {
			continue
		}
		events, _ := reward.ParseEvents(content.BoardActions[name])
		consider(name, events)
	}
	var sources []string
	for _, e := range pl.EventsWith(reward.Activate) {
		if !e.Event.Activated && !utils.Contains(sources, e.Source) {
			sources = append(sources, e.Source)
		}
	}
	for _, source := range sources {
		var events []reward.Event
		for _, e := range pl.EventsWith(reward.Activate) {
			if e.Source == source && !e.Event.Activated {
				events = append(events, e.Event)
			}
		}
		consider(source, events)
	}
	return options
}

// Activation sums the cost and the gain of activating events together.
func (s *State) Activation(p int, events []reward.Event) ([]reward.Reward, []reward.Reward) {
	var cost, gain []reward.Reward
	for _, e := range events {
		cost = append(cost, e.Cost...)
		gain = append(gain, s.EventRewards(p, reward.Event{Condition: e.Condition, Rewards: e.Rewards})...)
	}
	return reward.Merge(cost), reward.Merge(gain)
}

// canReceive rejects activations whose gain would have no effect.
func (s *State) canReceive(p int, gain []reward.Reward) bool {
	for _, r := range gain {
		switch r.Type {
		case reward.Tech:
			if len(s.TechOptions(p)) == 0 {
				return false
			}
		case reward.RescoreFederation:
			if len(s.Players[p].Federations) == 0 {
				return false
			}
		case reward.SwapPI:
			if s.Players[p].Data.Buildings[player.Mine] == 0 {
				return false
			}
		case reward.DowngradeLab:
			if len(s.DowngradeOptions(p)) == 0 {
				return false
			}
		}
	}
	return true
}

// ConversionOptions lists the free conversions p can afford.
func (s *State) ConversionOptions(p int) []ConversionOption {
	pl := s.Players[p]
	var options []ConversionOption
	for _, c := range s.Conversions(p) {
		if pl.CanPay(reward.MustParse(c.Cost)) {
			options = append(options, c)
		}
	}
	return options
}

// Conversions lists every conversion p knows, common ones first.
func (s *State) Conversions(p int) []ConversionOption {
	var all []ConversionOption
	for _, c := range content.Conversions {
		all = append(all, ConversionOption{Cost: c.Cost, Gain: c.Gain})
	}
	pl := s.Players[p]
	for _, c := range pl.Capabilities().Conversions(pl) {
		all = append(all, ConversionOption{Cost: c.Cost, Gain: c.Gain})
	}
	return all
}

// TechOptions lists standard tiles p does not own and advanced tiles p qualifies for.
func (s *State) TechOptions(p int) []TechOption {
	pl := s.Players[p]
	var options []TechOption
	for _, slot := range TechSlots {
		tile := s.Tiles.Techs[slot]
		if tile == "" || utils.Contains(pl.Techs, tile) {
			continue
		}
		options = append(options, TechOption{Tile: tile, Slot: slot})
	}
	uncovered := len(pl.Techs) > len(pl.Covered)
	if pl.HasGreenFederation() && uncovered {
		for _, t := range player.Tracks {
			tile := s.Tiles.AdvTechs[string(t)]
			if tile != "" && pl.Data.Research[t] >= 4 {
				options = append(options, TechOption{Tile: tile, Slot: string(t), Advanced: true})
			}
		}
	}
	return options
}

// FederationTiles lists the federation tiles left in the supply.
func (s *State) FederationTiles() []string {
	var tiles []string
	for _, name := range Names(s.Tiles.Federations) {
		if s.Tiles.Federations[name] > 0 {
			tiles = append(tiles, name)
		}
	}
	sort.Strings(tiles)
	return tiles
}
