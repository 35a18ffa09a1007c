package engine

import (
	"strconv"
	"strings"

	"gaia/game"
	"gaia/gameerr"
	"gaia/hex"
	"gaia/player"
	"gaia/reward"
	"gaia/utils"
)

// buildingConditions are the trigger conditions a new building fires.
var buildingConditions = map[player.Building][]reward.Condition{
	player.Mine:               {reward.Mine},
	player.TradingStation:     {reward.TradingStation},
	player.ResearchLab:        {reward.ResearchLab},
	player.PlanetaryInstitute: {reward.PlanetaryInstitute, reward.PIOrAcademy},
	player.Academy1:           {reward.Academy, reward.PIOrAcademy},
	player.Academy2:           {reward.Academy, reward.PIOrAcademy},
	player.LostPlanet:         {reward.Mine},
}

func popPending(s *game.State) game.Pending {
	pending := s.Turn.Pending[0]
	s.Turn.Pending = s.Turn.Pending[1:]
	return pending
}

func pendingKind(s *game.State) game.PendingKind {
	if len(s.Turn.Pending) == 0 {
		return ""
	}
	return s.Turn.Pending[0].Kind
}

func buildCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 2, "build <building> <coordinates>"); err != nil {
		return err
	}
	building, err := player.ParseBuilding(args[0])
	if err != nil {
		return gameerr.Wrap(gameerr.CodeParse, "invalid building", err)
	}
	h, err := s.Map.ParseCoordinate(args[1])
	if err != nil {
		return err
	}
	var option *game.BuildOption
	for _, o := range available.Data.(game.BuildData).Buildings {
		if o.Building == building && o.Hex == h {
			option = &o
			break
		}
	}
	if option == nil {
		return gameerr.WithMetadata(gameerr.CodeIllegalMove, "cannot build "+string(building)+" on "+h.String(),
			map[string]string{"building": string(building), "coordinates": h.String()})
	}

	if s.Phase == game.SetupBuilding {
		if err := place(s, p, building, h); err != nil {
			return err
		}
		s.Queue = s.Queue[1:]
		if len(s.Queue) > 0 {
			s.Current = s.Queue[0]
		} else {
			startSetupBooster(s)
		}
		return nil
	}

	downgrade := pendingKind(s) == game.PendingDowngrade
	fromPending := downgrade || pendingKind(s) == game.PendingBuild
	if fromPending {
		popPending(s)
	}
	cost, err := parseRewards(option.Cost)
	if err != nil {
		return err
	}
	pay(s, p, cost, string(building))

	pl := s.Players[p]
	typesBefore := s.Count(p, reward.PlanetType)
	old := s.Map.Hexes[h]
	additional := old.Owner != p && old.Owner != game.NoPlayer
	if option.Upgrade {
		pl.RemoveBuilding(old.Building)
	}
	if old.Owner == p && old.Building == player.GaiaFormer {
		pl.RemoveBuilding(player.GaiaFormer)
	}
	if err := place(s, p, building, h); err != nil {
		return err
	}
	pl.Data.ClearTemporary()

	for _, cond := range buildingConditions[building] {
		trigger(s, p, cond, 1)
	}
	if building == player.Mine || building == player.LostPlanet {
		if s.Map.Hexes[h].Planet == player.Gaia {
			trigger(s, p, reward.GaiaPlanet, 1)
		}
		trigger(s, p, reward.TerraformStepDone, option.Steps)
		trigger(s, p, reward.PlanetType, s.Count(p, reward.PlanetType)-typesBefore)
	}
	if additional {
		trigger(s, p, reward.AdditionalMine, 1)
	}
	if downgrade {
		s.Turn.Pending = append([]game.Pending{{Kind: game.PendingUp, Player: p, Source: string(building), Free: true}}, s.Turn.Pending...)
		return nil
	}
	if building == player.ResearchLab || building.IsAcademy() {
		s.Turn.Pending = append([]game.Pending{{Kind: game.PendingTech, Player: p, Source: string(building)}}, s.Turn.Pending...)
	}
	if building != player.GaiaFormer && building != player.SpaceStation {
		queueLeech(s, p, h)
	}
	if !fromPending {
		s.Turn.SubPhase = game.AfterMove
	}
	return nil
}

// place puts a building of p on h without paying for it. A mine on a
// planet of another player joins its building.
func place(s *game.State, p int, building player.Building, h hex.Hex) error {
	g := s.Map.Hexes[h]
	if g.Owner != p && g.Owner != game.NoPlayer {
		owner := p
		g.AdditionalMine = &owner
	} else {
		g.Building, g.Owner = building, p
	}
	if building == player.LostPlanet {
		g.Planet = player.Lost
	}
	s.Map.Set(h, g)
	pl := s.Players[p]
	if err := pl.AddBuilding(building); err != nil {
		return gameerr.Wrap(gameerr.CodeInvariant, "invalid building income", err)
	}
	pl.Data.Occupy(h)
	return nil
}

func upCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "up <track>"); err != nil {
		return err
	}
	t, err := player.ParseTrack(args[0])
	if err != nil {
		return gameerr.Wrap(gameerr.CodeParse, "invalid track", err)
	}
	found := false
	for _, o := range available.Data.(game.UpData).Tracks {
		found = found || o.Track == t
	}
	if !found {
		return gameerr.IllegalMove("cannot advance on %s", t)
	}
	if pendingKind(s) == game.PendingUp {
		pending := popPending(s)
		return advance(s, p, t, pending.Free)
	}
	if err := advance(s, p, t, false); err != nil {
		return err
	}
	s.Turn.SubPhase = game.AfterMove
	return nil
}

func actionCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "action <source>"); err != nil {
		return err
	}
	source := args[0]
	found := false
	for _, o := range available.Data.(game.ActionData).Actions {
		found = found || o.Source == source
	}
	if !found {
		return gameerr.IllegalMove("action %s is not available", source)
	}

	pl := s.Players[p]
	var events []reward.Event
	if specs, ok := game.Content().BoardActions[source]; ok {
		owner := p
		s.BoardActions[source] = &owner
		parsed, err := reward.ParseEvents(specs)
		if err != nil {
			return gameerr.Wrap(gameerr.CodeInvariant, "invalid board action", err)
		}
		events = parsed
	} else {
		for i, e := range pl.Events {
			if e.Source == source && e.Event.Operator == reward.Activate && !e.Event.Activated {
				pl.Events[i].Event.Activated = true
				events = append(events, e.Event)
			}
		}
	}
	cost, gained := s.Activation(p, events)
	gain(s, p, append(reward.Negate(cost), gained...), source)

	var buildings []player.Building
	if reward.Count(gained, reward.TerraformStep) > 0 {
		buildings = []player.Building{player.Mine}
	} else if reward.Count(gained, reward.TemporaryRange) > 0 {
		buildings = []player.Building{player.Mine, player.GaiaFormer}
	}
	if len(buildings) > 0 {
		s.Turn.Pending = append(s.Turn.Pending, game.Pending{Kind: game.PendingBuild, Player: p, Source: source, Buildings: buildings})
	}
	s.Turn.SubPhase = game.AfterMove
	return nil
}

func burnCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "burn <amount>"); err != nil {
		return err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return gameerr.Parse("invalid burn amount %q", args[0])
	}
	if limit := available.Data.(game.BurnData).Max; n < 1 || n > limit {
		return gameerr.IllegalMove("can burn between 1 and %d power", limit)
	}
	s.Players[p].Data.Power.Burn(n)
	return nil
}

// spendCommand handles "spend <cost> for <gain>", a conversion or a multiple of one.
func spendCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if s.Phase == game.RoundGaia {
		return gaiaTradeCommand(s, p, available, args)
	}
	if len(args) != 3 || args[1] != "for" {
		return gameerr.Parse("expected spend <cost> for <gain>")
	}
	cost, err := parseRewards(args[0])
	if err != nil {
		return err
	}
	gained, err := parseRewards(args[2])
	if err != nil {
		return err
	}
	pl := s.Players[p]
	for _, c := range s.Conversions(p) {
		base := reward.MustParse(c.Cost)
		if len(cost) != len(base) || len(base) == 0 || base[0].Count == 0 || cost[0].Count%base[0].Count != 0 {
			continue
		}
		times := cost[0].Count / base[0].Count
		if reward.Format(reward.Scale(base, times)) != reward.Format(cost) ||
			reward.Format(reward.Scale(reward.MustParse(c.Gain), times)) != reward.Format(gained) {
			continue
		}
		if !pl.Data.CanPay(cost) {
			return gameerr.IllegalMove("cannot pay %s", args[0])
		}
		gain(s, p, append(reward.Negate(cost), gained...), "spend")
		return nil
	}
	return gameerr.IllegalMove("no conversion of %s into %s", args[0], args[2])
}

// federationCommand forms a federation ("federation <hexes> <tile>") or
// scores an owned tile again ("federation <tile>").
func federationCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	data := available.Data.(game.FederationData)
	if data.Rescore {
		if err := argCount(args, 1, "federation <tile>"); err != nil {
			return err
		}
		if !utils.Contains(data.Tiles, args[0]) {
			return gameerr.IllegalMove("federation %s is not owned", args[0])
		}
		popPending(s)
		gain(s, p, reward.MustParse(game.Content().Federations[args[0]].Rewards), args[0])
		return nil
	}

	if err := argCount(args, 2, "federation <hexes> <tile>"); err != nil {
		return err
	}
	tile := args[1]
	if !utils.Contains(data.Tiles, tile) {
		return gameerr.IllegalMove("federation %s is not available", tile)
	}
	var hexes []hex.Hex
	for _, c := range strings.Split(args[0], ",") {
		h, err := s.Map.ParseCoordinate(c)
		if err != nil {
			return err
		}
		hexes = append(hexes, h)
	}
	option, err := s.CheckFederation(p, hexes)
	if err != nil {
		return err
	}

	for _, h := range option.Hexes {
		g := s.Map.Hexes[h]
		g.Federations = append(g.Federations, p)
		s.Map.Set(h, g)
	}
	pl := s.Players[p]
	pl.Data.Satellites += option.Satellites
	s.Tiles.Federations[tile]--
	if option.Satellites > 0 {
		gain(s, p, []reward.Reward{reward.New(-option.Satellites, pl.Capabilities().SatelliteCost)}, "satellites")
	}
	takeFederationTile(s, p, tile)
	trigger(s, p, reward.Federation, 1)
	s.Turn.SubPhase = game.AfterMove
	return nil
}

func passCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	boosters := available.Data.(game.PassData).Boosters
	booster := ""
	switch {
	case len(boosters) > 0:
		if err := argCount(args, 1, "pass <booster>"); err != nil {
			return err
		}
		if !utils.Contains(boosters, args[0]) {
			return gameerr.IllegalMove("booster %s is not available", args[0])
		}
		booster = args[0]
	case len(args) > 0:
		return gameerr.IllegalMove("no booster is taken in the last round")
	}

	pl := s.Players[p]
	for _, e := range pl.EventsWith(reward.Pass) {
		gain(s, p, s.EventRewards(p, e.Event), e.Source)
	}
	returnBooster(s, p)
	if booster != "" {
		if err := takeBooster(s, p, booster); err != nil {
			return err
		}
	}
	s.Passed = append(s.Passed, p)
	s.Turn.SubPhase = game.AfterMove
	return nil
}

func techCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "tech <tile>"); err != nil {
		return err
	}
	var option *game.TechOption
	for _, o := range available.Data.(game.TechData).Tiles {
		if o.Tile == args[0] {
			option = &o
			break
		}
	}
	if option == nil {
		return gameerr.IllegalMove("tech tile %s is not available", args[0])
	}
	popPending(s)

	pl := s.Players[p]
	content := game.Content()
	var specs []string
	var next []game.Pending
	if option.Advanced {
		pl.UseGreenFederation()
		pl.AdvTechs = append(pl.AdvTechs, option.Tile)
		s.Tiles.AdvTechs[option.Slot] = ""
		specs = content.AdvTechs[option.Tile]
		next = append(next, game.Pending{Kind: game.PendingCover, Player: p, Source: option.Tile})
	} else {
		pl.Techs = append(pl.Techs, option.Tile)
		specs = content.Techs[option.Tile]
	}
	if err := pl.AddEvents(option.Tile, specs); err != nil {
		return gameerr.Wrap(gameerr.CodeInvariant, "invalid tech tile", err)
	}
	events, _ := reward.ParseEvents(specs)
	gain(s, p, onceRewards(s, p, events), option.Tile)

	if t, err := player.ParseTrack(option.Slot); err == nil {
		if s.CanAdvance(p, t) {
			next = append(next, game.Pending{Kind: game.PendingUp, Player: p, Source: option.Tile, Free: true, Tracks: []player.Track{t}})
		}
	} else {
		next = append(next, game.Pending{Kind: game.PendingUp, Player: p, Source: option.Tile, Free: true})
	}
	s.Turn.Pending = append(next, s.Turn.Pending...)
	return nil
}

func coverCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "cover <tile>"); err != nil {
		return err
	}
	if !utils.Contains(available.Data.(game.CoverData).Tiles, args[0]) {
		return gameerr.IllegalMove("tech tile %s cannot be covered", args[0])
	}
	popPending(s)
	pl := s.Players[p]
	pl.Covered = append(pl.Covered, args[0])
	pl.RemoveEvents(args[0])
	return nil
}

func brainstoneCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "brainstone <area>"); err != nil {
		return err
	}
	area, err := player.ParseArea(args[0])
	if err != nil {
		return gameerr.Wrap(gameerr.CodeParse, "invalid area", err)
	}
	pending := s.Turn.Pending[0]
	use, err := pending.Choice.Use(area)
	if err != nil {
		return gameerr.Wrap(gameerr.CodeIllegalMove, "invalid brainstone destination", err)
	}
	popPending(s)
	remaining, err := parseRewards(pending.Remaining)
	if err != nil {
		return err
	}
	gainWith(s, p, remaining, pending.Source, use)
	return nil
}

// swapCommand exchanges the planetary institute with a mine.
func swapCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "swap <coordinates>"); err != nil {
		return err
	}
	h, err := s.Map.ParseCoordinate(args[0])
	if err != nil {
		return err
	}
	if !utils.Contains(available.Data.(game.SwapData).Hexes, h) {
		return gameerr.IllegalMove("cannot swap with %s", h)
	}
	popPending(s)
	for _, o := range s.Map.Structures(p) {
		if g := s.Map.Hexes[o]; g.Owner == p && g.Building == player.PlanetaryInstitute {
			g.Building = player.Mine
			s.Map.Set(o, g)
		}
	}
	g := s.Map.Hexes[h]
	g.Building = player.PlanetaryInstitute
	s.Map.Set(h, g)
	return nil
}
