package engine

import (
	"encoding/binary"
	"strconv"

	"golang.org/x/exp/rand"
	"lukechampine.com/blake3"

	"gaia/game"
	"gaia/gameerr"
	"gaia/player"
	"gaia/reward"
	"gaia/setup"
	"gaia/utils"
)

const (
	MIN_PLAYERS = 2
	MAX_PLAYERS = 4
)

// federationCopies is the supply of every federation tile.
const federationCopies = 3

// seedSource turns the seed text of the init move into a random source.
func seedSource(seed string) rand.Source {
	sum := blake3.Sum256([]byte(seed))
	return rand.NewSource(binary.LittleEndian.Uint64(sum[:8]))
}

// initGame handles "init <players> <seed>".
func initGame(s *game.State, fields []string) error {
	if len(fields) != 3 || fields[0] != "init" {
		return gameerr.Parse("expected init <players> <seed>")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < MIN_PLAYERS || n > MAX_PLAYERS {
		return gameerr.IllegalMove("invalid player count %q", fields[1])
	}
	seed := fields[2]
	history := s.MoveHistory
	*s = *game.NewState(n, seed, s.Options)
	s.MoveHistory = history

	content := game.Content()
	pools := map[setup.Kind][]string{
		setup.Boosters:     game.Names(content.Boosters),
		setup.Techs:        game.Names(content.Techs),
		setup.AdvTechs:     game.Names(content.AdvTechs),
		setup.TerraFed:     game.Names(content.Federations),
		setup.RoundScoring: game.Names(content.RoundScoring),
		setup.FinalScoring: game.Names(content.FinalScoring),
		setup.Map:          game.Names(content.Sectors),
	}
	su := setup.New(n, pools)
	switch s.Options.Layout {
	case game.FixedLayout:
		su.Fix(setup.Map)
	case game.CustomLayout:
		su.Factory(setup.Map).Custom = true
		su.Factory(setup.Map).Rotations = s.Options.Advanced
	default:
		su.Factory(setup.Map).Rotations = s.Options.Advanced
	}
	rng := rand.New(seedSource(seed))
	su.Randomize(rng)
	s.Setup = su
	if s.Options.RandomFactions {
		s.RandomFactions = pickFactions(rng, n)
	}

	setPhase(s, game.SetupBoard)
	if su.Done() {
		return finishBoard(s)
	}
	return nil
}

// pickFactions draws n factions with distinct home planets.
func pickFactions(rng *rand.Rand, n int) []player.Faction {
	factions := append([]player.Faction(nil), player.Factions...)
	rng.Shuffle(len(factions), func(i, j int) { factions[i], factions[j] = factions[j], factions[i] })
	var picked []player.Faction
	for _, f := range factions {
		if len(picked) == n {
			break
		}
		clash := false
		for _, o := range picked {
			if o.Planet() == f.Planet() {
				clash = true
			}
		}
		if !clash {
			picked = append(picked, f)
		}
	}
	return picked
}

// finishBoard lays out the map and tiles chosen by setup.
func finishBoard(s *game.State) error {
	m, err := game.NewMap(s.Setup.Chosen(setup.Map))
	if err != nil {
		return err
	}
	s.Map = m

	tiles := game.Tiles{
		Boosters:     s.Setup.Chosen(setup.Boosters),
		Techs:        make(map[string]string),
		AdvTechs:     make(map[string]string),
		Federations:  make(map[string]int),
		RoundScoring: s.Setup.Chosen(setup.RoundScoring),
		FinalScoring: s.Setup.Chosen(setup.FinalScoring),
	}
	sortTiles(tiles.Boosters)
	for i, tile := range s.Setup.Chosen(setup.Techs) {
		if i < len(game.TechSlots) {
			tiles.Techs[game.TechSlots[i]] = tile
		}
	}
	for i, tile := range s.Setup.Chosen(setup.AdvTechs) {
		if i < len(player.Tracks) {
			tiles.AdvTechs[string(player.Tracks[i])] = tile
		}
	}
	for name := range game.Content().Federations {
		tiles.Federations[name] = federationCopies
	}
	if terra := s.Setup.Chosen(setup.TerraFed); len(terra) > 0 {
		tiles.TerraFed = terra[0]
		tiles.Federations[terra[0]]--
	}
	s.Tiles = tiles

	setPhase(s, game.SetupFaction)
	s.Current = s.TurnOrder[0]
	return nil
}

func setupCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 2, "setup <kind> <option>"); err != nil {
		return err
	}
	data := available.Data.(game.SetupData)
	if string(data.Kind) != args[0] {
		return gameerr.IllegalMove("the next setup slot is %s", data.Kind)
	}
	if !utils.Contains(data.Options, args[1]) {
		return gameerr.IllegalMove("%s is not an option for %s", args[1], data.Kind)
	}
	if err := s.Setup.Apply(data.Kind, data.Slot, args[1]); err != nil {
		return err
	}
	if s.Setup.Done() {
		return finishBoard(s)
	}
	return nil
}

func factionCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "faction <name>"); err != nil {
		return err
	}
	f, err := player.ParseFaction(args[0])
	if err != nil {
		return gameerr.Wrap(gameerr.CodeParse, "invalid faction", err)
	}
	if !utils.Contains(available.Data.(game.FactionData).Factions, f) {
		return gameerr.IllegalMove("faction %s is not available", f)
	}

	picked := 0
	if s.Options.Auction {
		if s.Auction == nil {
			s.Auction = &game.Auction{}
		}
		s.Auction.Bids = append(s.Auction.Bids, game.Bid{Faction: f, Player: game.NoPlayer})
		picked = len(s.Auction.Bids)
	} else {
		if err := selectFaction(s, p, f, 0); err != nil {
			return err
		}
		for _, pl := range s.Players {
			if pl.Faction != "" {
				picked++
			}
		}
	}
	if picked < len(s.Players) {
		s.Current = s.TurnOrder[picked]
		return nil
	}
	if s.Options.Auction {
		setPhase(s, game.SetupAuction)
		s.Current = s.TurnOrder[0]
		return nil
	}
	startSetupBuilding(s)
	return nil
}

func selectFaction(s *game.State, p int, f player.Faction, bid int) error {
	pl := s.Players[p]
	once, err := pl.SelectFaction(f, s.Options.Variant())
	if err != nil {
		return gameerr.Wrap(gameerr.CodeInvariant, "failed to load faction board", err)
	}
	for _, e := range once {
		gain(s, p, s.EventRewards(p, e), "init")
	}
	if bid > 0 {
		gain(s, p, []reward.Reward{reward.New(-bid, reward.VictoryPoint)}, "bid")
	}
	return nil
}

func bidCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 2, "bid <faction> <vp>"); err != nil {
		return err
	}
	vp, err := strconv.Atoi(args[1])
	if err != nil {
		return gameerr.Parse("invalid bid %q", args[1])
	}
	var option *game.BidOption
	for _, b := range available.Data.(game.BidData).Bids {
		if string(b.Faction) == args[0] {
			option = &b
			break
		}
	}
	if option == nil {
		return gameerr.IllegalMove("faction %s is not in the auction", args[0])
	}
	if vp < option.MinVP {
		return gameerr.IllegalMove("bid on %s must be at least %d", args[0], option.MinVP)
	}
	for i, b := range s.Auction.Bids {
		if b.Faction == option.Faction {
			s.Auction.Bids[i].Player, s.Auction.Bids[i].VP = p, vp
		}
	}

	holding := func(q int) bool {
		for _, b := range s.Auction.Bids {
			if b.Player == q {
				return true
			}
		}
		return false
	}
	start := utils.FindIndex(s.TurnOrder, p)
	for k := 1; k <= len(s.TurnOrder); k++ {
		if q := s.TurnOrder[(start+k)%len(s.TurnOrder)]; !holding(q) {
			s.Current = q
			return nil
		}
	}
	for _, b := range s.Auction.Bids {
		if err := selectFaction(s, b.Player, b.Faction, b.VP); err != nil {
			return err
		}
	}
	startSetupBuilding(s)
	return nil
}

// startSetupBuilding queues the initial placements: first mines in turn
// order, second mines in reverse, third mines, then planetary institutes.
func startSetupBuilding(s *game.State) {
	var queue []int
	for _, p := range s.TurnOrder {
		if s.Players[p].Capabilities().StartingMines >= 1 {
			queue = append(queue, p)
		}
	}
	for i := len(s.TurnOrder) - 1; i >= 0; i-- {
		if p := s.TurnOrder[i]; s.Players[p].Capabilities().StartingMines >= 2 {
			queue = append(queue, p)
		}
	}
	for _, p := range s.TurnOrder {
		if s.Players[p].Capabilities().StartingMines >= 3 {
			queue = append(queue, p)
		}
	}
	for _, p := range s.TurnOrder {
		if s.Players[p].Capabilities().StartsWithPI {
			queue = append(queue, p)
		}
	}
	s.Queue = queue
	setPhase(s, game.SetupBuilding)
	s.Current = queue[0]
}

func startSetupBooster(s *game.State) {
	s.Queue = nil
	for i := len(s.TurnOrder) - 1; i >= 0; i-- {
		s.Queue = append(s.Queue, s.TurnOrder[i])
	}
	setPhase(s, game.SetupBooster)
	s.Current = s.Queue[0]
}

func boosterCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "booster <tile>"); err != nil {
		return err
	}
	if !utils.Contains(available.Data.(game.BoosterData).Boosters, args[0]) {
		return gameerr.IllegalMove("booster %s is not available", args[0])
	}
	if err := takeBooster(s, p, args[0]); err != nil {
		return err
	}
	s.Queue = s.Queue[1:]
	if len(s.Queue) > 0 {
		s.Current = s.Queue[0]
		return nil
	}
	s.Queue = nil
	startRound(s, 1)
	return nil
}

func takeBooster(s *game.State, p int, tile string) error {
	s.Tiles.Boosters = utils.Remove(s.Tiles.Boosters, tile)
	pl := s.Players[p]
	pl.Booster = tile
	return pl.AddEvents(tile, game.Content().Boosters[tile])
}

func returnBooster(s *game.State, p int) {
	pl := s.Players[p]
	if pl.Booster == "" {
		return
	}
	pl.RemoveEvents(pl.Booster)
	s.Tiles.Boosters = append(s.Tiles.Boosters, pl.Booster)
	sortTiles(s.Tiles.Boosters)
	pl.Booster = ""
}
