package engine

import (
	"github.com/rs/zerolog/log"

	"gaia/autocharge"
	"gaia/game"
	"gaia/gameerr"
	"gaia/hex"
	"gaia/meta"
	"gaia/player"
	"gaia/reward"
	"gaia/utils"
)

func startRound(s *game.State, round int) {
	s.Round = round
	s.AdvancedLog = append(s.AdvancedLog, game.LogEntry{Round: &round})
	setPhase(s, game.RoundIncome)
	for _, p := range s.TurnOrder {
		if chunks := collectIncome(s, p); len(chunks) > 0 {
			s.Turn.Income = append(s.Turn.Income, game.IncomeChoice{Player: p, Chunks: chunks})
		}
	}
	if len(s.Turn.Income) == 0 {
		gaiaPhase(s)
	}
}

// collectIncome gains the income of p. Power income is returned instead
// when the order of charges and new tokens changes the result.
func collectIncome(s *game.State, p int) []string {
	pl := s.Players[p]
	var chunks []string
	for _, e := range pl.EventsWith(reward.Income) {
		var plain, power []reward.Reward
		for _, r := range s.EventRewards(p, e.Event) {
			if r.Type == reward.ChargePower || r.Type == reward.GainToken {
				power = append(power, r)
			} else {
				plain = append(plain, r)
			}
		}
		gain(s, p, plain, e.Source)
		if len(power) > 0 {
			chunks = append(chunks, reward.Format(power))
		}
	}
	if len(chunks) == 0 {
		return nil
	}
	if pl.Settings.AutoIncome || !incomeOrderMatters(pl.Data.Power, chunks) {
		for _, chunk := range chargeFirst(chunks) {
			gain(s, p, reward.MustParse(chunk), "income")
		}
		return nil
	}
	return chunks
}

// chargeFirst orders chunks that charge power before the ones that only add tokens.
func chargeFirst(chunks []string) []string {
	var charges, tokens []string
	for _, c := range chunks {
		if reward.Count(reward.MustParse(c), reward.ChargePower) > 0 {
			charges = append(charges, c)
		} else {
			tokens = append(tokens, c)
		}
	}
	return append(charges, tokens...)
}

// incomeOrderMatters tells whether any two orders of the chunks leave
// different power areas.
func incomeOrderMatters(power player.Power, chunks []string) bool {
	apply := func(order []string) player.Power {
		result := power
		for _, c := range order {
			for _, r := range reward.MustParse(c) {
				switch r.Type {
				case reward.ChargePower:
					result.Charge(r.Count)
				case reward.GainToken:
					result.GainTokens(r.Count)
				}
			}
		}
		return result
	}
	orders := utils.Permutations(chunks)
	for _, order := range orders[1:] {
		if apply(order) != apply(orders[0]) {
			return true
		}
	}
	return false
}

func incomeCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "income <rewards>"); err != nil {
		return err
	}
	if !utils.Contains(available.Data.(game.IncomeData).Chunks, args[0]) {
		return gameerr.IllegalMove("%s is not a pending income", args[0])
	}
	choice := &s.Turn.Income[0]
	choice.Chunks = utils.Remove(choice.Chunks, args[0])
	gain(s, p, reward.MustParse(args[0]), "income")
	if len(choice.Chunks) > 0 && !incomeOrderMatters(s.Players[p].Data.Power, choice.Chunks) {
		for _, chunk := range chargeFirst(choice.Chunks) {
			gain(s, p, reward.MustParse(chunk), "income")
		}
		choice.Chunks = nil
	}
	if len(choice.Chunks) == 0 {
		s.Turn.Income = s.Turn.Income[1:]
	}
	if len(s.Turn.Income) == 0 {
		gaiaPhase(s)
	}
	return nil
}

// gaiaPhase turns gaia formed planets into gaia planets and returns the
// tokens of the gaia area. Players who can trade those tokens first get
// a turn to do so, in turn order.
func gaiaPhase(s *game.State) {
	setPhase(s, game.RoundGaia)
	s.Turn = game.Turn{}
	for _, p := range s.TurnOrder {
		for _, h := range s.Map.Presence(p) {
			if g := s.Map.Hexes[h]; g.Owner == p && g.Building == player.GaiaFormer && g.Planet == player.Transdim {
				g.Planet = player.Gaia
				s.Map.Set(h, g)
			}
		}
		tokens := s.Players[p].Data.Power.Gaia
		if tokens > 0 && len(s.GaiaTradeOptions(p, tokens)) > 0 {
			s.Turn.Gaia = append(s.Turn.Gaia, game.GaiaTrade{Player: p, Budget: tokens})
			continue
		}
		returnFromGaia(s, p)
	}
	continueGaia(s)
}

func returnFromGaia(s *game.State, p int) {
	pl := s.Players[p]
	pl.Data.Power.ReturnFromGaia(pl.Capabilities().GaiaReturn)
}

// continueGaia ends the trades nothing is left to buy with and starts the
// moves once every trade and its choices are done.
func continueGaia(s *game.State) {
	if len(s.Turn.Pending) > 0 || len(s.Turn.Leech) > 0 {
		return
	}
	for len(s.Turn.Gaia) > 0 {
		t := s.Turn.Gaia[0]
		if len(s.GaiaTradeOptions(t.Player, t.Budget)) > 0 {
			return
		}
		endGaiaTrade(s)
	}
	startMoves(s)
}

func endGaiaTrade(s *game.State) {
	returnFromGaia(s, s.Turn.Gaia[0].Player)
	s.Turn.Gaia = s.Turn.Gaia[1:]
}

// gaiaTradeCommand handles "spend <tokens>tg for <gain>" in the gaia phase.
func gaiaTradeCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if len(args) != 3 || args[1] != "for" {
		return gameerr.Parse("expected spend <tokens>tg for <gain>")
	}
	trade := &s.Turn.Gaia[0]
	for _, c := range available.Data.(game.SpendData).Conversions {
		base, gained := reward.MustParse(c.Cost), reward.MustParse(c.Gain)
		per := reward.Count(base, reward.GaiaToken)
		if per <= 0 {
			continue
		}
		times := 0
		for n := 1; n*per <= trade.Budget; n++ {
			if reward.Format(reward.Scale(base, n)) == args[0] && reward.Format(reward.Scale(gained, n)) == args[2] {
				times = n
				break
			}
		}
		if times == 0 {
			continue
		}
		tokens := per * times
		trade.Budget -= tokens
		pl := s.Players[p]
		if pl.Capabilities().GaiaTradeDiscards {
			pl.Data.Power.Gaia -= tokens
		}
		gain(s, p, reward.Scale(gained, times), "gaia")
		return nil
	}
	return gameerr.IllegalMove("no gaia trade of %s into %s", args[0], args[2])
}

func startMoves(s *game.State) {
	setPhase(s, game.RoundMove)
	for name := range s.BoardActions {
		s.BoardActions[name] = nil
	}
	for _, pl := range s.Players {
		pl.ResetActivations()
	}
	s.Passed = []int{}
	s.Current = s.TurnOrder[0]
	s.Turn = game.Turn{SubPhase: game.BeforeMove}
}

// endTurn hands over to the leech queue or the next player.
func endTurn(s *game.State) {
	s.CurrentPlayer().Data.ClearTemporary()
	s.Turn.SubPhase = game.BeforeMove
	s.Turn.Pending = nil
	if len(s.Turn.Leech) > 0 {
		setPhase(s, game.RoundLeech)
		return
	}
	nextPlayer(s)
}

func nextPlayer(s *game.State) {
	if len(s.Passed) == len(s.Players) {
		endRound(s)
		return
	}
	if s.Phase != game.RoundMove {
		setPhase(s, game.RoundMove)
	}
	s.Turn.SubPhase = game.BeforeMove
	start := utils.FindIndex(s.TurnOrder, s.Current)
	for k := 1; k <= len(s.TurnOrder); k++ {
		if q := s.TurnOrder[(start+k)%len(s.TurnOrder)]; !s.HasPassed(q) {
			s.Current = q
			return
		}
	}
}

// endRound makes the pass order the next turn order.
func endRound(s *game.State) {
	s.TurnOrder = append([]int(nil), s.Passed...)
	s.Passed = []int{}
	if s.LastRound() {
		finalScoring(s)
		setPhase(s, game.Ended)
		return
	}
	startRound(s, s.Round+1)
}

func finalScoring(s *game.State) {
	for _, tile := range s.Tiles.FinalScoring {
		cond := game.Content().FinalScoring[tile]
		score := func(p int) int {
			if p == game.NoPlayer {
				return game.Content().NeutralScoring[cond]
			}
			return s.Count(p, cond)
		}
		contenders := make([]int, 0, len(s.Players)+1)
		for _, pl := range s.Players {
			contenders = append(contenders, pl.Index)
		}
		if len(s.Players) == 2 {
			contenders = append(contenders, game.NoPlayer)
		}
		position := 0
		for _, group := range game.RankOf(contenders, score) {
			total := 0
			for i := position; i < position+len(group) && i < len(meta.FINAL_SCORING_POINTS); i++ {
				total += meta.FINAL_SCORING_POINTS[i]
			}
			position += len(group)
			for _, p := range group {
				if p != game.NoPlayer {
					gain(s, p, []reward.Reward{reward.New(total/len(group), reward.VictoryPoint)}, tile)
				}
			}
		}
	}
	for _, pl := range s.Players {
		vp := 0
		for _, t := range player.Tracks {
			if level := pl.Data.Research[t]; level > 2 {
				vp += 4 * (level - 2)
			}
		}
		gain(s, pl.Index, []reward.Reward{reward.New(vp, reward.VictoryPoint)}, "research")
		gain(s, pl.Index, []reward.Reward{reward.New(pl.Data.ResourceScore(), reward.VictoryPoint)}, "resources")
	}
}

// queueLeech offers power to the neighbours of a new building at h, in
// turn order after its owner.
func queueLeech(s *game.State, from int, h hex.Hex) {
	start := utils.FindIndex(s.TurnOrder, from)
	for k := 1; k < len(s.TurnOrder); k++ {
		o := s.TurnOrder[(start+k)%len(s.TurnOrder)]
		amount := 0
		for _, oh := range s.Map.Structures(o) {
			if hex.Distance(oh, h) <= meta.LEECH_DISTANCE {
				amount = max(amount, s.PowerValue(o, s.Map.Hexes[oh].BuildingOf(o)))
			}
		}
		amount = min(amount, s.Players[o].Data.VictoryPoints+1)
		if amount <= 0 {
			continue
		}
		l := game.Leech{Player: o, From: from, Amount: amount}
		chargeable := false
		for _, offer := range s.LeechOffers(l) {
			chargeable = chargeable || offer.Charge > 0
		}
		if chargeable {
			s.Turn.Leech = append(s.Turn.Leech, l)
		}
	}
}

func chargeCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 1, "charge <offer>"); err != nil {
		return err
	}
	var offer *autocharge.Offer
	for _, o := range available.Data.(game.ChargeData).Offers {
		if o.Offer == args[0] {
			offer = &o
			break
		}
	}
	if offer == nil {
		return gameerr.IllegalMove("%s is not a leech offer", args[0])
	}
	s.Turn.Leech = s.Turn.Leech[1:]
	gain(s, p, reward.MustParse(offer.Offer), "leech")
	if offer.Cost > 0 {
		gain(s, p, []reward.Reward{reward.New(-offer.Cost, reward.VictoryPoint)}, "leech")
	}
	return nil
}

func declineCommand(s *game.State, p int, available game.AvailableCommand, args []string) error {
	if err := argCount(args, 0, "decline"); err != nil {
		return err
	}
	if len(s.Turn.Leech) == 0 && len(s.Turn.Gaia) > 0 {
		endGaiaTrade(s)
		return nil
	}
	s.Turn.Leech = s.Turn.Leech[1:]
	return nil
}

// chargeRequest describes the leech at the head of the queue for autocharge.
func chargeRequest(s *game.State, l game.Leech) autocharge.ChargeRequest {
	pl := s.Players[l.Player]
	incoming := 0
	for _, e := range pl.EventsWith(reward.Income) {
		incoming += reward.Count(s.EventRewards(l.Player, e.Event), reward.ChargePower)
	}
	return autocharge.ChargeRequest{
		Offers:         s.LeechOffers(l),
		Policy:         pl.Settings.AutoCharge,
		AutoBrainstone: pl.Settings.AutoBrainstone,
		Passed:         s.HasPassed(l.Player),
		LastRound:      s.LastRound(),
		Capacity:       max(0, pl.Data.Power.MaxCharge()-incoming),
		WeighsBurning:  pl.Capabilities().WeighsBurning,
		PreferBurn:     pl.Settings.PreferBurn,
	}
}

func logAutomatic(p *player.Player, move string) {
	log.Warn().Str("player", p.Name()).Str("move", move).Msg("automatic decision")
}
