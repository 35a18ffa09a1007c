package game

import (
	"fmt"

	"gaia/gameerr"
	"gaia/hex"
	"gaia/meta"
	"gaia/player"
	"gaia/reward"
)

// FederationOptions lists the federations p could form now. Candidates are
// minimal sets of building groups reaching the threshold, joined with as
// few satellites as the heuristic finds within the tokens p has.
func (s *State) FederationOptions(p int) []FederationOption {
	pl := s.Players[p]
	var free []hex.Hex
	for _, h := range s.Map.Structures(p) {
		if !s.Map.Hexes[h].InFederationOf(p) {
			free = append(free, h)
		}
	}
	groups := hex.Components(free)
	values := make([]int, len(groups))
	total := 0
	for i, g := range groups {
		for _, h := range g {
			values[i] += s.PowerValue(p, s.Map.Hexes[h].BuildingOf(p))
		}
		total += values[i]
	}
	threshold := pl.FederationThreshold()
	if total < threshold {
		return nil
	}

	budget := s.satelliteBudget(p)
	seen := make(map[string]bool)
	var options []FederationOption
	for _, subset := range minimalSubsets(values, threshold, meta.MAX_FEDERATION_COMBINATIONS) {
		chosen := make([][]hex.Hex, len(subset))
		for i, g := range subset {
			chosen[i] = groups[g]
		}
		option, ok := s.connect(p, chosen, budget)
		if !ok {
			continue
		}
		key := fmt.Sprint(option.Hexes)
		if seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, option)
	}
	return options
}

// minimalSubsets lists the index sets of values reaching threshold from
// which no single value can be left out, smallest sets first. At most limit
// sets are returned.
func minimalSubsets(values []int, threshold, limit int) [][]int {
	var out [][]int
	var grow func(size, start, value int, chosen []int)
	grow = func(size, start, value int, chosen []int) {
		if len(out) >= limit {
			return
		}
		if len(chosen) == size {
			if value >= threshold && minimal(value, chosen, values, threshold) {
				out = append(out, append([]int(nil), chosen...))
			}
			return
		}
		// a set already reaching the threshold only grows into non minimal ones
		if len(chosen) > 0 && value >= threshold {
			return
		}
		for i := start; i < len(values); i++ {
			grow(size, i+1, value+values[i], append(chosen, i))
		}
	}
	for size := 1; size <= len(values) && len(out) < limit; size++ {
		grow(size, 0, 0, nil)
	}
	return out
}

// minimal is false when a group could be left out and the rest still reaches the threshold.
func minimal(value int, chosen []int, values []int, threshold int) bool {
	for _, i := range chosen {
		if value-values[i] >= threshold {
			return false
		}
	}
	return true
}

func (s *State) connect(p int, groups [][]hex.Hex, budget int) (FederationOption, bool) {
	chosen := hex.Set{}
	for _, g := range groups {
		for _, h := range g {
			chosen.Add(h)
		}
	}
	// satellites may not touch other buildings of p or its federations
	blocked := hex.Set{}
	for h, g := range s.Map.Hexes {
		if (g.BuildingOf(p) != "" && !chosen.Contains(h)) || g.InFederationOf(p) {
			for _, n := range h.Neighbours() {
				blocked.Add(n)
			}
		}
	}
	cost := func(h hex.Hex) int {
		if chosen.Contains(h) {
			return 0
		}
		g, ok := s.Map.Hexes[h]
		if !ok || g.Building != "" || g.Planet != player.Empty || g.InFederationOf(p) || blocked.Contains(h) {
			return hex.Impassable
		}
		return 1
	}
	tree, err := hex.SpanningTree(groups, s.Map, budget, hex.Heuristic, cost)
	if err != nil || !tree.Found {
		return FederationOption{}, false
	}
	hexes := chosen.Slice()
	hexes = append(hexes, tree.Hexes...)
	hex.Sort(hexes)
	option := FederationOption{Hexes: hexes, Satellites: len(tree.Hexes), Warning: s.satelliteWarning(p, len(tree.Hexes))}
	return option, true
}

// satelliteBudget is the number of satellites p can pay for.
func (s *State) satelliteBudget(p int) int {
	pl := s.Players[p]
	if pl.Capabilities().SatelliteCost == reward.Qic {
		return pl.Data.Qics
	}
	return pl.Data.Power.BowlTokens()
}

// satelliteWarning flags satellites that take charged power tokens.
func (s *State) satelliteWarning(p int, satellites int) string {
	pl := s.Players[p]
	if pl.Capabilities().SatelliteCost != reward.GainToken {
		return ""
	}
	if satellites > pl.Data.Power.Area1+pl.Data.Power.Area2 {
		return "federation-with-charged-tokens"
	}
	return ""
}

// CheckFederation validates the hexes of a federation p wants to form.
// Unless federation checks are disabled, they must match a generated option.
func (s *State) CheckFederation(p int, hexes []hex.Hex) (FederationOption, error) {
	sorted := append([]hex.Hex(nil), hexes...)
	hex.Sort(sorted)
	if !s.Options.NoFedCheck {
		key := fmt.Sprint(sorted)
		for _, o := range s.FederationOptions(p) {
			if fmt.Sprint(o.Hexes) == key {
				return o, nil
			}
		}
		return FederationOption{}, gameerr.IllegalMove("no federation of %s is available", key)
	}

	pl := s.Players[p]
	if len(sorted) == 0 || !hex.Connected(sorted) {
		return FederationOption{}, gameerr.IllegalMove("federation hexes are not connected")
	}
	value, satellites := 0, 0
	for i, h := range sorted {
		if i > 0 && sorted[i-1] == h {
			return FederationOption{}, gameerr.IllegalMove("hex %s listed twice", h)
		}
		g, ok := s.Map.Get(h)
		switch {
		case !ok:
			return FederationOption{}, gameerr.IllegalMove("hex %s is not on the map", h)
		case g.InFederationOf(p):
			return FederationOption{}, gameerr.IllegalMove("hex %s is already federated", h)
		case g.BuildingOf(p) != "" && g.BuildingOf(p) != player.GaiaFormer:
			value += s.PowerValue(p, g.BuildingOf(p))
		case g.Building == "" && g.Planet == player.Empty:
			satellites++
		default:
			return FederationOption{}, gameerr.IllegalMove("hex %s cannot join a federation", h)
		}
	}
	if value < pl.FederationThreshold() {
		return FederationOption{}, gameerr.IllegalMove("federation value %d is below %d", value, pl.FederationThreshold())
	}
	if satellites > s.satelliteBudget(p) {
		return FederationOption{}, gameerr.IllegalMove("cannot pay for %d satellites", satellites)
	}
	option := FederationOption{Hexes: sorted, Satellites: satellites, Warning: s.satelliteWarning(p, satellites)}
	return option, nil
}
