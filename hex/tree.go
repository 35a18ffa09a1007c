package hex

import (
	"gaia/gameerr"
)

// Algorithm selects how SpanningTree searches.
type Algorithm int

const (
	// Heuristic grows trees greedily with ShortestPath from several seeds.
	Heuristic Algorithm = iota
	// Exhaustive tries every set of additional hexes up to the budget. Only for small boards.
	Exhaustive
)

// MAX_EXHAUSTIVE_POOL bounds the candidate hexes Exhaustive may combine.
const MAX_EXHAUSTIVE_POOL = 24

// Tree is the result of a spanning tree search.
type Tree struct {
	Hexes      []Hex // additional hexes needed to connect the groups, sorted
	Cost       int
	LowerBound int // MinimumPathLength of the groups
	Found      bool
}

// MinimumPathLength is a lower bound on the number of hexes needed to join all
// groups. Pairwise group distances (minus one, since adjacent hexes need
// nothing in between) are relaxed through intermediate groups, and the largest
// relaxed distance is returned: any tree must at least join its two farthest groups.
func MinimumPathLength(groups [][]Hex) int {
	n := len(groups)
	if n < 2 {
		return 0
	}
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			if i == j {
				continue
			}
			d := -1
			for _, a := range groups[i] {
				for _, b := range groups[j] {
					if v := Distance(a, b) - 1; d == -1 || v < d {
						d = v
					}
				}
			}
			if d < 0 {
				d = 0
			}
			dist[i][j] = d
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}
	longest := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if dist[i][j] > longest {
				longest = dist[i][j]
			}
		}
	}
	return longest
}

// SpanningTree looks for a cheap set of additional hexes that joins all groups.
// maxAdditional bounds the cost, -1 means unbounded. When nothing fits the
// budget the result only carries the LowerBound.
func SpanningTree(groups [][]Hex, grid Grid, maxAdditional int, algorithm Algorithm, cost CostFunc) (Tree, error) {
	result := Tree{LowerBound: MinimumPathLength(groups)}
	if len(groups) <= 1 {
		result.Found = true
		return result, nil
	}
	if maxAdditional >= 0 && result.LowerBound > maxAdditional {
		return result, nil
	}

	switch algorithm {
	case Heuristic:
		return heuristicTree(groups, grid, maxAdditional, cost, result), nil
	case Exhaustive:
		if maxAdditional < 0 {
			return result, gameerr.Invariant("exhaustive spanning tree needs a bounded budget")
		}
		return exhaustiveTree(groups, grid, maxAdditional, cost, result)
	default:
		return result, gameerr.Invariant("unknown spanning tree algorithm %d", algorithm)
	}
}

type bounds struct {
	minQ, maxQ, minR, maxR int
}

func boundingBox(groups [][]Hex) bounds {
	b := bounds{}
	first := true
	for _, g := range groups {
		for _, h := range g {
			if first {
				b = bounds{h.Q, h.Q, h.R, h.R}
				first = false
				continue
			}
			b.minQ, b.maxQ = min(b.minQ, h.Q), max(b.maxQ, h.Q)
			b.minR, b.maxR = min(b.minR, h.R), max(b.maxR, h.R)
		}
	}
	return b
}

func heuristicTree(groups [][]Hex, grid Grid, maxAdditional int, cost CostFunc, result Tree) Tree {
	groupOf := make(map[Hex]int)
	for i, g := range groups {
		for _, h := range g {
			if _, ok := groupOf[h]; !ok {
				groupOf[h] = i
			}
		}
	}

	var seeds []Hex
	for _, g := range groups {
		if len(g) > 0 {
			seeds = append(seeds, g[0])
		}
	}
	if len(groups) >= 3 {
		b := boundingBox(groups)
		for q := b.minQ; q <= b.maxQ; q++ {
			for r := b.minR; r <= b.maxR; r++ {
				h := Hex{Q: q, R: r}
				if _, ok := groupOf[h]; ok || !grid.Contains(h) || cost(h) <= 0 {
					continue
				}
				seeds = append(seeds, h)
			}
		}
	}

	best := result
	for _, seed := range seeds {
		hexes, total, ok := grow(seed, groups, groupOf, grid, maxAdditional, cost)
		if !ok {
			continue
		}
		if !best.Found || total < best.Cost {
			best.Hexes, best.Cost, best.Found = hexes, total, true
		}
	}
	return best
}

func grow(seed Hex, groups [][]Hex, groupOf map[Hex]int, grid Grid, maxAdditional int, cost CostFunc) ([]Hex, int, bool) {
	covered := Set{}
	var order []Hex
	cover := func(h Hex) {
		if !covered.Contains(h) {
			covered.Add(h)
			order = append(order, h)
		}
	}

	added := Set{}
	total := 0
	remaining := make([]int, 0, len(groups))
	if g, ok := groupOf[seed]; ok {
		for _, h := range groups[g] {
			cover(h)
		}
		for i := range groups {
			if i != g {
				remaining = append(remaining, i)
			}
		}
	} else {
		w := cost(seed)
		if w < 0 {
			return nil, 0, false
		}
		cover(seed)
		added.Add(seed)
		total += w
		for i := range groups {
			remaining = append(remaining, i)
		}
	}

	for len(remaining) > 0 {
		destinations := make([][]Hex, len(remaining))
		for i, g := range remaining {
			destinations[i] = groups[g]
		}
		path, ok := ShortestPath(order, destinations, grid, cost)
		if !ok {
			return nil, 0, false
		}
		total += path.Cost
		if maxAdditional >= 0 && total > maxAdditional {
			return nil, 0, false
		}
		for _, h := range path.Hexes {
			if _, inGroup := groupOf[h]; !inGroup && !covered.Contains(h) {
				added.Add(h)
			}
			cover(h)
		}
		reached := remaining[path.Group]
		for _, h := range groups[reached] {
			cover(h)
		}
		remaining = append(remaining[:path.Group], remaining[path.Group+1:]...)
	}
	return added.Slice(), total, true
}

func exhaustiveTree(groups [][]Hex, grid Grid, maxAdditional int, cost CostFunc, result Tree) (Tree, error) {
	inGroup := Set{}
	var base []Hex
	for _, g := range groups {
		for _, h := range g {
			if !inGroup.Contains(h) {
				inGroup.Add(h)
				base = append(base, h)
			}
		}
	}

	b := boundingBox(groups)
	var pool []Hex
	for q := b.minQ - 1; q <= b.maxQ+1; q++ {
		for r := b.minR - 1; r <= b.maxR+1; r++ {
			h := Hex{Q: q, R: r}
			if inGroup.Contains(h) || !grid.Contains(h) || cost(h) <= 0 {
				continue
			}
			pool = append(pool, h)
		}
	}
	if len(pool) > MAX_EXHAUSTIVE_POOL {
		return result, gameerr.Invariant("exhaustive spanning tree over %d hexes", len(pool))
	}

	best := result
	var chosen []Hex
	var search func(start, spent int)
	search = func(start, spent int) {
		if best.Found && spent >= best.Cost {
			return
		}
		if connectsAll(base, chosen) {
			best.Hexes = append([]Hex(nil), chosen...)
			Sort(best.Hexes)
			best.Cost, best.Found = spent, true
			return
		}
		for i := start; i < len(pool); i++ {
			w := cost(pool[i])
			if spent+w > maxAdditional {
				continue
			}
			chosen = append(chosen, pool[i])
			search(i+1, spent+w)
			chosen = chosen[:len(chosen)-1]
		}
	}
	search(0, 0)
	return best, nil
}

func connectsAll(base, extra []Hex) bool {
	if len(base) == 0 {
		return true
	}
	all := append(append([]Hex(nil), base...), extra...)
	return containsAll(componentOf(Components(all), base[0]), base)
}

func componentOf(components [][]Hex, h Hex) []Hex {
	for _, c := range components {
		if NewSet(c...).Contains(h) {
			return c
		}
	}
	return nil
}

func containsAll(haystack, needles []Hex) bool {
	set := NewSet(haystack...)
	for _, n := range needles {
		if !set.Contains(n) {
			return false
		}
	}
	return true
}
