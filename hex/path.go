package hex

// Path is a route from a start hex to a destination hex.
type Path struct {
	Hexes []Hex // start first, destination last
	Cost  int   // sum of entry costs, starts excluded
	Group int   // index of the destination group reached
}

type frontier struct {
	buckets [][]Hex
}

func (f *frontier) push(cost int, h Hex) {
	for len(f.buckets) <= cost {
		f.buckets = append(f.buckets, nil)
	}
	f.buckets[cost] = append(f.buckets[cost], h)
}

// ShortestPath expands from every start at once, one grid step at a time,
// until the cheapest destination is reached. When several destinations are
// reached at the same cost, the one closest to another destination group wins,
// which favours paths that make the following connection cheaper. Remaining
// ties keep the first destination found. The boolean is false when no
// destination can be reached.
func ShortestPath(starts []Hex, destinations [][]Hex, grid Grid, cost CostFunc) (Path, bool) {
	groupOf := make(map[Hex]int)
	for i, group := range destinations {
		for _, h := range group {
			if _, ok := groupOf[h]; !ok {
				groupOf[h] = i
			}
		}
	}

	best := make(map[Hex]int)
	parent := make(map[Hex]Hex)
	f := &frontier{}
	for _, s := range starts {
		if !grid.Contains(s) {
			continue
		}
		if _, ok := best[s]; ok {
			continue
		}
		best[s] = 0
		f.push(0, s)
	}

	for c := 0; c < len(f.buckets); c++ {
		var reached []Hex
		for i := 0; i < len(f.buckets[c]); i++ {
			h := f.buckets[c][i]
			if best[h] != c {
				continue
			}
			if _, ok := groupOf[h]; ok {
				reached = append(reached, h)
				continue
			}
			for _, n := range h.Neighbours() {
				if !grid.Contains(n) {
					continue
				}
				w := cost(n)
				if w < 0 {
					continue
				}
				next := c + w
				if old, ok := best[n]; ok && old <= next {
					continue
				}
				best[n] = next
				parent[n] = h
				f.push(next, n)
			}
		}
		if len(reached) == 0 {
			continue
		}

		target := reached[0]
		targetScore := lookahead(target, groupOf[target], destinations)
		for _, h := range reached[1:] {
			if score := lookahead(h, groupOf[h], destinations); score < targetScore {
				target, targetScore = h, score
			}
		}
		return Path{Hexes: walkBack(target, parent), Cost: c, Group: groupOf[target]}, true
	}
	return Path{}, false
}

// lookahead is the distance from h to the nearest hex of any other destination group.
func lookahead(h Hex, group int, destinations [][]Hex) int {
	best := 0
	found := false
	for i, other := range destinations {
		if i == group || len(other) == 0 {
			continue
		}
		d := DistanceToAny(h, other)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best
}

func walkBack(h Hex, parent map[Hex]Hex) []Hex {
	path := []Hex{h}
	for {
		p, ok := parent[h]
		if !ok {
			break
		}
		path = append(path, p)
		h = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
