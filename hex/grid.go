package hex

// Grid tells which hexes exist on a map.
type Grid interface {
	Contains(h Hex) bool
}

// CostFunc returns the cost of entering a hex. A negative cost marks the hex as impassable.
type CostFunc func(h Hex) int

// Impassable is the conventional negative cost.
const Impassable = -1

// Set is a Grid backed by a map.
type Set map[Hex]struct{}

func NewSet(hexes ...Hex) Set {
	s := make(Set, len(hexes))
	for _, h := range hexes {
		s[h] = struct{}{}
	}
	return s
}

func (s Set) Contains(h Hex) bool {
	_, ok := s[h]
	return ok
}

func (s Set) Add(h Hex) {
	s[h] = struct{}{}
}

// Slice returns the members sorted with Less.
func (s Set) Slice() []Hex {
	out := make([]Hex, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	Sort(out)
	return out
}

// Connected reports whether hexes form a single adjacency component.
func Connected(hexes []Hex) bool {
	if len(hexes) == 0 {
		return true
	}
	set := NewSet(hexes...)
	visited := NewSet(hexes[0])
	queue := []Hex{hexes[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range current.Neighbours() {
			if set.Contains(n) && !visited.Contains(n) {
				visited.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(set)
}

// Components splits hexes into adjacency components, in order of first appearance.
func Components(hexes []Hex) [][]Hex {
	set := NewSet(hexes...)
	seen := Set{}
	var groups [][]Hex
	for _, start := range hexes {
		if seen.Contains(start) {
			continue
		}
		seen.Add(start)
		group := []Hex{start}
		for i := 0; i < len(group); i++ {
			for _, n := range group[i].Neighbours() {
				if set.Contains(n) && !seen.Contains(n) {
					seen.Add(n)
					group = append(group, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}
