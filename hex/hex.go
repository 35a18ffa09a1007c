// Package hex provides axial hex coordinates and the graph searches used for
// building range and federation reachability.
package hex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hex is a position on the map in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Hex struct {
	Q int
	R int
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// Directions defines the six neighbour offsets in axial coordinates.
var Directions = [6]Hex{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

func (h Hex) Add(o Hex) Hex {
	return Hex{Q: h.Q + o.Q, R: h.R + o.R}
}

func (h Hex) Sub(o Hex) Hex {
	return Hex{Q: h.Q - o.Q, R: h.R - o.R}
}

func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k}
}

// Neighbours returns the six adjacent hexes in Directions order.
func (h Hex) Neighbours() []Hex {
	out := make([]Hex, 0, 6)
	for _, d := range Directions {
		out = append(out, h.Add(d))
	}
	return out
}

// Rotate turns h around the origin by steps sixths of a turn clockwise.
func (h Hex) Rotate(steps int) Hex {
	steps = ((steps % 6) + 6) % 6
	for i := 0; i < steps; i++ {
		h = Hex{Q: -h.R, R: -h.S()}
	}
	return h
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Distance returns the number of steps between two hexes.
func Distance(a, b Hex) int {
	d := a.Sub(b)
	return (abs(d.Q) + abs(d.R) + abs(d.S())) / 2
}

// DistanceToAny returns the smallest distance from h to any hex of targets, or -1 when targets is empty.
func DistanceToAny(h Hex, targets []Hex) int {
	best := -1
	for _, t := range targets {
		if d := Distance(h, t); best == -1 || d < best {
			best = d
		}
	}
	return best
}

// Ring returns the hexes at exactly radius from center, starting from the
// south-west corner and walking clockwise through Directions.
func Ring(center Hex, radius int) []Hex {
	if radius == 0 {
		return []Hex{center}
	}
	out := make([]Hex, 0, 6*radius)
	h := center.Add(Directions[4].Scale(radius))
	for i := 0; i < 6; i++ {
		for j := 0; j < radius; j++ {
			out = append(out, h)
			h = h.Add(Directions[i])
		}
	}
	return out
}

// String formats the hex as QxR, e.g. -4x2.
func (h Hex) String() string {
	return fmt.Sprintf("%dx%d", h.Q, h.R)
}

// Parse reads the QxR notation.
func Parse(s string) (Hex, error) {
	i := strings.IndexByte(s, 'x')
	if i <= 0 || i == len(s)-1 {
		return Hex{}, fmt.Errorf("invalid hex coordinate %q", s)
	}
	q, err := strconv.Atoi(s[:i])
	if err != nil {
		return Hex{}, fmt.Errorf("invalid hex coordinate %q: %w", s, err)
	}
	r, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return Hex{}, fmt.Errorf("invalid hex coordinate %q: %w", s, err)
	}
	return Hex{Q: q, R: r}, nil
}

// MarshalText lets hexes be used as JSON object keys.
func (h Hex) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hex) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Less orders hexes by Q then R.
func Less(a, b Hex) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// Sort sorts hexes in place with Less.
func Sort(hexes []Hex) {
	sort.Slice(hexes, func(i, j int) bool { return Less(hexes[i], hexes[j]) })
}
