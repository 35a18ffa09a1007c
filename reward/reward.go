package reward

import (
	"strconv"
	"strings"

	"gaia/gameerr"
)

// Reward is a signed amount of one resource.
type Reward struct {
	Count int
	Type  Resource
}

func New(count int, t Resource) Reward {
	return Reward{Count: count, Type: t}
}

func (r Reward) String() string {
	if r.Type == None {
		return string(None)
	}
	if r.Count == 1 {
		return string(r.Type)
	}
	return strconv.Itoa(r.Count) + string(r.Type)
}

func (r Reward) Negate() Reward {
	return Reward{Count: -r.Count, Type: r.Type}
}

// ParseOne reads a single token such as "3pw", "-2o", "q" or "~".
func ParseOne(token string) (Reward, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Reward{}, gameerr.Parse("empty reward")
	}
	if token == string(None) {
		return Reward{Count: 0, Type: None}, nil
	}
	i := 0
	if token[0] == '-' || token[0] == '+' {
		i = 1
	}
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	count := 1
	switch prefix := token[:i]; prefix {
	case "", "+":
	case "-":
		count = -1
	default:
		n, err := strconv.Atoi(prefix)
		if err != nil {
			return Reward{}, gameerr.Wrap(gameerr.CodeParse, "invalid reward count in "+strconv.Quote(token), err)
		}
		count = n
	}
	t := Resource(token[i:])
	if !knownResources[t] || t == None {
		return Reward{}, gameerr.Parse("unknown resource %q in reward %q", string(t), token)
	}
	return Reward{Count: count, Type: t}, nil
}

// Parse reads a comma separated reward list. The empty string is an empty list.
func Parse(spec string) ([]Reward, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var out []Reward
	for _, token := range strings.Split(spec, ",") {
		r, err := ParseOne(token)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MustParse is Parse for static data.
func MustParse(spec string) []Reward {
	rewards, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return rewards
}

// Format joins rewards back into the compact notation.
func Format(rewards []Reward) string {
	if len(rewards) == 0 {
		return string(None)
	}
	parts := make([]string, len(rewards))
	for i, r := range rewards {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Merge sums rewards of the same type, keeping first appearance order and
// dropping zero totals and free markers.
func Merge(lists ...[]Reward) []Reward {
	totals := map[Resource]int{}
	var order []Resource
	for _, list := range lists {
		for _, r := range list {
			if r.Type == None {
				continue
			}
			if _, ok := totals[r.Type]; !ok {
				order = append(order, r.Type)
			}
			totals[r.Type] += r.Count
		}
	}
	var out []Reward
	for _, t := range order {
		if totals[t] != 0 {
			out = append(out, Reward{Count: totals[t], Type: t})
		}
	}
	return out
}

func Negate(rewards []Reward) []Reward {
	out := make([]Reward, len(rewards))
	for i, r := range rewards {
		out[i] = r.Negate()
	}
	return out
}

// Scale multiplies every count by n.
func Scale(rewards []Reward, n int) []Reward {
	out := make([]Reward, len(rewards))
	for i, r := range rewards {
		out[i] = Reward{Count: r.Count * n, Type: r.Type}
	}
	return out
}

// Count returns the total count of t in rewards.
func Count(rewards []Reward, t Resource) int {
	total := 0
	for _, r := range rewards {
		if r.Type == t {
			total += r.Count
		}
	}
	return total
}
