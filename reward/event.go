package reward

import (
	"encoding/json"
	"sort"
	"strings"

	"gaia/gameerr"
)

// Condition is what an event counts or reacts to.
type Condition string

const (
	Always             Condition = ""
	Mine               Condition = "m"
	TradingStation     Condition = "ts"
	ResearchLab        Condition = "lab"
	PlanetaryInstitute Condition = "PI"
	Academy            Condition = "a"
	PIOrAcademy        Condition = "PA"
	Buildings          Condition = "B"
	GaiaPlanet         Condition = "g"
	PlanetType         Condition = "pt"
	Sector             Condition = "sec"
	Federation         Condition = "fed"
	FederatedBuildings Condition = "fb"
	Satellite          Condition = "sat"
	TerraformStepDone  Condition = "step"
	ResearchStep       Condition = "up"
	// AdditionalMine fires when a mine joins another player's planet.
	AdditionalMine Condition = "am"
)

// Operator says when an event's rewards are gained.
type Operator string

const (
	Once     Operator = ">"
	Income   Operator = "+"
	Activate Operator = "=>"
	Trigger  Operator = ">>"
	Pass     Operator = "|"
	Special  Operator = ">>>"
)

var conditionCodes = sortedByLength([]string{
	string(Mine), string(TradingStation), string(ResearchLab), string(PlanetaryInstitute),
	string(Academy), string(PIOrAcademy), string(Buildings), string(GaiaPlanet), string(PlanetType),
	string(Sector), string(Federation), string(FederatedBuildings), string(Satellite),
	string(TerraformStepDone), string(ResearchStep), string(AdditionalMine),
})

var operatorCodes = sortedByLength([]string{
	string(Once), string(Income), string(Activate), string(Trigger), string(Pass), string(Special),
})

func sortedByLength(codes []string) []string {
	sort.SliceStable(codes, func(i, j int) bool { return len(codes[i]) > len(codes[j]) })
	return codes
}

func longestPrefix(s string, codes []string) string {
	for _, c := range codes {
		if strings.HasPrefix(s, c) {
			return c
		}
	}
	return ""
}

// Event is a parsed reward spec such as "m >> 3vp", "+o,k" or "=> 4pw => 2o".
type Event struct {
	Spec      string // source text without the activated marker
	Condition Condition
	Operator  Operator
	Cost      []Reward // only for activations written "cost => gain"
	Rewards   []Reward
	Activated bool
}

// ParseEvent reads "[condition] operator rewards[!]". The condition and the
// operator are both matched as the longest known prefix of what remains, so
// "PA >> 5vp" is a PIOrAcademy trigger and ">>> pw" a Special event. A
// condition is not required to end on a word boundary.
func ParseEvent(spec string) (Event, error) {
	text := strings.TrimSpace(spec)
	ev := Event{}
	if strings.HasSuffix(text, "!") {
		ev.Activated = true
		text = strings.TrimSpace(strings.TrimSuffix(text, "!"))
	}
	ev.Spec = text

	cond := longestPrefix(text, conditionCodes)
	ev.Condition = Condition(cond)
	rest := strings.TrimSpace(text[len(cond):])

	op := longestPrefix(rest, operatorCodes)
	if op == "" {
		return Event{}, gameerr.Parse("no operator in event %q", spec)
	}
	ev.Operator = Operator(op)
	body := strings.TrimSpace(rest[len(op):])

	var err error
	if ev.Operator == Activate && strings.Contains(body, string(Activate)) {
		parts := strings.SplitN(body, string(Activate), 2)
		if ev.Cost, err = Parse(parts[0]); err != nil {
			return Event{}, gameerr.Wrap(gameerr.CodeParse, "invalid cost in event "+spec, err)
		}
		body = parts[1]
	}
	if ev.Rewards, err = Parse(body); err != nil {
		return Event{}, gameerr.Wrap(gameerr.CodeParse, "invalid rewards in event "+spec, err)
	}
	return ev, nil
}

func MustParseEvent(spec string) Event {
	ev, err := ParseEvent(spec)
	if err != nil {
		panic(err)
	}
	return ev
}

// ParseEvents parses every spec in order.
func ParseEvents(specs []string) ([]Event, error) {
	out := make([]Event, 0, len(specs))
	for _, s := range specs {
		ev, err := ParseEvent(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// Action returns what activating the event does to the player: the cost
// negated and placed first, then the gain. "=> 4pw => 2o" gives "-4pw,2o".
func (e Event) Action() string {
	if len(e.Cost) == 0 {
		return Format(e.Rewards)
	}
	return Format(Negate(e.Cost)) + "," + Format(e.Rewards)
}

// ActionRewards is Action as a reward list.
func (e Event) ActionRewards() []Reward {
	out := Negate(e.Cost)
	return append(out, e.Rewards...)
}

func (e Event) String() string {
	if e.Activated {
		return e.Spec + "!"
	}
	return e.Spec
}

// Clone returns a copy that shares nothing with e.
func (e Event) Clone() Event {
	c := e
	c.Cost = append([]Reward(nil), e.Cost...)
	c.Rewards = append([]Reward(nil), e.Rewards...)
	return c
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEvent(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
