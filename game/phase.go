package game

import "fmt"

type Phase int

const (
	SetupInit Phase = iota
	SetupBoard
	SetupFaction
	SetupAuction
	SetupBuilding
	SetupBooster
	RoundIncome
	RoundGaia
	RoundLeech
	RoundMove
	Ended
)

var phaseNames = []string{
	"setupInit", "setupBoard", "setupFaction", "setupAuction", "setupBuilding",
	"setupBooster", "roundIncome", "roundGaia", "roundLeech", "roundMove", "ended",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// SubPhase is the step within a RoundMove turn.
type SubPhase int

const (
	BeforeMove SubPhase = iota
	AfterMove
)

func (s SubPhase) String() string {
	if s == AfterMove {
		return "afterMove"
	}
	return "beforeMove"
}

func (s SubPhase) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SubPhase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "beforeMove":
		*s = BeforeMove
	case "afterMove":
		*s = AfterMove
	default:
		return fmt.Errorf("unknown sub phase %q", b)
	}
	return nil
}
