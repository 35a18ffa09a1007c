// Package autocharge decides whether a leech offer can be answered without
// asking the player.
package autocharge

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Policy is a player's leech preference: Ask, DeclineCost, or a threshold
// N >= 0 accepting every offer charging at most N power.
type Policy int

const (
	Ask         Policy = -1
	DeclineCost Policy = -2
)

func (p Policy) String() string {
	switch p {
	case Ask:
		return "ask"
	case DeclineCost:
		return "decline-cost"
	}
	return strconv.Itoa(int(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "ask":
		return Ask, nil
	case "decline-cost":
		return DeclineCost, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid auto charge policy %q", s)
	}
	return Policy(n), nil
}

func (p Policy) MarshalJSON() ([]byte, error) {
	if p >= 0 {
		return []byte(strconv.Itoa(int(p))), nil
	}
	return json.Marshal(p.String())
}

func (p *Policy) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		s = string(b)
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Decision is the outcome of one rule or of the whole chain.
type Decision int

const (
	Undecided Decision = iota
	Yes
	No
	AskPlayer
	// NoAutomaticYes turns a later Yes into AskPlayer.
	NoAutomaticYes
)

func (d Decision) String() string {
	return [...]string{"undecided", "yes", "no", "ask", "no-automatic-yes"}[d]
}

// Offer is one way of taking a leech.
type Offer struct {
	Offer  string `json:"offer"`
	Charge int    `json:"charge"`
	Cost   int    `json:"cost"`
}

// ChargeRequest is everything the rules look at for one leech.
type ChargeRequest struct {
	Offers         []Offer
	Policy         Policy
	AutoBrainstone bool
	Passed         bool
	LastRound      bool
	// Capacity is the charge the player can still use before the next income.
	Capacity      int
	WeighsBurning bool
	PreferBurn    bool
}

func (r ChargeRequest) minCharge() int {
	m := -1
	for _, o := range r.Offers {
		if m < 0 || o.Charge < m {
			m = o.Charge
		}
	}
	return max(m, 0)
}

func (r ChargeRequest) maxCharge() int {
	m := 0
	for _, o := range r.Offers {
		m = max(m, o.Charge)
	}
	return m
}

func (r ChargeRequest) maxCost() int {
	m := 0
	for _, o := range r.Offers {
		m = max(m, o.Cost)
	}
	return m
}

// ChargeDecision is the chain's answer. Offer is set when Decision is Yes.
type ChargeDecision struct {
	Decision Decision
	Offer    *Offer
}

type rule func(ChargeRequest) Decision

var rules = []rule{
	passedPlayerRule,
	multipleOffersRule,
	costRule,
	burnPreferenceRule,
}

// Decide runs the rules in order and stops at the first definite answer.
func Decide(req ChargeRequest) ChargeDecision {
	if len(req.Offers) == 0 {
		return ChargeDecision{Decision: No}
	}
	noAutomaticYes := false
	decision := Yes
	for _, r := range rules {
		d := r(req)
		if d == Undecided {
			continue
		}
		if d == NoAutomaticYes {
			noAutomaticYes = true
			continue
		}
		decision = d
		break
	}
	if decision == Yes && noAutomaticYes {
		decision = AskPlayer
	}
	if decision != Yes {
		return ChargeDecision{Decision: decision}
	}
	offer := BestOffer(req.Offers)
	return ChargeDecision{Decision: Yes, Offer: &offer}
}

// BestOffer picks the largest charge, the first listed on ties.
func BestOffer(offers []Offer) Offer {
	best := offers[0]
	for _, o := range offers[1:] {
		if o.Charge > best.Charge {
			best = o
		}
	}
	return best
}

func passedPlayerRule(req ChargeRequest) Decision {
	if !req.Passed {
		return Undecided
	}
	amount := req.maxCharge()
	wasted := amount
	if !req.LastRound {
		wasted = max(0, amount-req.Capacity)
	}
	if req.maxCost() == 0 || wasted == 0 {
		return Undecided
	}
	switch {
	case wasted == 1 && len(req.Offers) > 1:
		return AskPlayer
	case wasted >= amount:
		return No
	}
	return NoAutomaticYes
}

func multipleOffersRule(req ChargeRequest) Decision {
	if len(req.Offers) > 1 && !req.AutoBrainstone {
		return AskPlayer
	}
	return Undecided
}

func costRule(req ChargeRequest) Decision {
	return AskOrDeclineBasedOnCost(req.minCharge(), req.maxCharge(), req.Policy)
}

// AskOrDeclineBasedOnCost applies the player's policy to the charge range.
func AskOrDeclineBasedOnCost(minCharge, maxCharge int, policy Policy) Decision {
	switch policy {
	case Ask:
		return AskPlayer
	case DeclineCost:
		if minCharge <= 1 {
			return Undecided
		}
		return No
	}
	if maxCharge > int(policy) {
		return AskPlayer
	}
	return Undecided
}

func burnPreferenceRule(req ChargeRequest) Decision {
	if req.WeighsBurning && req.PreferBurn && !req.LastRound {
		return AskPlayer
	}
	return Undecided
}
