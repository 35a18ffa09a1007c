package autocharge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func offer(charge int) Offer {
	return Offer{Offer: "pw", Charge: charge, Cost: max(0, charge-1)}
}

func TestAskOrDeclineBasedOnCost(t *testing.T) {
	t.Run("threshold below the charge asks", func(t *testing.T) {
		require.Equal(t, AskPlayer, AskOrDeclineBasedOnCost(2, 2, 1))
	})

	t.Run("threshold above the charge is left to later rules", func(t *testing.T) {
		require.Equal(t, Undecided, AskOrDeclineBasedOnCost(2, 2, 3))
	})

	t.Run("decline cost", func(t *testing.T) {
		require.Equal(t, Undecided, AskOrDeclineBasedOnCost(1, 1, DeclineCost))
		require.Equal(t, No, AskOrDeclineBasedOnCost(2, 3, DeclineCost))
	})

	t.Run("ask policy", func(t *testing.T) {
		require.Equal(t, AskPlayer, AskOrDeclineBasedOnCost(1, 1, Ask))
	})
}

func TestDecide(t *testing.T) {
	t.Run("cheap offer is accepted", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(2)}, Policy: 3})
		require.Equal(t, Yes, d.Decision)
		require.Equal(t, 2, d.Offer.Charge)
	})

	t.Run("expensive offer asks", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(3)}, Policy: 1})
		require.Equal(t, AskPlayer, d.Decision)
		require.Nil(t, d.Offer)
	})

	t.Run("multiple offers ask unless brainstone is automatic", func(t *testing.T) {
		offers := []Offer{{Offer: "2pw,t", Charge: 2, Cost: 1}, {Offer: "t,2pw", Charge: 2, Cost: 1}}
		require.Equal(t, AskPlayer, Decide(ChargeRequest{Offers: offers, Policy: 3}).Decision)

		d := Decide(ChargeRequest{Offers: offers, Policy: 3, AutoBrainstone: true})
		require.Equal(t, Yes, d.Decision)
		require.Equal(t, "2pw,t", d.Offer.Offer)
	})

	t.Run("passed player declines wasted charge in the last round", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(2)}, Policy: 5, Passed: true, LastRound: true})
		require.Equal(t, No, d.Decision)
	})

	t.Run("passed player with partial waste must confirm", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(3)}, Policy: 5, Passed: true, Capacity: 1})
		require.Equal(t, AskPlayer, d.Decision)
	})

	t.Run("passed player with room charges", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(3)}, Policy: 5, Passed: true, Capacity: 4})
		require.Equal(t, Yes, d.Decision)
	})

	t.Run("free charge is never wasted", func(t *testing.T) {
		d := Decide(ChargeRequest{Offers: []Offer{offer(1)}, Policy: 0, Passed: true, LastRound: true})
		require.Equal(t, AskPlayer, d.Decision)
		d = Decide(ChargeRequest{Offers: []Offer{offer(1)}, Policy: 1, Passed: true, LastRound: true})
		require.Equal(t, Yes, d.Decision)
	})

	t.Run("burn preference asks before the last round", func(t *testing.T) {
		req := ChargeRequest{Offers: []Offer{offer(1)}, Policy: 3, WeighsBurning: true, PreferBurn: true}
		require.Equal(t, AskPlayer, Decide(req).Decision)
		req.LastRound = true
		require.Equal(t, Yes, Decide(req).Decision)
	})

	t.Run("decision is deterministic", func(t *testing.T) {
		req := ChargeRequest{Offers: []Offer{offer(2), offer(4), {Offer: "4pw!", Charge: 4, Cost: 3}}, Policy: 4, AutoBrainstone: true}
		first := Decide(req)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Decide(req))
		}
		require.Equal(t, "pw", first.Offer.Offer)
		require.Equal(t, 4, first.Offer.Charge)
	})
}

func TestPolicy(t *testing.T) {
	t.Run("json round trip", func(t *testing.T) {
		for _, p := range []Policy{Ask, DeclineCost, 0, 3} {
			b, err := json.Marshal(p)
			require.NoError(t, err)
			var back Policy
			require.NoError(t, json.Unmarshal(b, &back))
			require.Equal(t, p, back)
		}
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := ParsePolicy("sometimes")
		require.Error(t, err)
	})
}
