package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gaia/hex"
	"gaia/reward"
)

func TestApply(t *testing.T) {
	t.Run("resources are capped", func(t *testing.T) {
		d := NewData()
		d.Credits = 28
		d.Apply(reward.MustParse("5c"), "booster3", BrainstoneAsk)
		require.Equal(t, 30, d.Credits)
		require.Equal(t, map[string]map[reward.Resource]int{"booster3": {reward.Credit: 2}}, d.TakeChanges())
		require.Nil(t, d.TakeChanges())
	})

	t.Run("state dependent rewards are deferred", func(t *testing.T) {
		d := NewData()
		result := d.Apply(reward.MustParse("up-terra,2k"), "tech", BrainstoneAsk)
		require.Equal(t, 2, d.Knowledge)
		require.Equal(t, []reward.Reward{{Count: 1, Type: reward.UpTerra}}, result.Deferred)
	})

	t.Run("brainstone choice stops the application", func(t *testing.T) {
		d := NewData()
		d.Power = Power{Area3: 3, Brainstone: Area3}
		result := d.Apply(reward.MustParse("2k,-3pw,o"), "power3", BrainstoneAsk)
		require.NotNil(t, result.Choice)
		require.Equal(t, reward.MustParse("-3pw,o"), result.Remaining)
		require.Equal(t, 2, d.Knowledge)
		require.Equal(t, 0, d.Ore)
	})

	t.Run("can pay", func(t *testing.T) {
		d := NewData()
		d.Ore = 2
		d.Power = Power{Brainstone: Area3}
		require.True(t, d.CanPay(reward.MustParse("o,o,3pw")))
		require.False(t, d.CanPay(reward.MustParse("3o")))
		require.False(t, d.CanPay(reward.MustParse("4pw")))
	})

	t.Run("occupied hexes stay sorted", func(t *testing.T) {
		d := NewData()
		d.Occupy(hex.Hex{Q: 2, R: 0})
		d.Occupy(hex.Hex{Q: -1, R: 1})
		d.Occupy(hex.Hex{Q: 2, R: 0})
		require.Len(t, d.Occupied, 2)
		d.Vacate(hex.Hex{Q: 2, R: 0})
		require.Equal(t, []hex.Hex{{Q: -1, R: 1}}, d.Occupied)
	})
}

func TestSelectFaction(t *testing.T) {
	t.Run("terrans start on gaia one", func(t *testing.T) {
		p := NewPlayer(0)
		once, err := p.SelectFaction(Terrans, "")
		require.NoError(t, err)
		require.Equal(t, 15, p.Data.Credits)
		require.Equal(t, 4, p.Data.Ore)
		require.Equal(t, 3, p.Data.Knowledge)
		require.Equal(t, 1, p.Data.Qics)
		require.Equal(t, 10, p.Data.VictoryPoints)
		require.Equal(t, 1, p.Data.Research[GaiaProject])
		require.Equal(t, Power{Area1: 2, Area2: 4}, p.Data.Power)
		require.Len(t, once, 1)
		require.Equal(t, "> gf", once[0].Spec)
		require.Equal(t, "terrans", p.Name())
	})

	t.Run("taklons hold the brainstone", func(t *testing.T) {
		p := NewPlayer(1)
		_, err := p.SelectFaction(Taklons, "")
		require.NoError(t, err)
		require.Equal(t, Area1, p.Data.Power.Brainstone)
	})

	t.Run("variant overrides the board", func(t *testing.T) {
		p := NewPlayer(0)
		_, err := p.SelectFaction(Lantids, "more-balanced")
		require.NoError(t, err)
		require.Equal(t, 15, p.Data.Credits)
	})

	t.Run("unknown faction", func(t *testing.T) {
		_, err := NewPlayer(0).SelectFaction("martians", "")
		require.Error(t, err)
	})
}

func TestPlayerEvents(t *testing.T) {
	t.Run("economy income is replaced per level", func(t *testing.T) {
		p := NewPlayer(0)
		p.LevelUp(Economy)
		p.LevelUp(Economy)
		income := p.EventsWith(reward.Income)
		require.Len(t, income, 1)
		require.Equal(t, "+o,2c,2pw", income[0].Event.Spec)
	})

	t.Run("building slots uncover income", func(t *testing.T) {
		p := NewPlayer(0)
		_, err := p.SelectFaction(Terrans, "")
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			require.NoError(t, p.AddBuilding(Mine))
		}
		sources := map[string]bool{}
		for _, e := range p.Events {
			sources[e.Source] = true
		}
		require.True(t, sources["m:1"])
		require.True(t, sources["m:2"])
		require.False(t, sources["m:3"])
		p.RemoveBuilding(Mine)
		p.RemoveBuilding(Mine)
		require.Equal(t, 1, p.Data.Buildings[Mine])
	})

	t.Run("activations reset", func(t *testing.T) {
		p := NewPlayer(0)
		require.NoError(t, p.AddEvents("ac2", []string{"=> q"}))
		i, ok := p.Activation("ac2")
		require.True(t, ok)
		p.Events[i].Event.Activated = true
		_, ok = p.Activation("ac2")
		require.False(t, ok)
		p.ResetActivations()
		_, ok = p.Activation("ac2")
		require.True(t, ok)
	})

	t.Run("triggers sum by condition", func(t *testing.T) {
		p := NewPlayer(0)
		require.NoError(t, p.AddEvents("round", []string{"m >> 2vp", "ts >> 3vp", "m >> 1k"}))
		require.Equal(t, reward.MustParse("2vp,k"), p.Triggered(reward.Mine))
	})

	t.Run("copy is deep", func(t *testing.T) {
		p := NewPlayer(0)
		p.Techs = []string{"tech1"}
		c := p.Copy()
		c.Techs[0] = "tech2"
		c.Data.Research[Science] = 3
		require.Equal(t, "tech1", p.Techs[0])
		require.Equal(t, 0, p.Data.Research[Science])
	})
}

func TestCapabilities(t *testing.T) {
	t.Run("gleens take qic as ore", func(t *testing.T) {
		p := NewPlayer(0)
		p.Faction = Gleens
		p.Gain(reward.MustParse("q"), "test", BrainstoneAsk)
		require.Equal(t, 1, p.Data.Ore)
		require.Equal(t, 0, p.Data.Qics)
	})

	t.Run("taklons offer both orders with PI", func(t *testing.T) {
		p := NewPlayer(0)
		p.Faction = Taklons
		caps := p.Capabilities()
		require.Equal(t, []string{"3pw"}, caps.ChargeOffers(p, 3))
		p.Data.Buildings[PlanetaryInstitute] = 1
		require.Equal(t, []string{"3pw,t", "t,3pw"}, caps.ChargeOffers(p, 3))
	})

	t.Run("xenos federate cheaper with PI", func(t *testing.T) {
		p := NewPlayer(0)
		p.Faction = Xenos
		require.Equal(t, 7, p.FederationThreshold())
		p.Data.Buildings[PlanetaryInstitute] = 1
		require.Equal(t, 6, p.FederationThreshold())
		require.Equal(t, 3, Xenos.Capabilities().StartingMines)
		require.Equal(t, 2, Terrans.Capabilities().StartingMines)
		require.Equal(t, 0, Ivits.Capabilities().StartingMines)
	})

	t.Run("nevlas spend half the power with PI", func(t *testing.T) {
		p := NewPlayer(0)
		p.Faction = Nevlas
		p.Data.Power = Power{Area3: 2}
		require.False(t, p.CanPay(reward.MustParse("4pw")))

		p.Data.Buildings[PlanetaryInstitute] = 1
		require.True(t, p.CanPay(reward.MustParse("4pw")))
		require.True(t, p.CanPay(reward.MustParse("3pw")))
		require.False(t, p.CanPay(reward.MustParse("5pw")))
		p.Gain(reward.MustParse("-3pw,o"), "power3", BrainstoneAsk)
		require.Equal(t, 0, p.Data.Power.Area3)
		require.Equal(t, 1, p.Data.Ore)
	})

	t.Run("special costs", func(t *testing.T) {
		require.Equal(t, reward.Ore, Gleens.Capabilities().GaiaPlanetCost)
		require.Equal(t, reward.Qic, Terrans.Capabilities().GaiaPlanetCost)
		require.Equal(t, reward.Qic, Ivits.Capabilities().SatelliteCost)
		require.Equal(t, reward.GainToken, Xenos.Capabilities().SatelliteCost)
		require.True(t, Lantids.Capabilities().AdditionalMines)
		require.False(t, Terrans.Capabilities().AdditionalMines)
	})

	t.Run("display names", func(t *testing.T) {
		require.Equal(t, "Hadsch Hallas", HadschHallas.DisplayName())
		require.Equal(t, "Terrans", Terrans.DisplayName())
	})

	t.Run("terraform steps wrap around the wheel", func(t *testing.T) {
		require.Equal(t, 1, Terra.TerraformSteps(Ice))
		require.Equal(t, 3, Terra.TerraformSteps(Desert))
		require.Equal(t, 0, Terra.TerraformSteps(Gaia))
	})
}
