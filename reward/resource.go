package reward

// Resource is the code of something a player gains or pays.
type Resource string

const (
	None Resource = "~"

	Credit       Resource = "c"
	Ore          Resource = "o"
	Knowledge    Resource = "k"
	Qic          Resource = "q"
	VictoryPoint Resource = "vp"

	// ChargePower charges power; a negative count spends power from area 3.
	ChargePower Resource = "pw"
	// GainToken adds tokens to area 1; a negative count discards tokens.
	GainToken Resource = "t"
	// GaiaToken moves tokens into the gaia area when negative.
	GaiaToken Resource = "tg"

	TerraformStep  Resource = "d"
	TemporaryRange Resource = "r"
	GaiaFormer     Resource = "gf"

	UpTerra  Resource = "up-terra"
	UpNav    Resource = "up-nav"
	UpInt    Resource = "up-int"
	UpGaia   Resource = "up-gaia"
	UpEco    Resource = "up-eco"
	UpSci    Resource = "up-sci"
	UpAny    Resource = "up"
	UpLowest Resource = "up-lowest"

	Tech              Resource = "tech"
	TerraFederation   Resource = "terra-fed"
	RescoreFederation Resource = "rescore-fed"
	SpaceStation      Resource = "space-station"
	SwapPI            Resource = "swap-PI"
	DowngradeLab      Resource = "down-lab"
	LostPlanet        Resource = "lost-planet"
)

var resources = []Resource{
	None, Credit, Ore, Knowledge, Qic, VictoryPoint, ChargePower, GainToken, GaiaToken,
	TerraformStep, TemporaryRange, GaiaFormer,
	UpTerra, UpNav, UpInt, UpGaia, UpEco, UpSci, UpAny, UpLowest,
	Tech, TerraFederation, RescoreFederation, SpaceStation, SwapPI, DowngradeLab, LostPlanet,
}

var knownResources = func() map[Resource]bool {
	m := make(map[Resource]bool, len(resources))
	for _, r := range resources {
		m[r] = true
	}
	return m
}()

// IsResearch reports whether r advances a research track.
func (r Resource) IsResearch() bool {
	switch r {
	case UpTerra, UpNav, UpInt, UpGaia, UpEco, UpSci, UpAny, UpLowest:
		return true
	}
	return false
}
