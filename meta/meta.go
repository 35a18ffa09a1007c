// meta/meta.go
package meta

// LAST_ROUND is the number of rounds in a game.
const LAST_ROUND = 6

// MAX_RESEARCH_LEVEL is the top level of every research track.
const MAX_RESEARCH_LEVEL = 5

// RESEARCH_COST is the knowledge paid for one research step.
const RESEARCH_COST = 4

// FEDERATION_THRESHOLD is the default total power value a federation needs.
const FEDERATION_THRESHOLD = 7

// STARTING_VP is the victory point total every player starts with.
const STARTING_VP = 10

// LEECH_DISTANCE is the maximum distance at which a building offers power to neighbours.
const LEECH_DISTANCE = 2

// TRADING_STATION_DISTANCE is the distance to an opponent building that makes a trading station cheaper.
const TRADING_STATION_DISTANCE = 2

// MAX_CREDITS, MAX_ORE and MAX_KNOWLEDGE cap the resource ledger.
const (
	MAX_CREDITS   = 30
	MAX_ORE       = 15
	MAX_KNOWLEDGE = 15
)

// FINAL_SCORING_POINTS is awarded by rank for each final scoring tile.
var FINAL_SCORING_POINTS = []int{18, 12, 6}

// MAX_FEDERATION_COMBINATIONS bounds the minimal building-group subsets tried when listing federations.
const MAX_FEDERATION_COMBINATIONS = 4096
