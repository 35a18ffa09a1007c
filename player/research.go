package player

import (
	"fmt"

	"gaia/meta"
	"gaia/reward"
)

// Track is a research track.
type Track string

const (
	Terraforming Track = "terra"
	Navigation   Track = "nav"
	Intelligence Track = "int"
	GaiaProject  Track = "gaia"
	Economy      Track = "eco"
	Science      Track = "sci"
)

var Tracks = []Track{Terraforming, Navigation, Intelligence, GaiaProject, Economy, Science}

func ParseTrack(s string) (Track, error) {
	for _, t := range Tracks {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown research track %q", s)
}

// UpResource is the reward that advances t by one level.
func (t Track) UpResource() reward.Resource {
	return reward.Resource("up-" + string(t))
}

// TrackOf returns the track named by an up-* reward.
func TrackOf(r reward.Resource) (Track, bool) {
	for _, t := range Tracks {
		if t.UpResource() == r {
			return t, true
		}
	}
	return "", false
}

// Research maps every track to the player's level.
type Research map[Track]int

func (r Research) Copy() Research {
	copied := make(Research, len(r))
	for k, v := range r {
		copied[k] = v
	}
	return copied
}

// LevelEvents returns the events gained on reaching level on track t.
func LevelEvents(t Track, level int) []reward.Event {
	levels := research.Tracks[t].events
	if level < 0 || level >= len(levels) {
		return nil
	}
	return cloneEvents(levels[level])
}

// TerraformCost is the ore paid per terraforming step.
func TerraformCost(level int) int {
	return research.TerraformCost[clampLevel(level)]
}

// NavigationRange is the base range before QIC extension.
func NavigationRange(level int) int {
	return research.NavigationRange[clampLevel(level)]
}

// GaiaFormingCost is the number of tokens a gaia former moves to the gaia area.
func GaiaFormingCost(level int) int {
	return research.GaiaFormingCost[clampLevel(level)]
}

func clampLevel(level int) int {
	return max(0, min(level, meta.MAX_RESEARCH_LEVEL))
}

func cloneEvents(events []reward.Event) []reward.Event {
	cloned := make([]reward.Event, len(events))
	for i, e := range events {
		cloned[i] = e.Clone()
	}
	return cloned
}
