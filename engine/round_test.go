package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gaia/player"
)

func TestIncomeOrder(t *testing.T) {
	t.Run("plain charges commute", func(t *testing.T) {
		require.False(t, incomeOrderMatters(player.Power{Area1: 4, Area2: 2}, []string{"1pw", "2pw"}))
	})

	t.Run("tokens before charges matter", func(t *testing.T) {
		require.True(t, incomeOrderMatters(player.Power{Area2: 1}, []string{"1pw", "1t"}))
	})

	t.Run("middle placements are compared", func(t *testing.T) {
		// charge first and its reverse both end with two tokens in area 3
		chunks := []string{"1pw", "1t,1pw", "1t,3pw"}
		require.True(t, incomeOrderMatters(player.Power{}, chunks))
	})
}
