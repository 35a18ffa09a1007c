package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceHelpers(t *testing.T) {
	t.Run("find index of present and missing items", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]string{"a", "b"}, "b"))
		require.Equal(t, -1, FindIndex([]string{"a", "b"}, "c"))
	})

	t.Run("remove only drops the first occurrence", func(t *testing.T) {
		in := []int{1, 2, 1}
		require.Equal(t, []int{2, 1}, Remove(in, 1))
		require.Equal(t, []int{1, 2, 1}, in, "Input should not be modified")
	})

	t.Run("copied maps are independent", func(t *testing.T) {
		m := map[string]int{"booster1": 1}
		c := CopyMap(m)
		c["booster1"] = 2
		require.Equal(t, 1, m["booster1"])
		require.Nil(t, CopyMap[string, int](nil))
	})

	t.Run("permutations list every order once", func(t *testing.T) {
		require.Equal(t, [][]int{{1, 2, 3}, {1, 3, 2}, {2, 1, 3}, {2, 3, 1}, {3, 1, 2}, {3, 2, 1}}, Permutations([]int{1, 2, 3}))
		require.Len(t, Permutations([]int{}), 1)
	})
}
