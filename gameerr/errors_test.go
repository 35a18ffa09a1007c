package gameerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	t.Run("predicates match by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("apply move: %w", IllegalMove("hex %s is occupied", "0x0"))

		require.True(t, IsIllegalMove(err))
		require.False(t, IsParse(err))
		require.Equal(t, CodeIllegalMove, CodeOf(err))
		require.Equal(t, "apply move: hex 0x0 is occupied", err.Error())
	})

	t.Run("wrap keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("bad token")
		err := Wrap(CodeParse, "cannot parse reward", cause)

		require.True(t, IsParse(err))
		require.ErrorIs(t, err, cause)
		require.Equal(t, "cannot parse reward: bad token", err.Error())
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		require.Equal(t, Code(""), CodeOf(errors.New("x")))
		require.False(t, IsInvariant(errors.New("x")))
	})
}
