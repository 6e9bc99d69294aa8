package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAliveMask(t *testing.T) {
	b := NewBoard(4)
	b.Set(0, 0, Cell{Value: 1, Owner: 2})

	require.Equal(t, []bool{true, true, true}, AliveMask(b, 3, true), "Nobody is eliminated during initial placement")
	require.Equal(t, []bool{false, false, true}, AliveMask(b, 3, false))
}

func TestNextActor(t *testing.T) {
	t.Run("skips eliminated players indefinitely", func(t *testing.T) {
		b := NewBoard(6)
		b.Set(0, 0, Cell{Value: 2, Owner: 0})
		b.Set(5, 5, Cell{Value: 3, Owner: 3})

		actor := 0
		var order []int
		for i := 0; i < 8; i++ {
			next, ok := NextActor(b, 4, actor, false)
			require.True(t, ok)
			order = append(order, next)
			actor = next
		}

		require.Equal(t, []int{3, 0, 3, 0, 3, 0, 3, 0}, order, "Players 1 and 2 should be skipped")
	})

	t.Run("follows strict order during initial placement", func(t *testing.T) {
		b := NewBoard(6)

		for last := 0; last < 3; last++ {
			next, ok := NextActor(b, 4, last, true)
			require.True(t, ok)
			require.Equal(t, last+1, next)
		}
	})

	t.Run("reports the end once one player remains", func(t *testing.T) {
		b := NewBoard(4)
		b.Set(1, 1, Cell{Value: 1, Owner: 1})

		next, ok := NextActor(b, 3, 1, false)

		require.False(t, ok)
		require.Equal(t, -1, next)
	})

	t.Run("handles a start before the first move", func(t *testing.T) {
		next, ok := NextActor(NewBoard(3), 2, -1, true)

		require.True(t, ok)
		require.Equal(t, 0, next)
	})
}
