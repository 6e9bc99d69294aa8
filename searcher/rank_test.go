package searcher

import (
	"testing"

	"cascade/game"

	"github.com/stretchr/testify/require"
)

func candidate(col int, value float64, plies, attack, defense int) CandidateInfo {
	return CandidateInfo{
		Move:       game.GameMove{Row: 0, Col: col},
		Value:      value,
		PliesToWin: plies,
		Attack:     attack,
		Defense:    defense,
	}
}

func TestRank(t *testing.T) {
	t.Run("prefers the fastest forced win", func(t *testing.T) {
		s := New(WithSeed(3))
		infos := []CandidateInfo{
			candidate(0, 12, 0, 5, 5),
			candidate(1, Win, 2, 0, 0),
			candidate(2, Win, 1, 0, 0),
		}

		ranked := s.rank(infos)

		require.Equal(t, 2, ranked[0].Move.Col)
		require.Equal(t, 1, ranked[1].Move.Col)
		require.Equal(t, 0, ranked[2].Move.Col)
	})

	t.Run("breaks ties between equally fast wins at random", func(t *testing.T) {
		s := New(WithSeed(9))
		infos := []CandidateInfo{
			candidate(0, Win, 1, 0, 0),
			candidate(1, Win, 1, 0, 0),
			candidate(2, Win, 3, 0, 0),
		}

		seen := map[int]bool{}
		for i := 0; i < 64; i++ {
			ranked := s.rank(infos)
			require.Contains(t, []int{0, 1}, ranked[0].Move.Col, "Only the fastest wins are eligible")
			seen[ranked[0].Move.Col] = true
		}
		require.Len(t, seen, 2, "Both fastest wins should eventually be picked")
	})

	t.Run("uses attack then defense potential only as tie-breaks", func(t *testing.T) {
		s := New()
		infos := []CandidateInfo{
			candidate(0, 10, 0, 9, 9),
			candidate(1, 11, 0, 0, 0),
			candidate(2, 10, 0, 9, 10),
			candidate(3, 10, 0, 10, 0),
		}

		ranked := s.rank(infos)

		cols := make([]int, len(ranked))
		for i, c := range ranked {
			cols[i] = c.Move.Col
		}
		require.Equal(t, []int{1, 3, 2, 0}, cols)
	})

	t.Run("keeps enumeration order on full ties", func(t *testing.T) {
		s := New()
		infos := []CandidateInfo{
			candidate(0, Loss, 0, 1, 1),
			candidate(1, Loss, 0, 1, 1),
		}

		ranked := s.rank(infos)

		require.Equal(t, 0, ranked[0].Move.Col)
		require.Equal(t, infos, []CandidateInfo{candidate(0, Loss, 0, 1, 1), candidate(1, Loss, 0, 1, 1)}, "Input should not be reordered")
	})
}
