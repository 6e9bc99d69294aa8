package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, size, players int) *GameState {
	t.Helper()
	gs, err := NewGameState(Config{Size: size, Players: players, Rules: NewStandardRules()})
	require.NoError(t, err)
	return gs
}

func TestNewGameState(t *testing.T) {
	t.Run("creates an empty board in initial placement", func(t *testing.T) {
		gs := newTestState(t, 6, 3)

		require.Equal(t, InitialPlacementPhase, gs.Phase())
		require.Equal(t, 0, gs.Current)
		require.Equal(t, "red", gs.Player())
		require.Equal(t, "", gs.Winner())
		for _, cell := range gs.Board.Cells {
			require.True(t, cell.Empty())
		}
	})

	t.Run("reports every configuration problem at once", func(t *testing.T) {
		_, err := NewGameState(Config{
			Size:    2,
			Players: 9,
			Rules:   Rules{MaxValue: 3, InitialValue: 5, Threshold: 4},
		})

		require.Error(t, err)
		require.Contains(t, err.Error(), "board size 2")
		require.Contains(t, err.Error(), "player count 9")
		require.Contains(t, err.Error(), "max value 3 is below threshold 4")
		require.Contains(t, err.Error(), "initial value 5")
	})
}

func TestGameStateApply(t *testing.T) {
	t.Run("plays a full two-player opening on 3x3", func(t *testing.T) {
		gs := newTestState(t, 3, 2)

		result, err := gs.Apply(GameMove{Actor: 0, Row: 0, Col: 0})
		require.NoError(t, err)
		require.Equal(t, 1, result.Explosions)
		require.Equal(t, Cell{Value: 2, Owner: 0}, gs.Board.At(0, 0))
		require.Equal(t, 1, gs.Current, "Player 1 should move next")
		require.Equal(t, InitialPlacementPhase, gs.Phase())

		require.Equal(t, []GameMove{{Actor: 1, Row: 2, Col: 2}}, gs.LegalMoves())
		_, err = gs.Apply(GameMove{Actor: 1, Row: 2, Col: 2})
		require.NoError(t, err)

		require.Equal(t, MainPhase, gs.Phase())
		require.Equal(t, 0, gs.Current)
		require.Equal(t, 2, gs.Moves)
		require.Equal(t, Cell{Value: 2, Owner: 1}, gs.Board.At(2, 2))
	})

	t.Run("rejects out of turn moves without changing state", func(t *testing.T) {
		gs := newTestState(t, 6, 2)
		before := gs.Hash()

		_, err := gs.Apply(GameMove{Actor: 1, Row: 0, Col: 0})

		var moveErr *MoveError
		require.True(t, errors.As(err, &moveErr))
		require.Equal(t, WrongTurn, moveErr.Reason)
		require.Equal(t, before, gs.Hash())
	})

	t.Run("declares the sole survivor the winner", func(t *testing.T) {
		gs := newTestState(t, 4, 2)
		gs.Placed = []bool{true, true}
		gs.Board.Set(0, 0, Cell{Value: 3, Owner: 0})
		gs.Board.Set(0, 1, Cell{Value: 1, Owner: 1})

		_, err := gs.Apply(GameMove{Actor: 0, Row: 0, Col: 0})

		require.NoError(t, err)
		require.Equal(t, TerminalPhase, gs.Phase())
		require.Equal(t, 0, gs.Won)
		require.Equal(t, "red", gs.Winner())

		_, err = gs.Apply(GameMove{Actor: 0, Row: 0, Col: 1})
		var moveErr *MoveError
		require.True(t, errors.As(err, &moveErr))
		require.Equal(t, NoPlayers, moveErr.Reason, "No moves are accepted once the game is over")
	})

	t.Run("ends in a draw on a runaway cascade", func(t *testing.T) {
		gs := newTestState(t, 3, 2)
		gs.Rules = Rules{MaxValue: 5, InitialValue: 1, Threshold: 1}

		result, err := gs.Apply(GameMove{Actor: 0, Row: 0, Col: 0})

		require.NoError(t, err)
		require.True(t, result.Runaway)
		require.True(t, gs.Runaway)
		require.Equal(t, TerminalPhase, gs.Phase())
		require.Equal(t, "", gs.Winner())
	})
}

func TestGameStatePass(t *testing.T) {
	gs := newTestState(t, 6, 3)

	require.Error(t, gs.Pass(2), "Only the current player may pass")
	require.NoError(t, gs.Pass(0))
	require.Equal(t, 1, gs.Current)

	gs.End()
	require.Equal(t, TerminalPhase, gs.Phase())
	require.Equal(t, "", gs.Winner(), "Ending during initial placement is a draw")
}

func TestGameStateCopy(t *testing.T) {
	gs := newTestState(t, 6, 2)
	_, err := gs.Apply(GameMove{Actor: 0, Row: 0, Col: 0})
	require.NoError(t, err)

	clone := gs.Copy()
	require.Equal(t, gs.Hash(), clone.Hash(), "Copies should hash identically")

	_, err = clone.Apply(GameMove{Actor: 1, Row: 5, Col: 5})
	require.NoError(t, err)
	require.NotEqual(t, gs.Hash(), clone.Hash())
	require.True(t, gs.Board.At(5, 5).Empty(), "Mutating a copy should not touch the original")
	require.False(t, gs.Placed[1])
}

func TestSnapshot(t *testing.T) {
	gs := newTestState(t, 5, 3)
	_, err := gs.Apply(GameMove{Actor: 0, Row: 0, Col: 0})
	require.NoError(t, err)

	restored, err := FromSnapshot(gs.ToSnapshot())
	require.NoError(t, err)
	require.Equal(t, gs.Hash(), restored.Hash())

	bad := gs.ToSnapshot()
	bad.Cells = bad.Cells[1:]
	_, err = FromSnapshot(bad)
	require.Error(t, err, "Snapshot with a wrong cell count should be rejected")

	oversized := gs.ToSnapshot()
	oversized.Size = 3037000500
	require.NotPanics(t, func() { _, err = FromSnapshot(oversized) })
	require.Error(t, err, "A declared size that does not match the cells should be rejected before allocating")
}
