package gamemaster

import (
	"errors"
	"testing"

	"cascade/game"

	"github.com/stretchr/testify/require"
)

func newMaster(t *testing.T, size, players int) (*Master, *game.GameState, UpdateGetter) {
	t.Helper()
	m := NewMaster(game.Config{Size: size, Players: players, Rules: game.NewStandardRules()})
	state, getUpdate, err := m.Init()
	require.NoError(t, err)
	return m, state, getUpdate
}

func TestMasterInit(t *testing.T) {
	t.Run("starts a fresh game", func(t *testing.T) {
		m, state, getUpdate := newMaster(t, 6, 2)

		require.NotEmpty(t, m.ID)
		require.Equal(t, game.InitialPlacementPhase, state.Phase())
		require.Equal(t, 0, state.Current)
		_, ok := getUpdate()
		require.False(t, ok, "No update before the first move")
	})

	t.Run("returns a copy of the authoritative state", func(t *testing.T) {
		m, state, _ := newMaster(t, 6, 2)
		state.Board.Set(0, 0, game.Cell{Value: 5, Owner: 1})

		require.True(t, m.State().Board.At(0, 0).Empty())
	})

	t.Run("rejects invalid configurations", func(t *testing.T) {
		_, _, err := NewMaster(game.Config{Size: 2, Players: 9, Rules: game.NewStandardRules()}).Init()

		require.Error(t, err)
	})

	t.Run("gives every game its own id", func(t *testing.T) {
		cfg := game.Config{Size: 6, Players: 2, Rules: game.NewStandardRules()}

		require.NotEqual(t, NewMaster(cfg).ID, NewMaster(cfg).ID)
	})
}

func TestMasterPlay(t *testing.T) {
	t.Run("publishes accepted moves", func(t *testing.T) {
		m, mirror, getUpdate := newMaster(t, 6, 2)
		move := game.GameMove{Actor: 0, Row: 0, Col: 0}

		require.NoError(t, m.Play(move))

		u, ok := getUpdate()
		require.True(t, ok)
		require.Equal(t, move, u.Move)
		require.False(t, u.Ended)
		require.Equal(t, 1, u.Cascade.Explosions, "The corner opening bounces")
		require.Equal(t, m.State().Hash(), u.Hash)
		require.NoError(t, Replay(mirror, u))
	})

	t.Run("queues updates until they are drained", func(t *testing.T) {
		m, mirror, getUpdate := newMaster(t, 6, 2)
		moves := []game.GameMove{{Actor: 0, Row: 0, Col: 0}, {Actor: 1, Row: 5, Col: 5}}
		for _, move := range moves {
			require.NoError(t, m.Play(move))
		}

		for _, move := range moves {
			u, ok := getUpdate()
			require.True(t, ok)
			require.Equal(t, move, u.Move, "Updates should drain in the order they were played")
			require.NoError(t, Replay(mirror, u))
		}
		_, ok := getUpdate()
		require.False(t, ok)
		require.Equal(t, m.State().Hash(), mirror.Hash())
	})

	t.Run("rejects illegal moves without publishing", func(t *testing.T) {
		m, _, getUpdate := newMaster(t, 6, 2)
		before := m.State().Hash()

		err := m.Play(game.GameMove{Actor: 0, Row: 2, Col: 2})

		var moveErr *game.MoveError
		require.True(t, errors.As(err, &moveErr))
		require.Equal(t, game.InitialInvalidPosition, moveErr.Reason)
		require.Equal(t, before, m.State().Hash())
		_, ok := getUpdate()
		require.False(t, ok)
	})

	t.Run("requires Init", func(t *testing.T) {
		m := NewMaster(game.Config{Size: 6, Players: 2, Rules: game.NewStandardRules()})

		require.Error(t, m.Play(game.GameMove{Actor: 0, Row: 0, Col: 0}))
	})
}

func TestMasterPass(t *testing.T) {
	t.Run("refuses a pass while moves are available", func(t *testing.T) {
		m, _, _ := newMaster(t, 6, 2)

		require.Error(t, m.Pass(0, false))
	})

	t.Run("ends a game that cannot seat every player", func(t *testing.T) {
		m, mirror, getUpdate := newMaster(t, 3, 3)
		for _, move := range []game.GameMove{{Actor: 0, Row: 0, Col: 0}, {Actor: 1, Row: 2, Col: 2}} {
			require.NoError(t, m.Play(move))
			u, ok := getUpdate()
			require.True(t, ok)
			require.NoError(t, Replay(mirror, u))
		}

		require.NoError(t, m.Pass(2, true))

		u, ok := getUpdate()
		require.True(t, ok, "The final update is still delivered")
		require.True(t, u.Pass)
		require.True(t, u.Ended)
		require.NoError(t, Replay(mirror, u))
		require.Equal(t, game.TerminalPhase, mirror.Phase())
		require.Equal(t, "", mirror.Winner(), "Ending before every opening is a draw")

		_, ok = getUpdate()
		require.False(t, ok)
		require.ErrorIs(t, m.Play(game.GameMove{Actor: 0, Row: 0, Col: 0}), ErrGameOver)
		require.ErrorIs(t, m.Pass(0, false), ErrGameOver)
	})
}

func TestReplayDetectsDesync(t *testing.T) {
	m, mirror, getUpdate := newMaster(t, 6, 2)
	mirror.Board.Set(5, 5, game.Cell{Value: 1, Owner: 1})

	require.NoError(t, m.Play(game.GameMove{Actor: 0, Row: 0, Col: 0}))
	u, ok := getUpdate()
	require.True(t, ok)

	require.ErrorIs(t, Replay(mirror, u), ErrDesync)
}
