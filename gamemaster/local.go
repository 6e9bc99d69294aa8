package gamemaster

import (
	"errors"
	"fmt"

	"cascade/game"
	"cascade/meta"

	"github.com/google/uuid"
)

var (
	ErrGameOver = errors.New("game is over - no moves allowed")
	ErrDesync   = errors.New("mirror out of sync")
)

// Update is published after every accepted move or pass. Replaying the
// updates in order on a copy of the initial state must reproduce Hash.
type Update struct {
	Move    game.GameMove      `json:"move"`
	Pass    bool               `json:"pass"`
	Hash    game.StateHash     `json:"hash"`
	Cascade game.CascadeResult `json:"cascade"`
	Ended   bool               `json:"ended"`
}

// UpdateGetter returns the next pending update, ok is false when there is none.
type UpdateGetter func() (u Update, ok bool)

type Engine interface {
	Init() (*game.GameState, UpdateGetter, error)
	Play(move game.GameMove) error
	Pass(actor int, endGame bool) error
}

// Master holds the authoritative copy of one game and validates every request against it.
type Master struct {
	ID       string
	config   game.Config
	state    *game.GameState
	updateCh chan Update
	gameOver bool
}

var _ Engine = (*Master)(nil)

func NewMaster(cfg game.Config) *Master {
	return &Master{ID: uuid.NewString(), config: cfg}
}

// Init starts a fresh game and returns a copy of its initial state.
// Updates queue in a buffer of meta.UPDATE_BUFFER entries; callers must drain
// the getter as they go, since Play and Pass block once the buffer is full.
func (m *Master) Init() (*game.GameState, UpdateGetter, error) {
	gs, err := game.NewGameState(m.config)
	if err != nil {
		return nil, nil, err
	}

	m.state = gs
	m.gameOver = false
	m.updateCh = make(chan Update, meta.UPDATE_BUFFER)
	ch := m.updateCh
	return gs.Copy(), func() (Update, bool) {
		select {
		case u, ok := <-ch:
			return u, ok // Closed once the final update is consumed
		default:
			return Update{}, false
		}
	}, nil
}

// Play applies move if it is legal. An illegal move is returned as a *game.MoveError and changes nothing.
func (m *Master) Play(move game.GameMove) error {
	if err := m.ready(); err != nil {
		return err
	}

	result, err := m.state.Apply(move)
	if err != nil {
		return err
	}
	m.publish(Update{Move: move, Cascade: result})
	return nil
}

// Pass skips actor's turn when it has no legal move. With endGame the game stops afterwards.
func (m *Master) Pass(actor int, endGame bool) error {
	if err := m.ready(); err != nil {
		return err
	}
	if moves := m.state.LegalMoves(); len(moves) > 0 && actor == m.state.Current {
		return fmt.Errorf("player %d cannot pass with %d legal moves", actor, len(moves))
	}

	if err := m.state.Pass(actor); err != nil {
		return err
	}
	if endGame {
		m.state.End()
	}
	m.publish(Update{Move: game.GameMove{Actor: actor, Row: -1, Col: -1}, Pass: true})
	return nil
}

// State returns a copy of the authoritative state.
func (m *Master) State() *game.GameState {
	if m.state == nil {
		return nil
	}
	return m.state.Copy()
}

func (m *Master) ready() error {
	if m.state == nil {
		return errors.New("game master is not initialized")
	}
	if m.gameOver {
		return ErrGameOver
	}
	return nil
}

func (m *Master) publish(u Update) {
	u.Hash = m.state.Hash()
	u.Ended = m.state.Phase() == game.TerminalPhase
	m.updateCh <- u
	if u.Ended {
		m.gameOver = true
		close(m.updateCh)
	}
}

// Replay applies an update to a mirror of the game and checks it against the published hash.
func Replay(mirror *game.GameState, u Update) error {
	if u.Pass {
		if err := mirror.Pass(u.Move.Actor); err != nil {
			return err
		}
		if u.Ended && mirror.Phase() != game.TerminalPhase {
			mirror.End()
		}
	} else if _, err := mirror.Apply(u.Move); err != nil {
		return err
	}

	if got := mirror.Hash(); got != u.Hash {
		return fmt.Errorf("%w: mirror hash %x, master hash %x after %s", ErrDesync, got, u.Hash, u.Move)
	}
	return nil
}
