package game

import "fmt"

// GameMove is a request by a player to charge the cell at (Row, Col).
type GameMove struct {
	Actor int `json:"actor"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

func (m GameMove) String() string {
	return fmt.Sprintf("player %d -> (%d,%d)", m.Actor, m.Row, m.Col)
}

// Reason is the closed set of causes for rejecting a move.
type Reason string

const (
	WrongTurn              Reason = "wrong_turn"
	OutOfBounds            Reason = "out_of_bounds"
	InitialNotEmpty        Reason = "initial_not_empty"
	InitialInvalidPosition Reason = "initial_invalid_position"
	NotOwnedCell           Reason = "not_owned_cell"
	NoPlayers              Reason = "no_players"
)

// MoveError reports a rejected move. Rejections never mutate the board.
type MoveError struct {
	Move   GameMove
	Reason Reason
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func reject(move GameMove, reason Reason) error {
	return &MoveError{Move: move, Reason: reason}
}
