package searcher

import (
	"fmt"

	"cascade/game"
)

// position is a private copy of the parts of a game the search mutates.
type position struct {
	board  *game.Board
	placed []bool
	mover  int // Whose turn it is in real turn order, -1 when the game is over
}

func newPosition(gs *game.GameState) position {
	placed := make([]bool, len(gs.Placed))
	copy(placed, gs.Placed)
	return position{board: gs.Board.Copy(), placed: placed, mover: gs.Current}
}

func (p position) initial() bool {
	for _, placed := range p.placed {
		if !placed {
			return true
		}
	}
	return false
}

// world is what stays fixed for one search: the rules, the zone and whose move is being chosen.
type world struct {
	rules   game.Rules
	zone    game.Zone
	players int
	focus   int
}

// outcome of a simulated move from the focus player's perspective.
type outcome int

const (
	undecided outcome = iota
	won
	lost
)

// play applies a move to a copy of p and resolves its cascade. The turn
// advances from the real mover even when a coalition member made the move.
func (w world) play(p position, move game.GameMove) (position, game.CascadeResult, outcome) {
	child := position{board: p.board.Copy(), placed: make([]bool, len(p.placed))}
	copy(child.placed, p.placed)

	initial := p.initial()
	turn := game.Turn{Actor: move.Actor, Players: w.players, Initial: !p.placed[move.Actor]}
	if err := game.ApplyMove(child.board, w.zone, w.rules, move, turn); err != nil {
		panic(fmt.Sprintf("search generated an illegal move: %v", err))
	}
	result := game.ResolveExplosions(child.board, w.rules, initial)
	child.placed[move.Actor] = true

	if result.Runaway {
		child.mover = -1
		if move.Actor == w.focus {
			return child, result, won
		}
		return child, result, lost
	}

	next, ok := game.NextActor(child.board, w.players, p.mover, child.initial())
	child.mover = next
	if child.initial() {
		return child, result, undecided
	}

	alive := game.AliveMask(child.board, w.players, false)
	switch {
	case !alive[w.focus]:
		return child, result, lost
	case !ok:
		return child, result, won
	default:
		return child, result, undecided
	}
}

// candidates returns the moves available at p. The focus player and any
// player still making its opening placement move alone; otherwise every
// other player's moves are pooled into one coalition.
func (w world) candidates(p position) []game.GameMove {
	if p.mover < 0 {
		return nil
	}
	if p.mover == w.focus || !p.placed[p.mover] {
		return game.LegalMoves(p.board, w.zone, p.mover, p.placed[p.mover])
	}

	var moves []game.GameMove
	for player := 0; player < w.players; player++ {
		if player == w.focus || !p.placed[player] {
			continue
		}
		moves = append(moves, game.LegalMoves(p.board, w.zone, player, true)...)
	}
	return moves
}
