package game

// Turn describes whose move the rules expect.
type Turn struct {
	Actor   int  // Expected actor, -1 when nobody can move
	Players int  // Number of players in the game
	Initial bool // Whether the expected actor still makes an opening placement
}

// IsInitialPlacementLegal reports whether an opening placement may target (row, col):
// outside the exclusion zone and with no owned orthogonal neighbor.
func IsInitialPlacementLegal(b *Board, zone Zone, row, col int) bool {
	if !b.InBounds(row, col) || zone.Contains(b, row, col) {
		return false
	}
	for _, n := range b.neighbors(b.Index(row, col)) {
		if b.Cells[n].Owner != NoOwner {
			return false
		}
	}
	return true
}

// LegalMoves enumerates the actor's legal moves in row-major order. Before its
// first move an actor may place on any empty, legal opening cell; afterwards it
// may charge any cell it owns.
func LegalMoves(b *Board, zone Zone, actor int, hasPlaced bool) []GameMove {
	var moves []GameMove
	for i, cell := range b.Cells {
		row, col := b.Coords(i)
		if !hasPlaced {
			if cell.Empty() && IsInitialPlacementLegal(b, zone, row, col) {
				moves = append(moves, GameMove{Actor: actor, Row: row, Col: col})
			}
			continue
		}
		if cell.Owner == actor && cell.Value > 0 {
			moves = append(moves, GameMove{Actor: actor, Row: row, Col: col})
		}
	}
	return moves
}

// ApplyMove validates a move against the expected turn and, if legal, charges
// the target cell. The cascade is not resolved here. A rejected move returns a
// *MoveError and leaves the board untouched.
func ApplyMove(b *Board, zone Zone, rules Rules, move GameMove, turn Turn) error {
	if turn.Players <= 0 || turn.Actor < 0 {
		return reject(move, NoPlayers)
	}
	if move.Actor != turn.Actor {
		return reject(move, WrongTurn)
	}
	if !b.InBounds(move.Row, move.Col) {
		return reject(move, OutOfBounds)
	}

	index := b.Index(move.Row, move.Col)
	cell := b.Cells[index]

	if turn.Initial {
		if !cell.Empty() {
			return reject(move, InitialNotEmpty)
		}
		if !IsInitialPlacementLegal(b, zone, move.Row, move.Col) {
			return reject(move, InitialInvalidPosition)
		}
		b.Cells[index] = Cell{Value: rules.InitialValue, Owner: move.Actor}
		return nil
	}

	if cell.Owner != move.Actor || cell.Value <= 0 {
		return reject(move, NotOwnedCell)
	}
	b.Cells[index].Value = min(cell.Value+1, rules.MaxValue)
	return nil
}
