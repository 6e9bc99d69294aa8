package game

type StateHash uint64

// State is the read-only view of a game an agent needs to pick a move.
type State interface {
	Player() string
	Phase() Phase
	LegalMoves() []GameMove
	Hash() StateHash
	Winner() string
}

// Evaluate scores a board from the given player's perspective. Higher is better.
type Evaluate func(b *Board, player int) float64

var _ State = (*GameState)(nil)
