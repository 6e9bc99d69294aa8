package game

import "fmt"

// Snapshot is the wire form of a GameState handed to remote agents.
type Snapshot struct {
	Size         int    `json:"size"`
	Players      int    `json:"players"`
	MaxValue     int    `json:"max_value"`
	InitialValue int    `json:"initial_value"`
	Threshold    int    `json:"threshold"`
	Cells        []Cell `json:"cells"`
	Placed       []bool `json:"placed"`
	Current      int    `json:"current"`
	Moves        int    `json:"moves"`
}

func (gs *GameState) ToSnapshot() Snapshot {
	cells := make([]Cell, len(gs.Board.Cells))
	copy(cells, gs.Board.Cells)
	placed := make([]bool, len(gs.Placed))
	copy(placed, gs.Placed)

	return Snapshot{
		Size:         gs.Board.Size,
		Players:      gs.Players(),
		MaxValue:     gs.Rules.MaxValue,
		InitialValue: gs.Rules.InitialValue,
		Threshold:    gs.Rules.Threshold,
		Cells:        cells,
		Placed:       placed,
		Current:      gs.Current,
		Moves:        gs.Moves,
	}
}

// FromSnapshot rebuilds a GameState, rejecting snapshots whose shape does not add up.
// The shape is checked against the decoded slices before any board is
// allocated, so a declared size never drives an allocation by itself.
func FromSnapshot(s Snapshot) (*GameState, error) {
	if s.Size <= 0 || len(s.Cells)%s.Size != 0 || len(s.Cells)/s.Size != s.Size {
		return nil, fmt.Errorf("snapshot has %d cells for a board of size %d", len(s.Cells), s.Size)
	}
	if len(s.Placed) != s.Players {
		return nil, fmt.Errorf("snapshot has %d placement flags, want %d", len(s.Placed), s.Players)
	}
	gs, err := NewGameState(Config{
		Size:    s.Size,
		Players: s.Players,
		Rules: Rules{
			MaxValue:     s.MaxValue,
			InitialValue: s.InitialValue,
			Threshold:    s.Threshold,
		},
	})
	if err != nil {
		return nil, err
	}
	if s.Current < -1 || s.Current >= s.Players {
		return nil, fmt.Errorf("snapshot current player %d out of range", s.Current)
	}
	for i, cell := range s.Cells {
		if cell.Value < 0 || cell.Value > s.MaxValue || cell.Owner < NoOwner || cell.Owner >= s.Players {
			return nil, fmt.Errorf("snapshot cell %d is invalid: %+v", i, cell)
		}
	}

	copy(gs.Board.Cells, s.Cells)
	copy(gs.Placed, s.Placed)
	gs.Current = s.Current
	gs.Moves = s.Moves
	if s.Current < 0 {
		gs.Ended = true
	}
	return gs, nil
}
