package game

import "fmt"

const NoOwner = -1

// Cell is a single grid square: its charge and the player owning it.
type Cell struct {
	Value int `json:"value"`
	Owner int `json:"owner"` // Player index, NoOwner when empty
}

func (c Cell) Empty() bool {
	return c.Value == 0 && c.Owner == NoOwner
}

// Board is a square grid of cells stored row-major.
type Board struct {
	Size  int
	Cells []Cell
}

// NewBoard creates an empty board: every cell at zero charge and unowned.
func NewBoard(size int) *Board {
	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i].Owner = NoOwner
	}
	return &Board{Size: size, Cells: cells}
}

func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Size: b.Size, Cells: cells}
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

func (b *Board) Index(row, col int) int {
	return row*b.Size + col
}

// Coords converts a flat index back to (row, col).
func (b *Board) Coords(index int) (row, col int) {
	return index / b.Size, index % b.Size
}

func (b *Board) At(row, col int) Cell {
	return b.Cells[b.Index(row, col)]
}

// Set overwrites a cell. Intended for fixtures and snapshots; play goes through ApplyMove.
func (b *Board) Set(row, col int, cell Cell) {
	b.Cells[b.Index(row, col)] = cell
}

// directions are the four orthogonal offsets, in the order cascades visit them.
var directions = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// neighbors returns the in-bounds orthogonal neighbor indices of a cell.
func (b *Board) neighbors(index int) []int {
	row, col := b.Coords(index)
	result := make([]int, 0, 4)
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if b.InBounds(r, c) {
			result = append(result, b.Index(r, c))
		}
	}
	return result
}

// Counts returns the number of cells owned by each of the given players.
func (b *Board) Counts(players int) []int {
	counts := make([]int, players)
	for _, cell := range b.Cells {
		if cell.Owner >= 0 && cell.Owner < players {
			counts[cell.Owner]++
		}
	}
	return counts
}

// String renders one row per line, each cell as value and owner letter.
func (b *Board) String() string {
	s := ""
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			cell := b.At(row, col)
			if cell.Owner == NoOwner {
				s += "  ."
			} else {
				s += fmt.Sprintf(" %d%c", cell.Value, 'a'+rune(cell.Owner))
			}
		}
		s += "\n"
	}
	return s
}
