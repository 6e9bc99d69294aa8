package game

import (
	"fmt"

	"cascade/utils"
)

// EvaluateMaterial is the static evaluation used by the search: total charge owned.
func EvaluateMaterial(b *Board, player int) float64 {
	return float64(Material(b, player))
}

// EvaluateTerritory counts owned cells, ignoring how charged they are.
func EvaluateTerritory(b *Board, player int) float64 {
	return float64(Territory(b, player))
}

// Material sums the values of the cells owned by player.
func Material(b *Board, player int) int {
	total := 0
	for _, cell := range b.Cells {
		if cell.Owner == player {
			total += cell.Value
		}
	}
	return total
}

func Territory(b *Board, player int) int {
	return utils.Count(b.Cells, func(c Cell) bool { return c.Owner == player })
}

// AttackPotential counts the player's cells that border a lower-valued opposing cell.
func AttackPotential(b *Board, player int) int {
	count := 0
	for i, cell := range b.Cells {
		if cell.Owner != player {
			continue
		}
		for _, n := range b.neighbors(i) {
			other := b.Cells[n]
			if other.Owner != NoOwner && other.Owner != player && other.Value < cell.Value {
				count++
				break
			}
		}
	}
	return count
}

// DefensePotential counts the player's cells one charge short of exploding.
func DefensePotential(b *Board, player int, rules Rules) int {
	return utils.Count(b.Cells, func(c Cell) bool {
		return c.Owner == player && c.Value == rules.Threshold-1
	})
}

var evaluations = map[string]Evaluate{
	"material":  EvaluateMaterial,
	"territory": EvaluateTerritory,
}

// EvaluationByName looks up a static evaluation by its configuration name.
func EvaluationByName(name string) (Evaluate, error) {
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
	return evaluate, nil
}
