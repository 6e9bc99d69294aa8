package game

import "cascade/utils"

// AliveMask reports which players still own at least one cell. During initial
// placement nobody can be eliminated yet, so everyone counts as alive.
func AliveMask(b *Board, players int, initial bool) []bool {
	alive := make([]bool, players)
	if initial {
		for i := range alive {
			alive[i] = true
		}
		return alive
	}
	for i, count := range b.Counts(players) {
		alive[i] = count > 0
	}
	return alive
}

func countAlive(alive []bool) int {
	return utils.Count(alive, func(a bool) bool { return a })
}

// NextActor returns the player due after last, skipping eliminated players.
// ok is false once at most one player remains alive: the game is over.
func NextActor(b *Board, players, last int, initial bool) (next int, ok bool) {
	if players <= 0 {
		return -1, false
	}
	alive := AliveMask(b, players, initial)
	if countAlive(alive) <= 1 {
		return -1, false
	}
	next = ((last+1)%players + players) % players
	for !alive[next] {
		next = (next + 1) % players
	}
	return next, true
}
