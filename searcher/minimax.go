package searcher

import (
	"math"
	"sync/atomic"

	"cascade/game"
)

// run carries the counters of one fixed-depth pass over the candidates.
type run struct {
	world
	evaluate game.Evaluate
	visits   atomic.Int64
	frontier atomic.Bool // Some branch was cut off by the depth limit
}

// branch simulates move from p and scores the result, searching depth more plies below it.
// plies counts the moves up to and including the one producing a forced win.
func (r *run) branch(p position, move game.GameMove, depth int, alpha, beta float64) (value float64, plies int) {
	child, _, result := r.play(p, move)
	r.visits.Add(1)

	switch result {
	case won:
		return Win, 1
	case lost:
		return Loss, 1
	}

	if depth == 0 {
		r.frontier.Store(true)
		return r.evaluate(child.board, r.focus), 0
	}

	value, plies = r.minimax(child, depth, alpha, beta)
	return value, plies + 1
}

// minimax maximises the focus player's evaluation on its own turns and
// minimises it on everyone else's, pruning with alpha-beta. A forced
// outcome at any child ends the scan of its siblings.
func (r *run) minimax(p position, depth int, alpha, beta float64) (float64, int) {
	moves := r.candidates(p)
	if len(moves) == 0 {
		return r.evaluate(p.board, r.focus), 0
	}

	if p.mover == r.focus {
		best, bestPlies := math.Inf(-1), 0
		for _, move := range moves {
			value, plies := r.branch(p, move, depth-1, alpha, beta)
			if value > best {
				best, bestPlies = value, plies
			}
			alpha = math.Max(alpha, best)
			if best == Win || alpha >= beta {
				break
			}
		}
		return best, bestPlies
	}

	best, bestPlies := math.Inf(1), 0
	for _, move := range moves {
		value, plies := r.branch(p, move, depth-1, alpha, beta)
		// Among forced wins, the coalition delays as long as it can
		if value < best || (value == Win && best == Win && plies > bestPlies) {
			best, bestPlies = value, plies
		}
		beta = math.Min(beta, best)
		if best == Loss || alpha >= beta {
			break
		}
	}
	return best, bestPlies
}
