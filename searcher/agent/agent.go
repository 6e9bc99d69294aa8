package agent

import (
	"context"

	"cascade/experiments/metrics"
	"cascade/game"
	"cascade/searcher"
)

type Agent interface {
	// FindMove returns a decision for the player due to move in gs and the search metrics (if collected).
	// Implementations must not modify gs.
	FindMove(ctx context.Context, gs *game.GameState) (searcher.Decision, metrics.SearchMetric, error)
}

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent playing the searcher's top-ranked move.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(ctx context.Context, gs *game.GameState) (searcher.Decision, metrics.SearchMetric, error) {
	return a.searcher.ChooseMove(ctx, gs)
}
