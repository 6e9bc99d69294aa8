package agent

import (
	"context"
	"sync"

	"cascade/experiments/metrics"
	"cascade/game"
	"cascade/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing a uniformly random legal move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, gs *game.GameState) (searcher.Decision, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return searcher.Decision{}, metrics.SearchMetric{}, err
	}
	if gs.Phase() == game.TerminalPhase {
		return searcher.Decision{}, metrics.SearchMetric{}, searcher.ErrGameOver
	}

	actor := gs.Current
	initial := !gs.Placed[actor]
	moves := gs.LegalMoves()
	metric := metrics.SearchMetric{Goroutines: 1, Candidates: len(moves)}
	if len(moves) == 0 {
		return searcher.Decision{Actor: actor, RequireAdvanceTurn: true, ScheduleGameEnd: initial}, metric, nil
	}

	a.mu.Lock()
	move := moves[a.rng.Intn(len(moves))]
	a.mu.Unlock()

	return searcher.Decision{
		Actor: actor,
		Move:  &searcher.Placement{Row: move.Row, Col: move.Col, IsInitial: initial},
	}, metric, nil
}
