package engine

import (
	"context"

	"cascade/experiments/metrics"
)

type Engine interface {
	// Run plays a game until it ends or a max number of turns is reached
	Run(ctx context.Context) (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
