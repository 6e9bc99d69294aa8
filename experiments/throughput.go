package experiments

import (
	"cascade/experiments/metrics"
	"cascade/game"
)

var goroutineCounts = []int{1, 2, 4, 8, 16}

// ThroughputExperiment measures how candidate-level parallelism changes the
// time per decision. Each matchup seats the same config in every seat for the
// same playing strength and similar game length; the chosen moves do not
// depend on the goroutine count, so only the durations differ.
func ThroughputExperiment(cfg game.Config, depth int) Experiment {
	configs := make([]metrics.AgentConfig, len(goroutineCounts))
	matchUps := make([][]metrics.AgentConfig, len(goroutineCounts))
	for i, goroutines := range goroutineCounts {
		configs[i] = metrics.AgentConfig{ID: i + 1, Depth: depth, Goroutines: goroutines, Seed: 1}
		seats := make([]metrics.AgentConfig, cfg.Players)
		for s := range seats {
			seats[s] = configs[i]
		}
		matchUps[i] = seats
	}
	return Experiment{Name: "throughput", Game: cfg, Games: 1, Configs: configs, MatchUps: matchUps}
}
