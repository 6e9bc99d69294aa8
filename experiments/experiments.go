package experiments

import (
	"context"
	"fmt"

	"cascade/engine"
	"cascade/experiments/metrics"
	"cascade/game"
	"cascade/searcher"
	"cascade/searcher/agent"

	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

// Experiment is a series of match ups, each played Games times with seats rotated between games.
type Experiment struct {
	Name     string
	Game     game.Config
	Games    int
	MaxTurns int // 0 keeps the engine default
	Configs  []metrics.AgentConfig
	MatchUps [][]metrics.AgentConfig // One config per seat
}

// DepthExperiment pairs search agents of growing budget against a depth-1 baseline.
func DepthExperiment(cfg game.Config, depths []int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, Goroutines: 1, Seed: 1}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Depth: depth, Goroutines: 1, Seed: uint64(i + 2)}
		configs = append(configs, config)
		matchUps = append(matchUps, seatAgainst(cfg.Players, baseline, config))
	}
	return Experiment{Name: "depth", Game: cfg, Games: NumGames, Configs: configs, MatchUps: matchUps}
}

// BaselineExperiment pits the default search agent against random play.
func BaselineExperiment(cfg game.Config, depth int) Experiment {
	random := metrics.AgentConfig{ID: 0, Random: true, Seed: 1}
	search := metrics.AgentConfig{ID: 1, Depth: depth, Goroutines: 1, Seed: 2}
	return Experiment{
		Name:     "baseline",
		Game:     cfg,
		Games:    NumGames,
		Configs:  []metrics.AgentConfig{random, search},
		MatchUps: [][]metrics.AgentConfig{seatAgainst(cfg.Players, random, search)},
	}
}

// seatAgainst fills every seat but the last with the baseline.
func seatAgainst(players int, baseline, challenger metrics.AgentConfig) []metrics.AgentConfig {
	seats := make([]metrics.AgentConfig, players)
	for i := range seats {
		seats[i] = baseline
	}
	seats[players-1] = challenger
	return seats
}

// Run plays the experiment and stores its configs and records as CSV under root.
func Run(ctx context.Context, root string, exp Experiment) (string, error) {
	palette, err := game.NewPalette(exp.Game.Players)
	if err != nil {
		return "", err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		if len(matchup) != exp.Game.Players {
			return "", fmt.Errorf("matchup %d seats %d agents for %d players", mi+1, len(matchup), exp.Game.Players)
		}
		log.Info().Msgf("starting matchup %d of %d between %+v...", mi+1, len(exp.MatchUps), matchup)

		for i := 0; i < exp.Games; i++ {
			seats := rotate(matchup, i)
			count++
			winner, gameMetric, moveMetrics, err := runGame(ctx, exp, seats, count)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			record := metrics.GameRecord{ID: count, WinnerAgent: -1, GameMetric: gameMetric}
			for _, config := range seats {
				record.Seats = append(record.Seats, config.ID)
			}
			if player := palette.Index(game.Color(winner)); player >= 0 {
				record.WinnerAgent = seats[player].ID
			}
			gameRecords = append(gameRecords, record)

			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					Agent:      seats[mm.Player].ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(exp.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// rotate shifts seats by one per game so every agent gets to open.
func rotate(matchup []metrics.AgentConfig, shift int) []metrics.AgentConfig {
	n := len(matchup)
	seats := make([]metrics.AgentConfig, n)
	for i := range seats {
		seats[i] = matchup[(i+shift)%n]
	}
	return seats
}

// runGame executes a single game and returns the winner
func runGame(ctx context.Context, exp Experiment, seats []metrics.AgentConfig, gameNum int) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(seats))
	for i, config := range seats {
		a, err := createAgent(config, uint64(gameNum))
		if err != nil {
			return "", metrics.GameMetric{}, nil, err
		}
		agents[i] = a
	}

	var options []engine.Option
	if exp.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(exp.MaxTurns))
	}
	e, err := engine.LocalEngine(exp.Game, agents, options...)
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, salt uint64) (agent.Agent, error) {
	if config.Random {
		return agent.NewRandomAgent(config.Seed + salt), nil
	}

	options := []searcher.Option{
		searcher.WithSeed(config.Seed + salt),
		searcher.WithMetrics(),
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Evaluation != "" {
		evaluate, err := game.EvaluationByName(config.Evaluation)
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	return agent.NewSearchAgent(searcher.New(options...)), nil
}
