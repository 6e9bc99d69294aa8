package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cascade/config"
	"cascade/engine"
	"cascade/experiments"
	"cascade/game"
	"cascade/searcher"
	"cascade/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&settings.Mode, "mode", settings.Mode, "play, serve or experiment")
	flag.IntVar(&settings.Size, "size", settings.Size, "Board side length")
	flag.IntVar(&settings.Players, "players", settings.Players, "Number of players")
	flag.IntVar(&settings.Depth, "depth", settings.Depth, "Search budget exponent (5^depth branch visits per move)")
	flag.IntVar(&settings.MaxDepth, "max-depth", settings.MaxDepth, "Cap on iterative deepening")
	flag.IntVar(&settings.Goroutines, "goroutines", settings.Goroutines, "Number of goroutines scoring top-level candidates")
	flag.StringVar(&settings.Evaluation, "evaluation", settings.Evaluation, "Static evaluation: material or territory")
	flag.Uint64Var(&settings.Seed, "seed", settings.Seed, "Seed for tie-breaking")
	flag.IntVar(&settings.MaxTurns, "max-turns", settings.MaxTurns, "Turns before a game is called a draw")
	flag.StringVar(&settings.Addr, "addr", settings.Addr, "Listen address in serve mode")
	flag.StringVar(&settings.Experiment, "experiment", settings.Experiment, "depth, baseline or throughput")
	flag.StringVar(&settings.ExperimentDir, "experiment-dir", settings.ExperimentDir, "Directory for experiment results")
	flag.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "trace, debug, info, warn or error")
	remote := flag.String("remote", "", "Agent server URL seated as the last player in play mode")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	level, _ := zerolog.ParseLevel(settings.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch settings.Mode {
	case "serve":
		err = agent.NewServer(agent.NewSearchAgent(newSearcher(settings, 0))).ListenAndServe(settings.Addr)
	case "experiment":
		err = runExperiment(ctx, settings)
	default:
		err = play(ctx, settings, *remote)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", settings.Mode)
	}
}

func newSearcher(settings config.Settings, seat int) *searcher.Searcher {
	evaluate, _ := game.EvaluationByName(settings.Evaluation)
	return searcher.New(
		searcher.WithDepth(settings.Depth),
		searcher.WithMaxDepth(settings.MaxDepth),
		searcher.WithGoroutines(settings.Goroutines),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithSeed(settings.Seed+uint64(seat)),
		searcher.WithMetrics(),
	)
}

func play(ctx context.Context, settings config.Settings, remote string) error {
	agents := make([]agent.Agent, settings.Players)
	for i := range agents {
		agents[i] = agent.NewSearchAgent(newSearcher(settings, i))
	}
	if remote != "" {
		agents[len(agents)-1] = agent.NewRemoteAgent(remote, &http.Client{Timeout: time.Minute})
	}

	e, err := engine.LocalEngine(settings.GameConfig(), agents, engine.WithMaxTurns(settings.MaxTurns))
	if err != nil {
		return err
	}
	winner, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	if winner == "" {
		winner = "none (draw)"
	}
	fmt.Printf("Game %s over after %d moves in %s. Winner: %s\n", gameMetric.GameID, gameMetric.TotalMoves, gameMetric.Duration, winner)
	return nil
}

func runExperiment(ctx context.Context, settings config.Settings) error {
	var exp experiments.Experiment
	switch settings.Experiment {
	case "depth":
		exp = experiments.DepthExperiment(settings.GameConfig(), []int{2, 3, 4})
	case "throughput":
		exp = experiments.ThroughputExperiment(settings.GameConfig(), settings.Depth)
	case "baseline":
		exp = experiments.BaselineExperiment(settings.GameConfig(), settings.Depth)
	default:
		return fmt.Errorf("unknown experiment %q", settings.Experiment)
	}
	exp.MaxTurns = settings.MaxTurns

	_, err := experiments.Run(ctx, settings.ExperimentDir, exp)
	return err
}
