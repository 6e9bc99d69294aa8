package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"cascade/game"
	"cascade/meta"
	"cascade/searcher"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const Prefix = "CASCADE_"

// Settings are the knobs shared by every entry point. Flags in main override them.
type Settings struct {
	Mode          string // play, serve or experiment
	Size          int
	Players       int
	Depth         int
	MaxDepth      int
	Goroutines    int
	Evaluation    string
	Seed          uint64
	MaxTurns      int
	Addr          string
	Experiment    string // depth, baseline or throughput
	ExperimentDir string
	LogLevel      string
}

func Defaults() Settings {
	return Settings{
		Mode:          "play",
		Size:          meta.DEFAULT_SIZE,
		Players:       meta.DEFAULT_PLAYERS,
		Depth:         meta.DEFAULT_DEPTH,
		MaxDepth:      searcher.DefaultMaxDepth,
		Goroutines:    meta.GO_ROUTINES,
		Evaluation:    "material",
		Seed:          1,
		MaxTurns:      meta.MAX_TURNS,
		Addr:          ":8080",
		Experiment:    "baseline",
		ExperimentDir: "experiments/results",
		LogLevel:      "info",
	}
}

// Load reads the given .env files (".env" when none are named; missing files
// are skipped) and then CASCADE_* variables from the environment over the
// defaults. Every malformed value is reported.
func Load(files ...string) (Settings, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load env file: %w", err)
	}

	s := Defaults()
	var result *multierror.Error
	str := func(key string, dst *string) {
		if value, ok := os.LookupEnv(Prefix + key); ok && value != "" {
			*dst = value
		}
	}
	integer := func(key string, dst *int) {
		value, ok := os.LookupEnv(Prefix + key)
		if !ok || value == "" {
			return
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s%s: %w", Prefix, key, err))
			return
		}
		*dst = parsed
	}

	str("MODE", &s.Mode)
	integer("SIZE", &s.Size)
	integer("PLAYERS", &s.Players)
	integer("DEPTH", &s.Depth)
	integer("MAX_DEPTH", &s.MaxDepth)
	integer("GOROUTINES", &s.Goroutines)
	str("EVALUATION", &s.Evaluation)
	integer("MAX_TURNS", &s.MaxTurns)
	str("ADDR", &s.Addr)
	str("EXPERIMENT", &s.Experiment)
	str("EXPERIMENT_DIR", &s.ExperimentDir)
	str("LOG_LEVEL", &s.LogLevel)
	if value, ok := os.LookupEnv(Prefix + "SEED"); ok && value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%sSEED: %w", Prefix, err))
		} else {
			s.Seed = seed
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) GameConfig() game.Config {
	return game.Config{Size: s.Size, Players: s.Players, Rules: game.NewStandardRules()}
}

// Validate reports every inconsistent setting at once.
func (s Settings) Validate() error {
	var result *multierror.Error
	switch s.Mode {
	case "play", "serve", "experiment":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown mode %q", s.Mode))
	}
	if err := s.GameConfig().Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.Depth < 1 {
		result = multierror.Append(result, fmt.Errorf("depth %d must be at least 1", s.Depth))
	}
	if s.MaxDepth < 1 {
		result = multierror.Append(result, fmt.Errorf("max depth %d must be at least 1", s.MaxDepth))
	}
	if s.Goroutines < 1 {
		result = multierror.Append(result, fmt.Errorf("goroutines %d must be at least 1", s.Goroutines))
	}
	if s.MaxTurns < 1 {
		result = multierror.Append(result, fmt.Errorf("max turns %d must be at least 1", s.MaxTurns))
	}
	if _, err := game.EvaluationByName(s.Evaluation); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
