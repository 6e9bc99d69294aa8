package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"cascade/experiments/metrics"
	"cascade/game"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	cfg := game.Config{Size: 4, Players: 2, Rules: game.NewStandardRules()}
	exp := BaselineExperiment(cfg, 1)
	exp.Games = 2
	exp.MaxTurns = 30
	root := t.TempDir()

	dir, err := Run(context.Background(), root, exp)

	require.NoError(t, err)
	require.Equal(t, root, filepath.Dir(filepath.Dir(dir)))

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3, "Header plus one row per agent")
	require.Equal(t, "true", configs[1][1])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3)
	require.Equal(t, "0 1", games[1][2])
	require.Equal(t, "1 0", games[2][2], "Seats rotate between games")

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Greater(t, len(moves), 1)
	require.Equal(t, "game", moves[0][0])
}

func TestRunRejectsMismatchedSeats(t *testing.T) {
	cfg := game.Config{Size: 4, Players: 3, Rules: game.NewStandardRules()}
	exp := Experiment{
		Name:     "broken",
		Game:     cfg,
		Games:    1,
		MatchUps: [][]metrics.AgentConfig{{{ID: 0, Random: true}, {ID: 1, Random: true}}},
	}

	_, err := Run(context.Background(), t.TempDir(), exp)

	require.Error(t, err)
}

func TestExperimentShapes(t *testing.T) {
	cfg := game.Config{Size: 6, Players: 3, Rules: game.NewStandardRules()}

	depth := DepthExperiment(cfg, []int{2, 3})
	require.Len(t, depth.Configs, 3)
	require.Len(t, depth.MatchUps, 2)
	for _, matchup := range depth.MatchUps {
		require.Len(t, matchup, 3)
		require.Equal(t, 0, matchup[0].ID)
	}

	throughput := ThroughputExperiment(cfg, 2)
	require.Len(t, throughput.MatchUps, len(goroutineCounts))
	require.Equal(t, throughput.MatchUps[1][0], throughput.MatchUps[1][2], "Every seat plays the same config")
}
