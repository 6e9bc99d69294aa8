package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID         int
	Random     bool   // Plays uniformly random legal moves, ignoring the search fields
	Depth      int    // Budget exponent
	Goroutines int
	Evaluation string // Name of the static evaluation, "" for the default
	Seed       uint64
}

type GameRecord struct {
	ID          int
	Seats       []int // AgentConfig.ID per player index
	WinnerAgent int   // AgentConfig.ID of the winner, -1 on a draw
	GameMetric
}

type MoveRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "random", "depth", "goroutines", "evaluation", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.FormatBool(config.Random),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Goroutines),
			config.Evaluation,
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.write("agent_configs.csv", "agent config", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game_id", "seats", "players", "size", "starting_player", "winner", "winner_agent", "runaway", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		seats := make([]string, len(record.Seats))
		for i, id := range record.Seats {
			seats[i] = strconv.Itoa(id)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.GameID,
			strings.Join(seats, " "),
			strconv.Itoa(record.Players),
			strconv.Itoa(record.Size),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			strconv.Itoa(record.WinnerAgent),
			strconv.FormatBool(record.Runaway),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", "game record", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "agent", "duration", "goroutines", "budget", "depth", "visits", "candidates"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Agent),
			record.Duration.String(),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Budget),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Visits),
			strconv.Itoa(record.Candidates),
		})
	}
	return w.write("move_records.csv", "move record", header, rows)
}

func (w *Writer) write(file, kind string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", kind, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s file: %w", kind, err)
	}
	return nil
}
