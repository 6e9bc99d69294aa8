package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cascade/experiments/metrics"
	"cascade/game"
	"cascade/gamemaster"
	"cascade/meta"
	"cascade/searcher"
	"cascade/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local runs a game between in-process agents. Each agent decides on its own
// mirror of the game, kept in step by replaying the master's updates.
type Local struct {
	config   game.Config
	agents   []agent.Agent
	maxTurns int
}

var _ Engine = (*Local)(nil)

type Option func(e *Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// LocalEngine returns an engine seating agents[i] as player i.
func LocalEngine(cfg game.Config, agents []agent.Agent, options ...Option) (*Local, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	if len(agents) != cfg.Players {
		return nil, fmt.Errorf("number of agents (%d) does not match number of players (%d)", len(agents), cfg.Players)
	}

	e := &Local{
		config:   cfg,
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run executes the entire game loop until the game ends or the turn cap is hit.
// A runaway cascade and the turn cap are both draws, reported with an empty winner.
func (e *Local) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	master := gamemaster.NewMaster(e.config)
	view, getUpdate, err := master.Init()
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}
	mirrors := make([]*game.GameState, len(e.agents))
	for i := range mirrors {
		mirrors[i] = view.Copy()
	}

	gameMetric := metrics.GameMetric{
		GameID:         master.ID,
		Players:        e.config.Players,
		Size:           e.config.Size,
		StartingPlayer: view.Current,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game %s: %d players on %dx%d, %s is starting", master.ID, e.config.Players, e.config.Size, e.config.Size, view.Player())

	turn := 1
	for ; view.Phase() != game.TerminalPhase && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, err
		}

		actor := view.Current
		decision, searchMetric, err := e.agents[actor].FindMove(ctx, mirrors[actor])
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move: %w", actor, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       actor,
			SearchMetric: searchMetric,
		})

		if err := submit(master, view, actor, decision); err != nil {
			return "", gameMetric, moveMetrics, err
		}

		alive := view.Alive()
		for u, ok := getUpdate(); ok; u, ok = getUpdate() {
			if err := gamemaster.Replay(view, u); err != nil {
				return "", gameMetric, moveMetrics, err
			}
			for i, mirror := range mirrors {
				if err := gamemaster.Replay(mirror, u); err != nil {
					return "", gameMetric, moveMetrics, fmt.Errorf("player %d: %w", i, err)
				}
			}
		}
		logEliminations(view, alive)
	}

	switch {
	case view.Phase() != game.TerminalPhase:
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	case view.Runaway:
		log.Warn().Msgf("runaway cascade after %s, game drawn", view.LastMove)
	case view.Winner() == "":
		log.Info().Msg("game ended in a draw")
	default:
		log.Info().Msgf("game ended due to a winner: %s", view.Winner())
	}
	log.Debug().Msgf("final board after %d moves:\n%s", view.Moves, view.Board)

	gameMetric.Winner = view.Winner()
	gameMetric.Runaway = view.Runaway
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = view.Moves
	return view.Winner(), gameMetric, moveMetrics, nil
}

// submit hands a decision to the master. An agent answering with an illegal
// move forfeits its choice: the first legal move is played instead.
func submit(master *gamemaster.Master, view *game.GameState, actor int, decision searcher.Decision) error {
	move, ok := decision.GameMove()
	if !ok {
		return master.Pass(actor, decision.ScheduleGameEnd)
	}

	err := master.Play(move)
	var moveErr *game.MoveError
	if !errors.As(err, &moveErr) {
		return err
	}

	log.Warn().Msgf("player %d returned an invalid move (%s) => forcing fallback", actor, moveErr.Reason)
	fallback := view.LegalMoves()
	if len(fallback) == 0 {
		return master.Pass(actor, !view.Placed[actor])
	}
	return master.Play(fallback[0])
}

func logEliminations(view *game.GameState, before []bool) {
	after := view.Alive()
	for player := range before {
		if before[player] && !after[player] {
			log.Info().Msgf("player %s has been eliminated", view.Palette.Name(player))
		}
	}
}
