package searcher

import (
	"context"
	"errors"
	"math"

	"cascade/experiments/metrics"
	"cascade/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrGameOver = errors.New("game is over - no player to move")

// Placement is the move a Decision recommends for the acting player.
type Placement struct {
	Row       int  `json:"row"`
	Col       int  `json:"col"`
	IsInitial bool `json:"is_initial"`
}

// CandidateInfo holds the diagnostics of one candidate move.
type CandidateInfo struct {
	Move       game.GameMove `json:"move"`
	Gain       int           `json:"gain"`       // Immediate material delta for the acting player
	Explosions int           `json:"explosions"` // Explosions triggered by the move itself
	Attack     int           `json:"attack"`
	Defense    int           `json:"defense"`
	Value      float64       `json:"value"`        // Searched value, ±Inf for forced outcomes
	PliesToWin int           `json:"plies_to_win"` // Set when Value is +Inf; plies of the first forced win found, an upper bound on the fastest
}

type Decision struct {
	Actor              int             `json:"actor"`
	Move               *Placement      `json:"move,omitempty"`
	RequireAdvanceTurn bool            `json:"require_advance_turn"`
	ScheduleGameEnd    bool            `json:"schedule_game_end"`
	Depth              int             `json:"depth"`
	Visits             int             `json:"visits"`
	Candidates         []CandidateInfo `json:"candidates,omitempty"` // Ranked, best first; only WithDebug
}

// GameMove converts the recommendation into a move request, ok is false when there is none.
func (d Decision) GameMove() (game.GameMove, bool) {
	if d.Move == nil {
		return game.GameMove{}, false
	}
	return game.GameMove{Actor: d.Actor, Row: d.Move.Row, Col: d.Move.Col}, true
}

// ChooseMove picks a move for the player due to move in gs. gs is never
// modified; the caller applies the returned move itself.
//
// The search is re-run at depth 1, 2, 3... until the branch-visit budget is
// spent, the tree is fully explored, or the depth cap is hit. The context is
// only checked between top-level candidates; if it is cancelled, the result of
// the last completed depth is used.
func (s *Searcher) ChooseMove(ctx context.Context, gs *game.GameState) (Decision, metrics.SearchMetric, error) {
	if gs.Phase() == game.TerminalPhase {
		return Decision{}, metrics.SearchMetric{}, ErrGameOver
	}

	focus := gs.Current
	initial := !gs.Placed[focus]
	moves := gs.LegalMoves()
	s.metrics.Start(s.goroutines, s.Budget())
	s.metrics.SetCandidates(len(moves))

	if len(moves) == 0 {
		log.Debug().Msgf("player %d has no legal move", focus)
		// A player stuck before its opening placement means the board cannot seat everyone
		return Decision{
			Actor:              focus,
			RequireAdvanceTurn: true,
			ScheduleGameEnd:    initial,
		}, s.metrics.Complete(), nil
	}

	w := world{
		rules:   gs.Rules,
		zone:    gs.Zone,
		players: gs.Players(),
		focus:   focus,
	}
	root := newPosition(gs)
	infos := s.describe(w, root, moves)

	budget := s.Budget()
	total := 0
	depth := 0
	for d := 1; d <= s.maxDepth; d++ {
		values, visits, frontier, err := s.searchDepth(ctx, w, root, moves, d)
		if err != nil {
			if depth == 0 {
				return Decision{}, s.metrics.Complete(), err
			}
			log.Debug().Msgf("search cancelled during depth %d, keeping depth %d", d, depth)
			break
		}

		for i := range infos {
			infos[i].Value = values[i].value
			infos[i].PliesToWin = values[i].plies
		}
		depth = d
		total += visits
		s.metrics.SetDepth(d)
		s.metrics.AddVisits(visits)
		log.Debug().Msgf("player %d completed depth %d: %d visits (%d of %d)", focus, d, visits, total, budget)

		if total >= budget || !frontier {
			break
		}
	}

	ranked := s.rank(infos)
	best := ranked[0].Move
	decision := Decision{
		Actor:  focus,
		Move:   &Placement{Row: best.Row, Col: best.Col, IsInitial: initial},
		Depth:  depth,
		Visits: total,
	}
	if s.debug {
		decision.Candidates = ranked
	}
	return decision, s.metrics.Complete(), nil
}

// describe computes the depth-independent diagnostics of each candidate.
func (s *Searcher) describe(w world, root position, moves []game.GameMove) []CandidateInfo {
	before := game.Material(root.board, w.focus)
	infos := make([]CandidateInfo, len(moves))
	for i, move := range moves {
		child, result, _ := w.play(root, move)
		infos[i] = CandidateInfo{
			Move:       move,
			Gain:       game.Material(child.board, w.focus) - before,
			Explosions: result.Explosions,
			Attack:     game.AttackPotential(child.board, w.focus),
			Defense:    game.DefensePotential(child.board, w.focus, w.rules),
		}
	}
	return infos
}

type scored struct {
	value float64
	plies int
}

// searchDepth scores every candidate with its own full-window search of the given depth.
func (s *Searcher) searchDepth(ctx context.Context, w world, root position, moves []game.GameMove, depth int) ([]scored, int, bool, error) {
	r := &run{world: w, evaluate: s.evaluate}
	values := make([]scored, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, move := range moves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			value, plies := r.branch(root, move, depth-1, math.Inf(-1), math.Inf(1))
			values[i] = scored{value: value, plies: plies}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, false, err
	}
	return values, int(r.visits.Load()), r.frontier.Load(), nil
}
