package searcher

import (
	"math"
	"sync"
	"time"

	"cascade/experiments/metrics"
	"cascade/game"

	"golang.org/x/exp/rand"
)

const BranchingBase = 5 // Budget is BranchingBase^depth branch visits

const DefaultDepth = 3
const DefaultMaxDepth = 64

var (
	Win  = math.Inf(1)
	Loss = math.Inf(-1)
)

type Option func(s *Searcher)

// Searcher picks moves by coalition minimax under a branch-visit budget.
// A Searcher is safe for use by one game loop at a time.
type Searcher struct {
	depth      int
	maxDepth   int
	goroutines int
	debug      bool
	evaluate   game.Evaluate
	metrics    metrics.Collector

	mu  sync.Mutex
	rng *rand.Rand
}

// WithDepth sets the budget exponent: each call may visit about BranchingBase^depth branches.
func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithMaxDepth caps iterative deepening regardless of the remaining budget.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithGoroutines evaluates top-level candidates concurrently. The chosen move does not depend on it.
func WithGoroutines(goroutines int) Option {
	return func(s *Searcher) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

// WithSeed seeds the generator breaking ties between equally fast forced wins.
func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDebug attaches the ranked candidate list to every Decision.
func WithDebug() Option {
	return func(s *Searcher) {
		s.debug = true
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		depth:      DefaultDepth,
		maxDepth:   DefaultMaxDepth,
		goroutines: 1,
		evaluate:   game.EvaluateMaterial,
		metrics:    metrics.NewDummyCollector(),
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Budget returns the total number of branch visits a call may spend.
func (s *Searcher) Budget() int {
	return int(math.Pow(BranchingBase, float64(s.depth)))
}

func (s *Searcher) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
