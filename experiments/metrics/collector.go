package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Budget     int
	Depth      int // Deepest completed iteration
	Visits     int // Branches visited over all iterations
	Candidates int
	Duration   time.Duration
}

type MoveMetric struct {
	Step   int
	Player int // Player index
	SearchMetric
}

type GameMetric struct {
	GameID         string
	Players        int
	Size           int
	StartingPlayer int    // Player index
	Winner         string // Winning color, "" on a draw
	Runaway        bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, budget int)
	SetCandidates(n int)
	SetDepth(depth int)
	AddVisits(n int)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	budget     int
	startTime  time.Time
	candidates atomic.Int32
	depth      atomic.Int32
	visits     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, budget int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.budget = budget
	m.candidates.Store(0)
	m.depth.Store(0)
	m.visits.Store(0)
}

func (m *collector) SetCandidates(n int) {
	m.candidates.Store(int32(n))
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) AddVisits(n int) {
	m.visits.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Budget:     m.budget,
		Depth:      int(m.depth.Load()),
		Visits:     int(m.visits.Load()),
		Candidates: int(m.candidates.Load()),
		Duration:   time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, budget int) {}
func (m *dummyCollector) SetCandidates(n int)          {}
func (m *dummyCollector) SetDepth(depth int)           {}
func (m *dummyCollector) AddVisits(n int)              {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
