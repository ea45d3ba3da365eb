package metrics

import (
	"sync/atomic"
	"time"

	"monaco/game"
)

type RaceMetric struct {
	Race            string
	Winner          string
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	Operations      int
	Purchases       int
	Shellings       int
	HazardsConsumed int
	SkippedTurns    int
	Turns           uint64
}

// Collector tallies the events of one race. It is safe for concurrent use.
type Collector interface {
	Start(race string)
	Record(ev game.Event)
	Complete() RaceMetric
}

type collector struct {
	race            string
	startTime       time.Time
	winner          atomic.Value // string
	turns           atomic.Uint64
	operations      atomic.Int32
	purchases       atomic.Int32
	shellings       atomic.Int32
	hazardsConsumed atomic.Int32
	skippedTurns    atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(race string) {
	m.startTime = time.Now()
	m.race = race
}

func (m *collector) Record(ev game.Event) {
	m.operations.Add(1)
	m.turns.Store(ev.Turns)
	if ev.Op == game.OpPlay {
		for _, record := range ev.Records {
			if record.Skipped != "" {
				m.skippedTurns.Add(1)
			}
			if record.Purchase != nil {
				m.purchase(*record.Purchase)
			}
		}
		if ev.Outcome == game.OutcomeFinished {
			m.winner.Store(string(ev.Car))
		}
		return
	}
	m.purchase(ev)
}

func (m *collector) purchase(ev game.Event) {
	switch ev.Outcome {
	case game.OutcomeShelled:
		m.shellings.Add(1)
	case game.OutcomeBlocked:
		m.hazardsConsumed.Add(1)
	}
	// a duplicate banana is refunded; a purchase priced at zero still counts
	if ev.Outcome != game.OutcomeDuplicateHazard {
		m.purchases.Add(1)
	}
}

func (m *collector) Complete() RaceMetric {
	end := time.Now()
	winner, _ := m.winner.Load().(string)
	return RaceMetric{
		Race:            m.race,
		Winner:          winner,
		StartTime:       m.startTime,
		EndTime:         end,
		Duration:        end.Sub(m.startTime),
		Operations:      int(m.operations.Load()),
		Purchases:       int(m.purchases.Load()),
		Shellings:       int(m.shellings.Load()),
		HazardsConsumed: int(m.hazardsConsumed.Load()),
		SkippedTurns:    int(m.skippedTurns.Load()),
		Turns:           m.turns.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(race string)    {}
func (m *dummyCollector) Record(ev game.Event) {}
func (m *dummyCollector) Complete() RaceMetric { return RaceMetric{} }
