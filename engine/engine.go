package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/ksuid"

	"monaco/game"
	"monaco/metrics"
	"monaco/store"
)

// Engine hosts races on top of a Store. Every operation loads the race once,
// runs one core operation and saves the result once. Operations on the same
// race are serialized.
type Engine struct {
	store        store.Store
	auth         game.Authorizer
	requester    game.TurnRequester
	newCollector func() metrics.Collector

	locks sync.Map // race id -> *sync.Mutex

	mu         sync.Mutex
	collectors map[string]metrics.Collector
	history    map[string][]metrics.EventRecord
}

type Option func(*Engine)

// WithAuthorizer replaces the default owner check.
func WithAuthorizer(auth game.Authorizer) Option {
	return func(e *Engine) {
		if auth != nil {
			e.auth = auth
		}
	}
}

func WithRequester(requester game.TurnRequester) Option {
	return func(e *Engine) {
		if requester != nil {
			e.requester = requester
		}
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.newCollector = metrics.NewCollector
	}
}

func New(s store.Store, options ...Option) *Engine {
	e := &Engine{
		store:        s,
		newCollector: metrics.NewDummyCollector,
		collectors:   make(map[string]metrics.Collector),
		history:      make(map[string][]metrics.EventRecord),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// NewRace stores a fresh waiting race owned by owner and returns its id.
func (e *Engine) NewRace(ctx context.Context, owner string, cfg game.Config) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("%w: empty owner", game.ErrUnauthorized)
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("race config: %w", err)
	}

	id := ksuid.New().String()
	state := game.NewState(id, owner, cfg)
	if err := e.store.Save(ctx, state); err != nil {
		return "", err
	}

	collector := e.newCollector()
	collector.Start(id)
	e.mu.Lock()
	e.collectors[id] = collector
	e.mu.Unlock()

	log.Info().Str("race", id).Str("owner", owner).Int("players", cfg.PlayersRequired).Msg("race created")
	return id, nil
}

func (e *Engine) Register(ctx context.Context, race, caller string, cars []game.CarID) (game.Event, error) {
	return e.apply(ctx, race, func(s game.State) (*game.State, game.Event, error) {
		return s.Register(e.auth, caller, cars)
	})
}

func (e *Engine) Reset(ctx context.Context, race, caller string, cfg *game.Config) (game.Event, error) {
	return e.apply(ctx, race, func(s game.State) (*game.State, game.Event, error) {
		return s.Reset(e.auth, caller, cfg)
	})
}

func (e *Engine) Buy(ctx context.Context, race string, car game.CarID, action game.Action) (game.Event, error) {
	return e.apply(ctx, race, func(s game.State) (*game.State, game.Event, error) {
		return s.Buy(car, action)
	})
}

func (e *Engine) Play(ctx context.Context, race string, turns uint64) (game.Event, error) {
	return e.apply(ctx, race, func(s game.State) (*game.State, game.Event, error) {
		return s.Play(e.requester, turns)
	})
}

// State returns a snapshot of the race.
func (e *Engine) State(ctx context.Context, race string) (*game.State, error) {
	return e.store.Load(ctx, race)
}

func (e *Engine) PriceFor(ctx context.Context, race string, action game.ActionType, quantity uint64) (uint64, error) {
	s, err := e.store.Load(ctx, race)
	if err != nil {
		return 0, err
	}
	return s.PriceFor(action, quantity)
}

// Events returns the committed operations of race in order.
func (e *Engine) Events(race string) []metrics.EventRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]metrics.EventRecord(nil), e.history[race]...)
}

func (e *Engine) Metrics(race string) metrics.RaceMetric {
	e.mu.Lock()
	collector, ok := e.collectors[race]
	e.mu.Unlock()
	if !ok {
		return metrics.RaceMetric{}
	}
	return collector.Complete()
}

func (e *Engine) lock(race string) func() {
	mu, _ := e.locks.LoadOrStore(race, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

func (e *Engine) apply(ctx context.Context, race string, op func(game.State) (*game.State, game.Event, error)) (game.Event, error) {
	unlock := e.lock(race)
	defer unlock()

	state, err := e.store.Load(ctx, race)
	if err != nil {
		return game.Event{}, err
	}
	next, ev, err := op(*state)
	if err != nil {
		log.Debug().Err(err).Str("race", race).Msg("operation rejected")
		return game.Event{}, fmt.Errorf("race %s: %w", race, err)
	}
	if err := e.store.Save(ctx, next); err != nil {
		return game.Event{}, err
	}

	e.record(race, ev)
	log.Info().Str("race", race).EmbedObject(ev).Msg("operation committed")
	return ev, nil
}

func (e *Engine) record(race string, ev game.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	collector, ok := e.collectors[race]
	if !ok {
		collector = e.newCollector()
		collector.Start(race)
		e.collectors[race] = collector
	}
	collector.Record(ev)
	e.history[race] = append(e.history[race], metrics.EventRecord{
		Race:  race,
		Seq:   len(e.history[race]) + 1,
		Event: ev,
	})
}
