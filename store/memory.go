package store

import (
	"context"
	"fmt"
	"sync"

	"monaco/game"
)

type MemoryStore struct {
	mu    sync.RWMutex
	races map[string]*game.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{races: make(map[string]*game.State)}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*game.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.races[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return state.Copy(), nil
}

func (m *MemoryStore) Save(ctx context.Context, state *game.State) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.races[state.ID] = state.Copy()
	return nil
}
