package store

import (
	"context"
	"errors"

	"monaco/game"
)

var (
	ErrNotFound = errors.New("race not found")
	ErrIO       = errors.New("storage failure")
)

// Store persists race states by race id. Load returns a state the caller owns.
type Store interface {
	Load(ctx context.Context, id string) (*game.State, error)
	Save(ctx context.Context, state *game.State) error
}
