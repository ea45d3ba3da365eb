package engine

import (
	"context"

	"github.com/rs/zerolog/log"

	"monaco/game"
	"monaco/meta"
)

// RunLocal creates a race, seats cars and plays one turn at a time until a
// car finishes or meta.MAX_TURNS turns have been played.
func (e *Engine) RunLocal(ctx context.Context, owner string, cfg game.Config, cars []game.CarID) (*game.State, error) {
	race, err := e.NewRace(ctx, owner, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := e.Register(ctx, race, owner, cars); err != nil {
		return nil, err
	}

	log.Info().Str("race", race).Msgf("car %s is starting", cars[0])

	for turn := 0; turn < meta.MAX_TURNS; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err := e.Play(ctx, race, 1)
		if err != nil {
			return nil, err
		}
		if ev.Outcome == game.OutcomeFinished {
			log.Info().Str("race", race).Str("winner", string(ev.Car)).Uint64("turns", ev.Turns).Msg("race finished")
			break
		}
	}

	state, err := e.State(ctx, race)
	if err != nil {
		return nil, err
	}
	if state.Status != game.Done {
		log.Info().Str("race", race).Msgf("stopped after %d turns (no winner yet)", meta.MAX_TURNS)
	}
	return state, nil
}
