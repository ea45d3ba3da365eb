package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"monaco/utils"
)

// MaxPlayTurns caps the turns one Play call may advance.
const MaxPlayTurns = 10_000

// Play advances the race by up to turns turns, asking requester for the
// active car's action each turn. It stops early once the race is done. A nil
// requester plays every turn as a pass.
func (s State) Play(requester TurnRequester, turns uint64) (*State, Event, error) {
	if turns > MaxPlayTurns {
		return nil, Event{}, fmt.Errorf("%w: %d turns > %d", ErrQuantityTooLarge, turns, MaxPlayTurns)
	}
	if s.Status == Done {
		return nil, Event{}, ErrRaceOver
	}
	if s.Status != Active || len(s.Roster) != s.Config.PlayersRequired {
		return nil, Event{}, fmt.Errorf("%w: %d of %d registered", ErrNotEnoughPlayers, len(s.Roster), s.Config.PlayersRequired)
	}

	next := s.Copy()
	ev := Event{Op: OpPlay, Outcome: OutcomePlayed}
	for ; ev.TurnsPlayed < turns && next.Status == Active; ev.TurnsPlayed++ {
		ev.Records = append(ev.Records, next.playTurn(requester))
	}

	if next.Status == Done {
		ev.Outcome = OutcomeFinished
		ev.Car = next.Winner
	}
	ev.Turns = next.Turns
	return next, ev, nil
}

func (s *State) playTurn(requester TurnRequester) TurnRecord {
	id, _ := s.ActiveCar()
	record := TurnRecord{Turn: s.Turns, Car: id, Action: Pass()}

	if requester != nil {
		action, err := requester.RequestTurn(id, s.Copy())
		if err != nil {
			log.Warn().Err(err).Str("car", string(id)).Uint64("turn", s.Turns).Msg("turn request failed")
			record.Skipped = err.Error()
		} else {
			record.Action = action
		}
	}

	if record.Action.Type != None {
		purchase, err := s.resolve(s.Cars[id], record.Action)
		if err != nil {
			log.Warn().Err(err).Str("car", string(id)).Stringer("action", record.Action.Type).Msg("turn action rejected")
			record.Skipped = err.Error()
		} else {
			record.Purchase = &purchase
		}
	}

	s.advanceCars()
	s.Turns++
	s.checkFinish()
	return record
}

// advanceCars moves every car by its speed, stopping at the first banana in
// its path. Shields lose one charge.
func (s *State) advanceCars() {
	for _, id := range s.Roster {
		car := s.Cars[id]
		if car.Shield > 0 {
			car.Shield--
		}

		target := utils.SaturatingAdd(car.Position, car.Speed)
		if i := s.nextHazard(car.Position); i < len(s.Hazards) && s.Hazards[i] <= target {
			target = s.Hazards[i]
		}
		car.Position = target
	}
}

func (s *State) checkFinish() {
	if s.Config.FinishDistance == 0 {
		return
	}

	var leader *Car
	for _, id := range s.Roster {
		if car := s.Cars[id]; leader == nil || car.Position > leader.Position {
			leader = car
		}
	}
	if leader != nil && leader.Position >= s.Config.FinishDistance {
		s.Status = Done
		s.Winner = leader.ID
	}
}
