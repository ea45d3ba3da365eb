package game

import (
	"fmt"
	"slices"

	"monaco/utils"
)

// resolve buys action for buyer and applies its effect to s. On error s is
// left untouched.
func (s *State) resolve(buyer *Car, action Action) (Event, error) {
	ev := Event{
		Op:     action.Type.op(),
		Car:    buyer.ID,
		Amount: action.Amount,
	}

	// a banana is a single hazard, so it is sold one unit at a time
	if action.Type == Banana && action.Amount > 1 {
		return Event{}, fmt.Errorf("%w: bananas are bought one at a time, got %d", ErrQuantityTooLarge, action.Amount)
	}
	if action.Type == Banana && s.hasHazardAt(buyer.Position) {
		if _, err := s.PriceFor(Banana, action.Amount); err != nil {
			return Event{}, err
		}
		ev.Outcome = OutcomeDuplicateHazard
		ev.Position = buyer.Position
		ev.Turns = s.Turns
		return ev, nil
	}

	cost, err := s.charge(buyer, action.Type, action.Amount)
	if err != nil {
		return Event{}, err
	}
	ev.Cost = cost

	switch action.Type {
	case Accelerate:
		s.accelerate(buyer, action.Amount, &ev)
	case Shield:
		s.shield(buyer, action.Amount, &ev)
	case Banana:
		s.banana(buyer, &ev)
	case Shell:
		s.shell(buyer, &ev)
	case SuperShell:
		s.superShell(buyer, &ev)
	default:
		// charge rejects everything else
		panic(fmt.Sprintf("unresolvable action %s", action.Type))
	}

	ev.Turns = s.Turns
	return ev, nil
}

func (s *State) accelerate(buyer *Car, amount uint64, ev *Event) {
	buyer.Speed = utils.SaturatingAdd(buyer.Speed, amount)
	ev.Outcome = OutcomeBought
}

// shield grants one extra charge because movement decays it in the same turn.
func (s *State) shield(buyer *Car, amount uint64, ev *Event) {
	buyer.Shield = utils.SaturatingAdd(buyer.Shield, utils.SaturatingAdd(amount, 1))
	ev.Outcome = OutcomeBought
}

func (s *State) hasHazardAt(position uint64) bool {
	_, found := slices.BinarySearch(s.Hazards, position)
	return found
}

func (s *State) banana(buyer *Car, ev *Event) {
	i, _ := slices.BinarySearch(s.Hazards, buyer.Position)
	s.Hazards = slices.Insert(s.Hazards, i, buyer.Position)
	ev.Outcome = OutcomePlaced
	ev.Position = buyer.Position
}

// shell hits the nearest car ahead unless a banana sits at or before it, in
// which case the banana is consumed instead. A shell with no car ahead still
// takes out the next banana.
func (s *State) shell(buyer *Car, ev *Event) {
	var target *Car
	if ahead := s.carsAhead(buyer.Position); len(ahead) > 0 {
		target = ahead[0]
	}

	if i := s.nextHazard(buyer.Position); i < len(s.Hazards) {
		if target == nil || s.Hazards[i] <= target.Position {
			ev.Outcome = OutcomeBlocked
			ev.Position = s.Hazards[i]
			s.Hazards = slices.Delete(s.Hazards, i, i+1)
			return
		}
	}

	if target == nil {
		ev.Outcome = OutcomeMissed
		return
	}
	ev.Target = target.ID

	switch {
	case target.Shield > 0:
		ev.Outcome = OutcomeShielded
	case target.Speed > s.Config.PostShellSpeed:
		target.Speed = s.Config.PostShellSpeed
		ev.Outcome = OutcomeShelled
	default:
		ev.Outcome = OutcomeMissed
	}
}

// superShell ignores bananas and shields and slows the nearest car ahead that
// is faster than the post-shell speed.
func (s *State) superShell(buyer *Car, ev *Event) {
	for _, car := range s.carsAhead(buyer.Position) {
		if car.Speed > s.Config.PostShellSpeed {
			car.Speed = s.Config.PostShellSpeed
			ev.Outcome = OutcomeShelled
			ev.Target = car.ID
			return
		}
	}
	ev.Outcome = OutcomeMissed
}
