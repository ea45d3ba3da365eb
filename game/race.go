package game

import "fmt"

func (s *State) authorize(auth Authorizer, caller string) error {
	if auth == nil {
		auth = Owner(s.Owner)
	}
	if !auth.IsOwner(caller) {
		return fmt.Errorf("%w: %q is not the race owner", ErrUnauthorized, caller)
	}
	return nil
}

// Register seats the whole roster at once and starts the race. A nil
// Authorizer only accepts the race owner.
func (s State) Register(auth Authorizer, caller string, ids []CarID) (*State, Event, error) {
	if err := s.authorize(auth, caller); err != nil {
		return nil, Event{}, err
	}
	if len(s.Roster) >= s.Config.PlayersRequired || s.Status != Waiting {
		return nil, Event{}, fmt.Errorf("%w: %d cars already registered", ErrLimitPlayers, len(s.Roster))
	}
	if len(ids) != s.Config.PlayersRequired {
		return nil, Event{}, fmt.Errorf("%w: got %d cars, need %d", ErrInvalidRoster, len(ids), s.Config.PlayersRequired)
	}

	next := s.Copy()
	for _, id := range ids {
		if id == "" {
			return nil, Event{}, fmt.Errorf("%w: empty car id", ErrInvalidRoster)
		}
		if _, ok := next.Cars[id]; ok {
			return nil, Event{}, fmt.Errorf("%w: duplicate car %q", ErrInvalidRoster, id)
		}
		next.Cars[id] = newCar(id, next.Config.StartingBalance)
		next.Roster = append(next.Roster, id)
	}
	next.Status = Active

	return next, Event{
		Op:      OpRegister,
		Outcome: OutcomeRegistered,
		Amount:  uint64(len(ids)),
		Turns:   next.Turns,
	}, nil
}

// Reset clears cars, bananas, sales and turns and returns the race to
// Waiting. A non-nil cfg replaces the race config.
func (s State) Reset(auth Authorizer, caller string, cfg *Config) (*State, Event, error) {
	if err := s.authorize(auth, caller); err != nil {
		return nil, Event{}, err
	}
	config := s.Config
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, Event{}, fmt.Errorf("reset config: %w", err)
		}
		config = *cfg
	}

	next := NewState(s.ID, s.Owner, config)
	return next, Event{Op: OpReset, Outcome: OutcomeReset, Turns: next.Turns}, nil
}

// Buy charges car for action and resolves its effect.
func (s State) Buy(car CarID, action Action) (*State, Event, error) {
	if _, err := s.Car(car); err != nil {
		return nil, Event{}, err
	}
	next := s.Copy()
	ev, err := next.resolve(next.Cars[car], action)
	if err != nil {
		return nil, Event{}, fmt.Errorf("%s %s: %w", car, action.Type.op(), err)
	}
	return next, ev, nil
}

func (s State) BuyAccelerate(car CarID, amount uint64) (*State, Event, error) {
	return s.Buy(car, Action{Type: Accelerate, Amount: amount})
}

func (s State) BuyShield(car CarID, amount uint64) (*State, Event, error) {
	return s.Buy(car, Action{Type: Shield, Amount: amount})
}

func (s State) BuyShell(car CarID, amount uint64) (*State, Event, error) {
	return s.Buy(car, Action{Type: Shell, Amount: amount})
}

func (s State) BuySuperShell(car CarID, amount uint64) (*State, Event, error) {
	return s.Buy(car, Action{Type: SuperShell, Amount: amount})
}

// BuyBanana drops a single banana at the car's position.
func (s State) BuyBanana(car CarID) (*State, Event, error) {
	return s.Buy(car, Action{Type: Banana, Amount: 1})
}
