package game

import "errors"

type StateHash uint64

// TurnRequester asks the car whose turn it is for the action it wants to buy.
// The snapshot is a copy; changes made to it are discarded.
type TurnRequester interface {
	RequestTurn(car CarID, snapshot *State) (Action, error)
}

type TurnRequesterFunc func(car CarID, snapshot *State) (Action, error)

func (f TurnRequesterFunc) RequestTurn(car CarID, snapshot *State) (Action, error) {
	return f(car, snapshot)
}

// Authorizer decides whether a caller may register cars or reset a race.
type Authorizer interface {
	IsOwner(caller string) bool
}

// Owner authorizes exactly one caller.
type Owner string

func (o Owner) IsOwner(caller string) bool {
	return caller != "" && caller == string(o)
}

var (
	ErrZeroAmount          = errors.New("zero amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLimitPlayers        = errors.New("player limit reached")
	ErrNotEnoughPlayers    = errors.New("not enough players")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnknownCar          = errors.New("unknown car")
	ErrDuplicateHazard     = errors.New("hazard already at position")
	ErrInvalidRoster       = errors.New("invalid roster")
	ErrUnknownAction       = errors.New("unknown action")
	ErrQuantityTooLarge    = errors.New("quantity too large")
	ErrOverflow            = errors.New("arithmetic overflow")
	ErrRaceOver            = errors.New("race is over")
)
