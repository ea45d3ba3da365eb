package agent

import (
	"errors"
	"fmt"

	"monaco/game"
)

var ErrNoDriver = errors.New("no driver for car")

// Table routes each turn request to the driver registered for the car.
type Table map[game.CarID]game.TurnRequester

func (t Table) RequestTurn(car game.CarID, snapshot *game.State) (game.Action, error) {
	driver, ok := t[car]
	if !ok || driver == nil {
		return game.Action{}, fmt.Errorf("%w %q", ErrNoDriver, car)
	}
	return driver.RequestTurn(car, snapshot)
}

// affordable returns the cost of buying qty of action, or false when the car
// cannot pay for it.
func affordable(snapshot *game.State, car *game.Car, action game.ActionType, qty uint64) (uint64, bool) {
	cost, err := snapshot.PriceFor(action, qty)
	if err != nil || cost > car.Balance {
		return 0, false
	}
	return cost, true
}
