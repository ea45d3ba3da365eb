package game

import (
	"fmt"

	"monaco/pricing"
	"monaco/utils"
)

// MaxPurchase caps the units bought in one purchase; prices are summed unit by unit.
const MaxPurchase = 10_000

// PriceFor returns the cost of buying quantity more units of action at the
// current turn, given the units already sold this race.
func (s *State) PriceFor(action ActionType, quantity uint64) (uint64, error) {
	if !action.Purchasable() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	if quantity == 0 {
		return 0, ErrZeroAmount
	}
	if quantity > MaxPurchase {
		return 0, fmt.Errorf("%w: %d > %d", ErrQuantityTooLarge, quantity, MaxPurchase)
	}
	return pricing.Quote(s.Config.Pricing[action], s.Turns, s.Sold[action], quantity), nil
}

// charge deducts the price of quantity units from car and records the sale.
// Either both happen or neither does.
func (s *State) charge(car *Car, action ActionType, quantity uint64) (uint64, error) {
	cost, err := s.PriceFor(action, quantity)
	if err != nil {
		return 0, err
	}
	balance, ok := utils.CheckedSub(car.Balance, cost)
	if !ok {
		return 0, fmt.Errorf("%w: %s costs %d, balance is %d", ErrInsufficientBalance, action, cost, car.Balance)
	}
	sold, ok := utils.CheckedAdd(s.Sold[action], quantity)
	if !ok {
		return 0, fmt.Errorf("%w: %s sold counter", ErrOverflow, action)
	}

	if s.Sold == nil {
		s.Sold = make(Ledger)
	}
	car.Balance = balance
	s.Sold[action] = sold
	return cost, nil
}
