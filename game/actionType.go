package game

import "fmt"

// ActionType represents an item a car can buy.
type ActionType int

const (
	None ActionType = iota // pass the turn without buying
	Accelerate
	Shell
	SuperShell
	Banana
	Shield
)

// ActionTypes lists every purchasable action in ledger order.
var ActionTypes = []ActionType{Accelerate, Shell, SuperShell, Banana, Shield}

var actionNames = [...]string{"none", "accelerate", "shell", "super_shell", "banana", "shield"}

func (a ActionType) String() string {
	if a < None || a > Shield {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Purchasable reports whether a is an item sold by the economy.
func (a ActionType) Purchasable() bool {
	return a > None && a <= Shield
}

func (a ActionType) MarshalText() ([]byte, error) {
	if a < None || a > Shield {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(actionNames[a]), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if name == string(text) {
			*a = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, text)
}

func (a ActionType) op() string {
	return "buy_" + a.String()
}

// Action is what a car chooses to buy on its turn.
type Action struct {
	Type   ActionType `json:"type"`
	Amount uint64     `json:"amount"`
}

func Pass() Action {
	return Action{Type: None}
}
