package game

type CarID string

// Car is the mutable record of one registered racer. Position never decreases
// and Balance never goes below zero.
type Car struct {
	ID       CarID  `json:"id"`
	Balance  uint64 `json:"balance"`
	Position uint64 `json:"position"`
	Speed    uint64 `json:"speed"`
	Shield   uint64 `json:"shield"` // remaining shielded turns
}

func newCar(id CarID, balance uint64) *Car {
	return &Car{ID: id, Balance: balance}
}
