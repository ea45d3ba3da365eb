package agent

import (
	"slices"

	"monaco/game"
	"monaco/utils"
)

// Greedy shells the car directly ahead when it is fast, drops bananas while
// leading and otherwise buys speed. It never spends more than Budget per
// turn; a zero Budget allows the whole balance.
type Greedy struct {
	Budget uint64
}

func (g Greedy) RequestTurn(id game.CarID, snapshot *game.State) (game.Action, error) {
	car, err := snapshot.Car(id)
	if err != nil {
		return game.Action{}, err
	}

	cars := snapshot.CarData()
	limit := car.Balance
	if g.Budget > 0 && g.Budget < limit {
		limit = g.Budget
	}
	within := func(action game.ActionType) bool {
		cost, ok := affordable(snapshot, car, action, 1)
		return ok && cost <= limit
	}

	if next := nearestAhead(cars, car.Position); next != nil && next.Speed > snapshot.Config.PostShellSpeed {
		if next.Shield > 0 {
			if within(game.SuperShell) {
				return game.Action{Type: game.SuperShell, Amount: 1}, nil
			}
		} else if !bananaBefore(snapshot.Bananas(), car.Position, next.Position) && within(game.Shell) {
			return game.Action{Type: game.Shell, Amount: 1}, nil
		}
	}

	if leading(snapshot.Roster, cars, car) && car.Position > 0 && !slices.Contains(snapshot.Bananas(), car.Position) && within(game.Banana) {
		return game.Action{Type: game.Banana, Amount: 1}, nil
	}

	if within(game.Accelerate) {
		return game.Action{Type: game.Accelerate, Amount: 1}, nil
	}
	return game.Pass(), nil
}

func nearestAhead(cars []game.Car, position uint64) *game.Car {
	var nearest *game.Car
	for i := range cars {
		if cars[i].Position > position && (nearest == nil || cars[i].Position < nearest.Position) {
			nearest = &cars[i]
		}
	}
	return nearest
}

func bananaBefore(bananas []uint64, from, to uint64) bool {
	for _, b := range bananas {
		if b > from && b <= to {
			return true
		}
	}
	return false
}

// leading reports whether car would win if the race ended now. Ties go to
// the earlier car in turn order.
func leading(roster []game.CarID, cars []game.Car, car *game.Car) bool {
	seat := utils.FindIndex(roster, car.ID)
	for _, other := range cars {
		if other.ID == car.ID {
			continue
		}
		if other.Position > car.Position || other.Position == car.Position && utils.FindIndex(roster, other.ID) < seat {
			return false
		}
	}
	return true
}
