package agent

import (
	"math"
	"math/rand/v2"
	"sync"

	"monaco/game"
)

// Random picks an affordable action with probability favoring cheap items.
// Temperature flattens (>1) or sharpens (<1) the preference; passing always
// stays possible.
type Random struct {
	mu          sync.Mutex
	rng         *rand.Rand
	temperature float64
}

func NewRandom(seed uint64, temperature float64) *Random {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &Random{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		temperature: temperature,
	}
}

type choice struct {
	action game.ActionType
	weight float64
}

func (r *Random) RequestTurn(id game.CarID, snapshot *game.State) (game.Action, error) {
	car, err := snapshot.Car(id)
	if err != nil {
		return game.Action{}, err
	}

	choices := []choice{{action: game.None, weight: 1}}
	for _, action := range game.ActionTypes {
		if cost, ok := affordable(snapshot, car, action, 1); ok {
			choices = append(choices, choice{action: action, weight: 1 + float64(car.Balance)/float64(cost+1)})
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	picked := sample(adjustTemperature(choices, r.temperature), r.rng.Float64())
	if picked == game.None {
		return game.Pass(), nil
	}
	return game.Action{Type: picked, Amount: 1}, nil
}

func adjustTemperature(choices []choice, temperature float64) []choice {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]choice, len(choices))
	for i, c := range choices {
		prob := math.Pow(c.weight, exponent)
		sum += prob
		policy[i] = choice{action: c.action, weight: prob}
	}
	// Normalize
	for i := range policy {
		policy[i].weight /= sum
	}
	return policy
}

// sample walks the cumulative distribution; policy must not be empty.
func sample(policy []choice, sampled float64) game.ActionType {
	cumulative := 0.0
	for _, c := range policy {
		cumulative += c.weight
		if sampled < cumulative {
			return c.action
		}
	}
	return policy[len(policy)-1].action // rounding
}
