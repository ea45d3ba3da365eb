package pricing

import (
	"errors"
	"math"
	"math/big"

	"monaco/utils"
)

// WAD is one unit in 18-decimal fixed point.
const WAD uint64 = 1_000_000_000_000_000_000

var one = big.NewInt(1)

// Params describes the price curve of one purchasable action. It is a
// variable rate gradual dutch auction: the price decays every turn and climbs
// back when sales run ahead of the targeted pace.
type Params struct {
	TargetPrice     uint64 `json:"target_price" yaml:"target_price"`           // whole coins
	PerTurnDecrease uint64 `json:"per_turn_decrease" yaml:"per_turn_decrease"` // WAD, in [0, 1)
	SellPerTurn     uint64 `json:"sell_per_turn" yaml:"sell_per_turn"`         // WAD, > 0
}

func (p Params) Validate() error {
	if p.SellPerTurn == 0 {
		return errors.New("sell per turn must be positive")
	}
	if p.PerTurnDecrease >= WAD {
		return errors.New("per turn decrease must be below 1")
	}
	return nil
}

// UnitPrice returns the price of the next unit when sold units have already
// been bought and turns have elapsed:
//
//	target * (1 - decrease) ^ (turns - (sold+1)/sellPerTurn)
//
// The result is floored to whole coins and saturates at MaxUint64.
func UnitPrice(p Params, turns, sold uint64) uint64 {
	t := new(big.Int).SetUint64(turns)
	t.Mul(t, scale)

	n := new(big.Int).SetUint64(sold)
	n.Add(n, one)
	n.Mul(n, scale)
	n = mulDiv(n, wad, new(big.Int).SetUint64(p.SellPerTurn))

	exponent := t.Sub(t, n)

	base := new(big.Int).SetUint64(WAD - p.PerTurnDecrease)
	base.Mul(base, wad)
	x := mulDiv(exponent, ln(base), scale)

	if x.Cmp(minExponent) < 0 {
		return 0
	}
	if x.Cmp(maxExponent) > 0 {
		if p.TargetPrice == 0 {
			return 0
		}
		return math.MaxUint64
	}

	price := mulDiv(new(big.Int).SetUint64(p.TargetPrice), exp(x), scale)
	if !price.IsUint64() {
		return math.MaxUint64
	}
	return price.Uint64()
}

// Quote sums the unit prices of quantity units starting after sold, each
// unit priced as if every unit before it had already been bought.
func Quote(p Params, turns, sold, quantity uint64) uint64 {
	var sum uint64
	for i := uint64(0); i < quantity; i++ {
		sum = utils.SaturatingAdd(sum, UnitPrice(p, turns, utils.SaturatingAdd(sold, i)))
		if sum == math.MaxUint64 {
			break
		}
	}
	return sum
}
