package pricing

import "math/big"

// Values inside this package are fixed-point integers scaled by 1e36. Every
// division truncates toward zero so independent evaluators agree bit for bit.
var (
	wad   = big.NewInt(1_000_000_000_000_000_000)
	scale = new(big.Int).Mul(wad, wad)
	half  = new(big.Int).Rsh(scale, 1)
	ln2   = twoAtanh(new(big.Int).Quo(scale, big.NewInt(3)))

	// exp(x) is 0 below minExponent for any uint64 target and saturates above maxExponent.
	minExponent = new(big.Int).Mul(big.NewInt(-60), scale)
	maxExponent = new(big.Int).Mul(big.NewInt(50), scale)
)

func mulDiv(a, b, c *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Quo(r, c)
}

// twoAtanh returns 2*atanh(z) by its odd power series. Converges for |z| < 1,
// fast for |z| <= 1/3.
func twoAtanh(z *big.Int) *big.Int {
	z2 := mulDiv(z, z, scale)
	term := new(big.Int).Set(z)
	sum := new(big.Int)
	for n := int64(1); ; n += 2 {
		t := new(big.Int).Quo(term, big.NewInt(n))
		if t.Sign() == 0 {
			break
		}
		sum.Add(sum, t)
		term = mulDiv(term, z2, scale)
	}
	return sum.Lsh(sum, 1)
}

// ln returns the natural logarithm of x. x must be positive.
func ln(x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		panic("pricing: ln of non-positive value")
	}
	// Reduce into [1/2, 1] so that z below stays within [-1/3, 0].
	y := new(big.Int).Set(x)
	k := int64(0)
	for y.Cmp(half) < 0 {
		y.Lsh(y, 1)
		k++
	}
	for y.Cmp(scale) > 0 {
		y.Rsh(y, 1)
		k--
	}

	num := new(big.Int).Sub(y, scale)
	den := new(big.Int).Add(y, scale)
	z := mulDiv(num, scale, den)

	r := twoAtanh(z)
	return r.Sub(r, new(big.Int).Mul(big.NewInt(k), ln2))
}

// exp returns e^x. Callers keep x within [minExponent, maxExponent].
func exp(x *big.Int) *big.Int {
	// x = k*ln2 + r with r in [0, ln2); Div is Euclidean, so k is the floor.
	k := new(big.Int).Div(x, ln2)
	r := new(big.Int).Sub(x, new(big.Int).Mul(k, ln2))

	sum := new(big.Int).Set(scale)
	term := new(big.Int).Set(scale)
	for n := int64(1); ; n++ {
		term = mulDiv(term, r, new(big.Int).Mul(scale, big.NewInt(n)))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
	}

	shift := k.Int64()
	if shift >= 0 {
		return sum.Lsh(sum, uint(shift))
	}
	return sum.Rsh(sum, uint(-shift))
}
