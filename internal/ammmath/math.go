package ammmath

import (
	"math/big"
	"sync"
)

var (
	// Fee constants: 0.3% = 997/1000.
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)

	// PriceUnit is the fixed-point scale for price queries (18 decimals).
	PriceUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type mathTmp struct {
	a *big.Int
	b *big.Int
	c *big.Int
}

var tmpPool = sync.Pool{
	New: func() any {
		return &mathTmp{
			a: new(big.Int),
			b: new(big.Int),
			c: new(big.Int),
		}
	},
}

func quoteInto(out, amountIn, reserveIn, reserveOut *big.Int) bool {
	if out == nil {
		return false
	}
	// basic validation.
	if amountIn.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		out.SetInt64(0)
		return false
	}

	t := tmpPool.Get().(*mathTmp)

	// afterFee := amountIn * 997 / 1000.
	t.a.Mul(amountIn, feeMul)
	t.a.Quo(t.a, feeDen)

	// num := afterFee * reserveOut.
	t.b.Mul(t.a, reserveOut)

	// den := reserveIn * 1000 + afterFee.
	t.c.Mul(reserveIn, feeDen)
	t.c.Add(t.c, t.a)

	// out = num / den.
	out.Quo(t.b, t.c)

	tmpPool.Put(t)
	return true
}

// QuoteInto computes the swap output for amountIn against (reserveIn, reserveOut)
// on the constant-product curve, with the 0.3% fee taken off the input leg:
//
//	afterFee = amountIn * 997 / 1000
//	out      = afterFee * reserveOut / (reserveIn * 1000 + afterFee)
//
// All divisions floor. It writes the result into out and returns ok=false if any
// input is non-positive. out must be non-nil; temporaries come from a pool so a
// warm call does not allocate.
func QuoteInto(out, amountIn, reserveIn, reserveOut *big.Int) bool {
	return quoteInto(out, amountIn, reserveIn, reserveOut)
}

// Quote is the allocating variant of QuoteInto: it returns a fresh *big.Int.
func Quote(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, bool) {
	out := new(big.Int)
	ok := quoteInto(out, amountIn, reserveIn, reserveOut)
	return out, ok
}

// MulDiv returns floor(a * b / den). The product is carried at full width, so
// reserve-scale inputs (18-decimal fixed point) cannot overflow. Panics if den
// is zero, same as big.Int division.
func MulDiv(a, b, den *big.Int) *big.Int {
	n := new(big.Int).Mul(a, b)
	return n.Quo(n, den)
}

// Sqrt returns floor(sqrt(y)) for y >= 0 using the Babylonian method from
// Uniswap v2-core Math.sol: for y > 3 iterate x = (y/x + x) / 2 from
// x = y/2 + 1, which converges monotonically from above; for 0 < y <= 3 the
// answer is 1. The iteration count is bounded: each step shrinks the guess, so
// exceeding 2*bitlen(y)+8 steps means the loop invariant broke and we panic
// rather than spin.
func Sqrt(y *big.Int) *big.Int {
	if y.Sign() < 0 {
		panic("ammmath: Sqrt of negative value")
	}
	three := big.NewInt(3)
	if y.Cmp(three) <= 0 {
		if y.Sign() == 0 {
			return new(big.Int)
		}
		return big.NewInt(1)
	}

	z := new(big.Int).Set(y)
	x := new(big.Int).Rsh(y, 1)
	x.Add(x, big.NewInt(1))

	t := new(big.Int)
	for i := 0; x.Cmp(z) < 0; i++ {
		if i > 2*y.BitLen()+8 {
			panic("ammmath: Sqrt failed to converge")
		}
		z.Set(x)
		t.Quo(y, x)
		t.Add(t, x)
		x.Rsh(t, 1)
	}
	return z
}
