package ammmath

import (
	"math/big"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		amountIn   string
		reserveIn  string
		reserveOut string
		want       string
		ok         bool
	}{
		{
			// after-fee input 9, out = 9*200000 / (100*1000+9).
			name:       "small integers",
			amountIn:   "10",
			reserveIn:  "100",
			reserveOut: "200000",
			want:       "17",
			ok:         true,
		},
		{
			// same ratio at 18-decimal fixed point.
			name:       "reserve scale",
			amountIn:   "1000000000000000000",
			reserveIn:  "100000000000000000000",
			reserveOut: "200000000000000000000000",
			want:       "1993980120018203418",
			ok:         true,
		},
		{
			// fee floors 1*997/1000 to zero.
			name:       "input eaten by fee",
			amountIn:   "1",
			reserveIn:  "100",
			reserveOut: "100",
			want:       "0",
			ok:         true,
		},
		{
			name:       "zero amount in",
			amountIn:   "0",
			reserveIn:  "100",
			reserveOut: "100",
			want:       "0",
			ok:         false,
		},
		{
			name:       "zero reserve in",
			amountIn:   "10",
			reserveIn:  "0",
			reserveOut: "100",
			want:       "0",
			ok:         false,
		},
		{
			name:       "zero reserve out",
			amountIn:   "10",
			reserveIn:  "100",
			reserveOut: "0",
			want:       "0",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amountIn := mustBig(t, tt.amountIn)
			reserveIn := mustBig(t, tt.reserveIn)
			reserveOut := mustBig(t, tt.reserveOut)

			out, ok := Quote(amountIn, reserveIn, reserveOut)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, out.String())

			into := new(big.Int)
			require.Equal(t, tt.ok, QuoteInto(into, amountIn, reserveIn, reserveOut))
			require.Equal(t, tt.want, into.String())
		})
	}
}

func TestQuoteNilOut(t *testing.T) {
	t.Parallel()

	require.False(t, QuoteInto(nil, big.NewInt(1), big.NewInt(1), big.NewInt(1)))
}

// Output must stay strictly below the no-fee proportional amount whenever that
// amount is non-zero.
func TestQuoteFeeMonotonicity(t *testing.T) {
	t.Parallel()

	property := func(amountIn, reserveIn, reserveOut uint64) bool {
		if amountIn == 0 || reserveIn == 0 || reserveOut == 0 {
			return true
		}

		in := new(big.Int).SetUint64(amountIn)
		rIn := new(big.Int).SetUint64(reserveIn)
		rOut := new(big.Int).SetUint64(reserveOut)

		ideal := MulDiv(in, rOut, rIn)
		if ideal.Sign() == 0 {
			return true
		}

		out, ok := Quote(in, rIn, rOut)
		if !ok {
			return false
		}
		return out.Cmp(ideal) < 0
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}

func TestMulDiv(t *testing.T) {
	t.Parallel()

	// floor(7 * 3 / 4) = 5.
	require.Equal(t, "5", MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(4)).String())

	// full-width product: (10^20)^2 / 10^18 = 10^22.
	r := mustBig(t, "100000000000000000000")
	unit := mustBig(t, "1000000000000000000")
	require.Equal(t, "10000000000000000000000", MulDiv(r, r, unit).String())
}

func TestSqrt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		y    string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"2", "1"},
		{"3", "1"},
		{"4", "2"},
		{"15", "3"},
		{"16", "4"},
		{"10000", "100"},
		{"20000", "141"},
		{"20000000", "4472"},
		// (10^18)^2.
		{"1000000000000000000000000000000000000", "1000000000000000000"},
		// one below a huge perfect square floors down.
		{"999999999999999999999999999999999999", "999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.y, func(t *testing.T) {
			require.Equal(t, tt.want, Sqrt(mustBig(t, tt.y)).String())
		})
	}
}

// Floor contract: z*z <= y < (z+1)*(z+1).
func TestSqrtFloorProperty(t *testing.T) {
	t.Parallel()

	property := func(v uint64) bool {
		y := new(big.Int).SetUint64(v)
		z := Sqrt(y)

		zz := new(big.Int).Mul(z, z)
		if zz.Cmp(y) > 0 {
			return false
		}
		z1 := new(big.Int).Add(z, big.NewInt(1))
		z1.Mul(z1, z1)
		return z1.Cmp(y) > 0
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}

func TestSqrtNegativePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		Sqrt(big.NewInt(-1))
	})
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}
