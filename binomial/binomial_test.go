package binomial_test

import (
	"math"
	"testing"

	"github.com/sdall/spass/binomial"
	"github.com/stretchr/testify/require"
)

// exactUpperTail is a brute-force reference computed directly from the
// binomial PMF (not in log-space), used to cross-check LogUpperTail for
// small n where naive summation does not underflow.
func exactUpperTail(s, n int, p float64) float64 {
	// The binomial coefficient via iterative product is exact enough for
	// the small n exercised by this test and avoids importing math/big.
	var total float64
	for k := s; k <= n; k++ {
		c := 1.0
		for i := 0; i < k; i++ {
			c *= float64(n-i) / float64(i+1)
		}
		total += c * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
	}

	return total
}

func TestLogUpperTailMatchesExactSummation(t *testing.T) {
	ps := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	for n := 1; n <= 30; n++ {
		for _, p := range ps {
			for s := 0; s <= n; s++ {
				got := math.Exp(binomial.LogUpperTail(s, n, p))
				want := exactUpperTail(s, n, p)
				require.InDelta(t, want, got, 1e-6, "n=%d p=%v s=%d", n, p, s)
			}
		}
	}
}

func TestLogUpperTailSymmetry(t *testing.T) {
	for n := 2; n <= 20; n++ {
		p := 0.37
		s := int(float64(n)*p) + 1
		if s > n {
			continue
		}
		// P(X ≥ s; n, p) = P(X ≤ n−s; n, 1−p) = 1 − P(X ≥ n−s+1; n, 1−p).
		a := binomial.LogUpperTail(s, n, p)
		b := binomial.LogUpperTail(n-s+1, n, 1-p)
		require.InDelta(t, math.Exp(a), 1-math.Exp(b), 1e-9)
	}
}

func TestLogUpperTailEdgeCases(t *testing.T) {
	require.Equal(t, 0.0, binomial.LogUpperTail(0, 10, 0.5))
	require.True(t, math.IsInf(binomial.LogUpperTail(11, 10, 0.5), -1) || binomial.LogUpperTail(11, 10, 0.5) < -1e300)
	require.Equal(t, 0.0, binomial.LogUpperTail(0, 0, 0.5))
	require.True(t, binomial.LogUpperTail(1, 0, 0.5) < -1e300)
	require.True(t, binomial.LogUpperTail(1, 10, 0) < -1e300)
	require.Equal(t, 0.0, binomial.LogUpperTail(10, 10, 1))
}

func TestLogUpperTailClampsProbability(t *testing.T) {
	require.Equal(t, binomial.LogUpperTail(3, 10, 1.0), binomial.LogUpperTail(3, 10, 1.5))
	require.Equal(t, binomial.LogUpperTail(3, 10, 0.0), binomial.LogUpperTail(3, 10, -0.5))
}

func TestLogUpperTailChernoffNotSurprisingBelowMean(t *testing.T) {
	// n large enough to take the Chernoff branch; s below the mean must
	// score 0 (not surprising), per spass §4.1.
	got := binomial.LogUpperTail(10, 100, 0.5)
	require.Equal(t, 0.0, got)
}

func TestLogUpperTailChernoffAboveMean(t *testing.T) {
	got := binomial.LogUpperTail(90, 100, 0.5)
	require.Less(t, got, 0.0)
	require.False(t, math.IsNaN(got))
}

func TestLogUpperTailMonotoneInS(t *testing.T) {
	n, p := 40, 0.4
	prev := 0.0
	for s := 0; s <= n; s++ {
		cur := binomial.LogUpperTail(s, n, p)
		require.LessOrEqual(t, cur, prev+1e-9)
		prev = cur
	}
}
