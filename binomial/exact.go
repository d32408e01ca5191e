package binomial

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// logUpperTailExact computes log P(X ≥ s) for X ~ Binomial(n, p) by summing
// PMF terms in log-space via a numerically stable log-sum-exp.
//
// Per spass §4.1, the sum always runs over the tail on the far side of the
// mean n·p, using the symmetry identity
//
//	P(X ≥ s; n, p) = P(X ≤ n−s; n, 1−p)
//
// when s falls on the near side of the mean, so the summed PMF values are
// evaluated where the Binomial(n, p) (or its mirror Binomial(n, 1−p))
// concentrates its mass around the summation range.
func logUpperTailExact(s, n int, p float64) float64 {
	mean := float64(n) * p
	if float64(s) > mean {
		return logSumPMF(s, n, n, p)
	}

	// Mirror: P(X ≥ s; n, p) = P(X ≤ n-s; n, 1-p) = sum_{k=0}^{n-s} pmf(k; n, 1-p).
	return logSumPMF(0, n-s, n, 1-p)
}

// logSumPMF returns log Σ_{k=lo}^{hi} P(X=k) for X ~ Binomial(n, p),
// computed with a log-sum-exp reduction over distuv.Binomial.LogProb.
func logSumPMF(lo, hi, n int, p float64) float64 {
	if lo > hi {
		return negInf
	}
	dist := distuv.Binomial{N: float64(n), P: p}

	logs := make([]float64, 0, hi-lo+1)
	maxLog := math.Inf(-1)
	for k := lo; k <= hi; k++ {
		lp := dist.LogProb(float64(k))
		logs = append(logs, lp)
		if lp > maxLog {
			maxLog = lp
		}
	}
	if math.IsInf(maxLog, -1) {
		return negInf
	}

	var sum float64
	for _, lp := range logs {
		sum += math.Exp(lp - maxLog)
	}

	result := maxLog + math.Log(sum)
	if result > 0 {
		result = 0 // guard against float round-off pushing a log-probability above 0
	}

	return result
}
