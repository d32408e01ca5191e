// Package significance implements the two multiple-testing regimes the
// discoverer chooses between: a family-wise (FWER) log-adjusted
// threshold, and a false-discovery-rate (FDR) sequential LORD procedure
// (spass §4.5, §4.6).
//
// Both regimes speak the same currency: a candidate's score is a
// non-negative "pv", defined as −log P(X ≥ support; n, Ê) (spass §3).
// Admitting a candidate means comparing pv against a threshold derived
// from the controller's current state, never comparing raw probabilities,
// so callers never need to exponentiate a possibly very small p-value.
package significance

import (
	"errors"
	"math"
)

// ErrInvalidAlpha indicates alpha was outside the open interval (0, 1).
// NewFWERController also returns it for a non-positive m, and NewLORD for
// a factor outside (0, 1).
var ErrInvalidAlpha = errors.New("significance: alpha must be in (0, 1)")

// LogFWERThreshold computes spass §4.5's Bonferroni-style log-threshold:
//
//	log_fwer_adjustment(α, k, m) = log α − k·(1 + log m − log k)
//
// for a layer-k hypothesis family over m singletons at level α. The
// result is ≤ 0 for any sane α, k, m; PVThreshold negates it into a
// directly comparable pv cutoff.
func LogFWERThreshold(alpha float64, k, m int) float64 {
	if k <= 0 || m <= 0 {
		return math.Inf(-1)
	}

	return math.Log(alpha) - float64(k)*(1+math.Log(float64(m))-math.Log(float64(k)))
}

func validateAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return ErrInvalidAlpha
	}

	return nil
}
