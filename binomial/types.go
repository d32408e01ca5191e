// Package binomial computes the upper-tail log-probability of a Binomial
// random variable, switching between an exact log-space summation for
// small populations and a Chernoff bound for large ones (spass §4.1).
package binomial

import "math"

// negInf is the floor used for "this event has probability 0" instead of
// the IEEE -Inf, so downstream comparisons (pv >= threshold) remain total
// order comparisons rather than needing NaN/Inf special-casing.
const negInf = -math.MaxFloat64

// exactThreshold is the population size below which LogUpperTail sums the
// PMF exactly; at or above it, the Chernoff bound is used instead
// (spass §4.1: "when n ≥ 50, use the Chernoff bound").
const exactThreshold = 50

// clampProb clamps p into the closed interval [0, 1], per spass §4.1's
// "p outside [0,1] is clamped" contract.
func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}

	return p
}
