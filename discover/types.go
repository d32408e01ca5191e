// Package discover drives the breadth-first, best-first hybrid search
// over a lattice.Lattice: score a batch of same-size candidates in
// parallel, then single-threaded report/insert against a MaxEnt model
// and a significance.Controller, then expand survivors into the next
// layer (spass §4.4, §5).
package discover

import (
	"errors"
	"time"
)

// ErrInvalidOptions indicates a budget/threshold option was out of its
// valid range.
var ErrInvalidOptions = errors.New("discover: invalid options")

// Options bounds the discoverer's work per spass §6.
type Options struct {
	MinSupport     int           // minimum absolute row count per pattern
	MaxExpansions  int           // 0 means unbounded
	MaxDiscoveries int           // 0 means unbounded
	MaxSeconds     time.Duration // 0 means unbounded
}

// Validate rejects a negative MinSupport; the three budgets are
// unbounded at their zero value by convention, matching spec.md §6's
// "∞" defaults.
func (o Options) Validate() error {
	if o.MinSupport < 0 {
		return ErrInvalidOptions
	}

	return nil
}

func (o Options) expansionsExhausted(done int) bool {
	return o.MaxExpansions > 0 && done >= o.MaxExpansions
}

func (o Options) discoveriesExhausted(done int) bool {
	return o.MaxDiscoveries > 0 && done >= o.MaxDiscoveries
}

func (o Options) secondsExhausted(elapsed time.Duration) bool {
	return o.MaxSeconds > 0 && elapsed >= o.MaxSeconds
}

// Pattern is one accepted itemset, as spass §6's patterns(p) accessor
// returns it: the items, the empirical frequency inserted into the
// model, its support, and the pv score at acceptance time.
type Pattern struct {
	Items   []int
	Support int
	Freq    float64
	PV      float64
}
