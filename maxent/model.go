package maxent

import (
	"sort"
	"sync"
)

// Model is a maximum-entropy null model over numSingletons columns: a
// collection of factors whose singleton sets partition {0..numSingletons-1}
// (spass §3). It starts as one width-1, size-0 factor per singleton and
// grows monotonically as patterns are inserted; factors are merged, never
// split (spass "Lifecycle").
type Model struct {
	mu sync.RWMutex

	n             int // number of rows the model was fit against
	numSingletons int
	cfg           Config
	singletonFreq []float64 // empirical P(col on), fixed at construction
	factors       []*factor // distinct, live factors
	factorOf      []*factor // singleton col -> owning factor
	lastFitErr    error
}

// New builds the initial model: numSingletons factors, one per column,
// each already fit to its empirical marginal supports[j]/n.
func New(numSingletons, n int, supports []int, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(supports) != numSingletons {
		return nil, ErrUnknownSingleton
	}

	m := &Model{
		n:             n,
		numSingletons: numSingletons,
		cfg:           cfg,
		singletonFreq: make([]float64, numSingletons),
		factors:       make([]*factor, 0, numSingletons),
		factorOf:      make([]*factor, numSingletons),
	}
	for j := 0; j < numSingletons; j++ {
		freq := 0.0
		if n > 0 {
			freq = float64(supports[j]) / float64(n)
		}
		m.singletonFreq[j] = freq
		f := newSingletonFactor(j, freq)
		m.factors = append(m.factors, f)
		m.factorOf[j] = f
	}

	return m, nil
}

// NumSingletons returns the column universe size the model was built over.
func (m *Model) NumSingletons() int { return m.numSingletons }

// NumRows returns n, cached from construction.
func (m *Model) NumRows() int { return m.n }

// LastFitError returns ErrFitDidNotConverge when the merged factor built
// by the most recent InsertPattern has no joint table, and nil otherwise.
// A solver error inside the coefficient fit is not recorded, so a fit
// that stopped early (and kept its best iterate) still reports nil.
func (m *Model) LastFitError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastFitErr
}

// distinctFactors returns the unique factor pointers covering every
// column in items, in first-seen order. When s is non-nil the result is
// built into s's own buffers (cleared first) instead of allocating a
// fresh map/slice, so repeated calls from the same worker scratch do
// not allocate (spass §5).
func (m *Model) distinctFactors(items []int, s *Scratch) []*factor {
	var seen map[*factor]bool
	var out []*factor
	if s != nil {
		clear(s.seen)
		s.factors = s.factors[:0]
		seen = s.seen
		out = s.factors
	} else {
		seen = make(map[*factor]bool, len(items))
		out = make([]*factor, 0, len(items))
	}

	for _, col := range items {
		f := m.factorOf[col]
		if f != nil && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if s != nil {
		s.factors = out
	}

	return out
}

// Expectation returns p̂, the probability that itemset items is entirely
// "on" in a random row under the current model: the product, over every
// factor whose singleton set overlaps items, of that factor's marginal
// probability for the subset of items it covers (spass §4.2). Factors
// disjoint from items contribute 1. It allocates a scratch buffer for
// the single call; ExpectationScratch avoids that for repeated callers.
func (m *Model) Expectation(items []int) float64 {
	return m.expectationWith(items, nil)
}

// ExpectationScratch is Expectation reusing s's buffers across calls,
// for a worker's hot scoring loop (spass §5). s must not be shared
// across concurrent callers.
func (m *Model) ExpectationScratch(items []int, s *Scratch) float64 {
	return m.expectationWith(items, s)
}

func (m *Model) expectationWith(items []int, s *Scratch) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := 1.0
	for _, f := range m.distinctFactors(items, s) {
		local := m.itemsWithinFactor(items, f, s)
		mask, ok := f.localMask(local)
		if !ok {
			continue
		}
		p *= f.marginalOf(mask)
	}

	return p
}

// itemsWithinFactor filters items down to those covered by f.v, using
// s's buffer (cleared first) when s is non-nil.
func (m *Model) itemsWithinFactor(items []int, f *factor, s *Scratch) []int {
	var out []int
	if s != nil {
		out = s.items[:0]
	} else {
		out = make([]int, 0, len(items))
	}
	for _, it := range items {
		if f.localIndex(it) >= 0 {
			out = append(out, it)
		}
	}
	if s != nil {
		s.items = out
	}

	return out
}

// mergedShape returns the width and size the merged factor covering
// items (and the would-be new pattern items itself) would have, without
// mutating anything, using s's buffers (cleared first) when s is
// non-nil.
func (m *Model) mergedShape(items []int, s *Scratch) (width, size int) {
	factors := m.distinctFactors(items, s)

	var cols map[int]bool
	if s != nil {
		clear(s.cols)
		cols = s.cols
	} else {
		cols = make(map[int]bool)
	}
	for _, f := range factors {
		for _, c := range f.v {
			cols[c] = true
		}
		size += f.size()
	}
	for _, it := range items {
		cols[it] = true
	}
	size++ // the candidate pattern itself

	return len(cols), size
}

// IsForbidden reports whether inserting items would make the merged
// covering factor exceed MaxFactorSize (or the hard cap) or
// MaxFactorWidth (spass §4.2). It is side-effect free.
func (m *Model) IsForbidden(items []int) bool {
	return m.isForbiddenWith(items, nil)
}

// IsForbiddenScratch is IsForbidden reusing s's buffers across calls,
// for a worker's hot scoring loop (spass §5). s must not be shared
// across concurrent callers.
func (m *Model) IsForbiddenScratch(items []int, s *Scratch) bool {
	return m.isForbiddenWith(items, s)
}

func (m *Model) isForbiddenWith(items []int, s *Scratch) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	width, size := m.mergedShape(items, s)

	return width > m.cfg.MaxFactorWidth || size > m.cfg.MaxFactorSize || size > MaxFactorSizeHardCap
}

// InsertPattern merges every factor overlapping items into one factor,
// folding in items itself with empirical frequency freq, and refits the
// merged factor's coefficients. It returns false (refusing the insert)
// if doing so would violate MaxFactorSize/MaxFactorWidth — the "Factor-
// cap violation" expected failure from spass §7 — without mutating the
// model.
func (m *Model) InsertPattern(freq float64, items []int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	width, size := m.mergedShape(items, nil)
	if width > m.cfg.MaxFactorWidth || size > m.cfg.MaxFactorSize || size > MaxFactorSizeHardCap {
		return false
	}

	old := m.distinctFactors(items, nil)
	merged := mergeFactors(old, items, freq)
	if merged.joint == nil {
		m.lastFitErr = ErrFitDidNotConverge
	} else {
		m.lastFitErr = nil
	}

	m.factors = replaceFactors(m.factors, old, merged)
	for _, col := range merged.v {
		m.factorOf[col] = merged
	}

	return true
}

// replaceFactors drops every factor in old from factors and appends
// replacement.
func replaceFactors(factors, old []*factor, replacement *factor) []*factor {
	drop := make(map[*factor]bool, len(old))
	for _, f := range old {
		drop[f] = true
	}
	out := make([]*factor, 0, len(factors)-len(old)+1)
	for _, f := range factors {
		if !drop[f] {
			out = append(out, f)
		}
	}
	out = append(out, replacement)

	return out
}

// PatternRecord is one pattern folded into the model, as spass §6's
// patterns(p) accessor reports it: the itemset and the empirical
// frequency observed when it was inserted.
type PatternRecord struct {
	Items []int
	Freq  float64
}

// Patterns returns every pattern ever inserted into the model, across
// all live factors, sorted by itemset for deterministic iteration.
func (m *Model) Patterns() []PatternRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PatternRecord, 0)
	for _, f := range m.factors {
		for _, p := range f.patterns {
			items := append([]int(nil), p.items...)
			sort.Ints(items)
			out = append(out, PatternRecord{Items: items, Freq: p.freq})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Items, out[j].Items
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}

		return len(a) < len(b)
	})

	return out
}

// FactorSnapshot describes one live factor, for tests and invariant
// checks (spass §8: "every factor's pattern count ≤ max_factor_size and
// singleton count ≤ max_factor_width").
type FactorSnapshot struct {
	Singletons   []int
	PatternCount int
}

// Factors returns a snapshot of every live factor in the model, sorted
// by their smallest covered singleton for deterministic iteration order.
func (m *Model) Factors() []FactorSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]FactorSnapshot, len(m.factors))
	for i, f := range m.factors {
		v := append([]int(nil), f.v...)
		sort.Ints(v)
		out[i] = FactorSnapshot{Singletons: v, PatternCount: f.size()}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Singletons[0] < out[j].Singletons[0]
	})

	return out
}
