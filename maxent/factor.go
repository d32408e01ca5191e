package maxent

import "sort"

// insertedPattern is one pattern folded into a Factor's sufficient
// statistics: its items (a subset of the Factor's V, as global singleton
// indices) and the empirical probability observed when it was inserted.
type insertedPattern struct {
	items []int
	freq  float64
}

// factor is a local maximum-entropy component over a bounded singleton
// set V, reproducing the empirical marginals of V's singletons and of any
// patterns inserted into it (spass §3, §4.2).
//
// joint is the factor's fitted joint distribution: joint[x] is P(state x)
// for state x ranging over 0..2^width-1, bit i of x meaning "V[i] is on".
// It is rebuilt by fit() whenever theta changes.
type factor struct {
	v        []int // singleton indices covered by this factor, sorted ascending
	patterns []insertedPattern
	masks    []int // local bitmask of each pattern, parallel to patterns
	theta    []float64
	joint    []float64
}

// newSingletonFactor builds the initial width-1, size-0 factor for column
// col with empirical marginal freq = support/n.
func newSingletonFactor(col int, freq float64) *factor {
	f := &factor{v: []int{col}}
	f.fit([]float64{freq})

	return f
}

// width returns |V|, the factor's singleton count.
func (f *factor) width() int { return len(f.v) }

// size returns the factor's inserted-pattern count.
func (f *factor) size() int { return len(f.patterns) }

// localIndex returns the position of global singleton col within f.v, or
// -1 if col is not covered by f.
func (f *factor) localIndex(col int) int {
	i := sort.SearchInts(f.v, col)
	if i < len(f.v) && f.v[i] == col {
		return i
	}

	return -1
}

// localMask returns the local bitmask over f.v for the global itemset
// items, which must be a subset of f.v; ok is false otherwise.
func (f *factor) localMask(items []int) (mask int, ok bool) {
	for _, it := range items {
		li := f.localIndex(it)
		if li < 0 {
			return 0, false
		}
		mask |= 1 << uint(li)
	}

	return mask, true
}

// mergeFactors builds the merged factor covering the union of every
// singleton in factors, folding in their inserted patterns plus the new
// pattern newItems (with empirical frequency newFreq), and refits its
// coefficients. It does not mutate any of the input factors.
func mergeFactors(factors []*factor, newItems []int, newFreq float64) *factor {
	seen := make(map[int]float64)
	for _, f := range factors {
		for i, col := range f.v {
			seen[col] = f.singletonMarginal(i)
		}
	}
	for _, it := range newItems {
		if _, ok := seen[it]; !ok {
			// A new pattern may reference a singleton not yet covered by
			// any factor only in pathological test setups; treat its
			// marginal as unobserved-but-present with frequency 0 so the
			// fit remains well-defined.
			seen[it] = 0
		}
	}

	merged := &factor{v: make([]int, 0, len(seen))}
	for col := range seen {
		merged.v = append(merged.v, col)
	}
	sort.Ints(merged.v)

	singletonFreq := make([]float64, len(merged.v))
	for i, col := range merged.v {
		singletonFreq[i] = seen[col]
	}

	for _, f := range factors {
		for _, p := range f.patterns {
			merged.patterns = append(merged.patterns, p)
		}
	}
	merged.patterns = append(merged.patterns, insertedPattern{items: append([]int(nil), newItems...), freq: newFreq})

	merged.masks = make([]int, len(merged.patterns))
	for i, p := range merged.patterns {
		mask, _ := merged.localMask(p.items) // items are all in merged.v by construction
		merged.masks[i] = mask
	}

	target := make([]float64, len(merged.v)+len(merged.patterns))
	copy(target, singletonFreq)
	for i, p := range merged.patterns {
		target[len(merged.v)+i] = p.freq
	}
	merged.fit(target)

	return merged
}

// singletonMarginal returns P(V[i] on) under the factor's current joint
// distribution.
func (f *factor) singletonMarginal(i int) float64 {
	if len(f.joint) == 0 {
		return 0
	}
	bit := 1 << uint(i)
	var p float64
	for x, px := range f.joint {
		if x&bit != 0 {
			p += px
		}
	}

	return p
}

// marginalOf returns P(all of localMask's bits on) under the factor's
// joint distribution.
func (f *factor) marginalOf(localMask int) float64 {
	if localMask == 0 {
		return 1
	}
	var p float64
	for x, px := range f.joint {
		if x&localMask == localMask {
			p += px
		}
	}

	return p
}
