// Package lattice represents the itemset search space as a prefix lattice
// rooted at the empty set: children of S append a singleton with index
// strictly greater than every index already in S, so canonical ordering
// alone rules out duplicate itemsets (spass §4.3).
package lattice

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sdall/spass/bitset"
)

// ErrEmptyView indicates a Lattice was built over a dataset with zero
// rows or zero columns; spass §7 treats this as a degenerate, not an
// error, input — New returns a Lattice with no singletons rather than
// failing.
var ErrEmptyView = errors.New("lattice: dataset has no rows or no columns")

// Candidate is a tentative pattern: an itemset, its row-set, support, and
// score (spass §3). Score is non-negative; 0 means ineligible, whether
// because the candidate is below min_support, forbidden by the MaxEnt
// model's factor caps, or simply not yet significant.
type Candidate struct {
	// Items holds the itemset in canonical (strictly increasing) order.
	Items []int
	// Rows is the candidate's row-set (intersection of its items' rows_j).
	Rows *bitset.Set
	// Support is Rows.Len(), cached because it is read every batch.
	Support int
	// Score is a non-negative log p-value; 0 means ineligible.
	Score float64
}

// ID returns a deterministic, lexicographically comparable identifier for
// the candidate's itemset, used to break score ties during acceptance
// ordering (spass §5 "Ordering guarantees").
func (c *Candidate) ID() string {
	parts := make([]string, len(c.Items))
	for i, it := range c.Items {
		parts[i] = strconv.Itoa(it)
	}

	return strings.Join(parts, ",")
}

// Len returns |S|, the itemset's length.
func (c *Candidate) Len() int {
	return len(c.Items)
}

// Last returns the greatest item index in the candidate, or -1 if empty.
func (c *Candidate) Last() int {
	if len(c.Items) == 0 {
		return -1
	}

	return c.Items[len(c.Items)-1]
}
