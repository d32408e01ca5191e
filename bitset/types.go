// Package bitset provides the row-set representation shared by dataset,
// lattice, and maxent: a word-packed set of row indices supporting fast
// intersection, union, cardinality, and membership.
//
// Every candidate itemset's support is the cardinality of an intersection
// of per-column row-sets (dataset.View.RowsOf); Set exists so that
// intersection is O(words) rather than O(elements), which matters because
// the discoverer recomputes it once per lattice edge.
package bitset

import (
	"errors"

	bbs "github.com/bits-and-blooms/bitset"
)

// ErrNegativeIndex indicates a row or column index below zero was supplied.
var ErrNegativeIndex = errors.New("bitset: negative index")

// Set is a thread-hostile (single-owner), word-packed set of non-negative
// integers. It wraps github.com/bits-and-blooms/bitset; callers own
// synchronization the same way lvlath's core.Graph owns its own locks —
// Set itself assumes exclusive access during any mutating call.
type Set struct {
	bs *bbs.BitSet
}

// New returns an empty Set with room for at least capacityHint bits
// pre-allocated (a hint only; Set grows as needed).
func New(capacityHint int) *Set {
	if capacityHint < 0 {
		capacityHint = 0
	}

	return &Set{bs: bbs.New(uint(capacityHint))}
}

// FromIndices builds a Set containing exactly the given non-negative indices.
func FromIndices(idx []int) (*Set, error) {
	s := New(len(idx))
	for _, i := range idx {
		if i < 0 {
			return nil, ErrNegativeIndex
		}
		s.bs.Set(uint(i))
	}

	return s, nil
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{bs: s.bs.Clone()}
}

// Add inserts i into the set. It is a no-op if i is already present.
func (s *Set) Add(i int) error {
	if i < 0 {
		return ErrNegativeIndex
	}
	s.bs.Set(uint(i))

	return nil
}

// Contains reports whether i is a member of s.
func (s *Set) Contains(i int) bool {
	if i < 0 {
		return false
	}

	return s.bs.Test(uint(i))
}

// Len returns the cardinality of s (population count).
func (s *Set) Len() int {
	return int(s.bs.Count())
}

// IsEmpty reports whether s has no members.
func (s *Set) IsEmpty() bool {
	return s.bs.None()
}

// Slice returns the sorted members of s as a fresh []int.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.Len())
	for i, e := s.bs.NextSet(0); e; i, e = s.bs.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}

// IntersectInto computes a ∩ b and overwrites dst with the result.
// dst must not alias a or b. This is the scratch-buffer form used on the
// discoverer's hot path (see Scratch): it reuses dst's backing storage
// instead of allocating a fresh Set per lattice edge.
func IntersectInto(a, b, dst *Set) {
	dst.bs.ClearAll()
	dst.bs.InPlaceUnion(a.bs)
	dst.bs.InPlaceIntersection(b.bs)
}

// Intersect returns a new Set containing s ∩ other.
func (s *Set) Intersect(other *Set) *Set {
	return &Set{bs: s.bs.Intersection(other.bs)}
}

// Union returns a new Set containing s ∪ other.
func (s *Set) Union(other *Set) *Set {
	return &Set{bs: s.bs.Union(other.bs)}
}
