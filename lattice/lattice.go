package lattice

import (
	"github.com/sdall/spass/bitset"
	"github.com/sdall/spass/dataset"
)

// Lattice holds the precomputed per-column row-sets (the singletons) that
// every candidate extension is built from.
type Lattice struct {
	numCols    int
	numRows    int
	singletons []*Candidate
}

// New builds the singleton layer of the lattice from view: one Candidate
// of length 1 per column, with its row-set and support precomputed once.
// A dataset with zero rows or zero columns yields a Lattice with no
// singletons (degenerate input, spass §7), not an error.
func New(view dataset.View) *Lattice {
	m := view.NumCols()
	n := view.NumRows()
	singles := make([]*Candidate, 0, m)
	if n > 0 && m > 0 {
		for j := 0; j < m; j++ {
			rows := view.RowsOf(j)
			singles = append(singles, &Candidate{
				Items:   []int{j},
				Rows:    rows,
				Support: rows.Len(),
			})
		}
	}

	return &Lattice{numCols: m, numRows: n, singletons: singles}
}

// Singletons returns the lattice's root frontier: one Candidate per
// column. The returned slice is owned by the caller; Rows on each
// Candidate must not be mutated (it aliases the dataset's own row-sets).
func (l *Lattice) Singletons() []*Candidate {
	out := make([]*Candidate, len(l.singletons))
	copy(out, l.singletons)

	return out
}

// NumRows returns n, the number of rows in the underlying dataset.
func (l *Lattice) NumRows() int { return l.numRows }

// NumCols returns m, the number of columns (singletons).
func (l *Lattice) NumCols() int { return l.numCols }

// Extend returns the children of parent: one candidate per singleton
// column strictly greater than parent.Last(), each with its row-set
// computed as parent.Rows ∩ rows_j using scratch to avoid allocating an
// intermediate Set per child.
func (l *Lattice) Extend(parent *Candidate, scratch *bitset.Scratch) []*Candidate {
	children := make([]*Candidate, 0, l.numCols-parent.Last()-1)
	for j := parent.Last() + 1; j < l.numCols; j++ {
		colRows := l.singletons[j].Rows
		bitset.IntersectInto(parent.Rows, colRows, scratch.A)
		rows := scratch.A.Clone()

		items := make([]int, len(parent.Items)+1)
		copy(items, parent.Items)
		items[len(items)-1] = j

		children = append(children, &Candidate{
			Items:   items,
			Rows:    rows,
			Support: rows.Len(),
		})
	}

	return children
}
