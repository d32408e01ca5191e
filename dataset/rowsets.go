package dataset

import "github.com/sdall/spass/bitset"

// RowSets is a View backed by one []int of column indices per row — the
// natural shape for a sparse transactions file (one line per row, space-
// separated 1-based column indices, as cmd/spassmine reads). Building the
// per-column index is a single O(Σ|row|) pass over the input.
type RowSets struct {
	rows  int
	cols  int
	byCol []*bitset.Set
}

// FromRowSets builds a View from rows, where rows[i] lists the 0-based
// column indices present in row i. cols bounds the column universe;
// an index ≥ cols or < 0 returns ErrDimensionMismatch.
func FromRowSets(rows [][]int, cols int) (*RowSets, error) {
	if cols < 0 {
		return nil, ErrNegativeDimension
	}
	byCol := make([]*bitset.Set, cols)
	for j := range byCol {
		byCol[j] = bitset.New(len(rows))
	}
	for i, row := range rows {
		for _, j := range row {
			if j < 0 || j >= cols {
				return nil, ErrDimensionMismatch
			}
			_ = byCol[j].Add(i)
		}
	}

	return &RowSets{rows: len(rows), cols: cols, byCol: byCol}, nil
}

// NumRows implements View.
func (r *RowSets) NumRows() int { return r.rows }

// NumCols implements View.
func (r *RowSets) NumCols() int { return r.cols }

// RowsOf implements View.
func (r *RowSets) RowsOf(col int) *bitset.Set { return r.byCol[col] }
