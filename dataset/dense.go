package dataset

import "github.com/sdall/spass/bitset"

// Dense is a View built from a row-major []bool matrix and stored as one
// row-set per column. It is intended for
// small datasets and tests; for anything large prefer FromRowSets, which
// is built once from already-sparse input and avoids the O(n·m) scan Dense
// performs at construction time.
type Dense struct {
	rows int
	cols int
	byCol []*bitset.Set
}

// NewDense builds a Dense view from an n×m binary matrix. rows[i][j] is
// true iff row i contains column j. All rows must have length cols;
// violating that returns ErrDimensionMismatch.
func NewDense(rows [][]bool, cols int) (*Dense, error) {
	if cols < 0 {
		return nil, ErrNegativeDimension
	}
	byCol := make([]*bitset.Set, cols)
	for j := range byCol {
		byCol[j] = bitset.New(len(rows))
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, ErrDimensionMismatch
		}
		for j, on := range row {
			if on {
				_ = byCol[j].Add(i)
			}
		}
	}

	return &Dense{rows: len(rows), cols: cols, byCol: byCol}, nil
}

// NumRows implements View.
func (d *Dense) NumRows() int { return d.rows }

// NumCols implements View.
func (d *Dense) NumCols() int { return d.cols }

// RowsOf implements View.
func (d *Dense) RowsOf(col int) *bitset.Set { return d.byCol[col] }
