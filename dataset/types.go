// Package dataset defines the abstract "rows as sets of column indices"
// view that the core consumes (spass §1, §3), plus two minimal in-memory
// reference implementations. It deliberately does not parse any file
// format — loading transactions from disk is cmd/spassmine's job, not the
// core's (spass §1 "explicitly out of scope").
package dataset

import (
	"errors"

	"github.com/sdall/spass/bitset"
)

// ErrDimensionMismatch indicates a row-sets slice whose declared column
// count does not bound every row's indices.
var ErrDimensionMismatch = errors.New("dataset: column index out of declared range")

// ErrNegativeDimension indicates a negative row or column count was
// requested of a constructor.
var ErrNegativeDimension = errors.New("dataset: negative row or column count")

// View is the only contract the core needs from a dataset: for any column
// j, the set of rows containing it, and the dataset's shape. Candidate
// support is always computed as a cardinality of intersected RowsOf sets
// (spass §3); physical layout behind View is opaque to the core.
type View interface {
	// NumRows returns n, the number of rows.
	NumRows() int
	// NumCols returns m, the number of columns (singletons).
	NumCols() int
	// RowsOf returns rows_j, the set of row indices containing column j.
	// The returned Set must not be mutated by the caller.
	RowsOf(col int) *bitset.Set
}
