package lattice_test

import (
	"testing"

	"github.com/sdall/spass/bitset"
	"github.com/sdall/spass/dataset"
	"github.com/sdall/spass/lattice"
	"github.com/stretchr/testify/require"
)

func sampleView(t *testing.T) dataset.View {
	t.Helper()
	rows := [][]bool{
		{true, true, false},
		{true, true, false},
		{true, false, true},
		{false, false, true},
	}
	v, err := dataset.NewDense(rows, 3)
	require.NoError(t, err)

	return v
}

func TestSingletons(t *testing.T) {
	lat := lattice.New(sampleView(t))
	singles := lat.Singletons()
	require.Len(t, singles, 3)
	require.Equal(t, 3, singles[0].Support)
	require.Equal(t, 2, singles[1].Support)
	require.Equal(t, 2, singles[2].Support)
}

func TestExtendCanonicalOrder(t *testing.T) {
	lat := lattice.New(sampleView(t))
	singles := lat.Singletons()
	scratch := bitset.NewScratch(4)

	children := lat.Extend(singles[0], scratch)
	require.Len(t, children, 2) // columns 1 and 2, both > 0
	require.Equal(t, []int{0, 1}, children[0].Items)
	require.Equal(t, []int{0, 2}, children[1].Items)
	require.Equal(t, 2, children[0].Support) // rows {0,1}
	require.Equal(t, 1, children[1].Support) // rows {2}

	// The last singleton has no columns to its right.
	require.Empty(t, lat.Extend(singles[2], scratch))
}

func TestExtendDoesNotAliasParentRows(t *testing.T) {
	lat := lattice.New(sampleView(t))
	singles := lat.Singletons()
	scratch := bitset.NewScratch(4)

	children := lat.Extend(singles[0], scratch)
	before := singles[0].Rows.Len()
	_ = children[0].Rows.Add(999) // mutate the child; must not affect the parent
	require.Equal(t, before, singles[0].Rows.Len())
}

func TestDegenerateEmptyDataset(t *testing.T) {
	v, err := dataset.NewDense(nil, 0)
	require.NoError(t, err)
	lat := lattice.New(v)
	require.Empty(t, lat.Singletons())
}

func TestCandidateID(t *testing.T) {
	c := &lattice.Candidate{Items: []int{1, 3, 7}}
	require.Equal(t, "1,3,7", c.ID())
}
