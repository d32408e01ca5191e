package discover_test

import (
	"context"
	"testing"

	"github.com/sdall/spass/bitset"
	"github.com/sdall/spass/dataset"
	"github.com/sdall/spass/discover"
	"github.com/sdall/spass/lattice"
	"github.com/sdall/spass/maxent"
	"github.com/sdall/spass/significance"
	"github.com/stretchr/testify/require"
)

// twoStratumView is blockDiagonalView's 6x6 shape again, but the two
// groups partition its rows 0-2/3-5 rather than its columns, so within
// each group's mask one block is always on and the other always off.
func twoStratumView(t *testing.T) dataset.View {
	t.Helper()

	return blockDiagonalView(t)
}

func newGroup(t *testing.T, view dataset.View, rows []int) *discover.Group {
	t.Helper()
	mask, err := bitset.FromIndices(rows)
	require.NoError(t, err)

	m := view.NumCols()
	supports := make([]int, m)
	for j := 0; j < m; j++ {
		supports[j] = view.RowsOf(j).Intersect(mask).Len()
	}
	model, err := maxent.New(m, len(rows), supports, maxent.Config{MaxFactorSize: 8, MaxFactorWidth: 6})
	require.NoError(t, err)

	return &discover.Group{Model: model, Mask: mask, NumRows: len(rows)}
}

func TestMultiGroupAcceptedPatternsRespectMinSupport(t *testing.T) {
	view := twoStratumView(t)
	groups := []*discover.Group{
		newGroup(t, view, []int{0, 1, 2}),
		newGroup(t, view, []int{3, 4, 5}),
	}
	ctrl, err := significance.NewFWERController(0.2, view.NumCols())
	require.NoError(t, err)

	d, err := discover.NewMultiGroup(lattice.New(view), groups, significance.NewFWERAdapter(ctrl), discover.Options{MinSupport: 2}, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	patterns, err := d.Run(context.Background())
	require.NoError(t, err)
	for _, p := range patterns {
		require.GreaterOrEqual(t, p.Support, 2)
		require.Contains(t, []int{0, 1}, p.Group)
	}
}

func TestMultiGroupAlphaNearZeroAcceptsNothing(t *testing.T) {
	view := twoStratumView(t)
	groups := []*discover.Group{
		newGroup(t, view, []int{0, 1, 2}),
		newGroup(t, view, []int{3, 4, 5}),
	}
	ctrl, err := significance.NewFWERController(1e-12, view.NumCols())
	require.NoError(t, err)

	d, err := discover.NewMultiGroup(lattice.New(view), groups, significance.NewFWERAdapter(ctrl), discover.Options{MinSupport: 2}, nil, nil)
	require.NoError(t, err)
	defer d.Close()

	patterns, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, patterns)
}

func TestMultiGroupRejectsEmptyGroupList(t *testing.T) {
	view := twoStratumView(t)
	ctrl, err := significance.NewFWERController(0.2, view.NumCols())
	require.NoError(t, err)

	_, err = discover.NewMultiGroup(lattice.New(view), nil, significance.NewFWERAdapter(ctrl), discover.Options{MinSupport: 2}, nil, nil)
	require.ErrorIs(t, err, discover.ErrInvalidOptions)
}

func TestMultiGroupRunIsDeterministicAcrossRepeatedInvocations(t *testing.T) {
	view := twoStratumView(t)

	run := func() []discover.GroupPattern {
		groups := []*discover.Group{
			newGroup(t, view, []int{0, 1, 2}),
			newGroup(t, view, []int{3, 4, 5}),
		}
		ctrl, err := significance.NewFWERController(0.5, view.NumCols())
		require.NoError(t, err)
		d, err := discover.NewMultiGroup(lattice.New(view), groups, significance.NewFWERAdapter(ctrl), discover.Options{MinSupport: 2}, nil, nil)
		require.NoError(t, err)
		defer d.Close()

		patterns, err := d.Run(context.Background())
		require.NoError(t, err)

		return patterns
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}
