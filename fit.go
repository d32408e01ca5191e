package spass

import (
	"context"
	"sort"

	"github.com/sdall/spass/bitset"
	"github.com/sdall/spass/dataset"
	"github.com/sdall/spass/discover"
	"github.com/sdall/spass/lattice"
	"github.com/sdall/spass/maxent"
	"github.com/sdall/spass/significance"
)

// Fit is spass's single programmatic entry point (spass §6): mine ds
// for statistically significant itemsets under adjustment, optionally
// stratified by the per-row group labels y. y == nil is single-group
// mode and returns a length-1 slice; otherwise one *maxent.Model is
// returned per distinct label (spass §4.7): one shared candidate stream
// scored against every group's model, admitted through one shared
// significance controller.
//
// Degenerate input (ds.NumRows() == 0 or ds.NumCols() == 0) returns an
// empty model with no accepted patterns and no error (spass §7).
func Fit(adjustment Adjustment, ds dataset.View, y []int, opts ...Option) ([]*maxent.Model, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if y != nil && len(y) != ds.NumRows() {
		return nil, ErrLabelLengthMismatch
	}

	// Degenerate input never reaches the controller (see fitSingleGroup/
	// fitMultiGroup), and an FWER controller over m = 0 cannot be built.
	var controller significance.Controller
	if ds.NumRows() > 0 && ds.NumCols() > 0 {
		c, err := newController(adjustment, options, ds.NumCols())
		if err != nil {
			return nil, err
		}
		controller = c
	}

	if y == nil {
		model, err := fitSingleGroup(ds, controller, options)
		if err != nil {
			return nil, err
		}

		return []*maxent.Model{model}, nil
	}

	return fitMultiGroup(ds, y, controller, options)
}

// FitMultiGroup is Fit with y required to be non-nil; it exists as a
// named entry point matching spass §4.7's "multi-group wrapper"
// terminology, and simply forwards to Fit.
func FitMultiGroup(adjustment Adjustment, ds dataset.View, y []int, opts ...Option) ([]*maxent.Model, error) {
	return Fit(adjustment, ds, y, opts...)
}

func newController(adjustment Adjustment, options Options, numSingletons int) (significance.Controller, error) {
	switch adjustment {
	case FDR:
		l, err := significance.NewLORD(options.Alpha, options.LORDFactor)
		if err != nil {
			return nil, err
		}

		return significance.NewLORDAdapter(l), nil
	default:
		c, err := significance.NewFWERController(options.Alpha, numSingletons)
		if err != nil {
			return nil, err
		}

		return significance.NewFWERAdapter(c), nil
	}
}

// fitSingleGroup builds the lattice/model/discoverer triple for ds as
// one undivided group and runs the search to completion, inserting
// every accepted pattern into the returned model as a side effect of
// discover.Discoverer.Run.
func fitSingleGroup(ds dataset.View, controller significance.Controller, options Options) (*maxent.Model, error) {
	m := ds.NumCols()
	n := ds.NumRows()

	if n == 0 || m == 0 {
		return maxent.New(m, n, make([]int, m), maxent.Config{
			MaxFactorSize:  options.MaxFactorSize,
			MaxFactorWidth: options.MaxFactorWidth,
		})
	}

	supports := make([]int, m)
	for j := 0; j < m; j++ {
		supports[j] = ds.RowsOf(j).Len()
	}

	model, err := maxent.New(m, n, supports, maxent.Config{
		MaxFactorSize:  options.MaxFactorSize,
		MaxFactorWidth: options.MaxFactorWidth,
	})
	if err != nil {
		return nil, err
	}

	d, err := discover.New(lattice.New(ds), model, controller, discover.Options{
		MinSupport:     options.MinSupport,
		MaxExpansions:  options.MaxExpansions,
		MaxDiscoveries: options.MaxDiscoveries,
		MaxSeconds:     options.MaxSeconds,
	}, options.Logger, options.Metrics)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if _, err := d.Run(context.Background()); err != nil {
		return nil, err
	}

	return model, nil
}

// fitMultiGroup builds one *maxent.Model per distinct label in y and
// mines them together as spass §4.7 requires: one shared lattice over
// the whole, unmasked ds, one row-mask per group (in ds's own row
// numbering), and one significance.Controller shared across every
// group's admission decisions via discover.MultiDiscoverer — never one
// independent Discoverer per group.
func fitMultiGroup(ds dataset.View, y []int, controller significance.Controller, options Options) ([]*maxent.Model, error) {
	m := ds.NumCols()
	n := ds.NumRows()

	if n == 0 || m == 0 {
		model, err := maxent.New(m, n, make([]int, m), maxent.Config{
			MaxFactorSize:  options.MaxFactorSize,
			MaxFactorWidth: options.MaxFactorWidth,
		})
		if err != nil {
			return nil, err
		}

		return []*maxent.Model{model}, nil
	}

	rowGroups := groupsOf(y)
	models := make([]*maxent.Model, len(rowGroups))
	groups := make([]*discover.Group, len(rowGroups))

	for i, rows := range rowGroups {
		mask, err := bitset.FromIndices(rows)
		if err != nil {
			return nil, err
		}
		numRows := len(rows)

		supports := make([]int, m)
		for j := 0; j < m; j++ {
			supports[j] = ds.RowsOf(j).Intersect(mask).Len()
		}

		model, err := maxent.New(m, numRows, supports, maxent.Config{
			MaxFactorSize:  options.MaxFactorSize,
			MaxFactorWidth: options.MaxFactorWidth,
		})
		if err != nil {
			return nil, err
		}

		models[i] = model
		groups[i] = &discover.Group{Model: model, Mask: mask, NumRows: numRows}
	}

	d, err := discover.NewMultiGroup(lattice.New(ds), groups, controller, discover.Options{
		MinSupport:     options.MinSupport,
		MaxExpansions:  options.MaxExpansions,
		MaxDiscoveries: options.MaxDiscoveries,
		MaxSeconds:     options.MaxSeconds,
	}, options.Logger, options.Metrics)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	if _, err := d.Run(context.Background()); err != nil {
		return nil, err
	}

	return models, nil
}

// groupsOf returns one row-index slice per distinct label in y, sorted
// by label value for deterministic group ordering.
func groupsOf(y []int) [][]int {
	byLabel := make(map[int][]int)
	for row, label := range y {
		byLabel[label] = append(byLabel[label], row)
	}

	labels := make([]int, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	groups := make([][]int, len(labels))
	for i, label := range labels {
		groups[i] = byLabel[label]
	}

	return groups
}
