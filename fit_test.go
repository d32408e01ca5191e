package spass_test

import (
	"testing"

	"github.com/sdall/spass"
	"github.com/sdall/spass/dataset"
	"github.com/stretchr/testify/require"
)

func smallView(t *testing.T) dataset.View {
	t.Helper()
	rows := [][]bool{
		{true, true, false, false},
		{true, true, false, false},
		{true, true, false, false},
		{false, false, true, true},
		{false, false, true, true},
		{false, false, true, true},
	}
	ds, err := dataset.NewDense(rows, 4)
	require.NoError(t, err)

	return ds
}

func TestFitSingleGroupReturnsOneModel(t *testing.T) {
	models, err := spass.Fit(spass.FWER, smallView(t), nil, spass.WithAlpha(0.5), spass.WithMinSupport(2))
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.Equal(t, 4, models[0].NumSingletons())
}

func TestFitMultiGroupReturnsOneModelPerLabel(t *testing.T) {
	y := []int{0, 0, 0, 1, 1, 1}
	models, err := spass.Fit(spass.FDR, smallView(t), y, spass.WithAlpha(0.5), spass.WithMinSupport(1))
	require.NoError(t, err)
	require.Len(t, models, 2)
	for _, m := range models {
		require.Equal(t, 4, m.NumSingletons())
		require.Equal(t, 3, m.NumRows())
	}
}

func TestFitRejectsLabelLengthMismatch(t *testing.T) {
	_, err := spass.Fit(spass.FWER, smallView(t), []int{0, 1})
	require.ErrorIs(t, err, spass.ErrLabelLengthMismatch)
}

func TestFitRejectsInvalidAlphaFromZeroValueOptions(t *testing.T) {
	// Options.Validate must catch a never-set-via-WithAlpha zero value,
	// since DefaultOptions() always sets a valid Alpha; simulate by
	// passing an Option that bypasses WithAlpha's own panic guard.
	bad := func(o *spass.Options) { o.Alpha = 0 }
	_, err := spass.Fit(spass.FWER, smallView(t), nil, bad)
	require.ErrorIs(t, err, spass.ErrInvalidAlpha)
}

func TestFitOnDegenerateDatasetReturnsEmptyModel(t *testing.T) {
	ds, err := dataset.NewDense(nil, 0)
	require.NoError(t, err)

	models, err := spass.Fit(spass.FWER, ds, nil)
	require.NoError(t, err)
	require.Len(t, models, 1)
	require.Empty(t, models[0].Patterns())
}

func TestWithAlphaPanicsOnInvalidValue(t *testing.T) {
	require.Panics(t, func() { spass.WithAlpha(0) })
	require.Panics(t, func() { spass.WithAlpha(1) })
}

func TestWithMaxFactorSizePanicsAboveHardCap(t *testing.T) {
	require.Panics(t, func() { spass.WithMaxFactorSize(13) })
}
