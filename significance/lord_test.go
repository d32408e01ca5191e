package significance_test

import (
	"math"
	"testing"

	"github.com/sdall/spass/significance"
	"github.com/stretchr/testify/require"
)

func TestLORDRecurrenceMatchesReferenceImplementation(t *testing.T) {
	const alpha = 0.05
	pvalues := []float64{0.2, 0.001, 0.3, 0.0001, 0.5, 0.02, 0.9, 0.00001}

	l, err := significance.NewLORD(alpha, significance.DefaultLORDFactor)
	require.NoError(t, err)

	ref := newReferenceLORD(alpha)
	for _, p := range pvalues {
		gotReject := l.Test(p)
		wantReject := ref.test(p)
		require.Equal(t, wantReject, gotReject)
		require.InDelta(t, ref.alphaI, l.CurrentLevel(), 1e-12)
	}
}

func TestLORDTestLogPVAgreesWithTest(t *testing.T) {
	const alpha = 0.1
	a, err := significance.NewLORD(alpha, significance.DefaultLORDFactor)
	require.NoError(t, err)
	b, err := significance.NewLORD(alpha, significance.DefaultLORDFactor)
	require.NoError(t, err)

	pvalues := []float64{0.3, 0.02, 0.5, 0.0003}
	for _, p := range pvalues {
		want := a.Test(p)
		got := b.TestLogPV(-math.Log(p))
		require.Equal(t, want, got)
	}
}

func TestLORDPruneThresholdIsNegLogAlpha(t *testing.T) {
	l, err := significance.NewLORD(0.05, significance.DefaultLORDFactor)
	require.NoError(t, err)
	require.InDelta(t, -math.Log(0.05), l.PruneThreshold(), 1e-12)
}

func TestNewLORDRejectsBadAlpha(t *testing.T) {
	_, err := significance.NewLORD(-0.1, significance.DefaultLORDFactor)
	require.ErrorIs(t, err, significance.ErrInvalidAlpha)
}

func TestNewLORDRejectsBadFactor(t *testing.T) {
	_, err := significance.NewLORD(0.05, 0)
	require.ErrorIs(t, err, significance.ErrInvalidAlpha)
	_, err = significance.NewLORD(0.05, 1)
	require.ErrorIs(t, err, significance.ErrInvalidAlpha)
}

// referenceLORD is a deliberately independent re-derivation of the §4.6
// recurrence, spelled out without reusing any package internals, so the
// test is not just checking the implementation against itself.
type referenceLORD struct {
	alpha, w0, b0 float64
	tau, i        int
	wTau, w       float64
	alphaI        float64
}

func newReferenceLORD(alpha float64) *referenceLORD {
	w0 := alpha * 0.5
	r := &referenceLORD{alpha: alpha, w0: w0, b0: alpha - w0, tau: 0, i: 1, wTau: w0, w: w0}
	r.alphaI = r.xi(r.i-r.tau) * r.wTau

	return r
}

// xi mirrors spass §4.6's ξ(k) = (6/(π²k²))·(α/b0)/(1+log k) exactly,
// including the α/b0 scaling term.
func (r *referenceLORD) xi(k int) float64 {
	kf := float64(k)

	return (6 / (math.Pi * math.Pi)) / (kf * kf * (1 + math.Log(kf))) * (r.alpha / r.b0)
}

func (r *referenceLORD) test(p float64) bool {
	used := r.alphaI
	reject := used > 0 && p < used
	if reject {
		r.tau = r.i
		r.wTau = r.w
	}
	r.i++
	r.alphaI = r.xi(r.i-r.tau) * r.wTau
	r.w -= used
	if reject {
		r.w += r.b0
	}

	return reject
}
