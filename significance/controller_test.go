package significance_test

import (
	"testing"

	"github.com/sdall/spass/significance"
	"github.com/stretchr/testify/require"
)

func TestFWERAdapterAcceptFoldsLayer(t *testing.T) {
	c, err := significance.NewFWERController(0.05, 20)
	require.NoError(t, err)
	a := significance.NewFWERAdapter(c)

	threshold := c.PVThreshold(3)
	require.True(t, a.Test(threshold+1, 3))
	// Layer should now be floored at 3, tightening the layer-1 view.
	require.Equal(t, c.PVThreshold(1), c.PVThreshold(3))
}

func TestLORDAdapterIgnoresLayer(t *testing.T) {
	l, err := significance.NewLORD(0.05, significance.DefaultLORDFactor)
	require.NoError(t, err)
	a := significance.NewLORDAdapter(l)

	got1 := a.Test(100, 1)
	l2, err := significance.NewLORD(0.05, significance.DefaultLORDFactor)
	require.NoError(t, err)
	a2 := significance.NewLORDAdapter(l2)
	got2 := a2.Test(100, 99)

	require.Equal(t, got1, got2)
}
