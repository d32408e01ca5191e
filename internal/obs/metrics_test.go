package obs_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sdall/spass/internal/obs"
	"github.com/stretchr/testify/require"
)

func TestNoopMetricsNeverPanics(t *testing.T) {
	require.NotPanics(t, func() {
		obs.NoopMetrics.ExpansionsTotal(1)
		obs.NoopMetrics.DiscoveriesTotal(1)
		obs.NoopMetrics.RejectionsTotal(1)
		obs.NoopMetrics.QueueDepth(1)
	})
}

func TestPrometheusMetricsRegistersAndRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := obs.NewPrometheusMetrics(reg)

	require.NotPanics(t, func() {
		m.ExpansionsTotal(3)
		m.DiscoveriesTotal(1)
		m.RejectionsTotal(2)
		m.QueueDepth(5)
	})

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNopLoggerNeverPanics(t *testing.T) {
	l := obs.NewNopLogger()
	require.NotPanics(t, func() {
		l.Phase("parse")
		l.Batch(1, 10, 2, 3, time.Millisecond)
		l.Error("boom", nil)
	})
}
