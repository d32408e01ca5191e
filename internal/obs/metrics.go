package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the discoverer's telemetry sink. NoopMetrics satisfies it
// with no-ops; PrometheusMetrics records real counters/gauges. Both
// exist purely for observation — nothing in discover reads a Metrics
// value back to make a decision.
type Metrics interface {
	ExpansionsTotal(n int)
	DiscoveriesTotal(n int)
	RejectionsTotal(n int)
	QueueDepth(n int)
}

type noopMetrics struct{}

// NoopMetrics is the default Metrics: every call is a no-op.
var NoopMetrics Metrics = noopMetrics{}

func (noopMetrics) ExpansionsTotal(int)  {}
func (noopMetrics) DiscoveriesTotal(int) {}
func (noopMetrics) RejectionsTotal(int)  {}
func (noopMetrics) QueueDepth(int)       {}

// PrometheusMetrics registers four spass_discover_* collectors against a
// caller-supplied registry (pass prometheus.NewRegistry() to avoid
// colliding with the default global registry across repeated test
// runs; cmd/spassmine does the same for its own registry).
type PrometheusMetrics struct {
	expansions  prometheus.Counter
	discoveries prometheus.Counter
	rejections  prometheus.Counter
	queueDepth  prometheus.Gauge
}

// NewPrometheusMetrics registers its collectors against reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		expansions: factory.NewCounter(prometheus.CounterOpts{
			Name: "spass_discover_expansions_total",
			Help: "Total candidate expansions performed by the discoverer.",
		}),
		discoveries: factory.NewCounter(prometheus.CounterOpts{
			Name: "spass_discover_discoveries_total",
			Help: "Total patterns accepted by the discoverer.",
		}),
		rejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "spass_discover_rejections_total",
			Help: "Total candidates scored but not accepted.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "spass_discover_queue_depth",
			Help: "Number of candidates currently queued for scoring.",
		}),
	}
}

func (m *PrometheusMetrics) ExpansionsTotal(n int)  { m.expansions.Add(float64(n)) }
func (m *PrometheusMetrics) DiscoveriesTotal(n int) { m.discoveries.Add(float64(n)) }
func (m *PrometheusMetrics) RejectionsTotal(n int)  { m.rejections.Add(float64(n)) }
func (m *PrometheusMetrics) QueueDepth(n int)       { m.queueDepth.Set(float64(n)) }
