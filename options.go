package spass

import (
	"time"

	"github.com/sdall/spass/internal/obs"
	"github.com/sdall/spass/maxent"
	"github.com/sdall/spass/significance"
)

// Option configures Fit/FitMultiGroup, following spass §6's option
// table. Invalid literal arguments panic at the call site rather than
// deferring to a validation error returned later — matching the
// constructor-time validation the rest of spass's functional options
// use.
type Option func(*Options)

// Options holds the resolved configuration spass §6 describes, with
// its defaults.
type Options struct {
	Alpha          float64
	MinSupport     int
	MaxFactorSize  int
	MaxFactorWidth int
	MaxExpansions  int
	MaxDiscoveries int
	MaxSeconds     time.Duration
	LORDFactor     float64
	Logger         *obs.Logger
	Metrics        obs.Metrics
}

// DefaultOptions returns spass §6's documented defaults.
func DefaultOptions() Options {
	return Options{
		Alpha:          0.05,
		MinSupport:     2,
		MaxFactorSize:  8,
		MaxFactorWidth: 50,
		MaxExpansions:  0,
		MaxDiscoveries: 0,
		MaxSeconds:     0,
		LORDFactor:     significance.DefaultLORDFactor,
	}
}

// WithAlpha sets the target error rate (FWER α or FDR target). Panics
// if alpha is not in the open interval (0, 1).
func WithAlpha(alpha float64) Option {
	if alpha <= 0 || alpha >= 1 {
		panic("spass: WithAlpha requires alpha in (0, 1)")
	}

	return func(o *Options) { o.Alpha = alpha }
}

// WithMinSupport sets the minimum absolute row count per pattern.
// Panics if minSupport is negative.
func WithMinSupport(minSupport int) Option {
	if minSupport < 0 {
		panic("spass: WithMinSupport requires a non-negative value")
	}

	return func(o *Options) { o.MinSupport = minSupport }
}

// WithMaxFactorSize sets the cap on patterns per MaxEnt factor. Panics
// if maxFactorSize is non-positive or exceeds the hard cap.
func WithMaxFactorSize(maxFactorSize int) Option {
	if maxFactorSize <= 0 || maxFactorSize > maxent.MaxFactorSizeHardCap {
		panic("spass: WithMaxFactorSize requires 0 < n <= maxent.MaxFactorSizeHardCap")
	}

	return func(o *Options) { o.MaxFactorSize = maxFactorSize }
}

// WithMaxFactorWidth sets the cap on singletons per MaxEnt factor.
// Panics if maxFactorWidth is non-positive.
func WithMaxFactorWidth(maxFactorWidth int) Option {
	if maxFactorWidth <= 0 {
		panic("spass: WithMaxFactorWidth requires a positive value")
	}

	return func(o *Options) { o.MaxFactorWidth = maxFactorWidth }
}

// WithMaxExpansions sets the node-expansion budget; 0 means unbounded.
func WithMaxExpansions(maxExpansions int) Option {
	if maxExpansions < 0 {
		panic("spass: WithMaxExpansions requires a non-negative value")
	}

	return func(o *Options) { o.MaxExpansions = maxExpansions }
}

// WithMaxDiscoveries sets the pattern-count budget; 0 means unbounded.
func WithMaxDiscoveries(maxDiscoveries int) Option {
	if maxDiscoveries < 0 {
		panic("spass: WithMaxDiscoveries requires a non-negative value")
	}

	return func(o *Options) { o.MaxDiscoveries = maxDiscoveries }
}

// WithMaxSeconds sets the wall-clock budget; 0 means unbounded.
func WithMaxSeconds(maxSeconds time.Duration) Option {
	if maxSeconds < 0 {
		panic("spass: WithMaxSeconds requires a non-negative value")
	}

	return func(o *Options) { o.MaxSeconds = maxSeconds }
}

// WithLORDFactor overrides the default wealth split (spass §4.6's
// factor=0.5) used when Adjustment is FDR. Panics if factor is not in
// (0, 1).
func WithLORDFactor(factor float64) Option {
	if factor <= 0 || factor >= 1 {
		panic("spass: WithLORDFactor requires factor in (0, 1)")
	}

	return func(o *Options) { o.LORDFactor = factor }
}

// WithLogger attaches a structured logger; nil restores the no-op
// default.
func WithLogger(logger *obs.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMetrics attaches a metrics sink; nil restores obs.NoopMetrics.
func WithMetrics(metrics obs.Metrics) Option {
	return func(o *Options) { o.Metrics = metrics }
}

// Validate cross-checks option values that WithX's panic-on-construct
// guard can't catch alone (e.g. options never passed through a WithX
// call at all, left at zero value).
func (o Options) Validate() error {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return ErrInvalidAlpha
	}
	if o.MinSupport < 0 {
		return ErrNegativeMinSupport
	}
	if o.MaxFactorSize > maxent.MaxFactorSizeHardCap {
		return ErrFactorSizeTooLarge
	}

	return nil
}
