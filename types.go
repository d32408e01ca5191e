package spass

import "errors"

// ErrInvalidAlpha indicates Options.Alpha was outside (0, 1).
var ErrInvalidAlpha = errors.New("spass: alpha must be in (0, 1)")

// ErrFactorSizeTooLarge indicates Options.MaxFactorSize exceeded
// maxent.MaxFactorSizeHardCap.
var ErrFactorSizeTooLarge = errors.New("spass: max_factor_size exceeds the hard cap")

// ErrNegativeMinSupport indicates Options.MinSupport was negative.
var ErrNegativeMinSupport = errors.New("spass: min_support must be >= 0")

// ErrLabelLengthMismatch indicates y's length did not match the
// dataset's row count.
var ErrLabelLengthMismatch = errors.New("spass: label count does not match dataset row count")

// Adjustment selects the multiple-testing regime spass's significance
// package enforces (spass §4.5/§4.6).
type Adjustment int

const (
	// FWER is the family-wise, log-adjusted Bonferroni-style threshold.
	FWER Adjustment = iota
	// FDR is the sequential LORD procedure.
	FDR
)

func (a Adjustment) String() string {
	switch a {
	case FWER:
		return "fwer"
	case FDR:
		return "fdr"
	default:
		return "unknown"
	}
}
