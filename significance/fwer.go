package significance

import "math"

// FWERController enforces spass §4.5's family-wise error control: a
// candidate at lattice layer k is admitted only once its pv clears
// −log_fwer_adjustment(α, k, m). The controller also tracks layer, the
// monotone "largest k accepted so far" the discoverer folds into every
// subsequent threshold (spass §9 leaves the exact mechanism to the
// implementer; making the family grow with the highest accepted layer,
// never shrink, is what keeps the error bound valid as BFS descends
// layers out of order within a batch).
//
// All state mutation happens in Accept, called by the discoverer's
// single-threaded report step between batches — never concurrently with
// PVThreshold.
type FWERController struct {
	alpha float64
	m     int
	layer int
}

// NewFWERController builds a controller for m singletons tested at level
// alpha. alpha must lie in (0, 1).
func NewFWERController(alpha float64, m int) (*FWERController, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if m <= 0 {
		return nil, ErrInvalidAlpha
	}

	return &FWERController{alpha: alpha, m: m}, nil
}

// PVThreshold returns the non-negative pv cutoff a layer-k candidate must
// exceed to be accepted, given everything accepted so far.
func (c *FWERController) PVThreshold(k int) float64 {
	layer := k
	if c.layer > layer {
		layer = c.layer
	}

	return -LogFWERThreshold(c.alpha, layer, c.m)
}

// Test reports whether pv clears the layer-k threshold. It does not
// mutate state; call Accept once the candidate is actually admitted to
// the result set.
func (c *FWERController) Test(pv float64, k int) bool {
	return pv >= c.PVThreshold(k)
}

// Accept folds k into the controller's monotone layer floor.
func (c *FWERController) Accept(k int) {
	if k > c.layer {
		c.layer = k
	}
}

// PruneThreshold returns the pv cutoff below which no candidate, at any
// layer, could ever be admitted at the controller's current state: the
// layer-1 threshold is the loosest the family ever grants, so anything
// failing it now will keep failing as layer only grows.
func (c *FWERController) PruneThreshold() float64 {
	return math.Max(0, c.PVThreshold(1))
}
