package significance

// Controller is what discover depends on: either multiple-testing regime,
// spoken in the pv = −log p currency. Implementations are not safe for
// concurrent use; the discoverer only ever calls a Controller from its
// single-threaded report step.
type Controller interface {
	// PruneThreshold returns a pv cutoff below which no candidate can
	// possibly be admitted at the controller's current state. Candidates
	// scoring below it are safe to discard without a Test call.
	PruneThreshold() float64
	// Test evaluates a candidate at lattice layer k (ignored by
	// regimes, such as LORD, that don't stratify by layer) and reports
	// whether it is admitted, mutating internal state as needed.
	Test(pv float64, k int) bool
}

// fwerAdapter adapts FWERController to Controller's (pv, k) shape without
// exposing Accept's accept/reject split to discover; wrap with
// NewFWERAdapter when discover needs to both test and, on admission,
// fold k into the layer floor.
type fwerAdapter struct{ c *FWERController }

// NewFWERAdapter returns a Controller that folds every admitted
// candidate's layer into c's monotone floor.
func NewFWERAdapter(c *FWERController) Controller { return &fwerAdapter{c: c} }

func (a *fwerAdapter) PruneThreshold() float64 { return a.c.PruneThreshold() }

func (a *fwerAdapter) Test(pv float64, k int) bool {
	ok := a.c.Test(pv, k)
	if ok {
		a.c.Accept(k)
	}

	return ok
}

type lordAdapter struct{ l *LORD }

// NewLORDAdapter returns a Controller wrapping l; k is ignored since
// LORD's wealth process is not layer-stratified.
func NewLORDAdapter(l *LORD) Controller { return &lordAdapter{l: l} }

func (a *lordAdapter) PruneThreshold() float64 { return a.l.PruneThreshold() }

func (a *lordAdapter) Test(pv float64, _ int) bool { return a.l.TestLogPV(pv) }
