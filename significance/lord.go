package significance

import "math"

// DefaultLORDFactor is the default split of the overall budget alpha
// into an initial wealth allocation w0 = alpha*factor, spass §4.6.
const DefaultLORDFactor = 0.5

// LORD implements spass §4.6's sequential FDR control: a wealth process
// that spends a shrinking fraction of its balance on each test and is
// refunded a fixed bonus on every rejection. Unlike FWERController, LORD
// is stateful across every test it has ever seen, not just accepted
// ones, so Test alone both decides and mutates — there is no separate
// Accept step.
//
// LORD is not safe for concurrent use; the discoverer serializes all
// calls into its single-threaded report step, matching spass §5's
// "stop-the-world between batches" rule.
type LORD struct {
	alpha float64
	w0    float64
	b0    float64

	tau    int     // index of the last rejection (0 = none yet)
	i      int     // index of the next test to run, 1-based
	wTau   float64 // wealth snapshotted at the last rejection (or w0)
	w      float64 // current wealth
	alphaI float64 // per-test level for the upcoming Test call
}

// NewLORD builds a LORD controller targeting FDR level alpha, splitting
// the initial wealth allocation w0 = alpha*factor. factor must be in
// (0, 1); use DefaultLORDFactor for spass's default split.
func NewLORD(alpha, factor float64) (*LORD, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if factor <= 0 || factor >= 1 {
		return nil, ErrInvalidAlpha
	}

	w0 := alpha * factor
	l := &LORD{
		alpha: alpha,
		w0:    w0,
		b0:    alpha - w0,
		tau:   0,
		i:     1,
		wTau:  w0,
		w:     w0,
	}
	l.alphaI = l.xi(l.i-l.tau) * l.wTau

	return l, nil
}

// xi is LORD's spend schedule, spass §4.6: ξ(k) = (6/(π²k²))·(α/b0)/(1+log k),
// scaled by the controller's own alpha/b0 split so total spend never
// exceeds the wealth it draws from.
func (l *LORD) xi(k int) float64 {
	kf := float64(k)

	return (6 / (math.Pi * math.Pi)) / (kf * kf * (1 + math.Log(kf))) * (l.alpha / l.b0)
}

// CurrentLevel returns α_i, the significance level the next Test call
// will apply.
func (l *LORD) CurrentLevel() float64 {
	return l.alphaI
}

// PruneThreshold returns the pv cutoff below which a candidate cannot
// possibly be accepted at the controller's present wealth: −log(α), the
// loosest level LORD could ever grant since every α_i is wealth-bounded
// by at most the overall budget.
func (l *LORD) PruneThreshold() float64 {
	return -math.Log(l.alpha)
}

// Test evaluates one p-value p against the current LORD level, advances
// the wealth process, and reports whether the null was rejected.
func (l *LORD) Test(p float64) bool {
	used := l.alphaI
	reject := used > 0 && p < used

	if reject {
		l.tau = l.i
		l.wTau = l.w
	}
	l.i++
	l.alphaI = l.xi(l.i-l.tau) * l.wTau

	l.w = l.w - used
	if reject {
		l.w += l.b0
	}

	return reject
}

// TestLogPV is Test expressed in the −log p-value currency the rest of
// spass uses: pv = −log p, so p < α_i becomes pv > −log(α_i).
func (l *LORD) TestLogPV(pv float64) bool {
	return l.Test(math.Exp(-pv))
}
