package maxent

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// fitIterations bounds the convex solve's iteration budget; the factor
// width/size caps keep each iteration's objective/gradient evaluation
// O(2^width), so a generous iteration cap is cheap relative to lattice
// search as a whole.
const fitIterations = 200

// fit solves for f.theta so the factor's joint distribution reproduces
// target (singleton marginals followed by pattern marginals, in the same
// order as f.v and f.patterns), then rebuilds f.joint from the solution.
//
// This is the maximum-entropy dual: minimize
//
//	A(θ) = log Σ_x exp(θ·features(x)) − θ·target
//
// which is convex with gradient E_θ[features] − target. Because a
// factor's state space is ≤ 2^max_factor_width cells (spass §4.2 "factor
// fitting"), brute-force enumeration of the gradient and objective at
// each iterate is tractable for the caller-configured width bound.
func (f *factor) fit(target []float64) {
	width := f.width()
	nFeatures := width + len(f.patterns)
	nStates := 1 << uint(width)

	theta0 := make([]float64, nFeatures)

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			logZ, expect := f.logPartitionAndExpectation(theta, nStates, nFeatures)
			_ = expect
			var dot float64
			for i, t := range target {
				dot += theta[i] * t
			}

			return logZ - dot
		},
		Grad: func(grad, theta []float64) {
			_, expect := f.logPartitionAndExpectation(theta, nStates, nFeatures)
			for i := range grad {
				grad[i] = expect[i] - target[i]
			}
		},
	}

	result, _ := optimize.Minimize(problem, theta0, &optimize.Settings{
		MajorIterations: fitIterations,
	}, &optimize.BFGS{})

	theta := theta0
	if result != nil && len(result.X) == nFeatures {
		theta = result.X
	}
	// A solver error (e.g. iteration-limit or line-search failure) is not
	// surfaced to the caller: InsertPattern still wants the best-effort
	// joint table built from whatever iterate we reached, matching
	// spass §7's "no error is raised across the API boundary for data-
	// driven reasons". The error is not recorded either, so
	// Model.LastFitError does not report it.

	f.theta = theta
	f.joint = f.buildJoint(theta, nStates, nFeatures)
}

// featuresOf returns, for state x, which of the nFeatures sufficient
// statistics are active: feature i < width is singleton V[i]; feature
// width+k is the k-th inserted pattern.
func (f *factor) featuresOf(x, width int) []int {
	active := make([]int, 0, width+len(f.patterns))
	for i := 0; i < width; i++ {
		if x&(1<<uint(i)) != 0 {
			active = append(active, i)
		}
	}
	for k, mask := range f.masks {
		if x&mask == mask {
			active = append(active, width+k)
		}
	}

	return active
}

// logPartitionAndExpectation computes log Z(θ) and E_θ[features] by
// brute-force enumeration over the factor's state space.
func (f *factor) logPartitionAndExpectation(theta []float64, nStates, nFeatures int) (float64, []float64) {
	width := f.width()
	scores := make([]float64, nStates)
	maxScore := math.Inf(-1)
	for x := 0; x < nStates; x++ {
		var s float64
		for _, i := range f.featuresOf(x, width) {
			s += theta[i]
		}
		scores[x] = s
		if s > maxScore {
			maxScore = s
		}
	}

	var z float64
	expect := make([]float64, nFeatures)
	for x := 0; x < nStates; x++ {
		w := math.Exp(scores[x] - maxScore)
		z += w
		for _, i := range f.featuresOf(x, width) {
			expect[i] += w
		}
	}
	for i := range expect {
		expect[i] /= z
	}

	return maxScore + math.Log(z), expect
}

// buildJoint normalizes exp(θ·features(x)) into a probability table.
func (f *factor) buildJoint(theta []float64, nStates, nFeatures int) []float64 {
	_ = nFeatures
	width := f.width()
	joint := make([]float64, nStates)
	maxScore := math.Inf(-1)
	for x := 0; x < nStates; x++ {
		var s float64
		for _, i := range f.featuresOf(x, width) {
			s += theta[i]
		}
		joint[x] = s
		if s > maxScore {
			maxScore = s
		}
	}
	var z float64
	for x := range joint {
		joint[x] = math.Exp(joint[x] - maxScore)
		z += joint[x]
	}
	for x := range joint {
		joint[x] /= z
	}

	return joint
}
