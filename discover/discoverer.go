package discover

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JekaMas/workerpool"
	"github.com/sdall/spass/binomial"
	"github.com/sdall/spass/bitset"
	"github.com/sdall/spass/internal/obs"
	"github.com/sdall/spass/lattice"
	"github.com/sdall/spass/maxent"
	"github.com/sdall/spass/significance"
)

// Discoverer drives spass §4.4's breadth-first, best-first hybrid: score
// a layer of candidates in parallel against model and controller, insert
// accepted patterns single-threaded, then expand survivors into the next
// layer. One Discoverer mines one undivided dataset; multi-group mode
// (root package) uses a single MultiDiscoverer instead.
type Discoverer struct {
	lattice    *lattice.Lattice
	model      *maxent.Model
	controller significance.Controller
	opts       Options
	logger     *obs.Logger
	metrics    obs.Metrics

	pool    *workerpool.WorkerPool
	scratch *scratchPool
}

// New builds a Discoverer over lattice l, scoring against model and
// admitting through controller. logger/metrics may be nil, in which
// case a no-op logger and obs.NoopMetrics are used (spass Testable
// Property 11: their presence never changes the accepted-pattern set).
func New(l *lattice.Lattice, model *maxent.Model, controller significance.Controller, opts Options, logger *obs.Logger, metrics obs.Metrics) (*Discoverer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = obs.NewNopLogger()
	}
	if metrics == nil {
		metrics = obs.NoopMetrics
	}

	workers := workerCount()

	return &Discoverer{
		lattice:    l,
		model:      model,
		controller: controller,
		opts:       opts,
		logger:     logger,
		metrics:    metrics,
		pool:       workerpool.New(workers),
		scratch:    newScratchPool(workers, model.NumSingletons()),
	}, nil
}

// Close stops the discoverer's persistent worker pool. Safe to call
// once after Run returns.
func (d *Discoverer) Close() {
	d.pool.StopWait()
}

// Run executes the search to completion or until a budget is hit and
// returns every accepted pattern, in acceptance order.
func (d *Discoverer) Run(ctx context.Context) ([]Pattern, error) {
	if err := d.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	current := d.lattice.Singletons()
	expandScratch := bitset.NewScratch(d.lattice.NumRows())

	var results []Pattern
	expansions, discoveries := 0, 0
	layer := 1

	for len(current) > 0 {
		if d.opts.secondsExhausted(time.Since(start)) ||
			d.opts.discoveriesExhausted(discoveries) ||
			d.opts.expansionsExhausted(expansions) ||
			ctx.Err() != nil {
			break
		}

		batch := current
		if d.opts.MaxExpansions > 0 {
			if left := d.opts.MaxExpansions - expansions; left < len(batch) {
				batch = batch[:left]
			}
		}

		scored := d.scoreBatch(ctx, batch)
		expansions += len(batch)

		survivors, accepted, prunedCount := d.report(scored, &discoveries)
		results = append(results, accepted...)

		d.metrics.ExpansionsTotal(len(batch))
		d.metrics.DiscoveriesTotal(len(accepted))
		d.metrics.RejectionsTotal(len(batch) - len(accepted) - prunedCount)
		d.metrics.QueueDepth(len(survivors))
		d.logger.Batch(layer, len(batch), len(accepted), prunedCount, time.Since(start))

		next := make([]*lattice.Candidate, 0, len(survivors))
		for _, s := range survivors {
			next = append(next, d.lattice.Extend(s, expandScratch)...)
		}
		current = next
		layer++
	}

	return results, nil
}

// scoredCandidate is one batch member's scoring outcome: eligible means
// Score > 0 and clears the controller's prune threshold; prune means
// its subtree must not be expanded (infeasible, not merely not-yet-
// significant — spass §9 "Scoring 'ineligible' vs. 'reject'").
type scoredCandidate struct {
	cand     *lattice.Candidate
	eligible bool
	prune    bool
}

func (d *Discoverer) scoreBatch(ctx context.Context, batch []*lattice.Candidate) []scoredCandidate {
	out := make([]scoredCandidate, len(batch))

	var wg sync.WaitGroup
	for i, c := range batch {
		i, c := i, c
		wg.Add(1)
		d.pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				c.Score = 0
				out[i] = scoredCandidate{cand: c}

				return
			}

			ws := d.scratch.checkout()
			defer d.scratch.release(ws)

			eligible, prune := d.scoreOne(c, ws)
			out[i] = scoredCandidate{cand: c, eligible: eligible, prune: prune}
		})
	}
	wg.Wait()

	return out
}

// scoreOne implements spass §4.4's candidate scoring rule, using ws's
// checked-out maxent.Scratch so Expectation/IsForbidden allocate no
// scratch of their own on this hot path (spass §5).
func (d *Discoverer) scoreOne(c *lattice.Candidate, ws *workerScratch) (eligible, prune bool) {
	if c.Support < d.opts.MinSupport || d.model.IsForbiddenScratch(c.Items, ws.infer) {
		c.Score = 0

		return false, true
	}

	p := d.model.ExpectationScratch(c.Items, ws.infer)
	pv := -binomial.LogUpperTail(c.Support, d.lattice.NumRows(), p)

	if pv < d.controller.PruneThreshold() {
		c.Score = 0

		return false, false
	}

	c.Score = pv

	return true, false
}

// report runs single-threaded: sorts eligible candidates score-
// descending (ID ascending on ties, spass §5 "Ordering guarantees"),
// tests each against the controller, and inserts acceptances into the
// model. It returns every non-pruned candidate (for expansion,
// regardless of acceptance), the newly accepted patterns, and the
// count of subtree-pruned candidates in this batch.
func (d *Discoverer) report(scored []scoredCandidate, discoveries *int) (survivors []*lattice.Candidate, accepted []Pattern, prunedCount int) {
	n := d.lattice.NumRows()

	ordered := make([]*scoredCandidate, 0, len(scored))
	for i := range scored {
		sc := &scored[i]
		if sc.prune {
			prunedCount++

			continue
		}
		survivors = append(survivors, sc.cand)
		if sc.eligible {
			ordered = append(ordered, sc)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].cand.Score != ordered[j].cand.Score {
			return ordered[i].cand.Score > ordered[j].cand.Score
		}

		return ordered[i].cand.ID() < ordered[j].cand.ID()
	})

	for _, sc := range ordered {
		if d.opts.discoveriesExhausted(*discoveries) {
			break
		}
		if d.model.IsForbidden(sc.cand.Items) {
			continue
		}
		if !d.controller.Test(sc.cand.Score, sc.cand.Len()) {
			continue
		}

		freq := 0.0
		if n > 0 {
			freq = float64(sc.cand.Support) / float64(n)
		}
		if !d.model.InsertPattern(freq, sc.cand.Items) {
			continue
		}

		accepted = append(accepted, Pattern{
			Items:   append([]int(nil), sc.cand.Items...),
			Support: sc.cand.Support,
			Freq:    freq,
			PV:      sc.cand.Score,
		})
		*discoveries++
	}

	return survivors, accepted, prunedCount
}
