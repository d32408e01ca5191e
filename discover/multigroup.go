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

// Group is one stratum's maxent.Model and row membership (spass §4.7).
// Mask is expressed in the shared lattice's (whole-dataset) row
// numbering, not a group-local renumbering, since MultiDiscoverer scores
// one shared candidate stream against every group.
type Group struct {
	Model   *maxent.Model
	Mask    *bitset.Set
	NumRows int
}

// GroupPattern is one pattern accepted into one group's model.
type GroupPattern struct {
	Group   int
	Items   []int
	Support int
	Freq    float64
	PV      float64
}

// MultiDiscoverer drives spass §4.7's multi-group search: one shared
// candidate stream (built from the whole, unmasked dataset) is scored
// against every group's model, aggregated into one ranking score, and
// admitted through one significance.Controller shared across every
// group. Because the controller is mutated only from report — which
// runs single-threaded exactly as in Discoverer — no group's admission
// decision ever races another's, unlike running one Discoverer per
// group concurrently over the same Controller.
type MultiDiscoverer struct {
	lattice    *lattice.Lattice
	groups     []*Group
	controller significance.Controller
	opts       Options
	logger     *obs.Logger
	metrics    obs.Metrics

	pool    *workerpool.WorkerPool
	scratch *scratchPool
}

// NewMultiGroup builds a MultiDiscoverer over lattice l. groups must be
// non-empty; every Group.Mask is a subset of l's row universe.
func NewMultiGroup(l *lattice.Lattice, groups []*Group, controller significance.Controller, opts Options, logger *obs.Logger, metrics obs.Metrics) (*MultiDiscoverer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrInvalidOptions
	}
	if logger == nil {
		logger = obs.NewNopLogger()
	}
	if metrics == nil {
		metrics = obs.NoopMetrics
	}

	workers := workerCount()
	maxWidth := 0
	for _, g := range groups {
		if n := g.Model.NumSingletons(); n > maxWidth {
			maxWidth = n
		}
	}

	return &MultiDiscoverer{
		lattice:    l,
		groups:     groups,
		controller: controller,
		opts:       opts,
		logger:     logger,
		metrics:    metrics,
		pool:       workerpool.New(workers),
		scratch:    newScratchPool(workers, maxWidth),
	}, nil
}

// Close stops the discoverer's persistent worker pool. Safe to call
// once after Run returns.
func (d *MultiDiscoverer) Close() {
	d.pool.StopWait()
}

// Run executes the search to completion or until a budget is hit and
// returns every pattern accepted into any group's model, in acceptance
// order.
func (d *MultiDiscoverer) Run(ctx context.Context) ([]GroupPattern, error) {
	if err := d.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	current := d.lattice.Singletons()
	expandScratch := bitset.NewScratch(d.lattice.NumRows())

	var results []GroupPattern
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

type multiScoredCandidate struct {
	cand     *lattice.Candidate
	eligible bool
	prune    bool
}

func (d *MultiDiscoverer) scoreBatch(ctx context.Context, batch []*lattice.Candidate) []multiScoredCandidate {
	out := make([]multiScoredCandidate, len(batch))

	var wg sync.WaitGroup
	for i, c := range batch {
		i, c := i, c
		wg.Add(1)
		d.pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				c.Score = 0
				out[i] = multiScoredCandidate{cand: c}

				return
			}

			ws := d.scratch.checkout()
			defer d.scratch.release(ws)

			eligible, prune := d.scoreOne(c, ws)
			out[i] = multiScoredCandidate{cand: c, eligible: eligible, prune: prune}
		})
	}
	wg.Wait()

	return out
}

// scoreOne implements spass §4.7's cross-group aggregate: score(S) =
// Σ_g max(pv_g − th, 0), where th is the controller's current shared
// prune threshold. A candidate is prunable only when every group is
// either below min_support or forbidden by that group's model — if even
// one group could still admit a descendant, the subtree must stay open.
func (d *MultiDiscoverer) scoreOne(c *lattice.Candidate, ws *workerScratch) (eligible, prune bool) {
	if c.Support < d.opts.MinSupport {
		c.Score = 0

		return false, true
	}

	th := d.controller.PruneThreshold()
	var total float64
	viable := false

	for _, g := range d.groups {
		supportG := c.Rows.Intersect(g.Mask).Len()
		if supportG < d.opts.MinSupport || g.Model.IsForbiddenScratch(c.Items, ws.infer) {
			continue
		}
		viable = true

		p := g.Model.ExpectationScratch(c.Items, ws.infer)
		pv := -binomial.LogUpperTail(supportG, g.NumRows, p)
		if pv > th {
			total += pv - th
		}
	}

	if !viable {
		c.Score = 0

		return false, true
	}
	if total <= 0 {
		c.Score = 0

		return false, false
	}

	c.Score = total

	return true, false
}

// report runs single-threaded: sorts eligible candidates by aggregate
// score descending (ID ascending on ties), then for each re-evaluates
// every group's own p-value fresh (since an earlier acceptance in this
// same report step can change a group's model) and tests each viable
// group's p-value against the shared controller, inserting into every
// group whose test passes (spass §4.7: "insertion is performed per
// qualifying group").
func (d *MultiDiscoverer) report(scored []multiScoredCandidate, discoveries *int) (survivors []*lattice.Candidate, accepted []GroupPattern, prunedCount int) {
	ordered := make([]*multiScoredCandidate, 0, len(scored))
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

		items := sc.cand.Items
		for gi, g := range d.groups {
			if d.opts.discoveriesExhausted(*discoveries) {
				break
			}

			supportG := sc.cand.Rows.Intersect(g.Mask).Len()
			if supportG < d.opts.MinSupport || g.Model.IsForbidden(items) {
				continue
			}

			p := g.Model.Expectation(items)
			pv := -binomial.LogUpperTail(supportG, g.NumRows, p)
			if pv < d.controller.PruneThreshold() {
				continue
			}
			if !d.controller.Test(pv, sc.cand.Len()) {
				continue
			}

			freq := 0.0
			if g.NumRows > 0 {
				freq = float64(supportG) / float64(g.NumRows)
			}
			if !g.Model.InsertPattern(freq, items) {
				continue
			}

			accepted = append(accepted, GroupPattern{
				Group:   gi,
				Items:   append([]int(nil), items...),
				Support: supportG,
				Freq:    freq,
				PV:      pv,
			})
			*discoveries++
		}
	}

	return survivors, accepted, prunedCount
}
