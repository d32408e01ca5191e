package discover

import (
	"runtime"

	"github.com/sdall/spass/maxent"
)

// workerScratch is the per-worker context spass §5 describes: one
// maxent.Scratch reused across every Expectation/IsForbidden call a
// worker makes. A fixed pool of these, sized to GOMAXPROCS, is checked
// out and returned once per scoring task so allocation happens once per
// worker, not once per candidate. Candidate row-set intersection (the
// other scratch-sensitive operation, lattice.Extend) runs single-
// threaded in Run's own expand step and owns its own bitset.Scratch
// there, so workerScratch has no row-set buffer of its own.
type workerScratch struct {
	infer *maxent.Scratch
}

// scratchPool is a free-list of workerScratch, sized workerCount.
type scratchPool struct {
	free chan *workerScratch
}

func newScratchPool(workerCount, maxFactorWidth int) *scratchPool {
	p := &scratchPool{free: make(chan *workerScratch, workerCount)}
	for i := 0; i < workerCount; i++ {
		p.free <- &workerScratch{
			infer: maxent.NewScratch(maxFactorWidth),
		}
	}

	return p
}

func (p *scratchPool) checkout() *workerScratch { return <-p.free }

func (p *scratchPool) release(ws *workerScratch) { p.free <- ws }

// workerCount returns the fixed worker-pool size spass §5 specifies:
// hardware parallelism.
func workerCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}

	return n
}
