package maxent

// Scratch is the per-worker inference context spass §5 describes: discover
// keeps one per worker in a pool sized to its worker count, and each is
// reused across every ExpectationScratch/IsForbiddenScratch call that
// worker makes, so the per-candidate factor lookup (distinctFactors),
// item-filtering (itemsWithinFactor), and merged-shape column set
// (mergedShape) allocate nothing beyond this one buffer set. Not safe
// for concurrent use; one Scratch belongs to exactly one worker.
type Scratch struct {
	items   []int
	factors []*factor
	seen    map[*factor]bool
	cols    map[int]bool
}

// NewScratch returns a Scratch whose internal buffers are pre-sized to
// maxFactorWidth+1 entries.
func NewScratch(maxFactorWidth int) *Scratch {
	hint := maxFactorWidth + 1

	return &Scratch{
		items:   make([]int, 0, hint),
		factors: make([]*factor, 0, hint),
		seen:    make(map[*factor]bool, hint),
		cols:    make(map[int]bool, hint),
	}
}
