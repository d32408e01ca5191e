package bitset

// Scratch bundles the two reusable row-set buffers a discoverer worker
// needs per candidate-extension step: one to hold the intersection result,
// one to hold the next intermediate while chaining extensions. The
// discoverer's Run allocates one Scratch for its single-threaded expand
// step and reuses it for every lattice.Extend call.
type Scratch struct {
	A *Set
	B *Set
}

// NewScratch returns a Scratch with both buffers pre-sized to capacityHint
// bits.
func NewScratch(capacityHint int) *Scratch {
	return &Scratch{A: New(capacityHint), B: New(capacityHint)}
}

// Swap exchanges the roles of A and B without copying their contents.
func (s *Scratch) Swap() {
	s.A, s.B = s.B, s.A
}
