package shoe

import "sync"

// cardSlicePool recycles the small Rank slices a round's deal/hit draws
// allocate, mirroring the engine package's StatePool reuse of *GameState.
var cardSlicePool = sync.Pool{
	New: func() any {
		s := make([]Rank, 0, 8)
		return &s
	},
}

// AcquireCards returns a zero-length Rank slice backed by pooled capacity,
// sized for the common two-to-eight-card hand.
func AcquireCards() []Rank {
	p := cardSlicePool.Get().(*[]Rank)
	return (*p)[:0]
}

// ReleaseCards returns a Rank slice to the pool. The caller must not read
// or write the slice, or any slice sharing its backing array, afterward.
func ReleaseCards(c []Rank) {
	c = c[:0]
	cardSlicePool.Put(&c)
}
