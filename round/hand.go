package round

import "github.com/cardcounter/bjsim/shoe"

// HandState is one hand in a (possibly split) round, queued for play.
type HandState struct {
	Cards       []shoe.Rank
	Bet         float64
	SplitDepth  int
	IsSplitAces bool
	CanDouble   bool
}

// Finished is a hand that has stopped taking actions, retained until the
// dealer plays out and all finished hands are resolved against it.
type Finished struct {
	Cards       []shoe.Rank
	Bet         float64
	Surrendered bool
	Doubled     bool
	Bust        bool
}

// queue is a FIFO of HandState pointers that supports pushing two new
// hands onto the front (the split case: both child hands must be fully
// played out, in order, before continuing to whatever hand followed the
// parent in the queue).
type queue struct {
	hands []*HandState
}

func (q *queue) empty() bool { return len(q.hands) == 0 }

func (q *queue) popFront() *HandState {
	h := q.hands[0]
	q.hands = q.hands[1:]
	return h
}

func (q *queue) pushFrontPair(left, right *HandState) {
	q.hands = append([]*HandState{left, right}, q.hands...)
}
