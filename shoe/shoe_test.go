package shoe

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeHasExactComposition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := New(2, 0.75, HiLo().Tags, rng)

	counts := map[Rank]int{}
	for _, c := range s.cards {
		counts[c]++
	}
	for _, r := range Ranks {
		assert.Equal(t, 8, counts[r], "rank %s should appear 4*decks times", r)
	}
	assert.Equal(t, 0, s.RunningCount())
	assert.Equal(t, 104, len(s.cards))
}

func TestDrawUpdatesRunningCountByTag(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New(1, 0.9, HiLo().Tags, rng)

	sum := 0
	for i := 0; i < 20; i++ {
		r := s.Draw()
		sum += HiLo().Tags[r]
	}
	assert.Equal(t, sum, s.RunningCount())
}

func TestReshuffleAtCutCardResetsCount(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	// Single deck, tiny penetration forces an early reshuffle.
	s := New(1, 0.12, HiLo().Tags, rng)
	before := s.cutCard
	require.Greater(t, before, 0)

	for i := 0; i < before; i++ {
		s.Draw()
	}
	// Next draw must trigger a reshuffle.
	r := s.Draw()
	assert.LessOrEqual(t, s.pointer, len(s.cards))
	assert.Equal(t, 1, s.pointer)
	assert.Equal(t, HiLo().Tags[r], s.RunningCount())
}

func TestEstimateDecks(t *testing.T) {
	assert.Equal(t, 2.0, EstimateDecks(60, 1.0, Ceil))
	assert.Equal(t, 1.0, EstimateDecks(60, 0.5, Nearest))
	assert.InDelta(t, 60.0/52.0, EstimateDecks(60, 0, Nearest), 1e-9)
}

func TestRemainingDecksFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := New(1, 0.99, HiLo().Tags, rng)
	for s.pointer < len(s.cards)-2 {
		s.Draw()
	}
	assert.GreaterOrEqual(t, s.RemainingDecks(), 0.25)
}

func TestRankTagTableMarshalsWithLabelKeys(t *testing.T) {
	b, err := json.Marshal(HiLo().Tags)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"A":-1`)
	assert.Contains(t, string(b), `"T":-1`)

	var roundTrip map[Rank]int
	require.NoError(t, json.Unmarshal(b, &roundTrip))
	assert.Equal(t, HiLo().Tags, roundTrip)
}
