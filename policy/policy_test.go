package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardcounter/bjsim/shoe"
)

func TestPairStrategyBasic(t *testing.T) {
	r := Rules{DoubleAfterSplit: true}
	assert.Equal(t, Split, PairStrategyAction(shoe.Eight, shoe.Ten, r))
	assert.Equal(t, Stand, PairStrategyAction(shoe.Ten, shoe.Six, r))
	assert.Equal(t, Split, PairStrategyAction(shoe.Nine, shoe.Seven, r))
}

func TestBasicStrategySoftA7(t *testing.T) {
	h17 := Rules{HitSoft17: true}
	s17 := Rules{HitSoft17: false}
	hand := []shoe.Rank{shoe.Ace, shoe.Seven}
	assert.Equal(t, DoubleElseStand, BasicStrategyAction(hand, shoe.Two, h17))
	assert.Equal(t, Stand, BasicStrategyAction(hand, shoe.Two, s17))
}

func TestBasicStrategyHard11vA(t *testing.T) {
	hand := []shoe.Rank{shoe.Five, shoe.Six}
	h17 := Rules{HitSoft17: true}
	s17 := Rules{HitSoft17: false}
	assert.Equal(t, DoubleElseHit, BasicStrategyAction(hand, shoe.Ace, h17))
	assert.Equal(t, Hit, BasicStrategyAction(hand, shoe.Ace, s17))
}

func TestHandValuePermutationInvariant(t *testing.T) {
	a := []shoe.Rank{shoe.Ace, shoe.Six, shoe.Five}
	b := []shoe.Rank{shoe.Five, shoe.Ace, shoe.Six}
	ta, sa := HandValue(a)
	tb, sb := HandValue(b)
	assert.Equal(t, ta, tb)
	assert.Equal(t, sa, sb)
	assert.Equal(t, 12, ta)
	assert.False(t, sa)
}

func TestDeviationRightStepped(t *testing.T) {
	table := NewDeviationTable([]Deviation{
		{HandKey: "16vT", TCFloor: 0, Action: Stand},
		{HandKey: "16vT", TCFloor: 3, Action: Hit},
	})
	assert.Equal(t, Stand, table.Apply("16vT", 1.9))
	assert.Equal(t, Hit, table.Apply("16vT", 3.0))
	assert.Equal(t, None, table.Apply("16vT", -1))
}

func TestDeviationDoubleDowngradedWithoutCanDouble(t *testing.T) {
	table := NewDeviationTable([]Deviation{{HandKey: "10vT", TCFloor: 4, Action: Double}})
	action := ChooseAction([]shoe.Rank{shoe.Six, shoe.Four}, shoe.Ten, 5, table, Rules{}, false)
	assert.Equal(t, Hit, action)
}

func TestChooseActionFallsThroughToBasicStrategy(t *testing.T) {
	table := NewDeviationTable(nil)
	action := ChooseAction([]shoe.Rank{shoe.Ten, shoe.Seven}, shoe.Two, 0, table, Rules{}, true)
	assert.Equal(t, Stand, action)
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack([]shoe.Rank{shoe.Ace, shoe.King}))
	assert.False(t, IsBlackjack([]shoe.Rank{shoe.Ace, shoe.Six, shoe.Four}))
	assert.False(t, IsBlackjack([]shoe.Rank{shoe.Ten, shoe.Nine}))
}
