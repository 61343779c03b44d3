// Package policy implements the three-layer blackjack decision policy:
// pair-strategy, index deviations, and basic strategy, plus hand-value
// arithmetic shared by all three.
package policy

import (
	"strconv"

	"github.com/cardcounter/bjsim/shoe"
)

// HandValue computes (total, soft) for a set of ranks: sum with aces as 11,
// then repeatedly demote an ace to 1 while the total exceeds 21. soft is
// true iff an ace still counts as 11 once the loop stops.
func HandValue(cards []shoe.Rank) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c == shoe.Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	soft = aces > 0 && total <= 21
	return total, soft
}

// IsBlackjack reports whether a two-card hand is a natural (ace + ten-value).
func IsBlackjack(cards []shoe.Rank) bool {
	if len(cards) != 2 {
		return false
	}
	total, soft := HandValue(cards)
	return total == 21 && soft
}

// HandKey builds the canonical deviation/strategy lookup key for a hand
// against a dealer upcard, e.g. "16vT", "18sv6".
func HandKey(cards []shoe.Rank, dealerUp shoe.Rank) string {
	total, soft := HandValue(cards)
	suffix := ""
	if soft {
		suffix = "s"
	}
	return strconv.Itoa(total) + suffix + "v" + dealerUp.UpcardKey()
}
