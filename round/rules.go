package round

import "github.com/cardcounter/bjsim/policy"

// Rules is the table ruleset the round machine consults, embedding the
// subset the policy package needs plus the fields only round resolution
// and split handling use.
type Rules struct {
	policy.Rules

	Decks           int     `json:"decks"`
	DoubleAnyTwo    bool    `json:"double_any_two"`
	ResplitAces     bool    `json:"resplit_aces"`
	MaxSplits       int     `json:"max_splits"`
	HitSplitAces    bool    `json:"hit_split_aces"`
	BlackjackPayout float64 `json:"blackjack_payout"`
	// DealerPeeks is carried through for parity with the upstream ruleset
	// but isn't consulted here: a Monte Carlo round resolves dealer
	// blackjack unconditionally, so peek timing has no effect on payouts.
	DealerPeeks bool    `json:"dealer_peeks"`
	Penetration float64 `json:"penetration"`
}
