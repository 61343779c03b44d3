package policy

import "github.com/cardcounter/bjsim/shoe"

// Rules is the subset of table rules the strategy/pair functions consult.
// The round package's Rules embeds these plus the fields only the round
// state machine needs (decks, penetration, payouts, ...).
type Rules struct {
	HitSoft17        bool `json:"hit_soft_17"`
	DoubleAfterSplit bool `json:"double_after_split"`
	Surrender        bool `json:"surrender"`
}

// BasicStrategyAction returns the basic-strategy action for a player hand
// against a dealer upcard, ignoring count and composition.
func BasicStrategyAction(cards []shoe.Rank, dealerUp shoe.Rank, rules Rules) Action {
	total, soft := HandValue(cards)
	up := dealerUp.UpcardKey()

	if rules.Surrender {
		if total == 16 && (up == "9" || up == "T" || up == "A") {
			return Surrender
		}
		if total == 15 && up == "T" {
			return Surrender
		}
	}

	if !soft {
		switch {
		case total >= 17:
			return Stand
		case total >= 13 && total <= 16:
			return standVs(up, "2", "3", "4", "5", "6")
		case total == 12:
			return standVs(up, "4", "5", "6")
		case total == 11:
			if up == "A" && !rules.HitSoft17 {
				return Hit
			}
			return DoubleElseHit
		case total == 10:
			if up == "T" || up == "A" {
				return Hit
			}
			return DoubleElseHit
		case total == 9:
			if up == "2" && rules.HitSoft17 {
				return DoubleElseHit
			}
			if up == "3" || up == "4" || up == "5" || up == "6" {
				return DoubleElseHit
			}
			return Hit
		default:
			return Hit
		}
	}

	// Soft totals.
	switch {
	case total >= 19:
		return Stand
	case total == 18:
		switch up {
		case "2":
			if rules.HitSoft17 {
				return DoubleElseStand
			}
			return Stand
		case "3", "4", "5", "6":
			return DoubleElseStand
		case "7", "8":
			return Stand
		default:
			return Hit
		}
	case total == 17:
		return doubleVs(up, "3", "4", "5", "6")
	case total == 15 || total == 16:
		return doubleVs(up, "4", "5", "6")
	case total == 13 || total == 14:
		return doubleVs(up, "5", "6")
	default:
		return Hit
	}
}

func standVs(up string, hits ...string) Action {
	for _, h := range hits {
		if up == h {
			return Stand
		}
	}
	return Hit
}

func doubleVs(up string, targets ...string) Action {
	for _, tgt := range targets {
		if up == tgt {
			return DoubleElseHit
		}
	}
	return Hit
}

// PairStrategyAction returns the pair-splitting action for a pair of the
// given rank against a dealer upcard, respecting double-after-split for
// the ranks whose split decision depends on it.
func PairStrategyAction(rank shoe.Rank, dealerUp shoe.Rank, rules Rules) Action {
	up := dealerUp.UpcardKey()
	switch rank {
	case shoe.Ace:
		return Split
	case shoe.Ten, shoe.Jack, shoe.Queen, shoe.King:
		return Stand
	case shoe.Nine:
		if up == "7" || up == "T" || up == "A" {
			return Stand
		}
		return Split
	case shoe.Eight:
		return Split
	case shoe.Seven:
		return splitVs(up, "2", "3", "4", "5", "6", "7")
	case shoe.Six:
		if rules.DoubleAfterSplit {
			return splitVs(up, "2", "3", "4", "5", "6")
		}
		return splitVs(up, "3", "4", "5", "6")
	case shoe.Five:
		return doubleVs(up, "2", "3", "4", "5", "6", "7", "8", "9")
	case shoe.Four:
		if rules.DoubleAfterSplit {
			return splitVs(up, "5", "6")
		}
		return Hit
	case shoe.Two, shoe.Three:
		if rules.DoubleAfterSplit {
			return splitVs(up, "2", "3", "4", "5", "6", "7")
		}
		return splitVs(up, "4", "5", "6", "7")
	default:
		return Hit
	}
}

func splitVs(up string, targets ...string) Action {
	for _, tgt := range targets {
		if up == tgt {
			return Split
		}
	}
	return Hit
}
