// Package round implements the per-round blackjack state machine: deal,
// insurance, naturals, the split-aware hand queue, dealer play, and
// resolution of every finished hand against the dealer's final total.
package round

import (
	"math"

	"github.com/cardcounter/bjsim/betting"
	"github.com/cardcounter/bjsim/policy"
	"github.com/cardcounter/bjsim/shoe"
)

// Machine plays successive rounds against one Shoe, carrying the
// Wong-out state and last-round outcome that the bet/skip decision for
// the next round depends on.
type Machine struct {
	Shoe       *shoe.Shoe
	Rules      Rules
	Deviations *policy.DeviationTable
	Ramp       *betting.Ramp
	UnitSize   float64

	DeckEstimationStep          float64
	DeckEstimationRounding      shoe.Rounding
	UseEstimatedTCForBet        bool
	UseEstimatedTCForDeviations bool

	DebugLog      bool
	DebugLogHands int

	wong       betting.WongOutState
	lastResult string
	lastPlayed bool
	Traces     []Trace
}

// Outcome is emitted for every round the machine plays, including
// wonged-out ones, so the caller's aggregator can bucket
// n_total/n_zero/n_iba the same way regardless of whether a hand was
// actually dealt.
type Outcome struct {
	Played      bool
	TCBucket    int
	RawTCFloor  int
	EstTCFloor  int
	Profit      float64
	Bet         float64
}

func (m *Machine) trueCounts() (raw, est float64) {
	return m.Shoe.TrueCountRaw(), m.Shoe.TrueCountEstimated(m.DeckEstimationStep, m.DeckEstimationRounding)
}

// PlayRound plays exactly one round: the Wong-out skip path burns two
// cards and returns Played=false; otherwise it deals, resolves naturals,
// plays the split-aware queue, runs the dealer, and resolves every
// finished hand.
func (m *Machine) PlayRound() Outcome {
	rawTC, estTC := m.trueCounts()
	tcForBet := rawTC
	if m.UseEstimatedTCForBet {
		tcForBet = estTC
	}
	bucket := int(math.Floor(tcForBet))
	rawFloor := int(math.Floor(rawTC))
	estFloor := int(math.Floor(estTC))

	if m.Ramp.WongOutBelow != nil {
		if m.wong.ShouldSkip(m.Ramp, tcForBet, m.lastResult == "loss", m.lastPlayed) {
			m.Shoe.Draw()
			m.Shoe.Draw()
			m.lastPlayed = false
			return Outcome{Played: false, TCBucket: bucket, RawTCFloor: rawFloor, EstTCFloor: estFloor}
		}
	}

	bet := m.Ramp.ChooseBet(tcForBet, m.UnitSize)

	var acquired [][]shoe.Rank
	acquire := func() []shoe.Rank {
		c := shoe.AcquireCards()
		acquired = append(acquired, c)
		return c
	}
	release := func() {
		for _, c := range acquired {
			shoe.ReleaseCards(c)
		}
	}

	playerStart := append(acquire(), m.Shoe.Draw(), m.Shoe.Draw())
	dealer := append(acquire(), m.Shoe.Draw(), m.Shoe.Draw())
	defer release()

	rawTC, estTC = m.trueCounts()
	tcForDev := rawTC
	if m.UseEstimatedTCForDeviations {
		tcForDev = estTC
	}

	insurancePayout := 0.0
	if dealer[0] == shoe.Ace {
		if policy.InsuranceAction(tcForDev, m.Deviations) == policy.Insurance {
			insuranceBet := bet / 2
			if policy.IsBlackjack(dealer) {
				insurancePayout = insuranceBet * 2
			} else {
				insurancePayout = -insuranceBet
			}
		}
	}

	dealerBJ := policy.IsBlackjack(dealer)
	playerBJ := policy.IsBlackjack(playerStart)
	if dealerBJ || playerBJ {
		profit := insurancePayout
		switch {
		case playerBJ && !dealerBJ:
			profit += bet * m.Rules.BlackjackPayout
		case dealerBJ && playerBJ:
			// push, no change
		default:
			profit -= bet
		}
		m.recordResult(profit)
		if m.DebugLog && len(m.Traces) < m.DebugLogHands {
			m.Traces = append(m.Traces, Trace{
				Kind:         "blackjack_resolve",
				Player:       rankStrings(playerStart),
				Dealer:       rankStrings(dealer),
				TrueCount:    rawTC,
				TrueCountEst: estTC,
				Bet:          bet,
				Profit:       profit,
			})
		}
		return Outcome{Played: true, TCBucket: bucket, RawTCFloor: rawFloor, EstTCFloor: estFloor, Profit: profit, Bet: bet}
	}

	q := &queue{hands: []*HandState{{
		Cards:      playerStart,
		Bet:        bet,
		SplitDepth: 0,
		CanDouble:  m.Rules.DoubleAnyTwo,
	}}}
	var finished []Finished

handLoop:
	for !q.empty() {
		hand := q.popFront()
		for {
			rawTC, estTC = m.trueCounts()
			tcForDev = rawTC
			if m.UseEstimatedTCForDeviations {
				tcForDev = estTC
			}

			if len(hand.Cards) == 2 && hand.Cards[0] == hand.Cards[1] &&
				hand.SplitDepth < m.Rules.MaxSplits &&
				(hand.Cards[0] != shoe.Ace || m.Rules.ResplitAces || hand.SplitDepth == 0) {
				if policy.PairStrategyAction(hand.Cards[0], dealer[0], m.Rules.Rules) == policy.Split {
					canDouble := m.Rules.DoubleAnyTwo
					if !m.Rules.DoubleAfterSplit {
						canDouble = false
					}
					left := &HandState{
						Cards:       append(acquire(), hand.Cards[0], m.Shoe.Draw()),
						Bet:         hand.Bet,
						SplitDepth:  hand.SplitDepth + 1,
						IsSplitAces: hand.Cards[0] == shoe.Ace,
						CanDouble:   canDouble,
					}
					right := &HandState{
						Cards:       append(acquire(), hand.Cards[1], m.Shoe.Draw()),
						Bet:         hand.Bet,
						SplitDepth:  hand.SplitDepth + 1,
						IsSplitAces: hand.Cards[1] == shoe.Ace,
						CanDouble:   canDouble,
					}
					q.pushFrontPair(left, right)
					continue handLoop
				}
			}

			{
				action := policy.ChooseAction(hand.Cards, dealer[0], tcForDev, m.Deviations, m.Rules.Rules, hand.CanDouble)

				if action == policy.Surrender && m.Rules.Surrender {
					finished = append(finished, Finished{Cards: hand.Cards, Bet: hand.Bet, Surrendered: true})
					continue handLoop
				}
				if action == policy.Stand {
					finished = append(finished, Finished{Cards: hand.Cards, Bet: hand.Bet})
					continue handLoop
				}
				if action == policy.Double && hand.CanDouble {
					hand.Bet *= 2
					hand.Cards = append(hand.Cards, m.Shoe.Draw())
					total, _ := policy.HandValue(hand.Cards)
					finished = append(finished, Finished{Cards: hand.Cards, Bet: hand.Bet, Doubled: true, Bust: total > 21})
					continue handLoop
				}
				if hand.IsSplitAces && !m.Rules.HitSplitAces {
					finished = append(finished, Finished{Cards: hand.Cards, Bet: hand.Bet})
					continue handLoop
				}
				hand.Cards = append(hand.Cards, m.Shoe.Draw())
				total, _ := policy.HandValue(hand.Cards)
				if total >= 21 {
					finished = append(finished, Finished{Cards: hand.Cards, Bet: hand.Bet, Bust: total > 21})
					continue handLoop
				}
			}
		}
	}

	dealerTotal, dealerSoft := policy.HandValue(dealer)
	for dealerTotal < 17 || (dealerTotal == 17 && dealerSoft && m.Rules.HitSoft17) {
		dealer = append(dealer, m.Shoe.Draw())
		dealerTotal, dealerSoft = policy.HandValue(dealer)
	}

	roundProfit := 0.0
	for _, fh := range finished {
		playerTotal, _ := policy.HandValue(fh.Cards)
		profit := resolveProfit(fh, playerTotal, dealerTotal, insurancePayout)
		roundProfit += profit

		if m.DebugLog && len(m.Traces) < m.DebugLogHands {
			m.Traces = append(m.Traces, Trace{
				Player:       rankStrings(fh.Cards),
				Dealer:       rankStrings(dealer),
				TrueCount:    rawTC,
				TrueCountEst: estTC,
				Bet:          fh.Bet,
				Surrendered:  fh.Surrendered,
				Doubled:      fh.Doubled,
				PlayerTotal:  playerTotal,
				DealerTotal:  dealerTotal,
				Profit:       profit,
			})
		}
	}

	m.recordResult(roundProfit)
	return Outcome{Played: true, TCBucket: bucket, RawTCFloor: rawFloor, EstTCFloor: estFloor, Profit: roundProfit, Bet: bet}
}

func (m *Machine) recordResult(profit float64) {
	switch {
	case profit > 0:
		m.lastResult = "win"
	case profit < 0:
		m.lastResult = "loss"
	default:
		m.lastResult = "push"
	}
	m.lastPlayed = true
}

// resolveProfit computes one finished hand's profit against the dealer's
// final total. insurancePayout is folded in unconditionally per hand: a
// split round that produced multiple finished hands applies the full
// insurance payout to each one rather than once per round.
func resolveProfit(fh Finished, playerTotal, dealerTotal int, insurancePayout float64) float64 {
	switch {
	case fh.Surrendered:
		return -0.5*fh.Bet + insurancePayout
	case fh.Bust:
		return -fh.Bet + insurancePayout
	case dealerTotal > 21:
		return fh.Bet + insurancePayout
	case playerTotal > dealerTotal:
		return fh.Bet + insurancePayout
	case playerTotal < dealerTotal:
		return -fh.Bet + insurancePayout
	default:
		return insurancePayout
	}
}

func rankStrings(cards []shoe.Rank) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
