package simengine

import (
	"fmt"

	"github.com/cardcounter/bjsim/betting"
	"github.com/cardcounter/bjsim/policy"
	"github.com/cardcounter/bjsim/round"
	"github.com/cardcounter/bjsim/shoe"
)

// RampConfig is the wire shape of a bet ramp: a list of steps plus the
// optional Wong-out threshold and re-entry policy. NewRamp turns this
// into a validated, sorted betting.Ramp.
type RampConfig struct {
	Steps         []betting.Step       `json:"steps"`
	WongOutBelow  *int                 `json:"wong_out_below"`
	WongOutPolicy betting.WongOutPolicy `json:"wong_out_policy"`
}

// SimulationRequest is the full set of inputs to one simulation run: table
// rules, counting system, index deviations, bet ramp, and run-level
// knobs (bankroll, hand count, worker count, debug logging).
type SimulationRequest struct {
	Rules           round.Rules       `json:"rules"`
	CountingSystem  shoe.CountingSystem `json:"counting_system"`
	Deviations      []policy.Deviation `json:"deviations"`
	BetRamp         RampConfig        `json:"bet_ramp"`
	Bankroll        *float64          `json:"bankroll"`
	UnitSize        float64           `json:"unit_size"`
	Hands           int               `json:"hands"`
	Seed            int64             `json:"seed"`
	Processes       int               `json:"processes"`
	UseMultiprocessing bool           `json:"use_multiprocessing"`
	DebugLog        bool              `json:"debug_log"`
	DebugLogHands   int               `json:"debug_log_hands"`

	DeckEstimationStep          float64       `json:"deck_estimation_step"`
	DeckEstimationRounding      shoe.Rounding `json:"deck_estimation_rounding"`
	UseEstimatedTCForBet        bool          `json:"use_estimated_tc_for_bet"`
	UseEstimatedTCForDeviations bool          `json:"use_estimated_tc_for_deviations"`

	HandsPerHour float64 `json:"hands_per_hour"`
}

// DefaultRequest returns a SimulationRequest with every field at the
// reference engine's published defaults, ready to have individual fields
// overridden by a caller before Validate.
func DefaultRequest() SimulationRequest {
	return SimulationRequest{
		Rules: round.Rules{
			Rules: policy.Rules{
				HitSoft17:        true,
				DoubleAfterSplit: true,
				Surrender:        true,
			},
			Decks:           6,
			DoubleAnyTwo:    true,
			ResplitAces:     true,
			MaxSplits:       3,
			HitSplitAces:    false,
			BlackjackPayout: 1.5,
			DealerPeeks:     true,
			Penetration:     0.75,
		},
		CountingSystem:              shoe.HiLo(),
		UnitSize:                    10.0,
		Hands:                       2_000_000,
		Seed:                        42,
		Processes:                   4,
		UseMultiprocessing:          true,
		DebugLogHands:               20,
		DeckEstimationStep:          1.0,
		DeckEstimationRounding:      shoe.Floor,
		UseEstimatedTCForBet:        true,
		UseEstimatedTCForDeviations: true,
		HandsPerHour:                100,
	}
}

// Validate checks every bound the reference engine's request model
// enforces, collecting all violations instead of stopping at the first.
func (r *SimulationRequest) Validate() error {
	ve := &ValidationError{}

	if r.Rules.Decks < 1 || r.Rules.Decks > 8 {
		ve.add("rules.decks", "must be between 1 and 8")
	}
	if r.Rules.MaxSplits < 0 || r.Rules.MaxSplits > 4 {
		ve.add("rules.max_splits", "must be between 0 and 4")
	}
	if r.Rules.Penetration < 0.1 || r.Rules.Penetration > 0.99 {
		ve.add("rules.penetration", "must be between 0.1 and 0.99")
	}
	if r.Rules.BlackjackPayout <= 1.0 {
		ve.add("rules.blackjack_payout", "must be greater than 1.0")
	}

	if len(r.BetRamp.Steps) == 0 {
		ve.add("bet_ramp.steps", "must have at least one step")
	}
	for _, s := range r.BetRamp.Steps {
		if s.Units <= 0 {
			ve.add("bet_ramp.steps", fmt.Sprintf("units must be > 0 at tc_floor %d", s.TCFloor))
		}
	}
	switch r.BetRamp.WongOutPolicy {
	case "", betting.Anytime, betting.AfterLossOnly, betting.AfterHandOnly:
	default:
		ve.add("bet_ramp.wong_out_policy", "must be one of anytime, after_loss_only, after_hand_only")
	}

	if r.Hands < 100 {
		ve.add("hands", "must be >= 100")
	}
	if r.Processes < 1 || r.Processes > 64 {
		ve.add("processes", "must be between 1 and 64")
	}
	if r.DebugLogHands < 1 || r.DebugLogHands > 500 {
		ve.add("debug_log_hands", "must be between 1 and 500")
	}
	if r.HandsPerHour <= 0 {
		ve.add("hands_per_hour", "must be > 0")
	}
	switch r.DeckEstimationRounding {
	case "", shoe.Nearest, shoe.Floor, shoe.Ceil:
	default:
		ve.add("deck_estimation_rounding", "must be one of nearest, floor, ceil")
	}
	if r.UnitSize <= 0 {
		ve.add("unit_size", "must be > 0")
	}
	if r.Bankroll != nil && *r.Bankroll < 0 {
		ve.add("bankroll", "must be >= 0")
	}

	for _, d := range r.Deviations {
		if d.HandKey == "" {
			ve.add("deviations", "hand_key must not be empty")
		}
	}

	return ve.nilIfEmpty()
}

// buildRamp validates and constructs the betting.Ramp this request's
// BetRamp config describes.
func (r *SimulationRequest) buildRamp() (*betting.Ramp, error) {
	return betting.NewRamp(r.BetRamp.Steps, r.BetRamp.WongOutBelow, r.BetRamp.WongOutPolicy)
}
