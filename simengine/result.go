package simengine

import (
	"fmt"

	"github.com/cardcounter/bjsim/ror"
	"github.com/cardcounter/bjsim/round"
	"github.com/cardcounter/bjsim/stats"
)

// SimulationResult is everything a finished run reports: the derived
// profit/variance metrics, the risk-of-ruin breakdown (when a bankroll
// was supplied), per-true-count-bucket detail, and optional debug traces.
type SimulationResult struct {
	EVPer100        float64 `json:"ev_per_100"`
	StdevPer100     float64 `json:"stdev_per_100"`
	VariancePerHand float64 `json:"variance_per_hand"`
	DI              float64 `json:"di"`
	Score           float64 `json:"score"`
	N0Hands         float64 `json:"n0_hands"`

	RoR *float64 `json:"ror"`

	AvgInitialBet      *float64 `json:"avg_initial_bet"`
	AvgInitialBetUnits *float64 `json:"avg_initial_bet_units"`

	TCHistogram    map[int]int64        `json:"tc_histogram"`
	TCHistogramEst map[int]int64        `json:"tc_histogram_est"`
	TCTable        []stats.TcTableEntry `json:"tc_table"`

	Meta map[string]string `json:"meta"`

	HoursPlayed  *float64      `json:"hours_played"`
	DebugHands   []round.Trace `json:"debug_hands,omitempty"`
	RoundsPlayed int64         `json:"rounds_played"`

	RiskOfRuin *ror.Result `json:"risk_of_ruin,omitempty"`
}

// zeroResult is returned when a request produced no played rounds: every
// rate/variance metric is zero rather than an error, since an all-wonged
// run (an exhausted shoe before a single hand clears the bet ramp's
// floor, or an adversarial Wong-out config) is a valid, if useless,
// outcome rather than a failure. Cancellation still has to be visible in
// Meta even when nothing was played.
func zeroResult(wasCancelled bool) *SimulationResult {
	note := "no hands played"
	if wasCancelled {
		note = "cancelled"
	}
	return &SimulationResult{
		TCHistogram:    map[int]int64{},
		TCHistogramEst: map[int]int64{},
		TCTable:        []stats.TcTableEntry{},
		Meta: map[string]string{
			"rounds_played": "0",
			"note":          note,
			"was_cancelled": fmt.Sprintf("%t", wasCancelled),
		},
	}
}

// defaultTripHours is the session length risk-of-ruin detail is computed
// over when a bankroll is supplied, matching the reference engine's
// fixed 4-hour default trip.
const defaultTripHours = 4.0

// buildResult assembles the final SimulationResult from the accumulated
// stats.Result, the request's bankroll/hours settings, and any debug
// traces collected along the way.
func buildResult(req *SimulationRequest, sr stats.Result, wasCancelled bool, multiProcess bool, traces []round.Trace) *SimulationResult {
	if sr.RoundsPlayed == 0 {
		return zeroResult(wasCancelled)
	}

	evPerHand := sr.EVPer100 / 100
	simpleRoR := ror.Simple(evPerHand, sr.VariancePerHand, bankrollOrZero(req.Bankroll))
	res := &SimulationResult{
		EVPer100:        sr.EVPer100,
		StdevPer100:     sr.StdevPer100,
		VariancePerHand: sr.VariancePerHand,
		DI:              sr.DI,
		Score:           sr.Score,
		N0Hands:         sr.N0Hands,
		RoR:             &simpleRoR,
		TCHistogram:     sr.TCHistogram,
		TCHistogramEst:  sr.TCHistogramEst,
		TCTable:         sr.TCTable,
		RoundsPlayed:    sr.RoundsPlayed,
	}

	avgBet := sr.TotalInitialBet / float64(sr.RoundsPlayed)
	avgUnits := avgBet / req.UnitSize
	res.AvgInitialBet = &avgBet
	res.AvgInitialBetUnits = &avgUnits

	var hoursPlayed float64
	if req.HandsPerHour > 0 {
		hoursPlayed = float64(sr.RoundsPlayed) / req.HandsPerHour
		res.HoursPlayed = &hoursPlayed
	}

	if req.Bankroll != nil {
		tripHours := defaultTripHours
		detail := ror.Calculate(evPerHand, sr.VariancePerHand, *req.Bankroll, sr.N0Hands, &tripHours, req.HandsPerHour)
		res.RiskOfRuin = &detail
	}

	note := "single-process sim"
	if multiProcess {
		note = "multi-process sim"
	}
	if wasCancelled {
		note = "cancelled"
	}
	res.Meta = map[string]string{
		"rounds_played": fmt.Sprintf("%d", sr.RoundsPlayed),
		"note":          note,
		"was_cancelled": fmt.Sprintf("%t", wasCancelled),
	}

	if req.DebugLog {
		res.DebugHands = traces
	}

	return res
}

func bankrollOrZero(b *float64) float64 {
	if b == nil {
		return 0
	}
	return *b
}
