// Package simengine is the single entry point callers drive a simulation
// through: request validation, the single-worker round-by-round driver,
// and (in parallel.go) the chunked fan-out driver that merges many
// workers' aggregators into one exact result.
package simengine

import (
	"context"
	"math/rand"

	"github.com/cardcounter/bjsim/policy"
	"github.com/cardcounter/bjsim/round"
	"github.com/cardcounter/bjsim/shoe"
	"github.com/cardcounter/bjsim/stats"
)

// ProgressFunc is invoked periodically as rounds complete, and once more
// at the end, with the running totals accumulated so far.
type ProgressFunc func(done, total int, profitSum, profitSqSum, betSum float64)

// Run validates req and drives it to completion, choosing the parallel
// chunked driver when the request and hand count justify it and falling
// back to a single worker otherwise. ctx cancellation produces a
// well-formed partial result with Meta["was_cancelled"]="true" rather
// than an error.
func Run(ctx context.Context, req *SimulationRequest, progress ProgressFunc) (*SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.UseMultiprocessing && req.Processes > 1 && req.Hands >= 100_000 {
		return runParallel(ctx, req, progress)
	}
	return runSingle(ctx, req, req.Seed, req.Hands, progress)
}

// runSingle plays rounds against one shoe seeded from seed until exactly
// hands of them have actually been played, reporting progress at the
// reference engine's interval and polling ctx for cancellation at its own,
// finer interval. Both intervals, like the loop itself, are keyed off
// played rounds: a Wong-out skip burns shoe cards and loops again without
// advancing either counter.
func runSingle(ctx context.Context, req *SimulationRequest, seed int64, hands int, progress ProgressFunc) (*SimulationResult, error) {
	m, err := newMachine(req, seed)
	if err != nil {
		return nil, err
	}
	agg := stats.New()

	progressInterval := maxInt(hands/50, 10_000)
	cancelInterval := maxInt(hands/100, 1_000)

	wasCancelled := false
	played := 0
	for played < hands {
		if cancelInterval > 0 && played%cancelInterval == 0 && ctx.Err() != nil {
			wasCancelled = true
			break
		}

		out := m.PlayRound()

		agg.ObserveTrueCount(out.RawTCFloor, out.EstTCFloor)
		agg.ObserveBucketTotal(out.TCBucket)
		if !out.Played {
			agg.ObserveWongedOut(out.TCBucket)
			continue
		}

		agg.ObserveRound(out.TCBucket, out.Profit, out.Bet)
		played++

		if progress != nil && played%progressInterval == 0 {
			reportProgress(progress, agg, played, hands)
		}
	}
	if progress != nil {
		reportProgress(progress, agg, played, hands)
	}

	res := buildResult(req, agg.Finalize(), wasCancelled, false, m.Traces)
	return res, nil
}

func reportProgress(progress ProgressFunc, agg *stats.Aggregator, done, total int) {
	profitSum, sqProfitSum, betSum := agg.RawTotals()
	progress(done, total, profitSum, sqProfitSum, betSum)
}

// newMachine builds the shoe, deviation table, and bet ramp a single
// worker needs from a validated request.
func newMachine(req *SimulationRequest, seed int64) (*round.Machine, error) {
	rng := rand.New(rand.NewSource(seed))
	s := shoe.New(req.Rules.Decks, req.Rules.Penetration, req.CountingSystem.Tags, rng)
	ramp, err := req.buildRamp()
	if err != nil {
		return nil, err
	}
	devs := policy.NewDeviationTable(req.Deviations)

	return &round.Machine{
		Shoe:                        s,
		Rules:                       req.Rules,
		Deviations:                  devs,
		Ramp:                        ramp,
		UnitSize:                    req.UnitSize,
		DeckEstimationStep:          req.DeckEstimationStep,
		DeckEstimationRounding:      req.DeckEstimationRounding,
		UseEstimatedTCForBet:        req.UseEstimatedTCForBet,
		UseEstimatedTCForDeviations: req.UseEstimatedTCForDeviations,
		DebugLog:                    req.DebugLog,
		DebugLogHands:               req.DebugLogHands,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
