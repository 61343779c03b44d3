// Package stats accumulates round-by-round outcomes into the streaming
// moments and per-true-count-bucket statistics a simulation reports,
// following the accumulator-with-derived-metric-methods shape of
// lox-pokerforbots' cmd/simulate Statistics type, generalized from a
// single running mean/variance to a global accumulator plus one Welford
// accumulator per true-count bucket.
package stats

import (
	"math"
	"sort"
)

// bucket is the per-true-count-floor accumulator: n_total (every round,
// including wonged-out ones), n_zero (wonged-out rounds), and a Welford
// mean/m2 over profit-per-unit-bet for rounds with a positive bet (n_iba).
type bucket struct {
	nTotal float64
	nIBA   float64
	nZero  float64
	mean   float64
	m2     float64
}

// Aggregator is the streaming accumulator one worker (or a merge of many
// workers' results) feeds round outcomes into.
type Aggregator struct {
	totalProfit     float64
	totalSqProfit   float64
	totalInitialBet float64
	roundsPlayed    int64

	tcHistogram    map[int]int64
	tcHistogramEst map[int]int64
	buckets        map[int]*bucket
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		tcHistogram:    make(map[int]int64),
		tcHistogramEst: make(map[int]int64),
		buckets:        make(map[int]*bucket),
	}
}

func (a *Aggregator) bucket(tcBucket int) *bucket {
	b, ok := a.buckets[tcBucket]
	if !ok {
		b = &bucket{}
		a.buckets[tcBucket] = b
	}
	return b
}

// ObserveTrueCount records one round's raw/estimated true-count floor into
// the histograms, independent of whether the round was wonged out.
func (a *Aggregator) ObserveTrueCount(rawFloor, estFloor int) {
	a.tcHistogram[rawFloor]++
	a.tcHistogramEst[estFloor]++
}

// ObserveBucketTotal records that a round was evaluated in tcBucket,
// whether or not it was actually played.
func (a *Aggregator) ObserveBucketTotal(tcBucket int) {
	a.bucket(tcBucket).nTotal++
}

// ObserveWongedOut records a round skipped by the Wong-out policy.
func (a *Aggregator) ObserveWongedOut(tcBucket int) {
	a.bucket(tcBucket).nZero++
}

// ObserveRound records a played round's profit against its initial bet,
// updating the global moments and the bucket's Welford accumulator.
func (a *Aggregator) ObserveRound(tcBucket int, profit, bet float64) {
	a.totalProfit += profit
	a.totalSqProfit += profit * profit
	a.totalInitialBet += bet
	a.roundsPlayed++

	if bet <= 0 {
		return
	}
	b := a.bucket(tcBucket)
	b.nIBA++
	x := profit / bet
	delta := x - b.mean
	b.mean += delta / b.nIBA
	b.m2 += delta * (x - b.mean)
}

// RoundsPlayed is the number of rounds actually dealt (excludes wonged-out
// rounds skipped before the deal).
func (a *Aggregator) RoundsPlayed() int64 { return a.roundsPlayed }

// RawTotals exposes the running sums a progress callback reports
// verbatim, before any derived-metric math is applied.
func (a *Aggregator) RawTotals() (profitSum, sqProfitSum, betSum float64) {
	return a.totalProfit, a.totalSqProfit, a.totalInitialBet
}

// Result is the final set of derived metrics plus the raw accumulators
// needed to report or merge further.
type Result struct {
	EVPer100        float64
	StdevPer100     float64
	VariancePerHand float64
	DI              float64
	Score           float64
	N0Hands         float64
	RoundsPlayed    int64
	TotalInitialBet float64
	TCHistogram     map[int]int64
	TCHistogramEst  map[int]int64
	TCTable         []TcTableEntry
}

// TcTableEntry is one row of the per-true-count-bucket breakdown.
type TcTableEntry struct {
	TC       int
	N        int64
	NIBA     int64
	NZero    int64
	Freq     float64
	EVPct    float64
	EVSEPct  float64
	Variance float64
}

// Finalize derives the reportable metrics from the accumulated moments.
// Returns the zero Result (all fields zero/empty) when no rounds were
// played, matching the "no hands played" short-circuit upstream.
func (a *Aggregator) Finalize() Result {
	if a.roundsPlayed == 0 {
		return Result{TCHistogram: map[int]int64{}, TCHistogramEst: map[int]int64{}}
	}

	n := float64(a.roundsPlayed)
	mean := a.totalProfit / n
	variance := math.Max(a.totalSqProfit/n-mean*mean, 0.0)
	stdev := math.Sqrt(variance)

	evPer100 := mean * 100
	stdevPer100 := stdev * 10
	di := 0.0
	if stdev > 0 {
		di = mean / stdev
	}
	score := 0.0
	if variance > 0 {
		score = 100 * (mean * mean) / variance
	}
	n0 := 0.0
	if mean != 0 {
		n0 = variance / (mean * mean)
	}

	return Result{
		EVPer100:        evPer100,
		StdevPer100:     stdevPer100,
		VariancePerHand: variance,
		DI:              di,
		Score:           score,
		N0Hands:         n0,
		RoundsPlayed:    a.roundsPlayed,
		TotalInitialBet: a.totalInitialBet,
		TCHistogram:     a.tcHistogram,
		TCHistogramEst:  a.tcHistogramEst,
		TCTable:         a.tcTable(),
	}
}

func (a *Aggregator) tcTable() []TcTableEntry {
	var totalObs int64
	for _, b := range a.buckets {
		totalObs += int64(b.nTotal)
	}

	keys := make([]int, 0, len(a.buckets))
	for k := range a.buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	table := make([]TcTableEntry, 0, len(keys))
	for _, k := range keys {
		b := a.buckets[k]
		nTotal := int64(b.nTotal)
		if nTotal <= 0 {
			continue
		}
		nIBA := int64(b.nIBA)
		nZero := int64(b.nZero)

		freq := 0.0
		if totalObs > 0 {
			freq = float64(nTotal) / float64(totalObs)
		}

		meanX, varX, seX := 0.0, 0.0, 0.0
		if nIBA > 0 {
			meanX = b.mean
			varX = math.Max(b.m2/b.nIBA, 0.0)
			seX = math.Sqrt(varX / b.nIBA)
		}

		table = append(table, TcTableEntry{
			TC: k, N: nTotal, NIBA: nIBA, NZero: nZero,
			Freq: freq, EVPct: meanX * 100, EVSEPct: seX * 100, Variance: varX,
		})
	}
	return table
}
