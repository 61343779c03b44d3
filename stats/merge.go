package stats

// MergeFrom folds another worker's accumulated Aggregator into a,
// independent of how the total rounds were partitioned across workers up
// to floating-point rounding. Global sums are added directly; per-bucket
// Welford state is combined with the parallel-variance merge formula so
// the merged mean/m2 match what a single worker would have accumulated
// had it seen every round in a's then other's order.
func (a *Aggregator) MergeFrom(other *Aggregator) {
	a.totalProfit += other.totalProfit
	a.totalSqProfit += other.totalSqProfit
	a.totalInitialBet += other.totalInitialBet
	a.roundsPlayed += other.roundsPlayed

	for k, v := range other.tcHistogram {
		a.tcHistogram[k] += v
	}
	for k, v := range other.tcHistogramEst {
		a.tcHistogramEst[k] += v
	}

	for k, ob := range other.buckets {
		ab, ok := a.buckets[k]
		if !ok {
			merged := *ob
			a.buckets[k] = &merged
			continue
		}
		mergeBuckets(ab, ob)
	}
}

// mergeBuckets combines two Welford accumulators in place into dst:
// n, mean, and m2 (sum of squared deviations) merge exactly using the
// parallel Chan et al. formula.
func mergeBuckets(dst, src *bucket) {
	dst.nTotal += src.nTotal
	dst.nZero += src.nZero

	if src.nIBA == 0 {
		return
	}
	if dst.nIBA == 0 {
		dst.nIBA = src.nIBA
		dst.mean = src.mean
		dst.m2 = src.m2
		return
	}

	n := dst.nIBA + src.nIBA
	delta := src.mean - dst.mean
	mean := dst.mean + delta*src.nIBA/n
	m2 := dst.m2 + src.m2 + delta*delta*dst.nIBA*src.nIBA/n

	dst.nIBA = n
	dst.mean = mean
	dst.m2 = m2
}
