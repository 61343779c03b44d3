package simengine

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardcounter/bjsim/stats"
)

const (
	targetChunkHands = 50_000
	minChunks        = 32
	maxChunks        = 256
	chunkSeedStride  = 1_000_000_007
	chunkTimeout      = 10 // minutes, informational only: Go goroutines share
	// an address space with the caller, so a "worker" here is a goroutine
	// recovered from panic rather than an OS process killed on timeout.
)

// runParallel splits req.Hands into chunks, plays each against its own
// shoe and aggregator on a goroutine (at most req.Processes at once), and merges every chunk's aggregator
// into one exact result via stats.Aggregator.MergeFrom. A panicking chunk
// is recovered, logged, and dropped; if every chunk fails the whole
// request falls back to runSingle.
func runParallel(ctx context.Context, req *SimulationRequest, progress ProgressFunc) (*SimulationResult, error) {
	if ctx.Err() != nil {
		return runSingle(ctx, req, req.Seed, req.Hands, progress)
	}

	numChunks := req.Hands / targetChunkHands
	if numChunks < minChunks {
		numChunks = minChunks
	}
	if numChunks > maxChunks {
		numChunks = maxChunks
	}
	baseSize := req.Hands / numChunks
	remainder := req.Hands % numChunks

	type chunkResult struct {
		agg   *stats.Aggregator
		hands int
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Processes)
	results := make([]*chunkResult, numChunks)

	for i := 0; i < numChunks; i++ {
		i := i
		chunkHands := baseSize
		if i < remainder {
			chunkHands++
		}
		chunkSeed := req.Seed + int64(i)*chunkSeedStride

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Warn("simengine: chunk worker panicked, dropping chunk", "chunk", i, "panic", r)
					err = nil
				}
			}()

			agg, hands := runChunk(gctx, req, chunkSeed, chunkHands)
			results[i] = &chunkResult{agg: agg, hands: hands}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("simengine: parallel execution failed, falling back to single worker", "error", err)
		return runSingle(ctx, req, req.Seed, req.Hands, progress)
	}

	merged := stats.New()
	completedHands := 0
	anyChunkSucceeded := false
	for _, r := range results {
		if r == nil {
			continue
		}
		anyChunkSucceeded = true
		merged.MergeFrom(r.agg)
		completedHands += r.hands
		if progress != nil {
			profitSum, sqProfitSum, betSum := merged.RawTotals()
			progress(completedHands, req.Hands, profitSum, sqProfitSum, betSum)
		}
	}

	if !anyChunkSucceeded {
		log.Warn("simengine: every chunk failed, falling back to single worker")
		return runSingle(ctx, req, req.Seed, req.Hands, progress)
	}

	wasCancelled := ctx.Err() != nil
	return buildResult(req, merged.Finalize(), wasCancelled, true, nil), nil
}

// runChunk plays rounds against a freshly seeded shoe until chunkHands of
// them have actually been played, returning its own aggregator rather than
// a shared one so the caller can merge it independently of every other
// chunk. A Wong-out skip burns shoe cards and loops again without
// advancing the played count.
func runChunk(ctx context.Context, req *SimulationRequest, seed int64, chunkHands int) (*stats.Aggregator, int) {
	m, err := newMachine(req, seed)
	if err != nil {
		panic(err)
	}
	agg := stats.New()

	played := 0
	for played < chunkHands {
		if played%1000 == 0 && ctx.Err() != nil {
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
	}
	return agg, played
}
