package simengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScenario() SimulationRequest {
	req := DefaultScenario()
	req.Rules.Decks = 1
	req.Rules.Penetration = 0.75
	req.Seed = 3
	req.UnitSize = 5
	req.Hands = 200
	req.UseMultiprocessing = false
	return req
}

func TestRunSeedScenarioMatchesPublishedExpectations(t *testing.T) {
	req := seedScenario()
	result, err := Run(context.Background(), &req, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 200, result.RoundsPlayed)
	assert.NotEmpty(t, result.TCHistogram)
	assert.NotEmpty(t, result.TCHistogramEst)
	require.NotNil(t, result.HoursPlayed)
	assert.Greater(t, *result.HoursPlayed, 0.0)
	require.NotNil(t, result.AvgInitialBet)
	assert.Greater(t, *result.AvgInitialBet, 0.0)
}

func TestRunRejectsInvalidRequest(t *testing.T) {
	req := seedScenario()
	req.Hands = 1
	_, err := Run(context.Background(), &req, nil)
	require.Error(t, err)
}

func TestRunWithBankrollPopulatesRiskOfRuin(t *testing.T) {
	req := seedScenario()
	bankroll := 5000.0
	req.Bankroll = &bankroll

	result, err := Run(context.Background(), &req, nil)
	require.NoError(t, err)
	require.NotNil(t, result.RiskOfRuin)
	require.NotNil(t, result.RoR)
}

func TestRunReportsProgressAtLeastOnce(t *testing.T) {
	req := seedScenario()
	calls := 0
	_, err := Run(context.Background(), &req, func(done, total int, profitSum, sqProfitSum, betSum float64) {
		calls++
		assert.LessOrEqual(t, done, total)
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 1)
}

func TestRunHonorsCancelledContext(t *testing.T) {
	req := seedScenario()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, &req, nil)
	require.NoError(t, err)
	assert.Equal(t, "true", result.Meta["was_cancelled"])
	assert.Less(t, result.RoundsPlayed, int64(200))
}

func TestRunZeroRoundsReturnsZeroResult(t *testing.T) {
	req := seedScenario()
	below := 99
	req.BetRamp.WongOutBelow = &below

	result, err := Run(context.Background(), &req, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.RoundsPlayed)
	assert.Equal(t, 0.0, result.EVPer100)
	assert.NotNil(t, result.TCHistogram)
}
