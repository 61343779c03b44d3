package ror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNonPositiveEVGivesCertainRuin(t *testing.T) {
	r := Calculate(-0.01, 100, 10000, 0, nil, 100)
	assert.Equal(t, 1.0, r.SimpleRoR)
	assert.Equal(t, 1.0, r.AdjustedRoR)
	assert.Nil(t, r.RequiredBankroll5Pct)
}

func TestCalculatePositiveEVProducesRequiredBankrolls(t *testing.T) {
	r := Calculate(0.5, 100, 1000, 2.0, nil, 100)
	require.NotNil(t, r.RequiredBankroll5Pct)
	require.NotNil(t, r.RequiredBankroll1Pct)
	assert.Greater(t, *r.RequiredBankroll1Pct, *r.RequiredBankroll5Pct)
}

func TestTripRoRClampsExtremeZ(t *testing.T) {
	hours := 4.0
	// Huge bankroll relative to trip stdev drives z very negative.
	r := Calculate(1.0, 1.0, 1_000_000, 0, &hours, 100)
	require.NotNil(t, r.TripRoR)
	assert.Equal(t, 0.0, *r.TripRoR)
}

func TestTripRoRIsNilWithoutTripHours(t *testing.T) {
	r := Calculate(0.5, 100, 1000, 0, nil, 100)
	assert.Nil(t, r.TripRoR)
}

func TestSimpleMatchesCalculateSimpleRoR(t *testing.T) {
	got := Simple(0.3, 50, 2000)
	r := Calculate(0.3, 50, 2000, 0, nil, 100)
	assert.Equal(t, r.SimpleRoR, got)
}
