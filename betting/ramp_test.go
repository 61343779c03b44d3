package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRampSortsAndValidates(t *testing.T) {
	r, err := NewRamp([]Step{
		{TCFloor: 2, Units: 2},
		{TCFloor: -10, Units: 1},
		{TCFloor: 5, Units: 4},
	}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, -10, r.Steps[0].TCFloor)
	assert.Equal(t, 2, r.Steps[1].TCFloor)
	assert.Equal(t, 5, r.Steps[2].TCFloor)
	assert.Equal(t, Anytime, r.WongOutPolicy)
}

func TestNewRampRejectsDuplicateFloor(t *testing.T) {
	_, err := NewRamp([]Step{{TCFloor: 1, Units: 1}, {TCFloor: 1, Units: 2}}, nil, Anytime)
	assert.Error(t, err)
}

func TestNewRampRejectsNonPositiveUnits(t *testing.T) {
	_, err := NewRamp([]Step{{TCFloor: 1, Units: 0}}, nil, Anytime)
	assert.Error(t, err)
}

func TestChooseBetSelectsHighestFloorBelowCount(t *testing.T) {
	r, err := NewRamp([]Step{
		{TCFloor: -10, Units: 1},
		{TCFloor: 1, Units: 2},
		{TCFloor: 3, Units: 4},
		{TCFloor: 5, Units: 8},
	}, nil, Anytime)
	require.NoError(t, err)

	assert.Equal(t, 1.0, r.ChooseBet(-5, 1))
	assert.Equal(t, 2.0, r.ChooseBet(1.9, 1))
	assert.Equal(t, 4.0, r.ChooseBet(4.99, 1))
	assert.Equal(t, 8.0, r.ChooseBet(5, 1))
	assert.Equal(t, 16.0, r.ChooseBet(9, 2))
}

func TestChooseBetFallsBackToFirstStepBelowAllFloors(t *testing.T) {
	r, err := NewRamp([]Step{{TCFloor: 2, Units: 3}}, nil, Anytime)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.ChooseBet(-20, 1))
}

func TestWongOutAnytimeEntersAndExitsImmediately(t *testing.T) {
	below := 1
	r, err := NewRamp([]Step{{TCFloor: -10, Units: 1}}, &below, Anytime)
	require.NoError(t, err)

	var w WongOutState
	assert.True(t, w.ShouldSkip(r, 0, false, false))
	assert.True(t, w.ShouldSkip(r, 0, false, false))
	assert.False(t, w.ShouldSkip(r, 1, false, false))
}

func TestWongOutAfterLossOnlyRequiresALoss(t *testing.T) {
	below := 1
	r, err := NewRamp([]Step{{TCFloor: -10, Units: 1}}, &below, AfterLossOnly)
	require.NoError(t, err)

	var w WongOutState
	assert.False(t, w.ShouldSkip(r, 0, false, true))
	assert.True(t, w.ShouldSkip(r, 0, true, true))
}

func TestWongOutAfterHandOnlyRequiresAPlayedRound(t *testing.T) {
	below := 1
	r, err := NewRamp([]Step{{TCFloor: -10, Units: 1}}, &below, AfterHandOnly)
	require.NoError(t, err)

	var w WongOutState
	assert.False(t, w.ShouldSkip(r, 0, false, false))
	assert.True(t, w.ShouldSkip(r, 0, false, true))
}

func TestWongOutNoThresholdNeverSkips(t *testing.T) {
	r, err := NewRamp([]Step{{TCFloor: -10, Units: 1}}, nil, Anytime)
	require.NoError(t, err)
	var w WongOutState
	assert.False(t, w.ShouldSkip(r, -99, false, false))
}
