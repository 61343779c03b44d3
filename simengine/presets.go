package simengine

import (
	"github.com/cardcounter/bjsim/betting"
	"github.com/cardcounter/bjsim/policy"
)

// Illustrious18Fab4 is a common Illustrious 18 + Fab 4 index-deviation
// subset, usable as a SimulationRequest.Deviations starter set.
func Illustrious18Fab4() []policy.Deviation {
	return []policy.Deviation{
		{HandKey: "16vT", TCFloor: 0, Action: policy.Stand},
		{HandKey: "15vT", TCFloor: 4, Action: policy.Stand},
		{HandKey: "10vT", TCFloor: 4, Action: policy.Double},
		{HandKey: "12v3", TCFloor: 2, Action: policy.Stand},
		{HandKey: "12v2", TCFloor: 3, Action: policy.Stand},
		{HandKey: "12v4", TCFloor: 0, Action: policy.Stand},
		{HandKey: "12v5", TCFloor: -2, Action: policy.Stand},
		{HandKey: "12v6", TCFloor: -1, Action: policy.Stand},
		{HandKey: "9v2", TCFloor: 1, Action: policy.Double},
		{HandKey: "9v7", TCFloor: 3, Action: policy.Double},
		{HandKey: "10vA", TCFloor: 4, Action: policy.Double},
		{HandKey: "11vA", TCFloor: 1, Action: policy.Double},
		{HandKey: "16v9", TCFloor: 5, Action: policy.Stand},
		{HandKey: "13v2", TCFloor: -1, Action: policy.Stand},
		{HandKey: "13v3", TCFloor: -2, Action: policy.Stand},
		{HandKey: "15v9", TCFloor: 5, Action: policy.Stand},
		{HandKey: "insurance", TCFloor: 3, Action: policy.Insurance},
		{HandKey: "15vT_surrender", TCFloor: 0, Action: policy.Surrender},
		{HandKey: "15v9_surrender", TCFloor: 2, Action: policy.Surrender},
		{HandKey: "15vA_surrender", TCFloor: 1, Action: policy.Surrender},
		{HandKey: "14vT_surrender", TCFloor: 3, Action: policy.Surrender},
	}
}

// StarterRamp is a simple 1-to-12-unit spread with a Wong-out floor at
// true count -2, usable as a SimulationRequest.BetRamp starter config.
func StarterRamp() RampConfig {
	wongBelow := -2
	return RampConfig{
		Steps: []betting.Step{
			{TCFloor: -1, Units: 1},
			{TCFloor: 0, Units: 2},
			{TCFloor: 1, Units: 4},
			{TCFloor: 2, Units: 6},
			{TCFloor: 3, Units: 8},
			{TCFloor: 4, Units: 10},
			{TCFloor: 5, Units: 12},
		},
		WongOutBelow:  &wongBelow,
		WongOutPolicy: betting.Anytime,
	}
}

// DefaultScenario returns a ready-to-run request: default rules, Hi-Lo
// counting, the Illustrious 18 + Fab 4 deviations, and the starter ramp.
func DefaultScenario() SimulationRequest {
	req := DefaultRequest()
	req.Deviations = Illustrious18Fab4()
	req.BetRamp = StarterRamp()
	return req
}
