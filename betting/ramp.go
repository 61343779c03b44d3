// Package betting implements bet-ramp sizing and the Wong-out
// skip/re-entry policy: true-count-indexed bet sizing plus a state
// machine for sitting out when the count drops below a threshold.
package betting

import (
	"fmt"
	"math"
	"sort"
)

// Step is one ramp entry: at or above TCFloor, bet Units*unitSize.
type Step struct {
	TCFloor int     `json:"tc_floor"`
	Units   float64 `json:"units"`
}

// WongOutPolicy controls when a player re-enters the wonged-out state.
type WongOutPolicy string

const (
	Anytime       WongOutPolicy = "anytime"
	AfterLossOnly WongOutPolicy = "after_loss_only"
	AfterHandOnly WongOutPolicy = "after_hand_only"
)

// Ramp is an ordered, deduplicated bet ramp plus optional Wong-out config.
type Ramp struct {
	Steps         []Step
	WongOutBelow  *int
	WongOutPolicy WongOutPolicy
}

// NewRamp sorts steps ascending by TCFloor and rejects duplicate floors or
// non-positive unit sizes.
func NewRamp(steps []Step, wongOutBelow *int, policy WongOutPolicy) (*Ramp, error) {
	sorted := append([]Step(nil), steps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TCFloor < sorted[j].TCFloor })
	seen := make(map[int]bool, len(sorted))
	for _, s := range sorted {
		if seen[s.TCFloor] {
			return nil, fmt.Errorf("betting: duplicate tc_floor %d in bet ramp", s.TCFloor)
		}
		if s.Units <= 0 {
			return nil, fmt.Errorf("betting: ramp units must be > 0, got %v at tc_floor %d", s.Units, s.TCFloor)
		}
		seen[s.TCFloor] = true
	}
	if len(sorted) == 0 {
		return nil, fmt.Errorf("betting: ramp must have at least one step")
	}
	if policy == "" {
		policy = Anytime
	}
	return &Ramp{Steps: sorted, WongOutBelow: wongOutBelow, WongOutPolicy: policy}, nil
}

// ChooseBet walks the ramp in ascending tc_floor order and selects the last
// step whose TCFloor <= floor(trueCount); falls back to the first step
// when the count is below every floor.
func (r *Ramp) ChooseBet(trueCount float64, unitSize float64) float64 {
	floorTC := int(math.Floor(trueCount))
	selected := r.Steps[0]
	found := false
	for _, s := range r.Steps {
		if floorTC >= s.TCFloor {
			selected = s
			found = true
		} else {
			break
		}
	}
	_ = found
	return selected.Units * unitSize
}

// WongOutState tracks whether the player is currently skipping rounds
// below WongOutBelow, and re-applies the configured re-entry policy.
type WongOutState struct {
	wonged bool
}

// ShouldSkip updates and returns the wonged-out state for the current
// round given the count, the prior round's outcome, and whether the
// previous round was actually played. Exits wonged state immediately once
// the count recovers; policy only governs *entering* the skip state.
func (w *WongOutState) ShouldSkip(ramp *Ramp, trueCount float64, lastRoundWasLoss bool, lastRoundPlayed bool) bool {
	if ramp.WongOutBelow == nil {
		return false
	}
	floorTC := int(math.Floor(trueCount))
	if floorTC >= *ramp.WongOutBelow {
		w.wonged = false
		return false
	}
	if !w.wonged {
		switch ramp.WongOutPolicy {
		case AfterLossOnly:
			w.wonged = lastRoundWasLoss
		case AfterHandOnly:
			w.wonged = lastRoundPlayed
		default:
			w.wonged = true
		}
	}
	return w.wonged
}
