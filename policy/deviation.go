package policy

import (
	"math"
	"sort"

	"github.com/cardcounter/bjsim/shoe"
)

// Deviation is one index-play override: at or above TCFloor, Action
// replaces whatever basic/pair strategy would otherwise select for
// HandKey.
type Deviation struct {
	HandKey string `json:"hand_key"`
	TCFloor int    `json:"tc_floor"`
	Action  Action `json:"action"`
}

// DeviationTable is a HandKey-indexed, TCFloor-ascending-sorted index built
// once per simulation request.
type DeviationTable struct {
	byKey map[string][]Deviation
}

// NewDeviationTable indexes and sorts a flat deviation list: group by
// hand key, then sort each group ascending by TCFloor.
func NewDeviationTable(devs []Deviation) *DeviationTable {
	t := &DeviationTable{byKey: make(map[string][]Deviation)}
	for _, d := range devs {
		t.byKey[d.HandKey] = append(t.byKey[d.HandKey], d)
	}
	for k := range t.byKey {
		list := t.byKey[k]
		sort.Slice(list, func(i, j int) bool { return list[i].TCFloor < list[j].TCFloor })
		t.byKey[k] = list
	}
	return t
}

// Apply returns the winning deviation action for handKey at trueCount, or
// None if no deviation applies. It checks handKey then handKey+"_surrender"
// and, within each, takes the last entry whose TCFloor <= floor(trueCount)
// (entries are sorted ascending, so this is a right-stepped scan).
func (t *DeviationTable) Apply(handKey string, trueCount float64) Action {
	floorTC := int(math.Floor(trueCount))
	for _, key := range [2]string{handKey, handKey + "_surrender"} {
		list := t.byKey[key]
		best := None
		for _, d := range list {
			if floorTC >= d.TCFloor {
				best = d.Action
			}
		}
		if best != None {
			return best
		}
	}
	return None
}

// ChooseAction queries the policy layers in fixed order: deviation first
// (falling through to basic strategy if none matches), resolving
// DoubleElseHit/DoubleElseStand and downgrading a deviation's Double to
// Hit when doubling isn't allowed.
func ChooseAction(cards []shoe.Rank, dealerUp shoe.Rank, trueCount float64, devs *DeviationTable, rules Rules, canDouble bool) Action {
	handKey := HandKey(cards, dealerUp)
	if devs != nil {
		if dev := devs.Apply(handKey, trueCount); dev != None {
			if dev == Double && !canDouble {
				return Hit
			}
			return dev
		}
	}
	return BasicStrategyAction(cards, dealerUp, rules).Resolve(canDouble)
}

// InsuranceAction consults the deviation table's "insurance" sentinel key.
func InsuranceAction(trueCount float64, devs *DeviationTable) Action {
	if devs == nil {
		return None
	}
	return devs.Apply("insurance", trueCount)
}
