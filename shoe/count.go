package shoe

// CountingSystem maps each rank to its running-count tag. The
// TrueCountDivisor field is an extension seam — today only
// "remaining_decks" is implemented; a pluggable divisor is left for a
// future counting system.
type CountingSystem struct {
	Name             string       `json:"name"`
	Tags             map[Rank]int `json:"tags"`
	TrueCountDivisor string       `json:"true_count_divisor"`
}

// HiLo is the default Hi-Lo counting system.
func HiLo() CountingSystem {
	return CountingSystem{
		Name: "Hi-Lo",
		Tags: map[Rank]int{
			Two: 1, Three: 1, Four: 1, Five: 1, Six: 1,
			Seven: 0, Eight: 0, Nine: 0,
			Ten: -1, Jack: -1, Queen: -1, King: -1, Ace: -1,
		},
		TrueCountDivisor: "remaining_decks",
	}
}
