package malvote

import "github.com/malachite-engine/malachite/mal/malcore"

// RoundWeights tracks the voting power of the distinct validators
// seen voting in one round, regardless of vote type or target.
//
// Its sum against the honest threshold is the round-skip signal:
// more than one third of the power voting in a higher round
// means at least one correct validator is already there.
type RoundWeights struct {
	m map[malcore.Address]uint64
}

func NewRoundWeights() RoundWeights {
	return RoundWeights{m: make(map[malcore.Address]uint64)}
}

// SetOnce records the validator's weight
// unless the validator was already recorded for this round.
func (rw RoundWeights) SetOnce(addr malcore.Address, weight uint64) {
	if _, ok := rw.m[addr]; !ok {
		rw.m[addr] = weight
	}
}

// Get returns the recorded weight for the validator, or zero.
func (rw RoundWeights) Get(addr malcore.Address) uint64 {
	return rw.m[addr]
}

// Sum returns the combined weight of all recorded validators.
func (rw RoundWeights) Sum() uint64 {
	var sum uint64
	for _, w := range rw.m {
		sum += w
	}
	return sum
}
