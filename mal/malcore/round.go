package malcore

import "fmt"

// Round is a round number within a height, or the nil round.
//
// The nil round sorts below every defined round.
// It is never exchanged on the wire as a vote or proposal round;
// it occurs only as the proof-of-lock round of a fresh proposal
// and as the driver's round before the first NewRound input.
type Round int32

// RoundNil is the nil round.
const RoundNil Round = -1

// NewRound returns the defined round with the given index.
func NewRound(i uint32) Round {
	return Round(i)
}

func (r Round) IsNil() bool {
	return r < 0
}

func (r Round) IsDefined() bool {
	return r >= 0
}

// Increment returns the next round.
// Incrementing the nil round yields round zero.
func (r Round) Increment() Round {
	if r.IsNil() {
		return 0
	}
	return r + 1
}

func (r Round) String() string {
	if r.IsNil() {
		return "round(nil)"
	}
	return fmt.Sprintf("round(%d)", int32(r))
}
