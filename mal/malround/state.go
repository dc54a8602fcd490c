package malround

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

// Step is the step of consensus within a round.
// Steps only ever advance within a round.
type Step uint8

const (
	// Round created but not started.
	StepUnstarted Step = iota

	StepPropose
	StepPrevote
	StepPrecommit

	// A value has been decided at this height.
	StepCommit
)

func (s Step) String() string {
	switch s {
	case StepUnstarted:
		return "unstarted"
	case StepPropose:
		return "propose"
	case StepPrevote:
		return "prevote"
	case StepPrecommit:
		return "precommit"
	case StepCommit:
		return "commit"
	default:
		return fmt.Sprintf("Step(%d)", uint8(s))
	}
}

// RoundValue is a value paired with the round it was observed in.
type RoundValue struct {
	Value malcore.Value
	Round malcore.Round
}

// State is the consensus state for one height.
//
// Locked and Valid survive round changes:
// Locked is the value we precommitted and are bound to,
// Valid is the highest-round value we saw a polka for.
type State struct {
	Height malcore.Height
	Round  malcore.Round

	Step Step

	Locked *RoundValue
	Valid  *RoundValue

	// Set exactly when Step is StepCommit.
	Decision *malcore.Value
}

// NewState returns the state for a fresh height,
// at the nil round with the first round not yet started.
func NewState(h malcore.Height) State {
	return State{
		Height: h,
		Round:  malcore.RoundNil,
		Step:   StepUnstarted,
	}
}

// NewRound returns the state positioned at the given round, not started.
// Locked, Valid and the height carry over.
func (s State) NewRound(r malcore.Round) State {
	s.Round = r
	s.Step = StepUnstarted
	return s
}

func (s State) withStep(step Step) State {
	s.Step = step
	return s
}

func (s State) setLocked(v malcore.Value) State {
	s.Locked = &RoundValue{Value: v, Round: s.Round}
	return s
}

func (s State) setValid(v malcore.Value) State {
	s.Valid = &RoundValue{Value: v, Round: s.Round}
	return s
}

func (s State) commit(v malcore.Value) State {
	s.Decision = &v
	s.Step = StepCommit
	return s
}
