package malround

import "github.com/malachite-engine/malachite/mal/malcore"

// Info carries the per-round facts the state machine needs
// beyond its own state: who we are, and who proposes this round.
type Info struct {
	Address  malcore.Address
	Proposer malcore.Address
}

func NewInfo(address, proposer malcore.Address) Info {
	return Info{Address: address, Proposer: proposer}
}

func (i Info) IsProposer() bool {
	return i.Address == i.Proposer
}

// Apply applies one input to the state and returns the transition.
//
// Apply is a pure function of its arguments:
// no time, no I/O, no randomness.
// Any (state, input) pair outside the transition table
// yields an invalid transition with no output.
func Apply(s State, info Info, input Input) Transition {
	switch input.Kind {
	case InputNewRound:
		if s.Step != StepUnstarted {
			return Invalid(s)
		}
		return applyNewRound(s.NewRound(input.Round), info)

	case InputProposeValue:
		// L14: our value arrived from the application.
		if s.Step != StepPropose || !info.IsProposer() {
			return Invalid(s)
		}
		return To(s).WithOutput(ProposalOutput(
			malcore.NewProposal(s.Height, s.Round, input.Value, malcore.RoundNil, info.Address),
		))

	case InputProposal:
		// L22-L26: first proposal for this round, no proof-of-lock.
		if s.Step != StepPropose {
			return Invalid(s)
		}
		return prevote(s, info, input.Proposal)

	case InputInvalidProposal:
		// L26.
		if s.Step != StepPropose {
			return Invalid(s)
		}
		return prevoteNil(s, info)

	case InputProposalAndPolkaPrevious:
		// L28-L32: re-proposal backed by a polka from an earlier round.
		if s.Step != StepPropose {
			return Invalid(s)
		}
		return prevotePrevious(s, info, input.Proposal)

	case InputInvalidProposalAndPolkaPrevious:
		// L32.
		if s.Step != StepPropose {
			return Invalid(s)
		}
		return prevoteNil(s, info)

	case InputTimeoutPropose:
		// L57-L59.
		if s.Step != StepPropose {
			return Invalid(s)
		}
		return prevoteNil(s, info)

	case InputPolkaAny:
		// L34.
		if s.Step != StepPrevote {
			return Invalid(s)
		}
		return To(s).WithOutput(ScheduleTimeoutOutput(malcore.TimeoutPrevote, s.Round))

	case InputProposalAndPolkaCurrent:
		// L36-L43.
		switch s.Step {
		case StepPrevote:
			return precommit(s, info, input.Proposal)
		case StepPrecommit:
			// Past the prevote step only the valid value is updated.
			return To(s.setValid(input.Proposal.Value))
		default:
			return Invalid(s)
		}

	case InputPolkaNil:
		// L44-L46.
		if s.Step != StepPrevote {
			return Invalid(s)
		}
		return precommitNil(s, info)

	case InputTimeoutPrevote:
		// L61-L63.
		if s.Step != StepPrevote {
			return Invalid(s)
		}
		return precommitNil(s, info)

	case InputPrecommitAny:
		// L47-L48.
		if s.Step != StepPrevote && s.Step != StepPrecommit {
			return Invalid(s)
		}
		return To(s).WithOutput(ScheduleTimeoutOutput(malcore.TimeoutPrecommit, s.Round))

	case InputProposalAndPrecommitValue:
		// L49-L54: decide, from any step but Commit,
		// for the proposal's round even if it is an earlier one.
		if s.Step == StepCommit {
			return Invalid(s)
		}
		return To(s.commit(input.Proposal.Value)).
			WithOutput(DecisionOutput(input.Proposal.Round, input.Proposal))

	case InputTimeoutPrecommit:
		// L65-L67: move on to the next round.
		// The precommit timeout can fire from any live step:
		// it is scheduled on a precommit quorum,
		// which can be observed before we precommit ourselves.
		if s.Step == StepUnstarted || s.Step == StepCommit {
			return Invalid(s)
		}
		next := s.Round.Increment()
		return To(s.NewRound(next)).WithOutput(NewRoundOutput(next))

	case InputSkipRound:
		// L55-L56.
		if s.Step == StepCommit || input.Round <= s.Round {
			return Invalid(s)
		}
		return To(s.NewRound(input.Round)).WithOutput(NewRoundOutput(input.Round))

	default:
		return Invalid(s)
	}
}

// applyNewRound starts the round the state is positioned at.
// L11-L21.
func applyNewRound(s State, info Info) Transition {
	if !info.IsProposer() {
		// L21: wait for the proposer's value.
		return To(s.withStep(StepPropose)).
			WithOutput(ScheduleTimeoutOutput(malcore.TimeoutPropose, s.Round))
	}

	if s.Valid != nil {
		// L16: re-propose the valid value with its polka round as proof.
		return To(s.withStep(StepPropose)).WithOutput(ProposalOutput(
			malcore.NewProposal(s.Height, s.Round, s.Valid.Value, s.Valid.Round, info.Address),
		))
	}

	// L18: ask the application for a value.
	return To(s.withStep(StepPropose)).
		WithOutput(GetValueAndScheduleTimeoutOutput(s.Height, s.Round))
}

// prevote responds to a fresh proposal:
// prevote its value unless we are locked on a different one.
// L22-L26.
func prevote(s State, info Info, p malcore.Proposal) Transition {
	value := malcore.NilVal[malcore.ValueID]()
	if s.Locked == nil || s.Locked.Value.ID == p.Value.ID {
		value = malcore.Val(p.Value.ID)
	}

	return To(s.withStep(StepPrevote)).
		WithOutput(PrevoteOutput(s.Height, s.Round, value, info.Address))
}

// prevotePrevious responds to a re-proposal carrying a proof-of-lock:
// the earlier polka releases our lock if it is at least as recent.
// L28-L32.
func prevotePrevious(s State, info Info, p malcore.Proposal) Transition {
	value := malcore.NilVal[malcore.ValueID]()
	if s.Locked == nil || s.Locked.Round <= p.POLRound || s.Locked.Value.ID == p.Value.ID {
		value = malcore.Val(p.Value.ID)
	}

	return To(s.withStep(StepPrevote)).
		WithOutput(PrevoteOutput(s.Height, s.Round, value, info.Address))
}

func prevoteNil(s State, info Info) Transition {
	return To(s.withStep(StepPrevote)).
		WithOutput(PrevoteOutput(s.Height, s.Round, malcore.NilVal[malcore.ValueID](), info.Address))
}

// precommit locks the polka'd value and precommits it.
// L36-L43.
func precommit(s State, info Info, p malcore.Proposal) Transition {
	next := s.setLocked(p.Value).setValid(p.Value).withStep(StepPrecommit)
	return To(next).WithOutput(PrecommitOutput(
		s.Height, s.Round, malcore.Val(p.Value.ID), info.Address,
	))
}

func precommitNil(s State, info Info) Transition {
	return To(s.withStep(StepPrecommit)).
		WithOutput(PrecommitOutput(s.Height, s.Round, malcore.NilVal[malcore.ValueID](), info.Address))
}
