package maldriver

import (
	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mal/malround"
	"github.com/malachite-engine/malachite/mal/malvote"
)

// The multiplexer chooses the richest round state machine input
// consistent with everything currently known:
// a bare proposal becomes ProposalAndPolkaCurrent once its polka exists,
// a precommit quorum becomes a decision once its proposal is known,
// and so on.
//
// Threshold-derived inputs that also imply the corresponding
// any-threshold (a polka for a value implies a polka for anything)
// are preceded by the any input,
// so the step timeout is scheduled before the step transition output.

// muxProposal computes the round inputs for a proposal that just
// arrived (or was replayed on round entry), given its validity.
func (d *Driver) muxProposal(p malcore.Proposal, validity malcore.Validity) []malround.Input {
	// A precommit quorum for this value at the proposal's round decides,
	// regardless of which round we are in.
	if validity == malcore.Valid {
		if v, ok := d.voteKeeper.QuorumValue(p.Round, malcore.VoteTypePrecommit); ok && v == p.Value.ID {
			return []malround.Input{malround.ProposalAndPrecommitValueInput(p)}
		}
	}

	if p.Round != d.roundState.Round {
		// Kept in the proposal keeper;
		// replayed if and when its round starts.
		return nil
	}

	if validity == malcore.Invalid {
		if p.POLRound.IsDefined() && p.POLRound < p.Round &&
			d.hasPolkaValue(p.POLRound, p.Value.ID) {
			return []malround.Input{malround.InvalidProposalAndPolkaPreviousInput(p)}
		}
		return []malround.Input{malround.InvalidProposalInput()}
	}

	if p.POLRound.IsDefined() && p.POLRound < p.Round &&
		d.hasPolkaValue(p.POLRound, p.Value.ID) {
		return []malround.Input{malround.ProposalAndPolkaPreviousInput(p)}
	}

	if d.hasPolkaValue(p.Round, p.Value.ID) {
		if d.roundState.Step == malround.StepPropose {
			// Prevote first; the polka is picked up on the step change.
			return []malround.Input{malround.ProposalInput(p)}
		}
		return []malround.Input{
			malround.PolkaAnyInput(),
			malround.ProposalAndPolkaCurrentInput(p),
		}
	}

	return []malround.Input{malround.ProposalInput(p)}
}

// muxVoteKeeperOutput computes the round inputs
// for a threshold event emitted by the vote keeper.
func (d *Driver) muxVoteKeeperOutput(out malvote.Output) []malround.Input {
	r := d.roundState.Round

	switch out.Kind {
	case malvote.OutputPolkaAny:
		if out.Round != r {
			return nil
		}
		return []malround.Input{malround.PolkaAnyInput()}

	case malvote.OutputPolkaNil:
		if out.Round != r {
			return nil
		}
		return []malround.Input{malround.PolkaNilInput()}

	case malvote.OutputPolkaValue:
		return d.muxPolkaValue(out.Round, out.Value)

	case malvote.OutputPrecommitAny:
		if out.Round != r {
			return nil
		}
		return []malround.Input{malround.PrecommitAnyInput()}

	case malvote.OutputPrecommitValue:
		return d.muxPrecommitValue(out.Round, out.Value)

	case malvote.OutputSkipRound:
		if out.Round <= r {
			return nil
		}
		return []malround.Input{malround.SkipRoundInput(out.Round)}

	default:
		d.log.Error("Unknown vote keeper output kind", "kind", out.Kind)
		return nil
	}
}

// muxPolkaValue computes the round inputs for a prevote quorum
// observed for a value at the given round.
func (d *Driver) muxPolkaValue(polkaRound malcore.Round, id malcore.ValueID) []malround.Input {
	r := d.roundState.Round

	if polkaRound == r {
		if stored := d.proposalKeeper.ByValue(r, id); stored != nil && stored.Validity == malcore.Valid {
			return []malround.Input{
				malround.PolkaAnyInput(),
				malround.ProposalAndPolkaCurrentInput(stored.Proposal.Proposal),
			}
		}
		// Proposal not here yet; its arrival re-multiplexes.
		return []malround.Input{malround.PolkaAnyInput()}
	}

	if polkaRound < r {
		// A polka completing for an earlier round can back a re-proposal
		// already received for the current round.
		for _, stored := range d.proposalKeeper.ByRound(r) {
			p := stored.Proposal.Proposal
			if p.POLRound == polkaRound && p.Value.ID == id && stored.Validity == malcore.Valid {
				return []malround.Input{malround.ProposalAndPolkaPreviousInput(p)}
			}
		}
	}

	// Future round: the skip threshold governs when we move there.
	return nil
}

// muxPrecommitValue computes the round inputs for a precommit quorum
// observed for a value at the given round.
func (d *Driver) muxPrecommitValue(quorumRound malcore.Round, id malcore.ValueID) []malround.Input {
	if stored := d.proposalKeeper.ByValue(quorumRound, id); stored != nil && stored.Validity == malcore.Valid {
		var ins []malround.Input
		if quorumRound == d.roundState.Round {
			ins = append(ins, malround.PrecommitAnyInput())
		}
		return append(ins, malround.ProposalAndPrecommitValueInput(stored.Proposal.Proposal))
	}

	// No proposal for the certified value yet; the decision waits for it,
	// but the precommit timeout should still run in the current round.
	if quorumRound == d.roundState.Round {
		return []malround.Input{malround.PrecommitAnyInput()}
	}
	return nil
}

// muxStepChange computes the follow-up inputs after the state machine
// changed step or round: thresholds and proposals observed earlier
// may only now be usable.
func (d *Driver) muxStepChange() []malround.Input {
	r := d.roundState.Round

	switch d.roundState.Step {
	case malround.StepPropose:
		// Entering a round: replay any proposals received for it early.
		var ins []malround.Input
		for _, stored := range d.proposalKeeper.ByRound(r) {
			ins = append(ins, d.muxProposal(stored.Proposal.Proposal, stored.Validity)...)
		}
		return ins

	case malround.StepPrevote:
		var ins []malround.Input

		if v, ok := d.voteKeeper.QuorumValue(r, malcore.VoteTypePrevote); ok {
			if stored := d.proposalKeeper.ByValue(r, v); stored != nil && stored.Validity == malcore.Valid {
				ins = append(ins,
					malround.PolkaAnyInput(),
					malround.ProposalAndPolkaCurrentInput(stored.Proposal.Proposal),
				)
			} else {
				ins = append(ins, malround.PolkaAnyInput())
			}
		} else if d.voteKeeper.IsThresholdMet(r, malcore.VoteTypePrevote, malcore.ThresholdNil()) {
			ins = append(ins, malround.PolkaNilInput())
		} else if d.voteKeeper.IsThresholdMet(r, malcore.VoteTypePrevote, malcore.ThresholdAny()) {
			ins = append(ins, malround.PolkaAnyInput())
		}

		if d.voteKeeper.IsThresholdMet(r, malcore.VoteTypePrecommit, malcore.ThresholdAny()) {
			ins = append(ins, malround.PrecommitAnyInput())
		}
		return ins

	case malround.StepPrecommit:
		if v, ok := d.voteKeeper.QuorumValue(r, malcore.VoteTypePrecommit); ok {
			if stored := d.proposalKeeper.ByValue(r, v); stored != nil && stored.Validity == malcore.Valid {
				return []malround.Input{
					malround.PrecommitAnyInput(),
					malround.ProposalAndPrecommitValueInput(stored.Proposal.Proposal),
				}
			}
			return []malround.Input{malround.PrecommitAnyInput()}
		}
		if d.voteKeeper.IsThresholdMet(r, malcore.VoteTypePrecommit, malcore.ThresholdAny()) {
			return []malround.Input{malround.PrecommitAnyInput()}
		}
		return nil

	default:
		// Unstarted waits for the caller's NewRound input;
		// Commit is terminal.
		return nil
	}
}

func (d *Driver) hasPolkaValue(r malcore.Round, id malcore.ValueID) bool {
	return d.voteKeeper.IsThresholdMet(r, malcore.VoteTypePrevote, malcore.ThresholdValue(id))
}
