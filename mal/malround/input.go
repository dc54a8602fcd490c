package malround

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

type InputKind uint8

// Input kinds, annotated with the corresponding line numbers
// of the Tendermint consensus algorithm.
const (
	// No input.
	InputNoInput InputKind = iota

	// Start a new round, either as proposer or not. L14/L20
	InputNewRound

	// Propose a value built by the application. L14
	InputProposeValue

	// Receive a valid proposal with no proof-of-lock round. L22-L24
	InputProposal

	// Receive an invalid proposal. L26
	InputInvalidProposal

	// Receive a valid proposal re-proposing a value
	// that gathered a polka in a previous round. L28-L30
	InputProposalAndPolkaPrevious

	// Same, but the proposal is invalid. L32
	InputInvalidProposalAndPolkaPrevious

	// Quorum of prevotes for anything. L34
	InputPolkaAny

	// Quorum of prevotes for nil. L44
	InputPolkaNil

	// Quorum of prevotes for the proposed value in the current round. L36
	InputProposalAndPolkaCurrent

	// Quorum of precommits for anything. L47
	InputPrecommitAny

	// Quorum of precommits for a known proposal's value. L49
	InputProposalAndPrecommitValue

	// Quorum of precommits for a value whose proposal is not yet known. L51
	InputPrecommitValue

	// Honest-threshold evidence of validators in a higher round. L55
	InputSkipRound

	// Timeout waiting for a proposal. L57
	InputTimeoutPropose

	// Timeout waiting for prevotes. L61
	InputTimeoutPrevote

	// Timeout waiting for precommits. L65
	InputTimeoutPrecommit
)

func (k InputKind) String() string {
	switch k {
	case InputNoInput:
		return "no-input"
	case InputNewRound:
		return "new-round"
	case InputProposeValue:
		return "propose-value"
	case InputProposal:
		return "proposal"
	case InputInvalidProposal:
		return "invalid-proposal"
	case InputProposalAndPolkaPrevious:
		return "proposal-and-polka-previous"
	case InputInvalidProposalAndPolkaPrevious:
		return "invalid-proposal-and-polka-previous"
	case InputPolkaAny:
		return "polka-any"
	case InputPolkaNil:
		return "polka-nil"
	case InputProposalAndPolkaCurrent:
		return "proposal-and-polka-current"
	case InputPrecommitAny:
		return "precommit-any"
	case InputProposalAndPrecommitValue:
		return "proposal-and-precommit-value"
	case InputPrecommitValue:
		return "precommit-value"
	case InputSkipRound:
		return "skip-round"
	case InputTimeoutPropose:
		return "timeout-propose"
	case InputTimeoutPrevote:
		return "timeout-prevote"
	case InputTimeoutPrecommit:
		return "timeout-precommit"
	default:
		return fmt.Sprintf("InputKind(%d)", uint8(k))
	}
}

// Input to the round state machine.
type Input struct {
	Kind InputKind

	// Round for InputNewRound and InputSkipRound.
	Round malcore.Round

	// Value for InputProposeValue.
	Value malcore.Value

	// Proposal for the proposal-carrying kinds.
	Proposal malcore.Proposal

	// ValueID for InputPrecommitValue.
	ValueID malcore.ValueID
}

func NewRoundInput(r malcore.Round) Input {
	return Input{Kind: InputNewRound, Round: r}
}

func ProposeValueInput(v malcore.Value) Input {
	return Input{Kind: InputProposeValue, Value: v}
}

func ProposalInput(p malcore.Proposal) Input {
	return Input{Kind: InputProposal, Proposal: p}
}

func InvalidProposalInput() Input {
	return Input{Kind: InputInvalidProposal}
}

func ProposalAndPolkaPreviousInput(p malcore.Proposal) Input {
	return Input{Kind: InputProposalAndPolkaPrevious, Proposal: p}
}

func InvalidProposalAndPolkaPreviousInput(p malcore.Proposal) Input {
	return Input{Kind: InputInvalidProposalAndPolkaPrevious, Proposal: p}
}

func PolkaAnyInput() Input {
	return Input{Kind: InputPolkaAny}
}

func PolkaNilInput() Input {
	return Input{Kind: InputPolkaNil}
}

func ProposalAndPolkaCurrentInput(p malcore.Proposal) Input {
	return Input{Kind: InputProposalAndPolkaCurrent, Proposal: p}
}

func PrecommitAnyInput() Input {
	return Input{Kind: InputPrecommitAny}
}

func ProposalAndPrecommitValueInput(p malcore.Proposal) Input {
	return Input{Kind: InputProposalAndPrecommitValue, Proposal: p}
}

func PrecommitValueInput(v malcore.ValueID) Input {
	return Input{Kind: InputPrecommitValue, ValueID: v}
}

func SkipRoundInput(r malcore.Round) Input {
	return Input{Kind: InputSkipRound, Round: r}
}

func TimeoutProposeInput() Input {
	return Input{Kind: InputTimeoutPropose}
}

func TimeoutPrevoteInput() Input {
	return Input{Kind: InputTimeoutPrevote}
}

func TimeoutPrecommitInput() Input {
	return Input{Kind: InputTimeoutPrecommit}
}
