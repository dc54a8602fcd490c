package maldriver

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

type InputKind uint8

const (
	_ InputKind = iota // Invalid.

	// Start a new round with the given proposer.
	InputNewRound

	// Propose a value the application has built for the given round.
	InputProposeValue

	// A proposal was received, with the application's validity judgement.
	InputProposal

	// A vote was received.
	InputVote

	// A commit certificate was received, typically while catching up.
	InputCommitCertificate

	// A polka certificate was received.
	InputPolkaCertificate

	// A previously scheduled timeout elapsed.
	InputTimeoutElapsed
)

func (k InputKind) String() string {
	switch k {
	case InputNewRound:
		return "new-round"
	case InputProposeValue:
		return "propose-value"
	case InputProposal:
		return "proposal"
	case InputVote:
		return "vote"
	case InputCommitCertificate:
		return "commit-certificate"
	case InputPolkaCertificate:
		return "polka-certificate"
	case InputTimeoutElapsed:
		return "timeout-elapsed"
	default:
		return fmt.Sprintf("InputKind(%d)", uint8(k))
	}
}

// Input is an external event fed to the driver.
type Input struct {
	Kind InputKind

	// Height, Round and Proposer for InputNewRound.
	// Round is also set for InputProposeValue.
	Height   malcore.Height
	Round    malcore.Round
	Proposer malcore.Address

	// Value for InputProposeValue.
	Value malcore.Value

	// Proposal and Validity for InputProposal.
	Proposal malcore.SignedProposal
	Validity malcore.Validity

	// Vote for InputVote.
	Vote malcore.SignedVote

	// Certificates.
	CommitCertificate malcore.CommitCertificate
	PolkaCertificate  malcore.PolkaCertificate

	// Timeout for InputTimeoutElapsed.
	Timeout malcore.Timeout
}

func NewRoundInput(h malcore.Height, r malcore.Round, proposer malcore.Address) Input {
	return Input{Kind: InputNewRound, Height: h, Round: r, Proposer: proposer}
}

func ProposeValueInput(r malcore.Round, v malcore.Value) Input {
	return Input{Kind: InputProposeValue, Round: r, Value: v}
}

func ProposalInput(sp malcore.SignedProposal, validity malcore.Validity) Input {
	return Input{Kind: InputProposal, Proposal: sp, Validity: validity}
}

func VoteInput(sv malcore.SignedVote) Input {
	return Input{Kind: InputVote, Vote: sv}
}

func CommitCertificateInput(cert malcore.CommitCertificate) Input {
	return Input{Kind: InputCommitCertificate, CommitCertificate: cert}
}

func PolkaCertificateInput(cert malcore.PolkaCertificate) Input {
	return Input{Kind: InputPolkaCertificate, PolkaCertificate: cert}
}

func TimeoutElapsedInput(t malcore.Timeout) Input {
	return Input{Kind: InputTimeoutElapsed, Timeout: t}
}
