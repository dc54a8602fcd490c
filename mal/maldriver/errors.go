package maldriver

import (
	"errors"
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

// ErrInvalidSignature indicates a received vote or proposal
// whose signature does not verify against the sender's key.
var ErrInvalidSignature = errors.New("invalid signature")

// NoProposerError indicates a NewRound input with no proposer set.
type NoProposerError struct {
	Height malcore.Height
	Round  malcore.Round
}

func (e NoProposerError) Error() string {
	return fmt.Sprintf("no proposer set for height %d at %s", e.Height, e.Round)
}

// ProposerNotFoundError indicates a proposer address
// that is not in the validator set for this height.
type ProposerNotFoundError struct {
	Address malcore.Address
}

func (e ProposerNotFoundError) Error() string {
	return fmt.Sprintf("proposer not found: %s", e.Address)
}

// ValidatorNotFoundError indicates a vote attributed to an address
// that is not in the validator set for this height.
type ValidatorNotFoundError struct {
	Address malcore.Address
}

func (e ValidatorNotFoundError) Error() string {
	return fmt.Sprintf("validator not found: %s", e.Address)
}

// InvalidProposalHeightError indicates a proposal
// for a height other than the driver's.
type InvalidProposalHeightError struct {
	ProposalHeight  malcore.Height
	ConsensusHeight malcore.Height
}

func (e InvalidProposalHeightError) Error() string {
	return fmt.Sprintf(
		"received proposal for height %d different from consensus height %d",
		e.ProposalHeight, e.ConsensusHeight,
	)
}

// InvalidVoteHeightError indicates a vote
// for a height other than the driver's.
type InvalidVoteHeightError struct {
	VoteHeight      malcore.Height
	ConsensusHeight malcore.Height
}

func (e InvalidVoteHeightError) Error() string {
	return fmt.Sprintf(
		"received vote for height %d different from consensus height %d",
		e.VoteHeight, e.ConsensusHeight,
	)
}

// InvalidCertificateHeightError indicates a certificate
// for a height other than the driver's.
type InvalidCertificateHeightError struct {
	CertificateHeight malcore.Height
	ConsensusHeight   malcore.Height
}

func (e InvalidCertificateHeightError) Error() string {
	return fmt.Sprintf(
		"received certificate for height %d different from consensus height %d",
		e.CertificateHeight, e.ConsensusHeight,
	)
}

// InvalidCertificateError indicates a certificate
// that failed verification or refers to an unknown proposal.
type InvalidCertificateError struct {
	Height  malcore.Height
	Round   malcore.Round
	ValueID malcore.ValueID

	Reason error
}

func (e InvalidCertificateError) Error() string {
	return fmt.Sprintf(
		"invalid certificate for height %d, %s, value %x: %v",
		e.Height, e.Round, string(e.ValueID), e.Reason,
	)
}

func (e InvalidCertificateError) Unwrap() error {
	return e.Reason
}
