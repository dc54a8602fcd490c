package malround

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

type OutputKind uint8

const (
	_ OutputKind = iota // Invalid.

	// Move to a new round.
	OutputNewRound

	// Broadcast a proposal.
	OutputProposal

	// Broadcast a vote.
	OutputVote

	// Schedule a timeout.
	OutputScheduleTimeout

	// Ask the application for a value, and schedule a timeout
	// bounding how long it has to build one.
	OutputGetValueAndScheduleTimeout

	// Decide a value.
	OutputDecision
)

func (k OutputKind) String() string {
	switch k {
	case OutputNewRound:
		return "new-round"
	case OutputProposal:
		return "proposal"
	case OutputVote:
		return "vote"
	case OutputScheduleTimeout:
		return "schedule-timeout"
	case OutputGetValueAndScheduleTimeout:
		return "get-value-and-schedule-timeout"
	case OutputDecision:
		return "decision"
	default:
		return fmt.Sprintf("OutputKind(%d)", uint8(k))
	}
}

// Output of the round state machine.
//
// Votes and proposals are emitted unsigned;
// the driver signs them before broadcast.
type Output struct {
	Kind OutputKind

	// Round for OutputNewRound, OutputDecision
	// and OutputGetValueAndScheduleTimeout.
	Round malcore.Round

	// Proposal for OutputProposal and OutputDecision.
	Proposal malcore.Proposal

	// Vote for OutputVote.
	Vote malcore.Vote

	// Height for OutputGetValueAndScheduleTimeout.
	Height malcore.Height

	// Timeout for OutputScheduleTimeout and OutputGetValueAndScheduleTimeout.
	Timeout malcore.Timeout
}

func NewRoundOutput(r malcore.Round) Output {
	return Output{Kind: OutputNewRound, Round: r}
}

func ProposalOutput(p malcore.Proposal) Output {
	return Output{Kind: OutputProposal, Proposal: p}
}

func PrevoteOutput(
	h malcore.Height,
	r malcore.Round,
	value malcore.NilOrVal[malcore.ValueID],
	addr malcore.Address,
) Output {
	return Output{Kind: OutputVote, Vote: malcore.NewPrevote(h, r, value, addr)}
}

func PrecommitOutput(
	h malcore.Height,
	r malcore.Round,
	value malcore.NilOrVal[malcore.ValueID],
	addr malcore.Address,
) Output {
	return Output{Kind: OutputVote, Vote: malcore.NewPrecommit(h, r, value, addr)}
}

func ScheduleTimeoutOutput(kind malcore.TimeoutKind, r malcore.Round) Output {
	return Output{Kind: OutputScheduleTimeout, Timeout: malcore.NewTimeout(kind, r)}
}

func GetValueAndScheduleTimeoutOutput(h malcore.Height, r malcore.Round) Output {
	return Output{
		Kind:    OutputGetValueAndScheduleTimeout,
		Height:  h,
		Round:   r,
		Timeout: malcore.NewTimeout(malcore.TimeoutPropose, r),
	}
}

func DecisionOutput(r malcore.Round, p malcore.Proposal) Output {
	return Output{Kind: OutputDecision, Round: r, Proposal: p}
}
