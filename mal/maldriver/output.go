package maldriver

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

type OutputKind uint8

const (
	_ OutputKind = iota // Invalid.

	// Start a new round.
	// The caller resolves the proposer and feeds back a NewRound input.
	OutputNewRound

	// Broadcast the signed proposal.
	OutputPropose

	// Broadcast the signed vote.
	OutputVote

	// A value was decided.
	OutputDecide

	// Arm a timer for the timeout;
	// deliver a TimeoutElapsed input when it fires.
	OutputScheduleTimeout

	// Ask the application to build a value for the height and round.
	// The timeout bounds how long it has.
	OutputGetValue
)

func (k OutputKind) String() string {
	switch k {
	case OutputNewRound:
		return "new-round"
	case OutputPropose:
		return "propose"
	case OutputVote:
		return "vote"
	case OutputDecide:
		return "decide"
	case OutputScheduleTimeout:
		return "schedule-timeout"
	case OutputGetValue:
		return "get-value"
	default:
		return fmt.Sprintf("OutputKind(%d)", uint8(k))
	}
}

// Output is an effect the driver asks its caller to perform.
type Output struct {
	Kind OutputKind

	// Height for OutputNewRound and OutputGetValue.
	Height malcore.Height

	// Round for OutputNewRound, OutputDecide and OutputGetValue.
	Round malcore.Round

	// Proposal for OutputPropose and OutputDecide.
	Proposal malcore.SignedProposal

	// Vote for OutputVote.
	Vote malcore.SignedVote

	// Timeout for OutputScheduleTimeout and OutputGetValue.
	Timeout malcore.Timeout
}

func NewRoundOutput(h malcore.Height, r malcore.Round) Output {
	return Output{Kind: OutputNewRound, Height: h, Round: r}
}

func ProposeOutput(sp malcore.SignedProposal) Output {
	return Output{Kind: OutputPropose, Proposal: sp}
}

func VoteOutput(sv malcore.SignedVote) Output {
	return Output{Kind: OutputVote, Vote: sv}
}

func DecideOutput(r malcore.Round, sp malcore.SignedProposal) Output {
	return Output{Kind: OutputDecide, Round: r, Proposal: sp}
}

func ScheduleTimeoutOutput(t malcore.Timeout) Output {
	return Output{Kind: OutputScheduleTimeout, Timeout: t}
}

func GetValueOutput(h malcore.Height, r malcore.Round, t malcore.Timeout) Output {
	return Output{Kind: OutputGetValue, Height: h, Round: r, Timeout: t}
}
