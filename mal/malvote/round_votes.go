package malvote

import "github.com/malachite-engine/malachite/mal/malcore"

// RoundVotes tracks all the votes for a single round.
type RoundVotes struct {
	prevotes   VoteCount
	precommits VoteCount
}

func NewRoundVotes() RoundVotes {
	return RoundVotes{
		prevotes:   NewVoteCount(),
		precommits: NewVoteCount(),
	}
}

// AddVote applies the vote to the count matching its type.
func (rv RoundVotes) AddVote(sv malcore.SignedVote, weight uint64) (uint64, *DoubleVote) {
	return rv.count(sv.Vote.Type).Add(sv, weight)
}

// IsThresholdMet reports whether the threshold is met
// for the given vote type.
func (rv RoundVotes) IsThresholdMet(
	voteType malcore.VoteType,
	threshold malcore.Threshold,
	param malcore.ThresholdParam,
	total uint64,
) bool {
	return rv.count(voteType).IsThresholdMet(threshold, param, total)
}

// QuorumTarget returns the target meeting the param
// for the given vote type, if any.
func (rv RoundVotes) QuorumTarget(
	voteType malcore.VoteType,
	param malcore.ThresholdParam,
	total uint64,
) (malcore.NilOrVal[malcore.ValueID], bool) {
	return rv.count(voteType).QuorumTarget(param, total)
}

// Sum returns the total vote weight for the given vote type.
func (rv RoundVotes) Sum(voteType malcore.VoteType) uint64 {
	return rv.count(voteType).Sum()
}

func (rv RoundVotes) count(voteType malcore.VoteType) VoteCount {
	if voteType == malcore.VoteTypePrecommit {
		return rv.precommits
	}
	return rv.prevotes
}
