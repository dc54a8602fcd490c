package malvote

import "github.com/malachite-engine/malachite/mal/malcore"

// VoteCount tallies votes of one type within one round.
//
// Each validator is counted at most once:
// a repeat of the same vote is a no-op,
// and a vote for a different value is reported as a double vote
// without disturbing the tally.
type VoteCount struct {
	valuesWeights ValuesWeights[malcore.NilOrVal[malcore.ValueID]]

	// First observed vote per validator.
	votes map[malcore.Address]malcore.SignedVote
}

func NewVoteCount() VoteCount {
	return VoteCount{
		valuesWeights: NewValuesWeights[malcore.NilOrVal[malcore.ValueID]](),
		votes:         make(map[malcore.Address]malcore.SignedVote),
	}
}

// Add applies one vote with the given weight.
// It returns the resulting weight for the vote's target,
// and the conflicting pair if the validator had already voted
// for a different target.
func (vc VoteCount) Add(sv malcore.SignedVote, weight uint64) (uint64, *DoubleVote) {
	existing, ok := vc.votes[sv.Vote.Validator]
	if !ok {
		vc.votes[sv.Vote.Validator] = sv
		return vc.valuesWeights.Add(sv.Vote.Value, weight), nil
	}

	if existing.Vote.Value == sv.Vote.Value {
		// Duplicate delivery of the same vote.
		return vc.valuesWeights.Get(sv.Vote.Value), nil
	}

	return vc.valuesWeights.Get(existing.Vote.Value), &DoubleVote{
		Existing:    existing,
		Conflicting: sv,
	}
}

// Get returns the weight of votes for the given target.
func (vc VoteCount) Get(value malcore.NilOrVal[malcore.ValueID]) uint64 {
	return vc.valuesWeights.Get(value)
}

// Sum returns the total weight of all votes of this type.
func (vc VoteCount) Sum() uint64 {
	return vc.valuesWeights.Sum()
}

// IsThresholdMet reports whether the given threshold is met
// under the param, against the total voting power.
func (vc VoteCount) IsThresholdMet(
	threshold malcore.Threshold,
	param malcore.ThresholdParam,
	total uint64,
) bool {
	switch threshold.Kind {
	case malcore.ThresholdKindValue:
		return param.IsMet(vc.valuesWeights.Get(malcore.Val(threshold.Value)), total)

	case malcore.ThresholdKindNil:
		return param.IsMet(vc.valuesWeights.Get(malcore.NilVal[malcore.ValueID]()), total)

	case malcore.ThresholdKindAny:
		return param.IsMet(vc.valuesWeights.Sum(), total)

	default:
		return false
	}
}

// QuorumTarget returns the vote target whose weight meets the param,
// if one exists.
// With a strict greater-than-two-thirds param
// at most one target can qualify.
func (vc VoteCount) QuorumTarget(
	param malcore.ThresholdParam,
	total uint64,
) (malcore.NilOrVal[malcore.ValueID], bool) {
	for target, weight := range vc.valuesWeights.m {
		if param.IsMet(weight, total) {
			return target, true
		}
	}
	return malcore.NilVal[malcore.ValueID](), false
}
