package maldriver

import "github.com/malachite-engine/malachite/mal/malcore"

// StoredProposal is a received proposal
// together with the application's validity judgement.
//
// Invalid proposals are stored too:
// the state machine still reacts to them by prevoting nil.
type StoredProposal struct {
	Proposal malcore.SignedProposal
	Validity malcore.Validity
}

// ProposalKeeper stores the proposals received for one height,
// indexed by round.
// At most one proposal is kept per (round, proposer);
// a second one from the same proposer is dropped,
// so the first observed proposal always wins.
type ProposalKeeper struct {
	height malcore.Height

	perRound map[malcore.Round][]StoredProposal
}

func NewProposalKeeper(height malcore.Height) *ProposalKeeper {
	return &ProposalKeeper{
		height:   height,
		perRound: make(map[malcore.Round][]StoredProposal),
	}
}

func (pk *ProposalKeeper) Height() malcore.Height {
	return pk.height
}

// Apply stores the proposal and reports whether it was kept.
func (pk *ProposalKeeper) Apply(sp malcore.SignedProposal, validity malcore.Validity) bool {
	r := sp.Proposal.Round
	for _, stored := range pk.perRound[r] {
		if stored.Proposal.Proposal.Proposer == sp.Proposal.Proposer {
			return false
		}
	}

	pk.perRound[r] = append(pk.perRound[r], StoredProposal{
		Proposal: sp,
		Validity: validity,
	})
	return true
}

// ByRound returns all stored proposals for the given round,
// in arrival order.
func (pk *ProposalKeeper) ByRound(r malcore.Round) []StoredProposal {
	return pk.perRound[r]
}

// ByValue returns the stored proposal for the given round and value,
// or nil if none is known.
func (pk *ProposalKeeper) ByValue(r malcore.Round, id malcore.ValueID) *StoredProposal {
	for i := range pk.perRound[r] {
		if pk.perRound[r][i].Proposal.Proposal.Value.ID == id {
			return &pk.perRound[r][i]
		}
	}
	return nil
}
