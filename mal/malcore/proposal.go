package malcore

// Validity is the application's judgement of a received proposal,
// declared to the driver alongside the proposal itself.
type Validity bool

const (
	Valid   Validity = true
	Invalid Validity = false
)

func (v Validity) String() string {
	if v == Valid {
		return "valid"
	}
	return "invalid"
}

// Proposal is a proposed value for a round.
//
// POLRound is nil for a fresh proposal,
// or the round of a previously observed polka
// when the proposer is re-proposing that value.
type Proposal struct {
	Height Height
	Round  Round

	Value Value

	POLRound Round

	Proposer Address
}

func NewProposal(h Height, r Round, value Value, polRound Round, proposer Address) Proposal {
	return Proposal{
		Height:   h,
		Round:    r,
		Value:    value,
		POLRound: polRound,
		Proposer: proposer,
	}
}

// SignedProposal is a proposal together with the proposer's signature.
type SignedProposal struct {
	Proposal Proposal

	Signature []byte
}
