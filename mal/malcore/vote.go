package malcore

import "fmt"

type VoteType uint8

const (
	_ VoteType = iota // Invalid.

	VoteTypePrevote
	VoteTypePrecommit
)

func (t VoteType) String() string {
	switch t {
	case VoteTypePrevote:
		return "prevote"
	case VoteTypePrecommit:
		return "precommit"
	default:
		return fmt.Sprintf("VoteType(%d)", uint8(t))
	}
}

// Vote is a prevote or precommit for a value ID or for nil.
type Vote struct {
	Type VoteType

	Height Height
	Round  Round

	Value NilOrVal[ValueID]

	Validator Address
}

func NewPrevote(h Height, r Round, value NilOrVal[ValueID], validator Address) Vote {
	return Vote{
		Type:      VoteTypePrevote,
		Height:    h,
		Round:     r,
		Value:     value,
		Validator: validator,
	}
}

func NewPrecommit(h Height, r Round, value NilOrVal[ValueID], validator Address) Vote {
	return Vote{
		Type:      VoteTypePrecommit,
		Height:    h,
		Round:     r,
		Value:     value,
		Validator: validator,
	}
}

// SignedVote is a vote together with the signature of its sender.
// The signature bytes are opaque to the core.
type SignedVote struct {
	Vote Vote

	Signature []byte
}
