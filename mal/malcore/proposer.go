package malcore

// ProposerSelector chooses the proposer for a round.
//
// Implementations must be pure functions of their arguments:
// every correct validator must select the same proposer
// for the same validator set, height, and round.
type ProposerSelector interface {
	SelectProposer(vs ValidatorSet, h Height, r Round) (Address, bool)
}

// RoundRobinProposerSelector rotates through the validator set
// in canonical order, advancing by one position per height and per round.
type RoundRobinProposerSelector struct{}

func (RoundRobinProposerSelector) SelectProposer(vs ValidatorSet, h Height, r Round) (Address, bool) {
	if vs.Len() == 0 || h == 0 || r.IsNil() {
		return "", false
	}

	idx := (h.Uint64() - 1 + uint64(r)) % uint64(vs.Len())
	return vs.Validators[idx].Address, true
}
