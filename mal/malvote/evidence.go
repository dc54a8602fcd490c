package malvote

import (
	"sort"

	"github.com/malachite-engine/malachite/mal/malcore"
)

// DoubleVote is a pair of conflicting signed votes from one validator:
// same height, round and type, different value.
type DoubleVote struct {
	Existing    malcore.SignedVote
	Conflicting malcore.SignedVote
}

// EvidenceMap records equivocation evidence per validator.
//
// Equivocation is not an error: the first observed vote is retained
// in the tally and the conflicting pair is recorded here,
// to be aggregated into slashing evidence by layers above the core.
type EvidenceMap struct {
	m map[malcore.Address][]DoubleVote
}

func NewEvidenceMap() EvidenceMap {
	return EvidenceMap{m: make(map[malcore.Address][]DoubleVote)}
}

func (em EvidenceMap) IsEmpty() bool {
	return len(em.m) == 0
}

// Get returns the recorded double votes for the given validator.
func (em EvidenceMap) Get(addr malcore.Address) []DoubleVote {
	return em.m[addr]
}

// Add records a pair of conflicting votes.
// Both votes must be from the same validator.
func (em EvidenceMap) Add(existing, conflicting malcore.SignedVote) {
	addr := conflicting.Vote.Validator
	em.m[addr] = append(em.m[addr], DoubleVote{
		Existing:    existing,
		Conflicting: conflicting,
	})
}

// Addresses returns the validators with recorded evidence,
// in ascending address order for deterministic iteration.
func (em EvidenceMap) Addresses() []malcore.Address {
	out := make([]malcore.Address, 0, len(em.m))
	for addr := range em.m {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
