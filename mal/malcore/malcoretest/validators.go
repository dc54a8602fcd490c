package malcoretest

import (
	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mcrypto"
	"github.com/malachite-engine/malachite/mcrypto/mcryptotest"
)

// PrivVal is the private view of one validator,
// so that tests have access to the signer backing the validator too.
type PrivVal struct {
	// The plain consensus validator.
	Val malcore.Validator

	Signer mcrypto.Signer
}

type PrivVals []PrivVal

func (vs PrivVals) Vals() []malcore.Validator {
	out := make([]malcore.Validator, len(vs))
	for i, v := range vs {
		out[i] = v.Val
	}
	return out
}

// ByAddress returns the PrivVal with the given address,
// or nil if no validator has it.
func (vs PrivVals) ByAddress(addr malcore.Address) *PrivVal {
	for i := range vs {
		if vs[i].Val.Address == addr {
			return &vs[i]
		}
	}
	return nil
}

// DeterministicValidators returns a deterministic set
// of n validators with ed25519 keys.
//
// Validators are ordered by power descending
// with a negligible power difference between neighbors,
// so that the canonical validator order matches
// the deterministic key order.
func DeterministicValidators(n int) PrivVals {
	res := make(PrivVals, n)
	signers := mcryptotest.DeterministicEd25519Signers(n)

	for i := range res {
		res[i] = PrivVal{
			Val:    malcore.NewValidator(signers[i].PubKey(), uint64(100_000-i)),
			Signer: signers[i],
		}
	}

	return res
}

// EqualPowerValidators returns n deterministic validators
// that all have voting power 1,
// matching the validator profile in hand-checked voting scenarios.
// Equal powers sort by address, so the canonical set order
// may differ from generation order;
// index validators through the returned PrivVals,
// not through the sorted set.
func EqualPowerValidators(n int) PrivVals {
	res := make(PrivVals, n)
	signers := mcryptotest.DeterministicEd25519Signers(n)

	for i := range res {
		res[i] = PrivVal{
			Val:    malcore.NewValidator(signers[i].PubKey(), 1),
			Signer: signers[i],
		}
	}

	return res
}
