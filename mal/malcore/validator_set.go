package malcore

import (
	"encoding/hex"
	"sort"

	"github.com/malachite-engine/malachite/mcrypto"
)

// Address identifies a validator.
//
// The raw address bytes are stored as a string
// so that addresses can be compared and used as map keys directly.
type Address string

// AddressFromBytes returns the address holding the given raw bytes.
func AddressFromBytes(b []byte) Address {
	return Address(b)
}

func (a Address) Bytes() []byte {
	return []byte(a)
}

func (a Address) String() string {
	return hex.EncodeToString([]byte(a))
}

// Validator is one member of a validator set.
type Validator struct {
	Address Address

	PubKey mcrypto.PubKey

	// Power must be at least 1;
	// a zero-power validator cannot vote and does not belong in a set.
	Power uint64
}

func NewValidator(pubKey mcrypto.PubKey, power uint64) Validator {
	return Validator{
		Address: AddressFromBytes(pubKey.Address()),
		PubKey:  pubKey,
		Power:   power,
	}
}

// ValidatorSet is the immutable set of validators for one height,
// ordered by descending voting power and then ascending address.
type ValidatorSet struct {
	Validators []Validator

	totalPower uint64
}

// NewValidatorSet returns a set containing the given validators
// in canonical order.
// The input slice is not retained.
func NewValidatorSet(vals []Validator) ValidatorSet {
	vs := ValidatorSet{
		Validators: make([]Validator, len(vals)),
	}
	copy(vs.Validators, vals)

	sort.Slice(vs.Validators, func(i, j int) bool {
		vi, vj := vs.Validators[i], vs.Validators[j]
		if vi.Power != vj.Power {
			return vi.Power > vj.Power
		}
		return vi.Address < vj.Address
	})

	for _, v := range vs.Validators {
		vs.totalPower += v.Power
	}

	return vs
}

func (vs ValidatorSet) Len() int {
	return len(vs.Validators)
}

// TotalPower returns the sum of the voting power of all validators.
func (vs ValidatorSet) TotalPower() uint64 {
	return vs.totalPower
}

// GetByAddress returns the validator with the given address,
// or false if the address is not in the set.
func (vs ValidatorSet) GetByAddress(addr Address) (Validator, bool) {
	for _, v := range vs.Validators {
		if v.Address == addr {
			return v, true
		}
	}
	return Validator{}, false
}

// Index returns the position of the given address in canonical order,
// or -1 if the address is not in the set.
func (vs ValidatorSet) Index(addr Address) int {
	for i, v := range vs.Validators {
		if v.Address == addr {
			return i
		}
	}
	return -1
}
