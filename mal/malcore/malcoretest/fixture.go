package malcoretest

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
)

// Fixture is a set of values used for typical test flows
// involving validators and voting,
// with convenience methods for common test actions.
//
// All validators in a fixture have voting power 1,
// matching the hand-checked threshold scenarios
// (n=4: quorum 3, honest threshold 2).
type Fixture struct {
	PrivVals PrivVals

	ValSet malcore.ValidatorSet

	Params malcore.ThresholdParams

	Signing *SigningProvider
}

func NewFixture(n int) *Fixture {
	privVals := EqualPowerValidators(n)

	return &Fixture{
		PrivVals: privVals,
		ValSet:   malcore.NewValidatorSet(privVals.Vals()),
		Params:   malcore.DefaultThresholdParams(),
		Signing:  NewSigningProvider(privVals),
	}
}

// Addr returns the address of the i-th fixture validator
// (in generation order, not canonical set order).
func (f *Fixture) Addr(i int) malcore.Address {
	return f.PrivVals[i].Val.Address
}

// SignedPrevote returns a prevote from the i-th fixture validator,
// signed with its key.
func (f *Fixture) SignedPrevote(
	i int,
	h malcore.Height,
	r malcore.Round,
	value malcore.NilOrVal[malcore.ValueID],
) malcore.SignedVote {
	sv, err := f.Signing.SignVote(malcore.NewPrevote(h, r, value, f.Addr(i)))
	if err != nil {
		panic(fmt.Errorf("fixture failed to sign prevote: %w", err))
	}
	return sv
}

// SignedPrecommit returns a precommit from the i-th fixture validator.
func (f *Fixture) SignedPrecommit(
	i int,
	h malcore.Height,
	r malcore.Round,
	value malcore.NilOrVal[malcore.ValueID],
) malcore.SignedVote {
	sv, err := f.Signing.SignVote(malcore.NewPrecommit(h, r, value, f.Addr(i)))
	if err != nil {
		panic(fmt.Errorf("fixture failed to sign precommit: %w", err))
	}
	return sv
}

// SignedProposal returns a proposal from the i-th fixture validator.
func (f *Fixture) SignedProposal(
	i int,
	h malcore.Height,
	r malcore.Round,
	value malcore.Value,
	polRound malcore.Round,
) malcore.SignedProposal {
	sp, err := f.Signing.SignProposal(malcore.NewProposal(h, r, value, polRound, f.Addr(i)))
	if err != nil {
		panic(fmt.Errorf("fixture failed to sign proposal: %w", err))
	}
	return sp
}

// CommitCertificate returns a certificate carrying precommit signatures
// from the given fixture validators.
func (f *Fixture) CommitCertificate(
	h malcore.Height,
	r malcore.Round,
	valueID malcore.ValueID,
	signerIdxs ...int,
) malcore.CommitCertificate {
	cert := malcore.CommitCertificate{
		Height:  h,
		Round:   r,
		ValueID: valueID,
	}

	for _, i := range signerIdxs {
		sv := f.SignedPrecommit(i, h, r, malcore.Val(valueID))
		cert.Signatures = append(cert.Signatures, malcore.CommitSignature{
			Address:   sv.Vote.Validator,
			Signature: sv.Signature,
		})
	}

	return cert
}

// PolkaCertificate returns a certificate carrying prevote signatures
// from the given fixture validators.
func (f *Fixture) PolkaCertificate(
	h malcore.Height,
	r malcore.Round,
	valueID malcore.ValueID,
	signerIdxs ...int,
) malcore.PolkaCertificate {
	cert := malcore.PolkaCertificate{
		Height:  h,
		Round:   r,
		ValueID: valueID,
	}

	for _, i := range signerIdxs {
		sv := f.SignedPrevote(i, h, r, malcore.Val(valueID))
		cert.Signatures = append(cert.Signatures, malcore.PolkaSignature{
			Address:   sv.Vote.Validator,
			Signature: sv.Signature,
		})
	}

	return cert
}
