package malcore

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// CommitSignature is one validator's precommit signature
// inside a commit certificate.
type CommitSignature struct {
	Address   Address
	Signature []byte
}

// CommitCertificate aggregates precommit signatures for one value,
// forming a portable proof that the value was decided.
type CommitCertificate struct {
	Height Height
	Round  Round

	ValueID ValueID

	Signatures []CommitSignature
}

// PolkaSignature is one validator's prevote signature
// inside a polka certificate.
type PolkaSignature struct {
	Address   Address
	Signature []byte
}

// PolkaCertificate aggregates prevote signatures for one value,
// proving a polka was observed at the given round.
type PolkaCertificate struct {
	Height Height
	Round  Round

	ValueID ValueID

	Signatures []PolkaSignature
}

type CertificateErrorKind uint8

const (
	_ CertificateErrorKind = iota // Invalid.

	CertificateUnknownSigner
	CertificateDuplicateSigner
	CertificateInvalidSignature
	CertificateInsufficientPower
)

// CertificateError describes why a certificate failed verification.
type CertificateError struct {
	Kind CertificateErrorKind

	// The signer concerned, for the per-signer kinds.
	Address Address

	// Signed and required voting power, for CertificateInsufficientPower.
	SignedPower   uint64
	RequiredPower uint64
}

func (e CertificateError) Error() string {
	switch e.Kind {
	case CertificateUnknownSigner:
		return fmt.Sprintf("certificate signer %s not in validator set", e.Address)
	case CertificateDuplicateSigner:
		return fmt.Sprintf("certificate contains duplicate signature from %s", e.Address)
	case CertificateInvalidSignature:
		return fmt.Sprintf("certificate contains invalid signature from %s", e.Address)
	case CertificateInsufficientPower:
		return fmt.Sprintf(
			"certificate signed power %d does not meet required power %d",
			e.SignedPower, e.RequiredPower,
		)
	default:
		return fmt.Sprintf("certificate error (%d)", uint8(e.Kind))
	}
}

// Verify checks the certificate against the validator set for its height:
// every signer must belong to the set and appear at most once,
// every signature must verify over the corresponding precommit,
// and the aggregate signing power must meet the quorum threshold.
func (c CommitCertificate) Verify(
	sp SigningProvider,
	vs ValidatorSet,
	params ThresholdParams,
) error {
	var signers bitset.BitSet
	var signedPower uint64

	for _, cs := range c.Signatures {
		idx := vs.Index(cs.Address)
		if idx < 0 {
			return CertificateError{Kind: CertificateUnknownSigner, Address: cs.Address}
		}
		if signers.Test(uint(idx)) {
			return CertificateError{Kind: CertificateDuplicateSigner, Address: cs.Address}
		}
		signers.Set(uint(idx))

		val := vs.Validators[idx]
		vote := NewPrecommit(c.Height, c.Round, Val(c.ValueID), cs.Address)
		if !sp.VerifyVote(SignedVote{Vote: vote, Signature: cs.Signature}, val.PubKey) {
			return CertificateError{Kind: CertificateInvalidSignature, Address: cs.Address}
		}

		signedPower += val.Power
	}

	if !params.Quorum.IsMet(signedPower, vs.TotalPower()) {
		return CertificateError{
			Kind:          CertificateInsufficientPower,
			SignedPower:   signedPower,
			RequiredPower: vs.TotalPower()*params.Quorum.Num/params.Quorum.Den + 1,
		}
	}

	return nil
}

// Verify checks the polka certificate the same way as a commit certificate,
// but over prevotes.
func (c PolkaCertificate) Verify(
	sp SigningProvider,
	vs ValidatorSet,
	params ThresholdParams,
) error {
	var signers bitset.BitSet
	var signedPower uint64

	for _, ps := range c.Signatures {
		idx := vs.Index(ps.Address)
		if idx < 0 {
			return CertificateError{Kind: CertificateUnknownSigner, Address: ps.Address}
		}
		if signers.Test(uint(idx)) {
			return CertificateError{Kind: CertificateDuplicateSigner, Address: ps.Address}
		}
		signers.Set(uint(idx))

		val := vs.Validators[idx]
		vote := NewPrevote(c.Height, c.Round, Val(c.ValueID), ps.Address)
		if !sp.VerifyVote(SignedVote{Vote: vote, Signature: ps.Signature}, val.PubKey) {
			return CertificateError{Kind: CertificateInvalidSignature, Address: ps.Address}
		}

		signedPower += val.Power
	}

	if !params.Quorum.IsMet(signedPower, vs.TotalPower()) {
		return CertificateError{
			Kind:          CertificateInsufficientPower,
			SignedPower:   signedPower,
			RequiredPower: vs.TotalPower()*params.Quorum.Num/params.Quorum.Den + 1,
		}
	}

	return nil
}
