package malcoretest

import (
	"fmt"

	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mcrypto"
)

// SigningProvider is a test implementation of [malcore.SigningProvider]
// backed by a set of in-memory signers.
//
// Sign bytes are a plain text encoding of the message fields.
// The encoding is injective over (type, height, round, value, address),
// which is all a correct signing scheme needs to guarantee.
type SigningProvider struct {
	signers map[malcore.Address]mcrypto.Signer
}

func NewSigningProvider(vals PrivVals) *SigningProvider {
	signers := make(map[malcore.Address]mcrypto.Signer, len(vals))
	for _, pv := range vals {
		signers[pv.Val.Address] = pv.Signer
	}
	return &SigningProvider{signers: signers}
}

// VoteSignBytes returns the canonical bytes signed for a vote.
func VoteSignBytes(v malcore.Vote) []byte {
	value := "nil"
	if id, ok := v.Value.Value(); ok {
		value = fmt.Sprintf("%x", string(id))
	}
	return []byte(fmt.Sprintf(
		"vote:%s/%d/%d/%s/%s",
		v.Type, v.Height, v.Round, value, v.Validator,
	))
}

// ProposalSignBytes returns the canonical bytes signed for a proposal.
func ProposalSignBytes(p malcore.Proposal) []byte {
	return []byte(fmt.Sprintf(
		"proposal:%d/%d/%x/%d/%s",
		p.Height, p.Round, string(p.Value.ID), p.POLRound, p.Proposer,
	))
}

func (sp *SigningProvider) SignVote(v malcore.Vote) (malcore.SignedVote, error) {
	signer, ok := sp.signers[v.Validator]
	if !ok {
		return malcore.SignedVote{}, fmt.Errorf("no signer for address %s", v.Validator)
	}

	sig, err := signer.Sign(VoteSignBytes(v))
	if err != nil {
		return malcore.SignedVote{}, fmt.Errorf("failed to sign vote: %w", err)
	}

	return malcore.SignedVote{Vote: v, Signature: sig}, nil
}

func (sp *SigningProvider) SignProposal(p malcore.Proposal) (malcore.SignedProposal, error) {
	signer, ok := sp.signers[p.Proposer]
	if !ok {
		return malcore.SignedProposal{}, fmt.Errorf("no signer for address %s", p.Proposer)
	}

	sig, err := signer.Sign(ProposalSignBytes(p))
	if err != nil {
		return malcore.SignedProposal{}, fmt.Errorf("failed to sign proposal: %w", err)
	}

	return malcore.SignedProposal{Proposal: p, Signature: sig}, nil
}

func (sp *SigningProvider) VerifyVote(sv malcore.SignedVote, pubKey mcrypto.PubKey) bool {
	return pubKey.Verify(VoteSignBytes(sv.Vote), sv.Signature)
}

func (sp *SigningProvider) VerifyProposal(p malcore.SignedProposal, pubKey mcrypto.PubKey) bool {
	return pubKey.Verify(ProposalSignBytes(p.Proposal), p.Signature)
}
