package malcore

import "github.com/malachite-engine/malachite/mcrypto"

// SigningProvider signs the node's own consensus messages
// and verifies the signatures of received ones.
//
// The core treats signatures as opaque byte strings.
// Implementations must be deterministic:
// byte-for-byte signature stability across runs is required
// for commit certificates to be reproducible.
type SigningProvider interface {
	SignVote(v Vote) (SignedVote, error)

	SignProposal(p Proposal) (SignedProposal, error)

	VerifyVote(sv SignedVote, pubKey mcrypto.PubKey) bool

	VerifyProposal(sp SignedProposal, pubKey mcrypto.PubKey) bool
}
