package mcrypto

// Signer is the private counterpart to a [PubKey].
//
// The consensus core never holds a Signer directly;
// it signs through a signing provider injected at driver construction,
// so that external or hardware-backed signers can be substituted.
type Signer interface {
	PubKey() PubKey

	Sign(msg []byte) ([]byte, error)
}
