package mcrypto

type PubKey interface {
	// Address returns the short, unique identifier derived from the key,
	// used as the validator address on votes and proposals.
	Address() []byte

	PubKeyBytes() []byte

	Equal(other PubKey) bool

	Verify(msg, sig []byte) bool
}
