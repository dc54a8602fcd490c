package mcryptotest

import (
	"crypto/ed25519"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/malachite-engine/malachite/mcrypto"
)

var (
	muSigners sync.Mutex

	// Deterministic signers generated so far.
	// Grown as needed by DeterministicEd25519Signers.
	generatedSigners []mcrypto.Ed25519Signer
)

// DeterministicEd25519Signers returns n deterministically generated
// ed25519 signers.
//
// Deterministic keys keep logs and IDs stable across test runs,
// and generated keys are cached so repeated calls cost nothing
// beyond the first generation.
func DeterministicEd25519Signers(n int) []mcrypto.Ed25519Signer {
	muSigners.Lock()
	defer muSigners.Unlock()

	for i := len(generatedSigners); i < n; i++ {
		seed := blake2b.Sum256([]byte(fmt.Sprintf("malachite:ed25519:%d", i)))
		priv := ed25519.NewKeyFromSeed(seed[:])
		generatedSigners = append(generatedSigners, mcrypto.NewEd25519Signer(priv))
	}

	out := make([]mcrypto.Ed25519Signer, n)
	copy(out, generatedSigners)
	return out
}
