package mcrypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malachite-engine/malachite/mcrypto"
	"github.com/malachite-engine/malachite/mcrypto/mcryptotest"
)

func TestEd25519_SignVerify(t *testing.T) {
	t.Parallel()

	signers := mcryptotest.DeterministicEd25519Signers(2)

	msg := []byte("sign me")
	sig, err := signers[0].Sign(msg)
	require.NoError(t, err)

	require.True(t, signers[0].PubKey().Verify(msg, sig))
	require.False(t, signers[0].PubKey().Verify([]byte("other"), sig))
	require.False(t, signers[1].PubKey().Verify(msg, sig))
}

func TestEd25519_Address(t *testing.T) {
	t.Parallel()

	signers := mcryptotest.DeterministicEd25519Signers(2)

	require.Len(t, signers[0].PubKey().Address(), mcrypto.AddressSize)
	require.NotEqual(t, signers[0].PubKey().Address(), signers[1].PubKey().Address())
}

func TestEd25519_Equal(t *testing.T) {
	t.Parallel()

	signers := mcryptotest.DeterministicEd25519Signers(2)

	again, err := mcrypto.NewEd25519PubKey(signers[0].PubKey().PubKeyBytes())
	require.NoError(t, err)

	require.True(t, signers[0].PubKey().Equal(again))
	require.False(t, signers[0].PubKey().Equal(signers[1].PubKey()))
}

func TestDeterministicSigners_StableAcrossCalls(t *testing.T) {
	t.Parallel()

	a := mcryptotest.DeterministicEd25519Signers(3)
	b := mcryptotest.DeterministicEd25519Signers(3)

	for i := range a {
		require.True(t, a[i].PubKey().Equal(b[i].PubKey()))
	}
}
