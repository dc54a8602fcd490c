package malcoretest

import (
	"golang.org/x/crypto/blake2b"

	"github.com/malachite-engine/malachite/mal/malcore"
)

// NewValue returns a test value whose ID is the blake2b digest of data.
func NewValue(data []byte) malcore.Value {
	sum := blake2b.Sum256(data)
	return malcore.Value{
		ID:   malcore.ValueID(sum[:]),
		Data: data,
	}
}
