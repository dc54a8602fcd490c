package malcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malachite-engine/malachite/mal/malcore"
)

func TestRound_NilSortsBelowDefined(t *testing.T) {
	t.Parallel()

	require.True(t, malcore.RoundNil < malcore.NewRound(0))
	require.True(t, malcore.NewRound(0) < malcore.NewRound(1))

	require.True(t, malcore.RoundNil.IsNil())
	require.False(t, malcore.RoundNil.IsDefined())
	require.True(t, malcore.NewRound(0).IsDefined())
}

func TestRound_Increment(t *testing.T) {
	t.Parallel()

	require.Equal(t, malcore.NewRound(0), malcore.RoundNil.Increment())
	require.Equal(t, malcore.NewRound(1), malcore.NewRound(0).Increment())
	require.Equal(t, malcore.NewRound(6), malcore.NewRound(5).Increment())
}

func TestHeight_IncrementDecrement(t *testing.T) {
	t.Parallel()

	h := malcore.InitialHeight
	require.Equal(t, malcore.Height(2), h.Increment())

	prev, ok := h.Decrement()
	require.True(t, ok)
	require.Equal(t, malcore.Height(0), prev)

	_, ok = prev.Decrement()
	require.False(t, ok)
}

func TestNilOrVal(t *testing.T) {
	t.Parallel()

	n := malcore.NilVal[malcore.ValueID]()
	require.True(t, n.IsNil())
	require.False(t, n.IsVal())

	_, ok := n.Value()
	require.False(t, ok)

	v := malcore.Val(malcore.ValueID("abc"))
	require.True(t, v.IsVal())

	id, ok := v.Value()
	require.True(t, ok)
	require.Equal(t, malcore.ValueID("abc"), id)

	// Distinct variants must not compare equal,
	// even against a zero-valued ID.
	require.NotEqual(t, malcore.NilVal[malcore.ValueID](), malcore.Val(malcore.ValueID("")))
}
