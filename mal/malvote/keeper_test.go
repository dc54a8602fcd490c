package malvote_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mal/malcore/malcoretest"
	"github.com/malachite-engine/malachite/mal/malvote"
)

func newKeeper(fx *malcoretest.Fixture) *malvote.Keeper {
	return malvote.NewKeeper(fx.ValSet.TotalPower(), fx.Params)
}

func TestKeeper_PolkaValue(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	require.Nil(t, k.ApplyVote(fx.SignedPrevote(0, 1, 0, malcore.Val(v1.ID)), 1, 0))
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(1, 1, 0, malcore.Val(v1.ID)), 1, 0))

	out := k.ApplyVote(fx.SignedPrevote(2, 1, 0, malcore.Val(v1.ID)), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.PolkaValueOutput(0, v1.ID), *out)

	// The fourth prevote completes no new value quorum,
	// but the any-threshold is still pending and fires now.
	out = k.ApplyVote(fx.SignedPrevote(3, 1, 0, malcore.Val(v1.ID)), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.PolkaAnyOutput(0), *out)
}

func TestKeeper_PolkaNil(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	k := newKeeper(fx)

	nilVal := malcore.NilVal[malcore.ValueID]()

	require.Nil(t, k.ApplyVote(fx.SignedPrevote(0, 1, 0, nilVal), 1, 0))
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(1, 1, 0, nilVal), 1, 0))

	out := k.ApplyVote(fx.SignedPrevote(2, 1, 0, nilVal), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.PolkaNilOutput(0), *out)
}

func TestKeeper_PolkaAny_MixedTargets(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	v2 := malcoretest.NewValue([]byte("v2"))
	k := newKeeper(fx)

	require.Nil(t, k.ApplyVote(fx.SignedPrevote(0, 1, 0, malcore.Val(v1.ID)), 1, 0))
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(1, 1, 0, malcore.Val(v2.ID)), 1, 0))

	out := k.ApplyVote(fx.SignedPrevote(2, 1, 0, malcore.NilVal[malcore.ValueID]()), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.PolkaAnyOutput(0), *out)
}

func TestKeeper_PrecommitValue(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	require.Nil(t, k.ApplyVote(fx.SignedPrecommit(0, 1, 0, malcore.Val(v1.ID)), 1, 0))
	require.Nil(t, k.ApplyVote(fx.SignedPrecommit(1, 1, 0, malcore.Val(v1.ID)), 1, 0))

	out := k.ApplyVote(fx.SignedPrecommit(2, 1, 0, malcore.Val(v1.ID)), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.PrecommitValueOutput(0, v1.ID), *out)
}

func TestKeeper_EmitsEachEventOnce(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	votes := []malcore.SignedVote{
		fx.SignedPrevote(0, 1, 0, malcore.Val(v1.ID)),
		fx.SignedPrevote(1, 1, 0, malcore.Val(v1.ID)),
		fx.SignedPrevote(2, 1, 0, malcore.Val(v1.ID)),
	}

	var emitted []malvote.Output
	// Feed the quorum three times over;
	// duplicate votes are no-ops and events fire exactly once.
	for range 3 {
		for _, sv := range votes {
			if out := k.ApplyVote(sv, 1, 0); out != nil {
				emitted = append(emitted, *out)
			}
		}
	}

	require.Equal(t, []malvote.Output{malvote.PolkaValueOutput(0, v1.ID)}, emitted)
}

func TestKeeper_SkipRound(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	// One voter from round 1 is below the honest threshold.
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(1, 1, 1, malcore.Val(v1.ID)), 1, 0))

	// A second distinct voter meets it.
	out := k.ApplyVote(fx.SignedPrecommit(2, 1, 1, malcore.Val(v1.ID)), 1, 0)
	require.NotNil(t, out)
	require.Equal(t, malvote.SkipRoundOutput(1), *out)

	// Only once.
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(3, 1, 1, malcore.Val(v1.ID)), 1, 0))
}

func TestKeeper_NoSkipForCurrentOrPastRound(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	// Same voters, but the keeper's current round is already 1.
	require.Nil(t, k.ApplyVote(fx.SignedPrevote(1, 1, 1, malcore.Val(v1.ID)), 1, 1))
	require.Nil(t, k.ApplyVote(fx.SignedPrecommit(2, 1, 1, malcore.Val(v1.ID)), 1, 1))
}

func TestKeeper_Equivocation(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	v2 := malcoretest.NewValue([]byte("v2"))
	k := newKeeper(fx)

	first := fx.SignedPrevote(1, 1, 0, malcore.Val(v1.ID))
	second := fx.SignedPrevote(1, 1, 0, malcore.Val(v2.ID))

	require.Nil(t, k.ApplyVote(first, 1, 0))
	require.Nil(t, k.ApplyVote(second, 1, 0))

	ev := k.Evidence()
	require.False(t, ev.IsEmpty())
	require.Equal(t, []malcore.Address{fx.Addr(1)}, ev.Addresses())

	doubles := ev.Get(fx.Addr(1))
	require.Len(t, doubles, 1)
	require.Equal(t, first, doubles[0].Existing)
	require.Equal(t, second, doubles[0].Conflicting)
}

func TestKeeper_ThresholdQueries(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)
	v1 := malcoretest.NewValue([]byte("v1"))
	k := newKeeper(fx)

	require.False(t, k.IsThresholdMet(0, malcore.VoteTypePrevote, malcore.ThresholdAny()))

	for i := range 3 {
		k.ApplyVote(fx.SignedPrevote(i, 1, 0, malcore.Val(v1.ID)), 1, 0)
	}

	require.True(t, k.IsThresholdMet(0, malcore.VoteTypePrevote, malcore.ThresholdValue(v1.ID)))
	require.True(t, k.IsThresholdMet(0, malcore.VoteTypePrevote, malcore.ThresholdAny()))
	require.False(t, k.IsThresholdMet(0, malcore.VoteTypePrecommit, malcore.ThresholdAny()))

	id, ok := k.QuorumValue(0, malcore.VoteTypePrevote)
	require.True(t, ok)
	require.Equal(t, v1.ID, id)

	_, ok = k.QuorumValue(0, malcore.VoteTypePrecommit)
	require.False(t, ok)
	_, ok = k.QuorumValue(5, malcore.VoteTypePrevote)
	require.False(t, ok)
}
