package malcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malachite-engine/malachite/mal/malcore"
	"github.com/malachite-engine/malachite/mal/malcore/malcoretest"
)

func TestValidatorSet_CanonicalOrder(t *testing.T) {
	t.Parallel()

	privVals := malcoretest.DeterministicValidators(4)

	// Shuffle the input; the set must come out power-descending.
	vals := []malcore.Validator{
		privVals[2].Val, privVals[0].Val, privVals[3].Val, privVals[1].Val,
	}
	vs := malcore.NewValidatorSet(vals)

	require.Equal(t, 4, vs.Len())
	for i := 0; i < vs.Len()-1; i++ {
		require.GreaterOrEqual(t, vs.Validators[i].Power, vs.Validators[i+1].Power)
	}

	// Deterministic validators have strictly descending power,
	// so the canonical order matches generation order.
	for i, pv := range privVals {
		require.Equal(t, pv.Val.Address, vs.Validators[i].Address)
		require.Equal(t, i, vs.Index(pv.Val.Address))
	}
}

func TestValidatorSet_TotalPowerAndLookup(t *testing.T) {
	t.Parallel()

	fx := malcoretest.NewFixture(4)

	require.Equal(t, uint64(4), fx.ValSet.TotalPower())

	v, ok := fx.ValSet.GetByAddress(fx.Addr(2))
	require.True(t, ok)
	require.Equal(t, fx.Addr(2), v.Address)

	_, ok = fx.ValSet.GetByAddress("nobody")
	require.False(t, ok)
	require.Equal(t, -1, fx.ValSet.Index("nobody"))
}

func TestRoundRobinProposerSelector(t *testing.T) {
	t.Parallel()

	privVals := malcoretest.DeterministicValidators(4)
	vs := malcore.NewValidatorSet(privVals.Vals())

	var sel malcore.RoundRobinProposerSelector

	// Advances one position per round within a height.
	for r := uint32(0); r < 8; r++ {
		addr, ok := sel.SelectProposer(vs, 1, malcore.NewRound(r))
		require.True(t, ok)
		require.Equal(t, vs.Validators[int(r)%4].Address, addr)
	}

	// Advances one position per height at round zero.
	for h := uint64(1); h < 9; h++ {
		addr, ok := sel.SelectProposer(vs, malcore.Height(h), malcore.NewRound(0))
		require.True(t, ok)
		require.Equal(t, vs.Validators[int(h-1)%4].Address, addr)
	}

	// The same (set, height, round) always selects the same proposer.
	a1, _ := sel.SelectProposer(vs, 7, malcore.NewRound(3))
	a2, _ := sel.SelectProposer(vs, 7, malcore.NewRound(3))
	require.Equal(t, a1, a2)

	_, ok := sel.SelectProposer(vs, 1, malcore.RoundNil)
	require.False(t, ok)
}
