package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestApplyStake_CreditsVotingPower(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	target := types.Hash{2}
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{Balance: types.NewAmount(500)}))

	v := NewValidator()
	req := &types.Request{
		Envelope: types.Envelope{Type: types.RequestStake, Origin: origin},
		Stake:    &types.StakePayload{Target: target, Amount: types.NewAmount(300)},
	}
	require.NoError(t, v.applyStaking(tx, req, types.Hash{0xaa}, 5))

	account, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Equal(t, 0, account.Balance.Cmp(types.NewAmount(200)))

	staked, err := tx.GetStakedFunds(origin, target)
	require.NoError(t, err)
	require.Equal(t, 0, staked.Amount.Cmp(types.NewAmount(300)))

	vp, err := tx.GetVotingPower(target)
	require.NoError(t, err)
	require.Equal(t, 0, vp.Next.SelfStake.Cmp(types.NewAmount(300)))
}

func TestApplyUnstakeThenClaim_MaturedFundsReturnToBalance(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	target := types.Hash{2}
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{Balance: types.NewAmount(500)}))

	v := NewValidator()
	stakeReq := &types.Request{
		Envelope: types.Envelope{Type: types.RequestStake, Origin: origin},
		Stake:    &types.StakePayload{Target: target, Amount: types.NewAmount(300)},
	}
	require.NoError(t, v.applyStaking(tx, stakeReq, types.Hash{0xaa}, 1))

	unstakeReq := &types.Request{
		Envelope: types.Envelope{Type: types.RequestUnstake, Origin: origin},
		Unstake:  &types.UnstakePayload{Target: target},
	}
	require.NoError(t, v.applyStaking(tx, unstakeReq, types.Hash{0xbb}, 2))

	_, err = tx.GetStakedFunds(origin, target)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Rewrite the thawing row by hand at its expiration key (applyUnstake
	// already stores it there, so the delete of key 0 finds nothing).
	require.NoError(t, tx.DeleteThawingFunds(origin, 0))
	require.NoError(t, tx.PutThawingFunds(origin, 2+types.ThawingPeriod, &types.ThawingFunds{
		Origin: origin, Target: target, Amount: types.NewAmount(300),
		EpochCreated: 2, Expiration: 2 + types.ThawingPeriod,
	}))

	claimReq := &types.Request{
		Envelope: types.Envelope{Type: types.RequestClaim, Origin: origin},
		Claim:    &types.ClaimPayload{Target: target},
	}
	require.NoError(t, v.applyStaking(tx, claimReq, types.Hash{0xcc}, 2+types.ThawingPeriod))

	account, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Equal(t, 0, account.Balance.Cmp(types.NewAmount(500)))
}

func TestEffectiveVote_DilutesUnlockedProxy(t *testing.T) {
	snap := types.VotingPowerSnapshot{
		SelfStake:      types.NewAmount(100),
		LockedProxied:  types.NewAmount(50),
		UnlockedProxied: types.NewAmount(1000),
	}
	got := EffectiveVote(snap)
	// 100 + 50 + 600 (60% of 1000) = 750
	require.Equal(t, 0, got.Cmp(types.NewAmount(750)))
}
