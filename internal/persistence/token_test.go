package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestApplyTokenSend_FlatFee(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	tokenID := types.Hash{0xa1}
	origin := types.Hash{1}
	dest := types.Hash{2}

	require.NoError(t, tx.PutTokenAccount(tokenID, &types.TokenAccount{
		FeeType: types.TokenFeeFlat,
		FeeRate: types.NewAmount(5),
	}))
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{
		TokenEntries: []types.TokenEntry{{TokenID: tokenID, Balance: types.NewAmount(100)}},
	}))

	v := NewValidator()
	req := &types.Request{
		Envelope: types.Envelope{Type: types.RequestTokenSend, Origin: origin},
		TokenSend: &types.TokenSendPayload{TokenID: tokenID, To: dest, Amount: types.NewAmount(40)},
	}
	require.NoError(t, v.applyTokenSend(tx, req, types.Hash{0xff}))

	originAccount, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Equal(t, 0, originAccount.TokenEntries[0].Balance.Cmp(types.NewAmount(55)))

	destAccount, err := tx.GetAccount(dest)
	require.NoError(t, err)
	require.Equal(t, 0, destAccount.TokenEntries[0].Balance.Cmp(types.NewAmount(40)))

	token, err := tx.GetTokenAccount(tokenID)
	require.NoError(t, err)
	require.Equal(t, 0, token.TokenFeeBalance.Cmp(types.NewAmount(5)))
}

func TestApplyTokenSend_PercentageFee(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	tokenID := types.Hash{0xa2}
	origin := types.Hash{1}

	require.NoError(t, tx.PutTokenAccount(tokenID, &types.TokenAccount{
		FeeType: types.TokenFeePercentage,
		FeeRate: types.NewAmount(500), // 5% (parts-per-10000)
	}))
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{
		TokenEntries: []types.TokenEntry{{TokenID: tokenID, Balance: types.NewAmount(1000)}},
	}))

	v := NewValidator()
	req := &types.Request{
		Envelope: types.Envelope{Type: types.RequestTokenSend, Origin: origin},
		TokenSend: &types.TokenSendPayload{TokenID: tokenID, To: types.Hash{3}, Amount: types.NewAmount(200)},
	}
	require.NoError(t, v.applyTokenSend(tx, req, types.Hash{0xee}))

	// fee = 200 * 500 / 10000 = 10
	token, err := tx.GetTokenAccount(tokenID)
	require.NoError(t, err)
	require.Equal(t, 0, token.TokenFeeBalance.Cmp(types.NewAmount(10)))

	originAccount, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Equal(t, 0, originAccount.TokenEntries[0].Balance.Cmp(types.NewAmount(790)))
}

func TestApplyIssuance(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	tokenID := types.Hash{0xb1}
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{}))

	v := NewValidator()
	req := &types.Request{
		Envelope: types.Envelope{Type: types.RequestIssuance, Origin: origin},
		Issuance: &types.IssuancePayload{
			TokenID:     tokenID,
			Symbol:      "LGS",
			TotalSupply: types.NewAmount(1_000_000),
			FeeType:     types.TokenFeeFlat,
			FeeRate:     types.NewAmount(1),
		},
	}
	require.NoError(t, v.applyTokenGovernance(tx, req, types.Hash{0xcc}))

	token, err := tx.GetTokenAccount(tokenID)
	require.NoError(t, err)
	require.Equal(t, 0, token.TotalSupply.Cmp(types.NewAmount(1_000_000)))

	account, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Len(t, account.TokenEntries, 1)
	require.Equal(t, 0, account.TokenEntries[0].Balance.Cmp(types.NewAmount(1_000_000)))
}

func TestApplyTokenSetting_ImmuteSetting(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	tokenID := types.Hash{0xb2}
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{}))
	require.NoError(t, tx.PutTokenAccount(tokenID, &types.TokenAccount{
		Settings: 1 << uint(types.SettingAdjustFeeModifiable),
	}))

	v := NewValidator()
	require.True(t, mustTokenAccount(t, tx, tokenID).SettingIsMutable(types.SettingAdjustFee))

	req := &types.Request{
		Envelope:   types.Envelope{Type: types.RequestImmuteSetting, Origin: origin},
		Governance: &types.GovernancePayload{TokenID: tokenID, Setting: types.SettingAdjustFee},
	}
	require.NoError(t, v.applyTokenGovernance(tx, req, types.Hash{0xdd}))

	require.False(t, mustTokenAccount(t, tx, tokenID).SettingIsMutable(types.SettingAdjustFee))
}

func mustTokenAccount(t *testing.T, tx store.Tx, id types.Hash) *types.TokenAccount {
	t.Helper()
	tok, err := tx.GetTokenAccount(id)
	require.NoError(t, err)
	return tok
}
