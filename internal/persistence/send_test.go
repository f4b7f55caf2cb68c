package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func openAccount(t *testing.T, tx store.Tx, account types.Hash, balance types.Amount) {
	t.Helper()
	require.NoError(t, tx.PutAccount(account, &types.UserAccount{Balance: balance}))
}

func sendRequest(origin, previous types.Hash, seq uint32, amount, fee types.Amount) *types.Request {
	return &types.Request{
		Envelope: types.Envelope{
			Type:     types.RequestSend,
			Origin:   origin,
			Previous: previous,
			Fee:      fee,
			Sequence: seq,
		},
		Send: &types.SendPayload{To: types.Hash{0xde}, Amount: amount},
	}
}

// TestValidateSend_HappyPath covers a first Send request on a freshly
// opened account.
func TestValidateSend_HappyPath(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	v := NewValidator()
	req := sendRequest(origin, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(10))

	res, err := v.ValidateSend(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, res.Code)
}

// TestValidateSend_Fork covers a second request naming a stale previous,
// which is rejected as a fork.
func TestValidateSend_Fork(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	v := NewValidator()
	req1 := sendRequest(origin, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(10))
	res1, err := v.ValidateSend(tx, req1, 1, false)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, res1.Code)

	rb := &types.RequestBlock{Requests: []types.Request{*req1}}
	require.NoError(t, NewValidator().ApplyRB(tx, rb))

	req2 := sendRequest(origin, types.ZeroHash, 2, types.NewAmount(50), types.NewAmount(10))
	res2, err := v.ValidateSend(tx, req2, 1, false)
	require.NoError(t, err)
	require.Equal(t, CodeFork, res2.Code)
}

// TestValidateSend_DuplicateResubmission covers the same request content
// resubmitted after being applied: accepted again as progress rather than
// rejected, when duplicates are allowed.
func TestValidateSend_DuplicateResubmission(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	v := NewValidator()
	req := sendRequest(origin, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(10))

	res1, err := v.ValidateSend(tx, req, 1, true)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, res1.Code)

	rb := &types.RequestBlock{Requests: []types.Request{*req}}
	require.NoError(t, v.ApplyRB(tx, rb))

	res2, err := v.ValidateSend(tx, req, 1, true)
	require.NoError(t, err)
	require.Equal(t, CodeProgress, res2.Code)
	require.Equal(t, res1.Hash, res2.Hash)
}

func TestValidateSend_InsufficientFee(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	v := NewValidator()
	req := sendRequest(origin, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(1))
	res, err := v.ValidateSend(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, CodeInsufficientFee, res.Code)
}

func TestValidateSend_UnknownSourceAccount(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	v := NewValidator()
	req := sendRequest(types.Hash{99}, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(10))
	res, err := v.ValidateSend(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, CodeUnknownSourceAcct, res.Code)
}

func TestApplyRB_CreditsDestination(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	v := NewValidator()
	req := sendRequest(origin, types.ZeroHash, 1, types.NewAmount(100), types.NewAmount(10))
	_, err = v.ValidateSend(tx, req, 1, false)
	require.NoError(t, err)

	rb := &types.RequestBlock{Requests: []types.Request{*req}}
	require.NoError(t, v.ApplyRB(tx, rb))

	dest, err := tx.GetAccount(req.Send.To)
	require.NoError(t, err)
	require.Equal(t, 0, dest.Balance.Cmp(types.NewAmount(100)))

	srcAccount, err := tx.GetAccount(origin)
	require.NoError(t, err)
	require.Equal(t, 0, srcAccount.Balance.Cmp(types.NewAmount(890)))
	require.Equal(t, types.ZeroHash, srcAccount.Reservation)

	rbHash := crypto.MustDigest(rb)
	tip, err := tx.GetRBTip(rb.PrimaryDelegateIdx)
	require.NoError(t, err)
	require.Equal(t, rbHash, tip)
}
