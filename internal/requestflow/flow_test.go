package requestflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

type recordingSubmitter struct {
	submitted []*types.Request
	err       error
}

func (r *recordingSubmitter) Submit(req *types.Request) error {
	if r.err != nil {
		return r.err
	}
	r.submitted = append(r.submitted, req)
	return nil
}

func openAccount(t *testing.T, tx store.Tx, account types.Hash, balance types.Amount) {
	t.Helper()
	require.NoError(t, tx.PutAccount(account, &types.UserAccount{Balance: balance}))
}

func sendRequest(origin types.Hash, amount, fee types.Amount) *types.Request {
	return &types.Request{
		Envelope: types.Envelope{
			Type:     types.RequestSend,
			Origin:   origin,
			Previous: types.ZeroHash,
			Fee:      fee,
			Sequence: 1,
		},
		Send: &types.SendPayload{To: types.Hash{0xde}, Amount: amount},
	}
}

func TestFlow_OnSendRequest_AcceptedSubmitsToConsensus(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	sub := &recordingSubmitter{}
	f := New(persistence.NewValidator(), sub)

	req := sendRequest(origin, types.NewAmount(100), types.NewAmount(10))
	ret, err := f.OnSendRequest(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, persistence.CodeProgress, ret.Code)
	require.Len(t, sub.submitted, 1)
}

func TestFlow_OnSendRequest_RejectedNeverSubmitted(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	sub := &recordingSubmitter{}
	f := New(persistence.NewValidator(), sub)

	req := sendRequest(origin, types.NewAmount(100), types.NewAmount(1)) // below min fee
	ret, err := f.OnSendRequest(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, persistence.CodeInsufficientFee, ret.Code)
	require.Empty(t, sub.submitted)
}

func TestFlow_OnSendRequest_BufferedDuringEpochTransition(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	origin := types.Hash{1}
	openAccount(t, tx, origin, types.NewAmount(1000))

	sub := &recordingSubmitter{}
	f := New(persistence.NewValidator(), sub)

	req := sendRequest(origin, types.NewAmount(100), types.NewAmount(10))
	ret, err := f.OnSendRequest(tx, req, 1, true)
	require.NoError(t, err)
	require.Equal(t, persistence.CodeBufferingDone, ret.Code)
	require.Empty(t, sub.submitted)
}

func TestFlow_OnSendRequest_UnvalidatedTypePassesThrough(t *testing.T) {
	s := store.NewMemStore()
	tx, err := s.Begin()
	require.NoError(t, err)

	sub := &recordingSubmitter{}
	f := New(persistence.NewValidator(), sub)

	req := &types.Request{Envelope: types.Envelope{Type: types.RequestType(99), Origin: types.Hash{7}}}
	ret, err := f.OnSendRequest(tx, req, 1, false)
	require.NoError(t, err)
	require.Equal(t, persistence.CodeProgress, ret.Code)
	require.Len(t, sub.submitted, 1)
}
