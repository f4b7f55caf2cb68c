package blockcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto/blstest"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// fixedCommittee hands out the same N-signer committee for every epoch,
// enough to exercise the cache's verify-then-admit path without a real
// epoch manager.
type fixedCommittee struct {
	signers []*blstest.Signer
}

func newFixedCommittee(n int) *fixedCommittee {
	fc := &fixedCommittee{}
	for i := 0; i < n; i++ {
		fc.signers = append(fc.signers, blstest.NewSigner(types.DelegateIdx(i)))
	}
	return fc
}

func (fc *fixedCommittee) Committee(types.EpochNum) ([]crypto.BLSPublicKey, error) {
	pubs := make([]crypto.BLSPublicKey, len(fc.signers))
	for i, s := range fc.signers {
		pubs[i] = s.PublicKey()
	}
	return pubs, nil
}

func signRB(t *testing.T, fc *fixedCommittee, rb *types.RequestBlock, signerIdx ...int) {
	t.Helper()
	digest := crypto.MustDigest(rb)
	shares := map[types.DelegateIdx]crypto.BLSShare{}
	for _, i := range signerIdx {
		share, err := fc.signers[i].Sign(digest)
		require.NoError(t, err)
		shares[types.DelegateIdx(i)] = share
		rb.AggSig.Bitmap.Set(types.DelegateIdx(i))
	}
	agg := blstest.NewAggregator()
	sig, err := agg.Aggregate(shares)
	require.NoError(t, err)
	rb.AggSig.Signature = sig
}

func TestAddRB_RejectsBadSignature(t *testing.T) {
	fc := newFixedCommittee(4)
	s := store.NewMemStore()
	c := New(fc, blstest.NewAggregator(), persistence.NewValidator(), s)

	rb := &types.RequestBlock{EpochNum: 1, Sequence: 0, Timestamp: time.Unix(1, 0)}
	// No signature set: the zero aggregate would verify against an empty
	// bitmap (no contributors to combine), so mark delegate 0 in the bitmap
	// without adding its share, leaving the aggregate out of step.
	rb.AggSig.Bitmap.Set(0)
	_, err := c.AddRB(rb)
	require.ErrorIs(t, err, ErrBadAggregateSig)
}

func TestAddRB_AcceptsValidSignatureAndReportsHeadInsertion(t *testing.T) {
	fc := newFixedCommittee(4)
	s := store.NewMemStore()
	c := New(fc, blstest.NewAggregator(), persistence.NewValidator(), s)

	rb := &types.RequestBlock{EpochNum: 1, Sequence: 0, Timestamp: time.Unix(1, 0)}
	signRB(t, fc, rb, 0, 1, 2)

	atHead, err := c.AddRB(rb)
	require.NoError(t, err)
	require.True(t, atHead)
	require.True(t, c.Contains(crypto.MustDigest(rb)))
}

func TestAddRB_DuplicateRejected(t *testing.T) {
	fc := newFixedCommittee(4)
	s := store.NewMemStore()
	c := New(fc, blstest.NewAggregator(), persistence.NewValidator(), s)

	rb := &types.RequestBlock{EpochNum: 1, Sequence: 0, Timestamp: time.Unix(1, 0)}
	signRB(t, fc, rb, 0, 1, 2)

	_, err := c.AddRB(rb)
	require.NoError(t, err)

	_, err = c.AddRB(rb)
	require.ErrorIs(t, err, ErrAlreadyCached)
}

func TestValidate_AppliesContiguousRB(t *testing.T) {
	fc := newFixedCommittee(4)
	s := store.NewMemStore()
	v := persistence.NewValidator()
	c := New(fc, blstest.NewAggregator(), v, s)

	origin := types.Hash{1}
	tx, err := s.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.PutAccount(origin, &types.UserAccount{Balance: types.NewAmount(1000)}))
	require.NoError(t, tx.Commit())

	req := &types.Request{
		Envelope: types.Envelope{Type: types.RequestSend, Origin: origin, Fee: types.NewAmount(10)},
		Send:     &types.SendPayload{To: types.Hash{2}, Amount: types.NewAmount(50)},
	}
	rb := &types.RequestBlock{
		PrimaryDelegateIdx: 0,
		EpochNum:           1,
		Sequence:           0,
		Timestamp:          time.Unix(1, 0),
		Requests:           []types.Request{*req},
	}
	signRB(t, fc, rb, 0, 1, 2)

	_, err = c.AddRB(rb)
	require.NoError(t, err)

	require.NoError(t, c.Validate(0))

	tx2, err := s.Begin()
	require.NoError(t, err)
	defer tx2.Rollback()
	tip, err := tx2.GetRBTip(0)
	require.NoError(t, err)
	require.Equal(t, crypto.MustDigest(rb), tip)
}
