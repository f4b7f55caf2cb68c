package epoch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestManager_BeginAndCompleteTransition(t *testing.T) {
	current := &Set{Num: 1}
	m := NewManager(current)

	var standupNext *Set
	m.OnTransitionStart(func(next *Set) { standupNext = next })

	var retired *Set
	m.OnEpochStart(func(outgoing *Set) { retired = outgoing })

	require.Equal(t, None, m.State())

	next := &Set{Num: 2}
	m.BeginTransition(next)
	require.Equal(t, EpochTransitionStart, m.State())
	require.Same(t, next, standupNext)

	m.CompleteTransition()
	require.Equal(t, EpochStart, m.State())
	require.Same(t, current, retired)
	require.Same(t, next, m.Current())

	m.Settle()
	require.Equal(t, None, m.State())
}

func TestManager_RecallOnQuorumRejection(t *testing.T) {
	m := NewManager(&Set{Num: 1})
	m.BeginTransition(&Set{Num: 2})

	var recalled bool
	m.OnRecall(func() { recalled = true })

	// 1/3 of 32 == 10.67, so 10 rejections still shouldn't recall, 11 should.
	for i := types.DelegateIdx(0); i < 10; i++ {
		err := m.RecordNewEpochRejection(i)
		require.NoError(t, err)
	}
	require.Equal(t, EpochTransitionStart, m.State())
	require.False(t, recalled)

	err := m.RecordNewEpochRejection(10)
	require.ErrorIs(t, err, ErrRecall)
	require.True(t, recalled)
	require.Equal(t, None, m.State())
	require.Nil(t, m.Next())
}

func mustPutEB(t *testing.T, s store.Store, eb *types.EpochBlock) types.Hash {
	t.Helper()
	tx, err := s.Begin()
	require.NoError(t, err)
	hash := types.Hash{byte(eb.EpochNum), 0xEB}
	require.NoError(t, tx.PutEB(hash, eb))
	require.NoError(t, tx.SetEBTip(hash))
	require.NoError(t, tx.Commit())
	return hash
}

func TestIdentityManager_IdentifyDelegatesCurrentAndNext(t *testing.T) {
	s := store.NewMemStore()

	me := types.Hash{0xAA}
	other := types.Hash{0xBB}

	var ebGen0 types.EpochBlock
	ebGen0.EpochNum = 0
	ebGen0.Delegates[0] = types.EpochDelegate{Account: me}
	ebGen0.Delegates[1] = types.EpochDelegate{Account: other}
	hash0 := mustPutEB(t, s, &ebGen0)

	var ebGen1 types.EpochBlock
	ebGen1.EpochNum = 1
	ebGen1.Previous = hash0
	ebGen1.Delegates[0] = types.EpochDelegate{Account: other}
	ebGen1.Delegates[1] = types.EpochDelegate{Account: me}
	mustPutEB(t, s, &ebGen1)

	im := NewIdentityManager(s, me)

	idx, _, err := im.IdentifyDelegates(WhichCurrent)
	require.NoError(t, err)
	require.Equal(t, types.DelegateIdx(0), idx)

	idx, _, err = im.IdentifyDelegates(WhichNext)
	require.NoError(t, err)
	require.Equal(t, types.DelegateIdx(1), idx)
}

func TestIdentityManager_NonDelegate(t *testing.T) {
	s := store.NewMemStore()

	var eb types.EpochBlock
	eb.EpochNum = 0
	eb.Delegates[0] = types.EpochDelegate{Account: types.Hash{0xBB}}
	mustPutEB(t, s, &eb)

	im := NewIdentityManager(s, types.Hash{0xAA})
	idx, _, err := im.IdentifyDelegates(WhichNext)
	require.NoError(t, err)
	require.Equal(t, NonDelegate, idx)
}
