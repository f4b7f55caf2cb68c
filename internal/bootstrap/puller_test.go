package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func TestNewPuller_EnumeratesEBGap(t *testing.T) {
	local := LocalTips{EBNum: 3}
	peer := TipSet{}
	p := NewPuller(local, peer, 5)

	u, ok := p.Next()
	require.True(t, ok)
	require.Equal(t, types.BlockTypeEpoch, u.Range.ChainType)
	require.Equal(t, types.Sequence(3), u.Range.From)
	require.Equal(t, types.Sequence(5), u.Range.To)
	require.False(t, p.AllDone()) // still in flight
}

func TestNewPuller_NoGapIsDone(t *testing.T) {
	local := LocalTips{EBNum: 5}
	peer := TipSet{}
	p := NewPuller(local, peer, 5)
	_, ok := p.Next()
	require.False(t, ok)
	require.True(t, p.AllDone())
}

func TestPuller_RequeueCapsRetries(t *testing.T) {
	local := LocalTips{}
	peer := TipSet{MBTip: types.Hash{1}}
	p := NewPuller(local, peer, 0)

	u, ok := p.Next()
	require.True(t, ok)

	for i := 0; i < MaxRetries; i++ {
		p.Requeue(u)
		u, ok = p.Next()
		require.True(t, ok)
	}
	p.Requeue(u) // exceeds MaxRetries now

	require.True(t, p.AllDone())
	require.Len(t, p.Failed(), 1)
}

func TestPuller_CompleteClearsInFlight(t *testing.T) {
	local := LocalTips{}
	peer := TipSet{MBTip: types.Hash{1}}
	p := NewPuller(local, peer, 0)

	u, ok := p.Next()
	require.True(t, ok)
	require.False(t, p.AllDone())

	p.Complete(u.Range)
	require.True(t, p.AllDone())
}

func TestPuller_ExtendAddsPendingRange(t *testing.T) {
	p := &Puller{inFlight: make(map[Range]bool)}
	require.True(t, p.AllDone())

	p.Extend(Range{ChainType: types.BlockTypeRequest, Delegate: 2, From: 10, To: 20})
	require.False(t, p.AllDone())

	u, ok := p.Next()
	require.True(t, ok)
	require.Equal(t, types.DelegateIdx(2), u.Range.Delegate)
	require.Equal(t, uint32(10), u.Range.Len())
}
