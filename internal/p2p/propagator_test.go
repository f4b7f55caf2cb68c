package p2p

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
)

func TestPropagator_BroadcastReachesPeerHandler(t *testing.T) {
	var received []byte
	var gotHeader codec.P2pConsensusHeader

	peerOverlay := NewLoopbackOverlay(nil)
	selfOverlay := NewLoopbackOverlay(nil)
	Link(selfOverlay, peerOverlay)

	peerProp := NewPropagator(peerOverlay, func(h codec.P2pHeader, ch codec.P2pConsensusHeader, inner []byte) {
		received = append([]byte(nil), inner...)
		gotHeader = ch
	})
	peerOverlay.onReceive = peerProp.ReceiveMessageCallback

	selfProp := NewPropagator(selfOverlay, nil)

	require.NoError(t, selfProp.PropagateBlock(7, 1, []byte("sealed-block")))
	require.Equal(t, []byte("sealed-block"), received)
	require.Equal(t, codec.BroadcastDelegate, gotHeader.Src)
	require.Equal(t, codec.BroadcastDelegate, gotHeader.Dest)
	require.Equal(t, uint32(7), gotHeader.EpochNumber)
}

func TestPropagator_DuplicateNotRedispatched(t *testing.T) {
	calls := 0
	peerOverlay := NewLoopbackOverlay(nil)
	peerProp := NewPropagator(peerOverlay, func(codec.P2pHeader, codec.P2pConsensusHeader, []byte) {
		calls++
	})
	peerOverlay.onReceive = peerProp.ReceiveMessageCallback

	selfOverlay := NewLoopbackOverlay(nil)
	Link(selfOverlay, peerOverlay)
	selfProp := NewPropagator(selfOverlay, nil)

	require.NoError(t, selfProp.PropagateBlock(1, 1, []byte("dup")))
	require.NoError(t, selfProp.PropagateBlock(1, 1, []byte("dup")))
	require.Equal(t, 1, calls)
}
