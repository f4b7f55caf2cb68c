package netio

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

type recordingDispatcher struct {
	mu   sync.Mutex
	seen []codec.MessageType
}

func (d *recordingDispatcher) Dispatch(remote types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = append(d.seen, msgType)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

func TestChannel_SendDispatchesOnPeer(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	disp := &recordingDispatcher{}
	local := NewChannel(0, 1, "pipe", a, &recordingDispatcher{})
	remote := NewChannel(1, 0, "pipe", b, disp)
	defer local.Close()
	defer remote.Close()

	err := local.Send(context.Background(), codec.MsgPrePrepare, codec.ConsensusRequest, []byte("hi"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return disp.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestChannel_SendAfterCloseFails(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	local := NewChannel(0, 1, "pipe", a, &recordingDispatcher{})
	require.NoError(t, local.Close())

	err := local.Send(context.Background(), codec.MsgHeartBeat, codec.ConsensusRequest, nil)
	require.ErrorIs(t, err, ErrChannelClosed)
}

func TestChannel_EpochOverDropsInboundAndSend(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	disp := &recordingDispatcher{}
	local := NewChannel(0, 1, "pipe", a, &recordingDispatcher{})
	remote := NewChannel(1, 0, "pipe", b, disp)
	defer local.Close()
	defer remote.Close()

	remote.MarkEpochOver()

	err := remote.Send(context.Background(), codec.MsgHeartBeat, codec.ConsensusRequest, nil)
	require.ErrorIs(t, err, ErrEpochOver)

	require.NoError(t, local.Send(context.Background(), codec.MsgPrePrepare, codec.ConsensusRequest, []byte("dropped")))
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, disp.count())
}

func TestDialPolicy(t *testing.T) {
	require.True(t, DialPolicy(0, 1))
	require.False(t, DialPolicy(1, 0))
}
