package netio

import (
	"context"
	"net"
	"testing"

	gomock "go.uber.org/mock/gomock"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
	"github.com/LogosNetwork/logos-core-sub003/internal/xxxmock"
)

func TestChannel_SendDispatchesToMockDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)

	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	disp := xxxmock.NewMockDispatcher(ctrl)
	disp.EXPECT().
		Dispatch(types.DelegateIdx(1), codec.ConsensusRequest, codec.MsgPrePrepare, gomock.Any()).
		Times(1)

	local := NewChannel(0, 1, "pipe", a, xxxmock.NewMockDispatcher(ctrl))
	remote := NewChannel(1, 0, "pipe", b, disp)
	defer local.Close()
	defer remote.Close()

	if err := local.Send(context.Background(), codec.MsgPrePrepare, codec.ConsensusRequest, []byte("hi")); err != nil {
		t.Fatalf("send: %v", err)
	}
}
