package netio

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNetwork_ConnectAcceptHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serverDisp := &recordingDispatcher{}
	server := NewNetwork(1, serverDisp)
	defer server.Stop()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		server.Accept(0, conn.RemoteAddr().String(), conn)
	}()

	clientDisp := &recordingDispatcher{}
	client := NewNetwork(0, clientDisp)
	defer client.Stop()

	client.Connect(1, ln.Addr().String())

	require.Eventually(t, func() bool {
		_, ok := client.Channel(1)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return server.Size() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNetwork_ConnectNoopsWhenAcceptorRole(t *testing.T) {
	disp := &recordingDispatcher{}
	n := NewNetwork(1, disp)
	defer n.Stop()

	n.Connect(0, "127.0.0.1:1")

	time.Sleep(50 * time.Millisecond)
	_, ok := n.Channel(0)
	require.False(t, ok)
}

func TestNetwork_RetireEpochMarksAllChannels(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	disp := &recordingDispatcher{}
	n := NewNetwork(0, disp)
	defer n.Stop()

	n.Accept(1, "pipe", a)
	remote := NewChannel(1, 0, "pipe", b, disp)
	defer remote.Close()

	n.RetireEpoch()

	ch, ok := n.Channel(1)
	require.True(t, ok)
	err := ch.Send(context.Background(), 0, 0, nil)
	require.ErrorIs(t, err, ErrEpochOver)
}

func TestNetwork_StopClosesChannels(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	disp := &recordingDispatcher{}
	n := NewNetwork(0, disp)
	n.Accept(1, "pipe", a)

	n.Stop()

	require.Equal(t, 0, n.Size())
	_, ok := n.Channel(1)
	require.False(t, ok)
}
