package netio

import (
	"context"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Transport sends n's channels one consensus message at a time, satisfying
// internal/consensus.Transport. It skips peers with no live channel rather
// than failing the whole broadcast: a backup that missed PrePrepare
// recovers through blockcache's p2p-replay path instead.
type Transport struct {
	n *Network
}

// NewTransport wraps n as a consensus.Transport.
func NewTransport(n *Network) *Transport { return &Transport{n: n} }

// Broadcast sends payload to every connected peer.
func (t *Transport) Broadcast(consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error {
	t.n.lock.RLock()
	channels := make([]*Channel, 0, len(t.n.channels))
	for _, ch := range t.n.channels {
		channels = append(channels, ch)
	}
	t.n.lock.RUnlock()

	var firstErr error
	for _, ch := range channels {
		if err := ch.Send(context.Background(), msgType, consensusType, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendTo sends payload to a single delegate, a no-op if that delegate has
// no live channel.
func (t *Transport) SendTo(delegate types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error {
	ch, ok := t.n.Channel(delegate)
	if !ok {
		return nil
	}
	return ch.Send(context.Background(), msgType, consensusType, payload)
}
