package p2p

import (
	"bytes"

	"golang.org/x/crypto/blake2b"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// PropagationStoreCapacity is the default ring size for a node's
// propagation store.
const PropagationStoreCapacity = 4096

// Handler processes a deduplicated, unwrapped gossip payload. header
// carries the app/epoch/routing metadata, inner is the payload beyond
// both P2P headers.
type Handler func(h codec.P2pHeader, ch codec.P2pConsensusHeader, inner []byte)

// Propagator wraps an Overlay with the {P2pHeader, P2pConsensusHeader}
// framing and blake2b dedup.
type Propagator struct {
	overlay Overlay
	store   *PropagationStore
	handler Handler
}

// NewPropagator builds a Propagator over overlay, dispatching freshly-seen
// messages to handler.
func NewPropagator(overlay Overlay, handler Handler) *Propagator {
	return &Propagator{
		overlay: overlay,
		store:   NewPropagationStore(PropagationStoreCapacity),
		handler: handler,
	}
}

// PropagateBlock gossips a post-committed block with the broadcast
// sentinel src/dest: for a Post_Committed_Block, src/dest are set to the
// broadcast sentinel 0xFF.
func (p *Propagator) PropagateBlock(epochNum types.EpochNum, appType uint8, inner []byte) error {
	return p.send(codec.P2pHeader{Version: 1, AppType: appType},
		codec.P2pConsensusHeader{EpochNumber: epochNum, Src: codec.BroadcastDelegate, Dest: codec.BroadcastDelegate},
		inner, true)
}

// PropagateRequest gossips a client-submitted request targeted at a single
// delegate (e.g. the current RB primary), not broadcast.
func (p *Propagator) PropagateRequest(epochNum types.EpochNum, appType uint8, src, dest types.DelegateIdx, inner []byte) error {
	return p.send(codec.P2pHeader{Version: 1, AppType: appType},
		codec.P2pConsensusHeader{EpochNumber: epochNum, Src: src, Dest: dest},
		inner, false)
}

func (p *Propagator) send(h codec.P2pHeader, ch codec.P2pConsensusHeader, inner []byte, broadcast bool) error {
	var buf bytes.Buffer
	if err := codec.WriteP2pEnvelope(&buf, h, ch, inner); err != nil {
		return err
	}
	raw := buf.Bytes()
	hash := blake2b.Sum256(raw)
	p.store.Insert(hash, raw)
	return p.overlay.PropagateMessage(raw, broadcast)
}

// ReceiveMessageCallback is installed as the overlay's inbound callback:
// it dedups by blake2b, unwraps the envelope, and dispatches fresh
// messages to the handler.
func (p *Propagator) ReceiveMessageCallback(payload []byte) bool {
	hash := blake2b.Sum256(payload)
	if !p.store.Insert(hash, payload) {
		return false // duplicate: already seen, not to be re-relayed
	}

	h, ch, inner, err := codec.ReadP2pEnvelope(payload)
	if err != nil {
		log.Debug("p2p: dropping malformed envelope", "err", err)
		return false
	}
	if p.handler != nil {
		p.handler(h, ch, inner)
	}
	return true
}
