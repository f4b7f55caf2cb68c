package netio

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/metrics"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Network owns every peer Channel, keyed by remote delegate index, and
// drives the dial-or-accept connect policy.
type Network struct {
	lock sync.RWMutex

	localIdx   types.DelegateIdx
	dispatcher Dispatcher
	channels   map[types.DelegateIdx]*Channel

	stopCh chan struct{}
}

// NewNetwork builds an empty Network for localIdx, dispatching every
// channel's inbound frames to dispatcher.
func NewNetwork(localIdx types.DelegateIdx, dispatcher Dispatcher) *Network {
	return &Network{
		localIdx:   localIdx,
		dispatcher: dispatcher,
		channels:   make(map[types.DelegateIdx]*Channel),
		stopCh:     make(chan struct{}),
	}
}

// Connect dials remoteIdx at addr if the dial policy assigns us the dialer
// role, retrying on ReconnectBackoff until the network is stopped or a
// connection succeeds. If the policy assigns us the acceptor role, this is
// a no-op: Accept handles the incoming connection instead.
func (n *Network) Connect(remoteIdx types.DelegateIdx, addr string) {
	if !DialPolicy(n.localIdx, remoteIdx) {
		return
	}
	go n.dialLoop(remoteIdx, addr)
}

func (n *Network) dialLoop(remoteIdx types.DelegateIdx, addr string) {
	for {
		select {
		case <-n.stopCh:
			return
		default:
		}
		conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
		if err != nil {
			metrics.Reconnects.WithLabelValues(strconv.Itoa(int(remoteIdx))).Inc()
			log.Debug("netio: dial failed, retrying", "remote", remoteIdx, "addr", addr, "err", err)
			select {
			case <-n.stopCh:
				return
			case <-time.After(ReconnectBackoff):
				continue
			}
		}
		n.adopt(remoteIdx, addr, conn)
		return
	}
}

// Accept wraps an already-accepted conn as remoteIdx's channel (the
// acceptor side of the connect policy: the larger index accepts).
func (n *Network) Accept(remoteIdx types.DelegateIdx, addr string, conn net.Conn) {
	n.adopt(remoteIdx, addr, conn)
}

func (n *Network) adopt(remoteIdx types.DelegateIdx, addr string, conn net.Conn) {
	ch := NewChannel(n.localIdx, remoteIdx, addr, conn, n.dispatcher)

	n.lock.Lock()
	if old, ok := n.channels[remoteIdx]; ok {
		old.Close()
	}
	n.channels[remoteIdx] = ch
	n.lock.Unlock()
}

// Channel returns the current channel to remoteIdx, if connected.
func (n *Network) Channel(remoteIdx types.DelegateIdx) (*Channel, bool) {
	n.lock.RLock()
	defer n.lock.RUnlock()
	ch, ok := n.channels[remoteIdx]
	return ch, ok
}

// RetireEpoch marks every current channel epoch_over for the epoch
// transition: a successor channel bound to the new committee is expected
// to replace each entry via adopt (Connect/Accept) separately.
func (n *Network) RetireEpoch() {
	n.lock.RLock()
	defer n.lock.RUnlock()
	for _, ch := range n.channels {
		ch.MarkEpochOver()
	}
}

// Size returns the number of currently tracked peer channels.
func (n *Network) Size() int {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return len(n.channels)
}

// Stop closes every channel and halts pending dial loops.
func (n *Network) Stop() {
	close(n.stopCh)
	n.lock.Lock()
	defer n.lock.Unlock()
	for _, ch := range n.channels {
		ch.Close()
	}
	n.channels = make(map[types.DelegateIdx]*Channel)
}
