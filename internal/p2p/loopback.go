package p2p

import "sync"

// LoopbackOverlay is an in-process Overlay stand-in for tests: every
// PropagateMessage call is handed directly to every other registered
// LoopbackOverlay's ReceiveMessageCallback, simulating a fully connected
// mesh without sockets.
type LoopbackOverlay struct {
	mu        sync.Mutex
	peers     []*LoopbackOverlay
	blacklist map[string]bool
	onReceive func([]byte) bool
}

// NewLoopbackOverlay builds an overlay node; onReceive is invoked for every
// message this node receives from a linked peer. A node's own
// PropagateMessage does not deliver to itself.
func NewLoopbackOverlay(onReceive func([]byte) bool) *LoopbackOverlay {
	return &LoopbackOverlay{
		blacklist: make(map[string]bool),
		onReceive: onReceive,
	}
}

// Link connects two loopback overlays bidirectionally.
func Link(a, b *LoopbackOverlay) {
	a.mu.Lock()
	a.peers = append(a.peers, b)
	a.mu.Unlock()
	b.mu.Lock()
	b.peers = append(b.peers, a)
	b.mu.Unlock()
}

func (o *LoopbackOverlay) PropagateMessage(payload []byte, broadcast bool) error {
	o.mu.Lock()
	peers := append([]*LoopbackOverlay(nil), o.peers...)
	o.mu.Unlock()

	if !broadcast {
		if len(peers) == 0 {
			return nil
		}
		peers[0].ReceiveMessageCallback(payload)
		return nil
	}
	for _, p := range peers {
		p.ReceiveMessageCallback(payload)
	}
	return nil
}

func (o *LoopbackOverlay) ReceiveMessageCallback(payload []byte) bool {
	if o.onReceive == nil {
		return false
	}
	return o.onReceive(payload)
}

func (o *LoopbackOverlay) GetPeers(session uint64, count int) ([]Node, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	nodes := make([]Node, 0, count)
	for i := int(session); i < len(o.peers) && len(nodes) < count; i++ {
		nodes = append(nodes, Node{Session: uint64(i), IP: "loopback"})
	}
	return nodes, session + uint64(len(nodes))
}

func (o *LoopbackOverlay) AddToBlacklist(ip string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.blacklist[ip] = true
}

func (o *LoopbackOverlay) IsBlacklisted(ip string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.blacklist[ip]
}
