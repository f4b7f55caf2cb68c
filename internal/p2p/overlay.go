package p2p

// Node is one peer address/session pair returned by get_peers.
type Node struct {
	Session uint64
	IP      string
}

// Overlay is the gossip transport's four-method contract;
// the real overlay (adapted from a well-known peer-to-peer implementation)
// is an out-of-scope external collaborator, so only the shape it must
// expose is specified here.
type Overlay interface {
	// PropagateMessage sends payload to the overlay; broadcast=true fans
	// out to all known peers, false targets whatever single-peer routing
	// the overlay implementation already has in flight.
	PropagateMessage(payload []byte, broadcast bool) error

	// ReceiveMessageCallback is invoked by the overlay for every inbound
	// message; handled reports whether this node consumed it (vs. it being
	// a stale/duplicate the overlay should not re-relay).
	ReceiveMessageCallback(payload []byte) (handled bool)

	// GetPeers returns up to count peers starting from session (0 = from
	// the beginning), and the session to resume from on the next call.
	GetPeers(session uint64, count int) (nodes []Node, nextSession uint64)

	AddToBlacklist(ip string)
	IsBlacklisted(ip string) bool
}
