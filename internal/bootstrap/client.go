package bootstrap

import (
	"context"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Client is one already-connected TCP session to a bootstrap peer,
// speaking the TipRequest/TipResponse and PullRequest/PullResponse
// exchange. Production clients wrap an internal/netio Channel; tests use
// an in-memory stand-in.
type Client interface {
	// ID identifies the peer this client talks to, for logging and for
	// excluding a misbehaving peer from future pulls.
	ID() string

	// RequestTip sends TipRequest and returns the peer's TipSet.
	RequestTip(ctx context.Context) (TipSet, error)

	// PullRange sends PullRequest(from, to, chainType, delegate) and
	// invokes onBlock once per received block, in order, passing the raw
	// encoded block payload (ready for blockcache's Add{RB,MB,EB} once
	// unmarshaled by the caller). PullRange returns once the peer signals
	// end-of-range or ctx is done.
	PullRange(ctx context.Context, r Range, onBlock func(chainType types.BlockType, raw []byte) error) error

	// Close releases the underlying connection.
	Close() error
}

// Sink is the subset of internal/blockcache.Cache's API bootstrap needs:
// each pulled block is piped through the block cache, which drives
// validation and application.
type Sink interface {
	AddRB(rb *types.RequestBlock) (bool, error)
	AddMB(mb *types.MicroBlock) (bool, error)
	AddEB(eb *types.EpochBlock) (bool, error)
	Validate(startDelegateIdx types.DelegateIdx) error
}
