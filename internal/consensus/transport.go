package consensus

import (
	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Transport sends consensus wire messages to peers, implemented in
// production by a thin wrapper over internal/netio.Network.
type Transport interface {
	Broadcast(consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error
	SendTo(delegate types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error
}

// BlockOps abstracts the chain-type-specific operations the phase machine
// needs so one PrimaryMachine/BackupMachine implementation drives all three
// chains.
type BlockOps[B any] interface {
	ChainType() types.BlockType
	ConsensusType() codec.ConsensusType

	Digest(b *B) (types.Hash, error)
	Marshal(b *B) ([]byte, error)
	Unmarshal(data []byte) (*B, error)

	SetAggSig(b *B, sig types.AggregateSig)
	PrimaryIdx(b *B) types.DelegateIdx

	// Validate runs the chain type's semantic predicates
	// against b, returning a coded rejection reason on failure.
	Validate(b *B) (bool, codec.RejectionReason)

	// Apply runs ApplyUpdates for a sealed b, inside one store
	// transaction.
	Apply(b *B) error

	// BuildNext constructs the next PrePrepare content from whatever this
	// node's primary role has queued, reporting false if nothing is
	// ready to propose.
	BuildNext() (*B, bool)
}
