// Package consensus implements the three round-driving state machines, one
// per chain type (request, micro, epoch), sharing identical phase
// structure. A delegate runs one PrimaryMachine for chains it owns and one
// BackupMachine per peer for chains others own.
package consensus

import "github.com/LogosNetwork/logos-core-sub003/internal/types"

// Phase is a round's position in the three-phase commit protocol.
type Phase uint8

const (
	Void Phase = iota
	PrePreparePhase
	PreparePhase
	PostPreparePhase
	CommitPhase
	PostCommitPhase
	Recall
	Initializing
)

func (p Phase) String() string {
	switch p {
	case Void:
		return "void"
	case PrePreparePhase:
		return "pre_prepare"
	case PreparePhase:
		return "prepare"
	case PostPreparePhase:
		return "post_prepare"
	case CommitPhase:
		return "commit"
	case PostCommitPhase:
		return "post_commit"
	case Recall:
		return "recall"
	case Initializing:
		return "initializing"
	default:
		return "unknown"
	}
}

// ChainType is which of the three interleaved chains a round belongs to,
// reusing types.BlockType's R/M/E tags.
type ChainType = types.BlockType
