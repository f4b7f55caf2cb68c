// Package bootstrap implements the startup/gap-catch-up pipeline: pull
// missing RB/MB/EB ranges from already-connected peers and feed each block
// through the block cache, which drives validation.
package bootstrap

import "github.com/LogosNetwork/logos-core-sub003/internal/types"

// TipSet describes a peer's view of the chain tips, as returned by a
// TipRequest/TipResponse round trip.
type TipSet struct {
	EBTip  types.Hash
	MBTip  types.Hash
	RBTips [types.NumDelegates]types.Hash
}

// LocalTips is the same shape, read from this node's own store before
// diffing against a peer's TipSet.
type LocalTips struct {
	EBNum    types.EpochNum
	MBSeq    types.Sequence
	RBSeqs   [types.NumDelegates]types.Sequence
}

// Range is a half-open [From, To) pull unit for one chain type/delegate.
type Range struct {
	ChainType types.BlockType
	Delegate  types.DelegateIdx // meaningful only for ChainType == BlockTypeRequest
	From      types.Sequence
	To        types.Sequence
}

// Len reports how many blocks Range spans.
func (r Range) Len() uint32 { return r.To - r.From }
