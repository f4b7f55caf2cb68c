package chainops

import (
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/metrics"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// MicroBlockOps drives the MB chain: BuildNext snapshots every delegate's
// current RB tip once the proposal cutoff has elapsed since the previous
// MB, and Validate/Apply enforce sequence and epoch continuity against the
// store.
type MicroBlockOps struct {
	db        store.Store
	validator *persistence.Validator
	epoch     func() types.EpochNum

	// shouldClose reports whether the epoch should close with this MB,
	// set by the epoch manager once the committee has decided to hand
	// over. Nil means never close.
	shouldClose func() bool
}

// NewMicroBlockOps builds the MB adapter.
func NewMicroBlockOps(db store.Store, validator *persistence.Validator, epoch func() types.EpochNum) *MicroBlockOps {
	return &MicroBlockOps{db: db, validator: validator, epoch: epoch}
}

// OnShouldClose registers the hook BuildNext consults to decide whether
// the next MB it proposes should carry LastMicroBlock.
func (o *MicroBlockOps) OnShouldClose(fn func() bool) { o.shouldClose = fn }

func (o *MicroBlockOps) ChainType() types.BlockType         { return types.BlockTypeMicro }
func (o *MicroBlockOps) ConsensusType() codec.ConsensusType { return codec.ConsensusMicro }

func (o *MicroBlockOps) Digest(b *types.MicroBlock) (types.Hash, error) {
	return crypto.Digest(b)
}

func (o *MicroBlockOps) Marshal(b *types.MicroBlock) ([]byte, error) {
	return codec.MarshalMicroBlock(b)
}

func (o *MicroBlockOps) Unmarshal(data []byte) (*types.MicroBlock, error) {
	return codec.UnmarshalMicroBlock(data)
}

func (o *MicroBlockOps) SetAggSig(b *types.MicroBlock, sig types.AggregateSig) { b.AggSig = sig }

func (o *MicroBlockOps) PrimaryIdx(b *types.MicroBlock) types.DelegateIdx {
	return b.PrimaryDelegateIdx
}

// BuildNext snapshots the current RB tips once the proposal cutoff
// against the previous MB has passed, reporting false if not yet due.
func (o *MicroBlockOps) BuildNext() (*types.MicroBlock, bool) {
	tx, err := o.db.Begin()
	if err != nil {
		return nil, false
	}
	defer tx.Rollback()

	tip, err := tx.GetMBTip()
	if err != nil && err != store.ErrNotFound {
		return nil, false
	}

	var prev *types.MicroBlock
	var seq types.Sequence
	if tip != types.ZeroHash {
		prev, err = tx.GetMB(tip)
		if err != nil {
			return nil, false
		}
		seq = prev.Sequence + 1
	}

	if cutoff, ok := persistence.Cutoff(prev); ok && time.Now().Before(cutoff) {
		return nil, false
	}

	var tips [types.NumDelegates]types.Hash
	for d := types.DelegateIdx(0); int(d) < types.NumDelegates; d++ {
		h, err := tx.GetRBTip(d)
		if err != nil && err != store.ErrNotFound {
			return nil, false
		}
		tips[d] = h
	}

	epochNum := o.epoch()
	if prev != nil && prev.LastMicroBlock {
		epochNum = prev.EpochNum + 1
	}

	last := false
	if o.shouldClose != nil {
		last = o.shouldClose()
	}

	return &types.MicroBlock{
		EpochNum:       epochNum,
		Sequence:       seq,
		Previous:       tip,
		Timestamp:      time.Now(),
		LastMicroBlock: last,
		Tips:           tips,
	}, true
}

// Validate checks mb's sequence/epoch continuity against the current tip.
func (o *MicroBlockOps) Validate(mb *types.MicroBlock) (bool, codec.RejectionReason) {
	tx, err := o.db.Begin()
	if err != nil {
		return false, codec.RejectContainsInvalidRequest
	}
	defer tx.Rollback()

	var prev *types.MicroBlock
	if mb.Previous != types.ZeroHash {
		prev, err = tx.GetMB(mb.Previous)
		if err != nil {
			if err != store.ErrNotFound {
				return false, codec.RejectContainsInvalidRequest
			}
			return false, codec.RejectInvalidPreviousHash
		}
	}

	code := persistence.ValidateMB(mb, prev)
	metrics.ValidationResults.WithLabelValues("mb", string(code)).Inc()
	switch code {
	case persistence.CodeProgress:
		return true, 0
	case persistence.CodeGapPrevious:
		return false, codec.RejectInvalidPreviousHash
	case persistence.CodeFork:
		return false, codec.RejectInvalidEpoch
	default:
		return false, codec.RejectContainsInvalidRequest
	}
}

// Apply persists mb and advances the MB tip.
func (o *MicroBlockOps) Apply(mb *types.MicroBlock) error {
	tx, err := o.db.Begin()
	if err != nil {
		return err
	}
	if _, err := persistence.ApplyMB(tx, mb); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
