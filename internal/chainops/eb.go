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

// EpochBlockOps drives the EB chain: BuildNext fires once the MB tip
// carries LastMicroBlock and seats the next committee from candidates,
// Validate/Apply enforce the micro_block_tip continuity against the
// store.
type EpochBlockOps struct {
	db         store.Store
	validator  *persistence.Validator
	candidates func() []types.Hash
}

// NewEpochBlockOps builds the EB adapter. candidates supplies the active
// candidacy set DeriveCommittee ranks each epoch close.
func NewEpochBlockOps(db store.Store, validator *persistence.Validator, candidates func() []types.Hash) *EpochBlockOps {
	return &EpochBlockOps{db: db, validator: validator, candidates: candidates}
}

func (o *EpochBlockOps) ChainType() types.BlockType         { return types.BlockTypeEpoch }
func (o *EpochBlockOps) ConsensusType() codec.ConsensusType { return codec.ConsensusEpoch }

func (o *EpochBlockOps) Digest(b *types.EpochBlock) (types.Hash, error) {
	return crypto.Digest(b)
}

func (o *EpochBlockOps) Marshal(b *types.EpochBlock) ([]byte, error) {
	return codec.MarshalEpochBlock(b)
}

func (o *EpochBlockOps) Unmarshal(data []byte) (*types.EpochBlock, error) {
	return codec.UnmarshalEpochBlock(data)
}

func (o *EpochBlockOps) SetAggSig(b *types.EpochBlock, sig types.AggregateSig) { b.AggSig = sig }

// PrimaryIdx is meaningless for EBs (no single delegate owns the chain);
// it always reports seat 0.
func (o *EpochBlockOps) PrimaryIdx(b *types.EpochBlock) types.DelegateIdx { return 0 }

// BuildNext cuts a new EB once the current MB tip has LastMicroBlock set
// and no EB names it yet.
func (o *EpochBlockOps) BuildNext() (*types.EpochBlock, bool) {
	tx, err := o.db.Begin()
	if err != nil {
		return nil, false
	}
	defer tx.Rollback()

	mbTip, err := tx.GetMBTip()
	if err != nil {
		if err == store.ErrNotFound {
			return nil, false
		}
		return nil, false
	}
	mb, err := tx.GetMB(mbTip)
	if err != nil || !mb.LastMicroBlock {
		return nil, false
	}

	ebTip, err := tx.GetEBTip()
	if err != nil && err != store.ErrNotFound {
		return nil, false
	}
	if ebTip != types.ZeroHash {
		eb, err := tx.GetEB(ebTip)
		if err != nil {
			return nil, false
		}
		if eb.MicroBlockTip == mbTip {
			return nil, false // already cut
		}
	}

	nextEpoch := mb.EpochNum
	delegates, err := persistence.DeriveCommittee(tx, o.candidates(), nextEpoch)
	if err != nil {
		return nil, false
	}

	return &types.EpochBlock{
		EpochNum:      nextEpoch,
		Previous:      ebTip,
		Timestamp:     time.Now(),
		MicroBlockTip: mbTip,
		Delegates:     delegates,
	}, true
}

// Validate checks eb.MicroBlockTip against the store's current MB tip.
func (o *EpochBlockOps) Validate(eb *types.EpochBlock) (bool, codec.RejectionReason) {
	tx, err := o.db.Begin()
	if err != nil {
		return false, codec.RejectContainsInvalidRequest
	}
	defer tx.Rollback()

	code, err := persistence.ValidateEB(tx, eb)
	if err != nil {
		return false, codec.RejectContainsInvalidRequest
	}
	metrics.ValidationResults.WithLabelValues("eb", string(code)).Inc()
	if code != persistence.CodeProgress {
		return false, codec.RejectInvalidPreviousHash
	}
	return true, 0
}

// Apply persists eb, advances the EB tip, and transitions seated
// delegates' voting power for the new epoch.
func (o *EpochBlockOps) Apply(eb *types.EpochBlock) error {
	tx, err := o.db.Begin()
	if err != nil {
		return err
	}
	if _, err := persistence.ApplyEB(tx, eb); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
