// Package chainops adapts internal/persistence's validate/apply pipelines
// to the generic consensus.BlockOps[B] contract, one adapter per chain
// type, so PrimaryMachine/BackupMachine drive real store-backed state
// instead of a test double.
package chainops

import (
	"sync"
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/metrics"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// RequestBlockOps drives one delegate's RB chain: it queues locally
// submitted requests, cuts them into batches on BuildNext, and
// validates/applies incoming ones against the store.
type RequestBlockOps struct {
	db        store.Store
	validator *persistence.Validator
	self      types.DelegateIdx
	epoch     func() types.EpochNum

	mu    sync.Mutex
	queue []*types.Request
}

// NewRequestBlockOps builds the RB adapter for delegate seat self. epoch
// reports the epoch number to stamp onto newly built blocks.
func NewRequestBlockOps(db store.Store, validator *persistence.Validator, self types.DelegateIdx, epoch func() types.EpochNum) *RequestBlockOps {
	return &RequestBlockOps{db: db, validator: validator, self: self, epoch: epoch}
}

// Submit enqueues req for this delegate's next RB. Satisfies
// requestflow.Submitter.
func (o *RequestBlockOps) Submit(req *types.Request) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue = append(o.queue, req)
	return nil
}

func (o *RequestBlockOps) ChainType() types.BlockType         { return types.BlockTypeRequest }
func (o *RequestBlockOps) ConsensusType() codec.ConsensusType { return codec.ConsensusRequest }

func (o *RequestBlockOps) Digest(b *types.RequestBlock) (types.Hash, error) {
	return crypto.Digest(b)
}

func (o *RequestBlockOps) Marshal(b *types.RequestBlock) ([]byte, error) {
	return codec.MarshalRequestBlock(b)
}

func (o *RequestBlockOps) Unmarshal(data []byte) (*types.RequestBlock, error) {
	return codec.UnmarshalRequestBlock(data)
}

func (o *RequestBlockOps) SetAggSig(b *types.RequestBlock, sig types.AggregateSig) { b.AggSig = sig }

func (o *RequestBlockOps) PrimaryIdx(b *types.RequestBlock) types.DelegateIdx {
	return b.PrimaryDelegateIdx
}

// BuildNext drains up to CONSENSUS_BATCH_SIZE queued requests into a new
// RB naming this delegate's current tip as Previous, reporting false if
// the queue is empty.
func (o *RequestBlockOps) BuildNext() (*types.RequestBlock, bool) {
	o.mu.Lock()
	if len(o.queue) == 0 {
		o.mu.Unlock()
		return nil, false
	}
	n := len(o.queue)
	if n > types.ConsensusBatchSize {
		n = types.ConsensusBatchSize
	}
	batch := make([]types.Request, n)
	for i, r := range o.queue[:n] {
		batch[i] = *r
	}
	rest := make([]*types.Request, len(o.queue)-n)
	copy(rest, o.queue[n:])
	o.queue = rest
	o.mu.Unlock()

	tx, err := o.db.Begin()
	if err != nil {
		return nil, false
	}
	defer tx.Rollback()

	tip, err := tx.GetRBTip(o.self)
	if err != nil && err != store.ErrNotFound {
		return nil, false
	}
	var seq types.Sequence
	if tip != types.ZeroHash {
		prev, err := tx.GetRB(tip)
		if err != nil {
			return nil, false
		}
		seq = prev.Sequence + 1
	}

	return &types.RequestBlock{
		PrimaryDelegateIdx: o.self,
		EpochNum:           o.epoch(),
		Sequence:           seq,
		Previous:           tip,
		Timestamp:          time.Now(),
		Requests:           batch,
	}, true
}

// Validate checks rb's continuity against the store tip, then re-runs
// each request's type-specific semantic predicate, the same dispatch
// requestflow.Flow uses at admission time.
func (o *RequestBlockOps) Validate(rb *types.RequestBlock) (bool, codec.RejectionReason) {
	tx, err := o.db.Begin()
	if err != nil {
		return false, codec.RejectContainsInvalidRequest
	}
	defer tx.Rollback()

	code, err := o.validator.ValidateRBContinuity(tx, rb)
	if err != nil {
		return false, codec.RejectContainsInvalidRequest
	}
	metrics.ValidationResults.WithLabelValues("rb", string(code)).Inc()
	switch code {
	case persistence.CodeProgress:
	case persistence.CodeGapPrevious:
		return false, codec.RejectInvalidPreviousHash
	default:
		return false, codec.RejectWrongSequenceNumber
	}

	for i := range rb.Requests {
		req := &rb.Requests[i]
		var result persistence.Result
		switch req.Type {
		case types.RequestSend, types.RequestTokenSend:
			result, err = o.validator.ValidateSend(tx, req, rb.EpochNum, true)
		default:
			result = persistence.Result{Code: persistence.CodeProgress}
		}
		if err != nil {
			return false, codec.RejectContainsInvalidRequest
		}
		metrics.ValidationResults.WithLabelValues("rb_request", string(result.Code)).Inc()
		if result.Code != persistence.CodeProgress {
			return false, codec.RejectContainsInvalidRequest
		}
	}

	return true, 0
}

// Apply runs the RB's apply pipeline inside one store transaction.
func (o *RequestBlockOps) Apply(rb *types.RequestBlock) error {
	tx, err := o.db.Begin()
	if err != nil {
		return err
	}
	if err := o.validator.ApplyRB(tx, rb); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
