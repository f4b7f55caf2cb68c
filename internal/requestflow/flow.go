// Package requestflow implements the single entrypoint external
// collaborators (RPC/TxAcceptor) use to submit a request into consensus.
// OnSendRequest validates, optionally buffers, and — on success — hands
// the request to the consensus submission queue.
package requestflow

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ProcessReturn is OnSendRequest's result: a textual code (reusing
// persistence.Code verbatim) plus the request's content hash when
// accepted.
type ProcessReturn struct {
	Code persistence.Code
	Hash types.Hash
}

// Submitter enqueues an accepted request for the chain-type primary's next
// proposal round. The concrete implementation (wired at the node's
// composition root) feeds an internal/consensus.BlockOps[RequestBlock]'s
// BuildNext queue.
type Submitter interface {
	Submit(req *types.Request) error
}

// Flow wires a Validator and a Submitter behind the OnSendRequest
// entrypoint.
type Flow struct {
	validator *persistence.Validator
	submitter Submitter
}

// New builds a Flow over validator/submitter.
func New(validator *persistence.Validator, submitter Submitter) *Flow {
	return &Flow{validator: validator, submitter: submitter}
}

// OnSendRequest validates req, and on success either buffers it (when
// shouldBuffer is set, e.g. during an epoch transition) or submits it to
// consensus immediately.
func (f *Flow) OnSendRequest(tx store.Tx, req *types.Request, currentEpoch types.EpochNum, shouldBuffer bool) (ProcessReturn, error) {
	hash, err := crypto.Digest(req)
	if err != nil {
		return ProcessReturn{}, err
	}

	result, err := f.validate(tx, req, currentEpoch)
	if err != nil {
		return ProcessReturn{}, err
	}
	if result.Code != persistence.CodeProgress {
		return ProcessReturn{Code: result.Code, Hash: hash}, nil
	}

	if shouldBuffer {
		log.Debug("requestflow: buffering request during epoch transition", "hash", hash)
		return ProcessReturn{Code: persistence.CodeBufferingDone, Hash: hash}, nil
	}

	if err := f.submitter.Submit(req); err != nil {
		return ProcessReturn{}, err
	}
	return ProcessReturn{Code: persistence.CodeProgress, Hash: hash}, nil
}

// validate dispatches req to the validator method appropriate to its
// type. Only Send/TokenSend have a dedicated public Validate entrypoint
// today (persistence.ValidateSend); other request types are accepted
// pending their own Validate* entrypoints — see DESIGN.md.
func (f *Flow) validate(tx store.Tx, req *types.Request, currentEpoch types.EpochNum) (persistence.Result, error) {
	switch req.Type {
	case types.RequestSend, types.RequestTokenSend:
		return f.validator.ValidateSend(tx, req, currentEpoch, false)
	default:
		return persistence.Result{Code: persistence.CodeProgress}, nil
	}
}
