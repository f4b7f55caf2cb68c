package consensus

import (
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// BackupMachine drives one peer's round for one chain type, on behalf of a
// delegate that does not own that chain this epoch. A node runs N-1 of
// these per chain type it does not primary.
type BackupMachine[B any] struct {
	mu sync.Mutex

	ops        BlockOps[B]
	committee  Committee
	self       types.DelegateIdx
	primary    types.DelegateIdx
	signer     crypto.Signer
	aggregator crypto.Aggregator
	transport  Transport

	phase   Phase
	cur     *B
	curHash types.Hash

	onApplied func(*B)
}

// NewBackupMachine builds a Void-phase backup expecting primary to drive
// the round.
func NewBackupMachine[B any](ops BlockOps[B], committee Committee, self, primary types.DelegateIdx, signer crypto.Signer, aggregator crypto.Aggregator, transport Transport) *BackupMachine[B] {
	return &BackupMachine[B]{
		ops:        ops,
		committee:  committee,
		self:       self,
		primary:    primary,
		signer:     signer,
		aggregator: aggregator,
		transport:  transport,
		phase:      Void,
	}
}

// OnApplied registers a hook fired once PostCommit has been verified and
// applied, to emit the post-commit notification.
func (m *BackupMachine[B]) OnApplied(fn func(*B)) { m.onApplied = fn }

// Phase reports the round's current phase.
func (m *BackupMachine[B]) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// OnPrePrepare validates an inbound PrePrepare from the expected primary
// and replies Prepare on success, Rejection otherwise.
func (m *BackupMachine[B]) OnPrePrepare(from types.DelegateIdx, data []byte) error {
	m.mu.Lock()

	if m.phase != Void {
		m.mu.Unlock()
		log.Debug("consensus: dropping PrePrepare outside Void", "from", from, "phase", m.phase)
		return ErrWrongPhase
	}
	if from != m.primary {
		payload := m.rejectLocked(types.Hash{}, codec.RejectInvalidPreviousHash)
		m.mu.Unlock()
		return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgRejection, payload)
	}

	block, err := m.ops.Unmarshal(data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	hash, err := m.ops.Digest(block)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if ok, reason := m.ops.Validate(block); !ok {
		payload := m.rejectLocked(hash, reason)
		m.mu.Unlock()
		return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgRejection, payload)
	}

	share, err := m.signer.Sign(hash)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.cur = block
	m.curHash = hash
	m.phase = PreparePhase

	payload := codec.MarshalVote(codec.VotePayload{BlockHash: hash, BlockType: m.ops.ChainType(), DelegateIdx: m.self, Share: share})
	m.mu.Unlock()
	return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgPrepare, payload)
}

// rejectLocked builds a Rejection payload for hash/reason. Must be called
// with mu held; the caller sends it only after releasing mu.
func (m *BackupMachine[B]) rejectLocked(hash types.Hash, reason codec.RejectionReason) []byte {
	return codec.MarshalRejection(codec.RejectionPayload{BlockHash: hash, BlockType: m.ops.ChainType(), DelegateIdx: m.self, Reason: reason})
}

// OnPostPrepare verifies the primary's aggregate and replies Commit.
func (m *BackupMachine[B]) OnPostPrepare(q codec.QuorumPayload) error {
	m.mu.Lock()

	if m.phase != PreparePhase {
		m.mu.Unlock()
		log.Debug("consensus: dropping PostPrepare outside Prepare", "phase", m.phase)
		return ErrWrongPhase
	}
	if q.BlockHash != m.curHash {
		m.mu.Unlock()
		return nil
	}
	pubs := committeePublicKeys(m.committee)
	ok, err := m.aggregator.Verify(q.BlockHash, q.AggSig.Signature, q.AggSig.Bitmap, pubs)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if !ok {
		payload := m.rejectLocked(q.BlockHash, codec.RejectBadSignature)
		m.mu.Unlock()
		return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgRejection, payload)
	}

	share, err := m.signer.Sign(q.BlockHash)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.phase = CommitPhase
	payload := codec.MarshalVote(codec.VotePayload{BlockHash: q.BlockHash, BlockType: m.ops.ChainType(), DelegateIdx: m.self, Share: share})
	m.mu.Unlock()
	return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgCommit, payload)
}

// OnPostCommit verifies the primary's final aggregate, applies the sealed
// block, and returns to Void.
func (m *BackupMachine[B]) OnPostCommit(q codec.QuorumPayload) error {
	m.mu.Lock()

	if m.phase != CommitPhase {
		m.mu.Unlock()
		log.Debug("consensus: dropping PostCommit outside Commit", "phase", m.phase)
		return ErrWrongPhase
	}
	if q.BlockHash != m.curHash {
		m.mu.Unlock()
		return nil
	}
	pubs := committeePublicKeys(m.committee)
	ok, err := m.aggregator.Verify(q.BlockHash, q.AggSig.Signature, q.AggSig.Bitmap, pubs)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if !ok {
		payload := m.rejectLocked(q.BlockHash, codec.RejectBadSignature)
		m.mu.Unlock()
		return m.transport.SendTo(m.primary, m.ops.ConsensusType(), codec.MsgRejection, payload)
	}

	m.ops.SetAggSig(m.cur, q.AggSig)
	sealed := m.cur
	if err := m.ops.Apply(sealed); err != nil {
		m.mu.Unlock()
		return err
	}
	m.phase = Void
	m.cur = nil
	m.mu.Unlock()
	if m.onApplied != nil {
		m.onApplied(sealed)
	}
	return nil
}

func committeePublicKeys(c Committee) []crypto.BLSPublicKey {
	return c.PublicKeys
}
