package consensus

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/metrics"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ErrWrongPhase is returned (and logged, not propagated as a protocol
// fault) when a message arrives for a phase other than the one expected:
// such messages are dropped, not queued.
var ErrWrongPhase = errors.New("consensus: message does not match current phase")

// ErrUnknownSender is returned when a message names a delegate index
// outside the current committee.
var ErrUnknownSender = errors.New("consensus: sender is not seated in the current committee")

// Committee is the fixed per-epoch table a machine consults for delegate
// weights and identity.
type Committee struct {
	Delegates  [types.NumDelegates]types.EpochDelegate
	Totals     types.QuorumTotals
	PublicKeys []crypto.BLSPublicKey // same order as Delegates, resolved via KeyAdvertisement
}

func (c *Committee) weight(idx types.DelegateIdx) (vote, stake types.Amount) {
	d := c.Delegates[idx]
	return d.Vote, d.Stake
}

// PrimaryMachine drives the round this node owns for one chain type
//. Locking note: Go's sync.Mutex is not
// reentrant, so every exported method acquires mu itself and calls only
// unexported helpers that assume it is already held — this mirrors the
// effect of the source's per-type recursive mutex without needing one.
type PrimaryMachine[B any] struct {
	mu sync.Mutex

	ops        BlockOps[B]
	committee  Committee
	self       types.DelegateIdx
	signer     crypto.Signer
	aggregator crypto.Aggregator
	transport  Transport

	phase   Phase
	cur     *B
	curHash types.Hash

	prepareShares map[types.DelegateIdx]crypto.BLSShare
	prepareVote   types.Amount
	prepareStake  types.Amount

	commitShares map[types.DelegateIdx]crypto.BLSShare
	commitVote   types.Amount
	commitStake  types.Amount

	postPrepareSig types.AggregateSig

	rej *RejectionTracker

	timer ticketTimer

	onSealed   func(*B)
	onHandover func()
}

// NewPrimaryMachine builds a Void-phase primary for one chain type.
func NewPrimaryMachine[B any](ops BlockOps[B], committee Committee, self types.DelegateIdx, signer crypto.Signer, aggregator crypto.Aggregator, transport Transport) *PrimaryMachine[B] {
	return &PrimaryMachine[B]{
		ops:        ops,
		committee:  committee,
		self:       self,
		signer:     signer,
		aggregator: aggregator,
		transport:  transport,
		phase:      Void,
	}
}

// OnSealed registers a hook fired after a block completes PostCommit and
// has been applied locally, to gossip the sealed block onward.
func (m *PrimaryMachine[B]) OnSealed(fn func(*B)) { m.onSealed = fn }

// OnNewEpochHandover registers a hook fired when accumulated NewEpoch
// rejection weight reaches quorum and this round must hand over to the
// incoming epoch.
func (m *PrimaryMachine[B]) OnNewEpochHandover(fn func()) { m.onHandover = fn }

// Phase reports the round's current phase.
func (m *PrimaryMachine[B]) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// TryPropose attempts Void -> PrePrepare: if the queue has content and the
// last round is done, build, sign, and broadcast a PrePrepare.
func (m *PrimaryMachine[B]) TryPropose() error {
	m.mu.Lock()
	if m.phase != Void {
		m.mu.Unlock()
		return nil
	}
	block, ok := m.ops.BuildNext()
	if !ok {
		m.mu.Unlock()
		return nil
	}

	payload, err := m.proposeLocked(block)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.transport.Broadcast(m.ops.ConsensusType(), codec.MsgPrePrepare, payload)
}

// proposeLocked mutates round state for block and returns its marshaled
// PrePrepare payload. Must be called with mu held; the caller sends the
// returned payload only after releasing mu, since Transport may block on
// network I/O.
func (m *PrimaryMachine[B]) proposeLocked(block *B) ([]byte, error) {
	hash, err := m.ops.Digest(block)
	if err != nil {
		return nil, err
	}
	share, err := m.signer.Sign(hash)
	if err != nil {
		return nil, err
	}

	m.cur = block
	m.curHash = hash
	m.phase = PrePreparePhase
	m.prepareShares = map[types.DelegateIdx]crypto.BLSShare{m.self: share}
	v, s := m.committee.weight(m.self)
	m.prepareVote, m.prepareStake = v, s
	m.rej = NewRejectionTracker(m.committee.Delegates, m.committee.Totals, 1)
	m.rej.RecordAccept(0, m.self)

	payload, err := m.ops.Marshal(block)
	if err != nil {
		return nil, err
	}
	m.timer.Arm(PrimaryTimeout, m.onTimeout)
	return payload, nil
}

// OnPrepare processes a Prepare from backup `from`, advancing to
// PostPrepare once weighted quorum is reached.
func (m *PrimaryMachine[B]) OnPrepare(from types.DelegateIdx, hash types.Hash, share crypto.BLSShare) error {
	m.mu.Lock()

	if m.phase != PrePreparePhase {
		m.mu.Unlock()
		log.Debug("consensus: dropping Prepare outside PrePrepare", "from", from, "phase", m.phase)
		return ErrWrongPhase
	}
	if hash != m.curHash {
		m.mu.Unlock()
		log.Debug("consensus: dropping Prepare for stale hash", "from", from)
		return nil
	}
	if int(from) >= types.NumDelegates {
		m.mu.Unlock()
		return ErrUnknownSender
	}

	if _, dup := m.prepareShares[from]; dup {
		m.mu.Unlock()
		return nil
	}
	m.prepareShares[from] = share
	v, s := m.committee.weight(from)
	m.prepareVote, _ = m.prepareVote.Add(v)
	m.prepareStake, _ = m.prepareStake.Add(s)
	m.rej.RecordAccept(0, from)

	if !MeetsQuorum(m.prepareVote, m.prepareStake, m.committee.Totals) {
		m.mu.Unlock()
		return nil
	}

	sig, err := m.aggregator.Aggregate(m.prepareShares)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	var bitmap types.Bitmap
	for idx := range m.prepareShares {
		bitmap.Set(idx)
	}
	m.postPrepareSig = types.AggregateSig{Bitmap: bitmap, Signature: sig}
	m.phase = PostPreparePhase
	metrics.QuorumRounds.WithLabelValues(m.ops.ChainType().String(), "prepare").Inc()

	selfCommitShare, err := m.signer.Sign(m.curHash)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.commitShares = map[types.DelegateIdx]crypto.BLSShare{m.self: selfCommitShare}
	m.commitVote, m.commitStake = m.committee.weight(m.self)

	payload := codec.MarshalQuorum(codec.QuorumPayload{BlockHash: m.curHash, BlockType: m.ops.ChainType(), AggSig: m.postPrepareSig})
	m.timer.Arm(PrimaryTimeout, m.onTimeout)
	m.mu.Unlock()

	return m.transport.Broadcast(m.ops.ConsensusType(), codec.MsgPostPrepare, payload)
}

// OnCommit processes a Commit from backup `from`, sealing the block once
// quorum is reached.
func (m *PrimaryMachine[B]) OnCommit(from types.DelegateIdx, hash types.Hash, share crypto.BLSShare) error {
	m.mu.Lock()

	if m.phase != PostPreparePhase {
		m.mu.Unlock()
		log.Debug("consensus: dropping Commit outside PostPrepare", "from", from, "phase", m.phase)
		return ErrWrongPhase
	}
	if hash != m.curHash {
		m.mu.Unlock()
		return nil
	}
	if int(from) >= types.NumDelegates {
		m.mu.Unlock()
		return ErrUnknownSender
	}
	if _, dup := m.commitShares[from]; dup {
		m.mu.Unlock()
		return nil
	}
	m.commitShares[from] = share
	v, s := m.committee.weight(from)
	m.commitVote, _ = m.commitVote.Add(v)
	m.commitStake, _ = m.commitStake.Add(s)

	if !MeetsQuorum(m.commitVote, m.commitStake, m.committee.Totals) {
		m.mu.Unlock()
		return nil
	}

	sig, err := m.aggregator.Aggregate(m.commitShares)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	var bitmap types.Bitmap
	for idx := range m.commitShares {
		bitmap.Set(idx)
	}
	postCommitSig := types.AggregateSig{Bitmap: bitmap, Signature: sig}
	metrics.QuorumRounds.WithLabelValues(m.ops.ChainType().String(), "commit").Inc()

	sealed, err := m.sealLocked(postCommitSig)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	payload := codec.MarshalQuorum(codec.QuorumPayload{BlockHash: hash, BlockType: m.ops.ChainType(), AggSig: postCommitSig})
	if err := m.transport.Broadcast(m.ops.ConsensusType(), codec.MsgPostCommit, payload); err != nil {
		return err
	}
	if m.onSealed != nil {
		m.onSealed(sealed)
	}
	return nil
}

// sealLocked cancels the round timer, seals block with sig, applies it, and
// returns the round to Void. Must be called with mu held; it does not
// itself send network messages.
func (m *PrimaryMachine[B]) sealLocked(sig types.AggregateSig) (*B, error) {
	m.timer.Cancel()
	m.ops.SetAggSig(m.cur, sig)
	sealed := m.cur
	if err := m.ops.Apply(sealed); err != nil {
		return nil, err
	}
	m.phase = Void
	m.cur = nil
	return sealed, nil
}

// OnRejection records a Rejection from `from` against request slot.
func (m *PrimaryMachine[B]) OnRejection(from types.DelegateIdx, slot int, reason codec.RejectionReason) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PrePreparePhase || m.rej == nil {
		return
	}
	m.rej.RecordRejection(slot, from, reason)
	if m.rej.NewEpochHandover() {
		m.timer.Cancel()
		m.phase = Void
		m.cur = nil
		if m.onHandover != nil {
			m.onHandover()
		}
	}
}

func (m *PrimaryMachine[B]) onTimeout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != PrePreparePhase && m.phase != PostPreparePhase {
		return
	}
	log.Warn("consensus: primary round timed out, recalling", "phase", m.phase)
	m.phase = Recall
	m.timer.Arm(RecallTimeout, m.onRecallExpired)
}

func (m *PrimaryMachine[B]) onRecallExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Recall {
		return
	}
	m.phase = Void
	m.cur = nil
}
