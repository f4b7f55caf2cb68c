// Package epoch coordinates the transition between committees: which state
// the node is in as an epoch closes, which delegate index this node holds in
// the current and next committee, and when to stand up a parallel consensus
// stack for the incoming epoch.
package epoch

import (
	"errors"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// NonDelegate marks a node that holds no seat in the requested committee.
const NonDelegate = types.DelegateIdx(255)

// State is the epoch manager's lifecycle.
type State uint8

const (
	// None: no epoch transition in progress, running the steady-state
	// single consensus stack.
	None State = iota
	// Connecting: a parallel stack for the next epoch's committee is
	// being dialed/accepted but has not yet reached consensus.
	Connecting
	// EpochTransitionStart: the closing MB has declared LastMicroBlock;
	// the outgoing stack is draining while the incoming one is live.
	EpochTransitionStart
	// EpochStart: the EB for the new epoch has applied; the outgoing
	// stack has been retired.
	EpochStart
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Connecting:
		return "connecting"
	case EpochTransitionStart:
		return "epoch_transition_start"
	case EpochStart:
		return "epoch_start"
	default:
		return "unknown"
	}
}

// ErrRecall is returned by RecordNewEpochRejection once a standup has been
// rejected by enough of the incoming committee to abandon it.
var ErrRecall = errors.New("epoch: recalled, insufficient NewEpoch acceptance")

// RecallThreshold is the fraction of rejections that aborts a standup.
const RecallThreshold = 1.0 / 3.0

// Set is one committee snapshot plus the metadata needed to route an
// inbound message to it.
type Set struct {
	Num       types.EpochNum
	Delegates [types.NumDelegates]types.EpochDelegate
}

// Manager tracks {state, current_epoch, next_epoch} and drives the standup
// and recall paths. It does not itself own the consensus machines or netio
// stacks it stands up; NewEpochHook is called to let the caller construct
// them once a transition begins.
type Manager struct {
	mu sync.Mutex

	state   State
	current *Set
	next    *Set

	rejections map[types.DelegateIdx]struct{}

	onTransitionStart func(next *Set)
	onEpochStart      func(current *Set)
	onRecall          func()
}

// NewManager builds a Manager seated at current with no transition pending.
func NewManager(current *Set) *Manager {
	return &Manager{state: None, current: current, rejections: make(map[types.DelegateIdx]struct{})}
}

// OnTransitionStart registers the hook fired when BeginTransition moves the
// manager into EpochTransitionStart: the caller should stand up a parallel
// internal/consensus + internal/netio stack for next.
func (m *Manager) OnTransitionStart(fn func(next *Set)) { m.onTransitionStart = fn }

// OnEpochStart registers the hook fired when CompleteTransition seats next as
// current: the caller should retire the outgoing stack (Network.RetireEpoch).
func (m *Manager) OnEpochStart(fn func(current *Set)) { m.onEpochStart = fn }

// OnRecall registers the hook fired when a standup is abandoned.
func (m *Manager) OnRecall(fn func()) { m.onRecall = fn }

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the presently active committee.
func (m *Manager) Current() *Set {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Next returns the committee being stood up, if any.
func (m *Manager) Next() *Set {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next
}

// BeginTransition moves None -> EpochTransitionStart on observing the
// closing MB's LastMicroBlock flag (dual-stack standup on
// MB.last_micro_block), recording next as the incoming committee.
func (m *Manager) BeginTransition(next *Set) {
	m.mu.Lock()
	m.state = EpochTransitionStart
	m.next = next
	m.rejections = make(map[types.DelegateIdx]struct{})
	hook := m.onTransitionStart
	m.mu.Unlock()

	log.Info("epoch: transition started", "next_epoch", next.Num)
	if hook != nil {
		hook(next)
	}
}

// RecordNewEpochRejection tallies one NewEpoch rejection from rejecter. Once
// rejections reach RecallThreshold of the incoming committee, the standup is
// abandoned and ErrRecall is returned; the caller should tear down whatever
// it stood up in OnTransitionStart.
func (m *Manager) RecordNewEpochRejection(rejecter types.DelegateIdx) error {
	m.mu.Lock()
	if m.state != EpochTransitionStart && m.state != Connecting {
		m.mu.Unlock()
		return nil
	}
	m.rejections[rejecter] = struct{}{}
	if float64(len(m.rejections)) < RecallThreshold*float64(types.NumDelegates) {
		m.mu.Unlock()
		return nil
	}

	m.state = None
	m.next = nil
	hook := m.onRecall
	m.mu.Unlock()

	log.Warn("epoch: standup recalled, insufficient acceptance")
	if hook != nil {
		hook()
	}
	return ErrRecall
}

// CompleteTransition moves EpochTransitionStart -> EpochStart once the EB
// for next has applied, seating next as current.
func (m *Manager) CompleteTransition() {
	m.mu.Lock()
	outgoing := m.current
	m.current = m.next
	m.next = nil
	m.state = EpochStart
	hook := m.onEpochStart
	m.mu.Unlock()

	log.Info("epoch: transition complete", "epoch", m.current.Num)
	if hook != nil {
		hook(outgoing)
	}
}

// Settle moves EpochStart -> None once the outgoing stack has been retired
// and steady-state single-stack operation resumes.
func (m *Manager) Settle() {
	m.mu.Lock()
	m.state = None
	m.mu.Unlock()
}

// StaleEpoch reports whether the node is starting up so close to an epoch
// boundary that the epoch tip's successor EB has likely not been created
// yet, per delegate_identity_manager.cpp's StaleEpoch: within one MB
// proposal window of the epoch boundary.
func StaleEpoch(now, epochProposalTime, mbProposalTime time.Duration) bool {
	rem := now % epochProposalTime
	return rem < mbProposalTime
}

// ResolveEpochNumber derives the epoch number a freshly-started node should
// run as, given the tip EB's number and whether the node is starting in a
// stale window (delegate_identity_manager.cpp Init): the epoch after the
// tip, bumped once more if the next EB likely hasn't landed yet.
func ResolveEpochNumber(tipEpochNum types.EpochNum, stale bool) types.EpochNum {
	n := tipEpochNum + 1
	if stale {
		n++
	}
	return n
}

// IdentityManager resolves this node's seat across the dual-epoch overlap
// window, per logos/node/delegate_identity_manager.cpp's IdentifyDelegates.
type IdentityManager struct {
	db      store.Store
	account types.Hash
}

// NewIdentityManager builds an IdentityManager for the node whose delegate
// account is account.
func NewIdentityManager(db store.Store, account types.Hash) *IdentityManager {
	return &IdentityManager{db: db, account: account}
}

// Which selects current vs. next committee for IdentifyDelegates.
type Which uint8

const (
	WhichCurrent Which = iota
	WhichNext
)

// IdentifyDelegates resolves this node's seat (or NonDelegate) and the full
// delegate account table for the requested committee, reading the EB chain
// from the tip backward when which is WhichCurrent (the tip EB names the
// *next* committee to take its seat, so "current" is one hop further back).
func (im *IdentityManager) IdentifyDelegates(which Which) (types.DelegateIdx, [types.NumDelegates]types.Hash, error) {
	var accounts [types.NumDelegates]types.Hash

	tx, err := im.db.Begin()
	if err != nil {
		return NonDelegate, accounts, err
	}
	defer tx.Rollback()

	tipHash, err := tx.GetEBTip()
	if err != nil {
		return NonDelegate, accounts, err
	}
	eb, err := tx.GetEB(tipHash)
	if err != nil {
		return NonDelegate, accounts, err
	}

	if which == WhichCurrent {
		eb, err = tx.GetEB(eb.Previous)
		if err != nil {
			return NonDelegate, accounts, err
		}
	}

	idx := NonDelegate
	for i, d := range eb.Delegates {
		accounts[i] = d.Account
		if d.Account == im.account {
			idx = types.DelegateIdx(i)
		}
	}
	return idx, accounts, nil
}

// IdentifyDelegatesForEpoch walks the EB chain backward from the tip to find
// the committee seated for epochNum, for handling a message that references
// an older epoch (delegate_identity_manager.cpp's numbered overload).
func (im *IdentityManager) IdentifyDelegatesForEpoch(epochNum types.EpochNum) (types.DelegateIdx, [types.NumDelegates]types.Hash, bool, error) {
	var accounts [types.NumDelegates]types.Hash

	tx, err := im.db.Begin()
	if err != nil {
		return NonDelegate, accounts, false, err
	}
	defer tx.Rollback()

	hash, err := tx.GetEBTip()
	if err != nil {
		return NonDelegate, accounts, false, err
	}

	for {
		eb, err := tx.GetEB(hash)
		if err != nil {
			return NonDelegate, accounts, false, err
		}
		if eb.EpochNum == epochNum {
			idx := NonDelegate
			for i, d := range eb.Delegates {
				accounts[i] = d.Account
				if d.Account == im.account {
					idx = types.DelegateIdx(i)
				}
			}
			return idx, accounts, true, nil
		}
		if eb.Previous == types.ZeroHash {
			return NonDelegate, accounts, false, nil
		}
		hash = eb.Previous
	}
}
