package main

import (
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/chainops"
	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/config"
	"github.com/LogosNetwork/logos-core-sub003/internal/consensus"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto/blstest"
	"github.com/LogosNetwork/logos-core-sub003/internal/epoch"
	"github.com/LogosNetwork/logos-core-sub003/internal/netio"
	"github.com/LogosNetwork/logos-core-sub003/internal/notify"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// proposeInterval is how often a primary machine checks whether it has
// something new ready to propose.
const proposeInterval = 500 * time.Millisecond

// stack is the full set of consensus machines one node runs for one
// committee: a primary for every chain it owns (its own RB chain, plus MB
// or EB if it holds the seat that drives them) and a backup for every
// chain a peer owns.
type stack struct {
	network   *netio.Network
	transport *netio.Transport

	rbOps *chainops.RequestBlockOps
	mbOps *chainops.MicroBlockOps
	ebOps *chainops.EpochBlockOps

	rbPrimary *consensus.PrimaryMachine[types.RequestBlock]
	rbBackup  map[types.DelegateIdx]*consensus.BackupMachine[types.RequestBlock]

	mbPrimary *consensus.PrimaryMachine[types.MicroBlock]
	mbBackup  *consensus.BackupMachine[types.MicroBlock]

	ebPrimary *consensus.PrimaryMachine[types.EpochBlock]
	ebBackup  *consensus.BackupMachine[types.EpochBlock]

	stopCh chan struct{}
}

// seatCommittee builds a placeholder committee from cfg's configured peer
// list: each listed delegate seat gets a nominal 1-unit vote and stake. A
// real deployment seats a committee from a persisted Epoch Block instead;
// this lets the node boot and drive consensus before one exists.
func seatCommittee(cfg *config.Config) *epoch.Set {
	set := &epoch.Set{Num: 0}
	for _, d := range cfg.AllDelegates {
		if int(d.ID) >= types.NumDelegates {
			continue
		}
		account := types.Hash{}
		account[0] = d.ID + 1 // never the zero hash, which marks an empty seat
		set.Delegates[d.ID] = types.EpochDelegate{
			Account:      account,
			Vote:         types.NewAmount(1),
			Stake:        types.NewAmount(1),
			StartingTerm: true,
		}
	}
	return set
}

// singleChainPrimarySeat picks the delegate that drives the MB and EB
// chains for set: its first seated delegate by index. Real rotation of
// the MB/EB primary seat across epochs is an Open Question left to the
// committee-derivation logic in internal/persistence (see DESIGN.md).
func singleChainPrimarySeat(set *epoch.Set) types.DelegateIdx {
	for i, d := range set.Delegates {
		if d.Account != types.ZeroHash {
			return types.DelegateIdx(i)
		}
	}
	return 0
}

// newStack wires a concrete BlockOps[RequestBlock]/[MicroBlock]/[EpochBlock]
// adapter over db/validator into a full primary+backup machine set, bound
// to network for transport and hub for post-commit notification. signer
// and aggregator are the node's BLS backend; this binary defaults to the
// deterministic blstest double since the real BLS math is an external
// collaborator a production deployment supplies at this seam.
func newStack(cfg *config.Config, set *epoch.Set, db store.Store, validator *persistence.Validator, network *netio.Network, hub *notify.Hub, candidates func() []types.Hash) *stack {
	self := cfg.DelegateID

	var totals types.QuorumTotals
	pubkeys := make([]crypto.BLSPublicKey, types.NumDelegates)
	for i, d := range set.Delegates {
		totals.TotalVote, _ = totals.TotalVote.Add(d.Vote)
		totals.TotalStake, _ = totals.TotalStake.Add(d.Stake)
		pubkeys[i] = blstest.NewSigner(types.DelegateIdx(i)).PublicKey()
	}
	committee := consensus.Committee{Delegates: set.Delegates, Totals: totals, PublicKeys: pubkeys}

	signer := blstest.NewSigner(self)
	aggregator := blstest.NewAggregator()
	transport := netio.NewTransport(network)
	epochFn := func() types.EpochNum { return set.Num }

	rbOps := chainops.NewRequestBlockOps(db, validator, self, epochFn)
	mbOps := chainops.NewMicroBlockOps(db, validator, epochFn)
	ebOps := chainops.NewEpochBlockOps(db, validator, candidates)

	s := &stack{
		network:   network,
		transport: transport,
		rbOps:     rbOps,
		mbOps:     mbOps,
		ebOps:     ebOps,
		rbBackup:  make(map[types.DelegateIdx]*consensus.BackupMachine[types.RequestBlock]),
		stopCh:    make(chan struct{}),
	}

	s.rbPrimary = consensus.NewPrimaryMachine[types.RequestBlock](rbOps, committee, self, signer, aggregator, transport)
	s.rbPrimary.OnSealed(func(rb *types.RequestBlock) { notifyRB(hub, rbOps, rb) })

	for i := range set.Delegates {
		idx := types.DelegateIdx(i)
		if idx == self {
			continue
		}
		bm := consensus.NewBackupMachine[types.RequestBlock](rbOps, committee, self, idx, signer, aggregator, transport)
		bm.OnApplied(func(rb *types.RequestBlock) { notifyRB(hub, rbOps, rb) })
		s.rbBackup[idx] = bm
	}

	primarySeat := singleChainPrimarySeat(set)
	if primarySeat == self {
		s.mbPrimary = consensus.NewPrimaryMachine[types.MicroBlock](mbOps, committee, self, signer, aggregator, transport)
		s.mbPrimary.OnSealed(func(mb *types.MicroBlock) { notifyMB(hub, mbOps, mb) })

		s.ebPrimary = consensus.NewPrimaryMachine[types.EpochBlock](ebOps, committee, self, signer, aggregator, transport)
		s.ebPrimary.OnSealed(func(eb *types.EpochBlock) { notifyEB(hub, ebOps, eb) })
	} else {
		s.mbBackup = consensus.NewBackupMachine[types.MicroBlock](mbOps, committee, self, primarySeat, signer, aggregator, transport)
		s.mbBackup.OnApplied(func(mb *types.MicroBlock) { notifyMB(hub, mbOps, mb) })

		s.ebBackup = consensus.NewBackupMachine[types.EpochBlock](ebOps, committee, self, primarySeat, signer, aggregator, transport)
		s.ebBackup.OnApplied(func(eb *types.EpochBlock) { notifyEB(hub, ebOps, eb) })
	}

	return s
}

func notifyRB(hub *notify.Hub, ops *chainops.RequestBlockOps, rb *types.RequestBlock) {
	hash, err := ops.Digest(rb)
	if err != nil {
		log.Warn("ledgernode: hashing sealed rb for notification", "err", err)
		return
	}
	hub.NotifyRB(rb, hash)
}

func notifyMB(hub *notify.Hub, ops *chainops.MicroBlockOps, mb *types.MicroBlock) {
	hash, err := ops.Digest(mb)
	if err != nil {
		log.Warn("ledgernode: hashing sealed mb for notification", "err", err)
		return
	}
	hub.NotifyMB(mb, hash)
}

func notifyEB(hub *notify.Hub, ops *chainops.EpochBlockOps, eb *types.EpochBlock) {
	hash, err := ops.Digest(eb)
	if err != nil {
		log.Warn("ledgernode: hashing sealed eb for notification", "err", err)
		return
	}
	hub.NotifyEB(eb, hash)
}

// Dispatch routes one inbound frame to the machine that owns (remote,
// consensusType), satisfying netio.Dispatcher.
func (s *stack) Dispatch(remote types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) {
	switch consensusType {
	case codec.ConsensusRequest:
		s.dispatchRB(remote, msgType, payload)
	case codec.ConsensusMicro:
		s.dispatchMB(remote, msgType, payload)
	case codec.ConsensusEpoch:
		s.dispatchEB(remote, msgType, payload)
	}
}

func (s *stack) dispatchRB(remote types.DelegateIdx, msgType codec.MessageType, payload []byte) {
	switch msgType {
	case codec.MsgPrePrepare:
		bm, ok := s.rbBackup[remote]
		if !ok {
			return
		}
		if err := bm.OnPrePrepare(remote, payload); err != nil {
			log.Debug("ledgernode: rb OnPrePrepare", "remote", remote, "err", err)
		}
	case codec.MsgPrepare, codec.MsgCommit:
		v, err := codec.UnmarshalVote(payload)
		if err != nil {
			log.Debug("ledgernode: bad rb vote payload", "remote", remote, "err", err)
			return
		}
		s.onRBVote(remote, msgType, v)
	case codec.MsgPostPrepare, codec.MsgPostCommit:
		q, err := codec.UnmarshalQuorum(payload)
		if err != nil {
			log.Debug("ledgernode: bad rb quorum payload", "remote", remote, "err", err)
			return
		}
		bm, ok := s.rbBackup[remote]
		if !ok {
			return
		}
		s.onRBQuorum(bm, msgType, q)
	case codec.MsgRejection:
		r, err := codec.UnmarshalRejection(payload)
		if err != nil {
			log.Debug("ledgernode: bad rb rejection payload", "remote", remote, "err", err)
			return
		}
		s.rbPrimary.OnRejection(remote, 0, r.Reason)
	}
}

func (s *stack) onRBVote(remote types.DelegateIdx, msgType codec.MessageType, v codec.VotePayload) {
	var err error
	if msgType == codec.MsgPrepare {
		err = s.rbPrimary.OnPrepare(remote, v.BlockHash, v.Share)
	} else {
		err = s.rbPrimary.OnCommit(remote, v.BlockHash, v.Share)
	}
	if err != nil {
		log.Debug("ledgernode: rb vote", "remote", remote, "err", err)
	}
}

func (s *stack) onRBQuorum(bm *consensus.BackupMachine[types.RequestBlock], msgType codec.MessageType, q codec.QuorumPayload) {
	var err error
	if msgType == codec.MsgPostPrepare {
		err = bm.OnPostPrepare(q)
	} else {
		err = bm.OnPostCommit(q)
	}
	if err != nil {
		log.Debug("ledgernode: rb quorum", "err", err)
	}
}

func (s *stack) dispatchMB(remote types.DelegateIdx, msgType codec.MessageType, payload []byte) {
	switch msgType {
	case codec.MsgPrePrepare:
		if s.mbBackup == nil {
			return
		}
		if err := s.mbBackup.OnPrePrepare(remote, payload); err != nil {
			log.Debug("ledgernode: mb OnPrePrepare", "remote", remote, "err", err)
		}
	case codec.MsgPrepare, codec.MsgCommit:
		if s.mbPrimary == nil {
			return
		}
		v, err := codec.UnmarshalVote(payload)
		if err != nil {
			return
		}
		if msgType == codec.MsgPrepare {
			err = s.mbPrimary.OnPrepare(remote, v.BlockHash, v.Share)
		} else {
			err = s.mbPrimary.OnCommit(remote, v.BlockHash, v.Share)
		}
		if err != nil {
			log.Debug("ledgernode: mb vote", "remote", remote, "err", err)
		}
	case codec.MsgPostPrepare, codec.MsgPostCommit:
		if s.mbBackup == nil {
			return
		}
		q, err := codec.UnmarshalQuorum(payload)
		if err != nil {
			return
		}
		if msgType == codec.MsgPostPrepare {
			err = s.mbBackup.OnPostPrepare(q)
		} else {
			err = s.mbBackup.OnPostCommit(q)
		}
		if err != nil {
			log.Debug("ledgernode: mb quorum", "err", err)
		}
	case codec.MsgRejection:
		if s.mbPrimary == nil {
			return
		}
		r, err := codec.UnmarshalRejection(payload)
		if err != nil {
			return
		}
		s.mbPrimary.OnRejection(remote, 0, r.Reason)
	}
}

func (s *stack) dispatchEB(remote types.DelegateIdx, msgType codec.MessageType, payload []byte) {
	switch msgType {
	case codec.MsgPrePrepare:
		if s.ebBackup == nil {
			return
		}
		if err := s.ebBackup.OnPrePrepare(remote, payload); err != nil {
			log.Debug("ledgernode: eb OnPrePrepare", "remote", remote, "err", err)
		}
	case codec.MsgPrepare, codec.MsgCommit:
		if s.ebPrimary == nil {
			return
		}
		v, err := codec.UnmarshalVote(payload)
		if err != nil {
			return
		}
		if msgType == codec.MsgPrepare {
			err = s.ebPrimary.OnPrepare(remote, v.BlockHash, v.Share)
		} else {
			err = s.ebPrimary.OnCommit(remote, v.BlockHash, v.Share)
		}
		if err != nil {
			log.Debug("ledgernode: eb vote", "remote", remote, "err", err)
		}
	case codec.MsgPostPrepare, codec.MsgPostCommit:
		if s.ebBackup == nil {
			return
		}
		q, err := codec.UnmarshalQuorum(payload)
		if err != nil {
			return
		}
		if msgType == codec.MsgPostPrepare {
			err = s.ebBackup.OnPostPrepare(q)
		} else {
			err = s.ebBackup.OnPostCommit(q)
		}
		if err != nil {
			log.Debug("ledgernode: eb quorum", "err", err)
		}
	case codec.MsgRejection:
		if s.ebPrimary == nil {
			return
		}
		r, err := codec.UnmarshalRejection(payload)
		if err != nil {
			return
		}
		s.ebPrimary.OnRejection(remote, 0, r.Reason)
	}
}

// run ticks every primary machine's TryPropose until stop is called.
func (s *stack) run() {
	ticker := time.NewTicker(proposeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tryProposeAll()
		}
	}
}

func (s *stack) tryProposeAll() {
	if err := s.rbPrimary.TryPropose(); err != nil {
		log.Debug("ledgernode: rb propose", "err", err)
	}
	if s.mbPrimary != nil {
		if err := s.mbPrimary.TryPropose(); err != nil {
			log.Debug("ledgernode: mb propose", "err", err)
		}
	}
	if s.ebPrimary != nil {
		if err := s.ebPrimary.TryPropose(); err != nil {
			log.Debug("ledgernode: eb propose", "err", err)
		}
	}
}

func (s *stack) stop() { close(s.stopCh) }
