package consensus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto/blstest"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// toyBlock is a minimal stand-in for RequestBlock/MicroBlock/EpochBlock,
// enough to exercise the phase machine without pulling in persistence.
type toyBlock struct {
	Seq    uint32
	AggSig types.AggregateSig
}

type toyOps struct {
	mu      sync.Mutex
	primary types.DelegateIdx
	queue   []*toyBlock
	applied []*toyBlock
}

func (o *toyOps) ChainType() types.BlockType         { return types.BlockTypeRequest }
func (o *toyOps) ConsensusType() codec.ConsensusType { return codec.ConsensusRequest }

func (o *toyOps) Digest(b *toyBlock) (types.Hash, error) {
	var h types.Hash
	h[0] = byte(b.Seq)
	h[1] = byte(b.Seq >> 8)
	return h, nil
}

func (o *toyOps) Marshal(b *toyBlock) ([]byte, error)   { return []byte{byte(b.Seq)}, nil }
func (o *toyOps) Unmarshal(d []byte) (*toyBlock, error) { return &toyBlock{Seq: uint32(d[0])}, nil }

func (o *toyOps) SetAggSig(b *toyBlock, sig types.AggregateSig) { b.AggSig = sig }
func (o *toyOps) PrimaryIdx(b *toyBlock) types.DelegateIdx      { return o.primary }

func (o *toyOps) Validate(b *toyBlock) (bool, codec.RejectionReason) { return true, 0 }

func (o *toyOps) Apply(b *toyBlock) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.applied = append(o.applied, b)
	return nil
}

func (o *toyOps) BuildNext() (*toyBlock, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.queue) == 0 {
		return nil, false
	}
	b := o.queue[0]
	o.queue = o.queue[1:]
	return b, true
}

// wiredTransport routes Broadcast/SendTo directly into the test's machines,
// simulating an already-connected committee without real sockets.
type wiredTransport struct {
	self     types.DelegateIdx
	primary  *PrimaryMachine[toyBlock]
	backups  map[types.DelegateIdx]*BackupMachine[toyBlock]
}

func (tr *wiredTransport) Broadcast(consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error {
	for idx, b := range tr.backups {
		if idx == tr.self {
			continue
		}
		// A peer that hasn't caught up to this phase yet (or already moved
		// past it) drops the message; that's expected fan-out behavior, not
		// a broadcast failure, so it must not stop delivery to other peers.
		if err := dispatchToBackup(b, tr.self, msgType, payload); err != nil && err != ErrWrongPhase {
			return err
		}
	}
	return nil
}

func (tr *wiredTransport) SendTo(delegate types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) error {
	if delegate != tr.primary.self {
		return nil
	}
	return dispatchToPrimary(tr.primary, tr.self, msgType, payload)
}

func dispatchToBackup(b *BackupMachine[toyBlock], from types.DelegateIdx, msgType codec.MessageType, payload []byte) error {
	switch msgType {
	case codec.MsgPrePrepare:
		return b.OnPrePrepare(from, payload)
	case codec.MsgPostPrepare:
		q, err := codec.UnmarshalQuorum(payload)
		if err != nil {
			return err
		}
		return b.OnPostPrepare(q)
	case codec.MsgPostCommit:
		q, err := codec.UnmarshalQuorum(payload)
		if err != nil {
			return err
		}
		return b.OnPostCommit(q)
	}
	return nil
}

func dispatchToPrimary(p *PrimaryMachine[toyBlock], from types.DelegateIdx, msgType codec.MessageType, payload []byte) error {
	switch msgType {
	case codec.MsgPrepare:
		v, err := codec.UnmarshalVote(payload)
		if err != nil {
			return err
		}
		return p.OnPrepare(from, v.BlockHash, v.Share)
	case codec.MsgCommit:
		v, err := codec.UnmarshalVote(payload)
		if err != nil {
			return err
		}
		return p.OnCommit(from, v.BlockHash, v.Share)
	case codec.MsgRejection:
		r, err := codec.UnmarshalRejection(payload)
		if err != nil {
			return err
		}
		p.OnRejection(from, 0, r.Reason)
	}
	return nil
}

func TestFourDelegateRound_SealsAndApplies(t *testing.T) {
	const n = 4
	var delegates [types.NumDelegates]types.EpochDelegate
	for i := 0; i < n; i++ {
		delegates[i] = types.EpochDelegate{Vote: types.NewAmount(100), Stake: types.NewAmount(100)}
	}
	totals := types.QuorumTotals{TotalVote: types.NewAmount(400), TotalStake: types.NewAmount(400)}

	signers := make([]*blstest.Signer, n)
	pubs := make([]crypto.BLSPublicKey, n)
	for i := 0; i < n; i++ {
		signers[i] = blstest.NewSigner(types.DelegateIdx(i))
		pubs[i] = signers[i].PublicKey()
	}
	committee := Committee{Delegates: delegates, Totals: totals, PublicKeys: pubs}
	agg := blstest.NewAggregator()

	ops := &toyOps{primary: 0, queue: []*toyBlock{{Seq: 1}}}

	primaryTransport := &wiredTransport{self: 0}
	primary := NewPrimaryMachine[toyBlock](ops, committee, 0, signers[0], agg, primaryTransport)
	primaryTransport.primary = primary
	primaryTransport.backups = make(map[types.DelegateIdx]*BackupMachine[toyBlock])

	for i := 1; i < n; i++ {
		bt := &wiredTransport{self: types.DelegateIdx(i), primary: primary}
		b := NewBackupMachine[toyBlock](&toyOps{primary: 0}, committee, types.DelegateIdx(i), 0, signers[i], agg, bt)
		primaryTransport.backups[types.DelegateIdx(i)] = b
	}

	require.NoError(t, primary.TryPropose())

	require.Equal(t, Void, primary.Phase())
	require.Len(t, ops.applied, 1)
	require.Equal(t, uint32(1), ops.applied[0].Seq)
}
