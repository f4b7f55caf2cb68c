package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

func fourDelegateCommittee() ([types.NumDelegates]types.EpochDelegate, types.QuorumTotals) {
	var delegates [types.NumDelegates]types.EpochDelegate
	for i := 0; i < 4; i++ {
		delegates[i] = types.EpochDelegate{Vote: types.NewAmount(100), Stake: types.NewAmount(100)}
	}
	totals := types.QuorumTotals{TotalVote: types.NewAmount(400), TotalStake: types.NewAmount(400)}
	return delegates, totals
}

func TestRejectionTracker_SurvivingSlotNeedsQuorumAcceptance(t *testing.T) {
	delegates, totals := fourDelegateCommittee()
	tr := NewRejectionTracker(delegates, totals, 2)

	tr.RecordAccept(0, 0)
	tr.RecordAccept(0, 1)
	tr.RecordAccept(0, 2) // slot 0: 3/4 delegates accept, clears quorum

	tr.RecordAccept(1, 0) // slot 1: only 1/4 accepts, short of quorum

	batches := tr.Partition()
	require.Len(t, batches, 1)
	require.Equal(t, []int{0}, batches[0])
}

func TestRejectionTracker_SingleRejectionBelowThresholdKeepsSlot(t *testing.T) {
	delegates, totals := fourDelegateCommittee()
	tr := NewRejectionTracker(delegates, totals, 1)

	tr.RecordAccept(0, 0)
	tr.RecordAccept(0, 1)
	tr.RecordAccept(0, 2)
	tr.RecordRejection(0, 3, codec.RejectContainsInvalidRequest)

	// 1/4 reject weight = 100/400 stays under the rejection threshold:
	// RejectionThreshold uses 3*reject >= total, and 3*100=300 < 400, so
	// this single rejection does not drop the slot.
	batches := tr.Partition()
	require.Len(t, batches, 1)
}

func TestRejectionTracker_PartitionsBySupporterSet(t *testing.T) {
	delegates, totals := fourDelegateCommittee()
	tr := NewRejectionTracker(delegates, totals, 2)

	tr.RecordAccept(0, 0)
	tr.RecordAccept(0, 1)
	tr.RecordAccept(0, 2)

	tr.RecordAccept(1, 1)
	tr.RecordAccept(1, 2)
	tr.RecordAccept(1, 3)

	batches := tr.Partition()
	require.Len(t, batches, 2)
}

func TestRejectionTracker_NewEpochHandover(t *testing.T) {
	delegates, totals := fourDelegateCommittee()
	tr := NewRejectionTracker(delegates, totals, 1)

	tr.RecordRejection(0, 0, codec.RejectNewEpoch)
	require.False(t, tr.NewEpochHandover())

	tr.RecordRejection(0, 1, codec.RejectNewEpoch)
	// 2/4 vote weight for NewEpoch clears the 1/3 threshold.
	require.True(t, tr.NewEpochHandover())
}
