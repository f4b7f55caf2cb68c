package consensus

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// slotTally is the per-request-slot weight bookkeeping for RB rejection
// handling.
type slotTally struct {
	rejectVote   types.Amount
	rejectStake  types.Amount
	acceptVote   types.Amount
	acceptStake  types.Amount
	supporters   mapset.Set[types.DelegateIdx] // delegates that accepted this slot
	newEpochVote types.Amount
}

func newSlotTally() *slotTally {
	return &slotTally{supporters: mapset.NewSet[types.DelegateIdx]()}
}

// RejectionTracker accumulates per-slot rejection/acceptance weight across a
// PrePrepare round and partitions survivors for re-proposal. Applies only
// to RB rounds.
type RejectionTracker struct {
	delegates [types.NumDelegates]types.EpochDelegate
	totals    types.QuorumTotals
	slots     map[int]*slotTally
	newEpoch  types.Amount
}

// NewRejectionTracker builds a tracker over numSlots request slots, scoped
// to the committee named by delegates.
func NewRejectionTracker(delegates [types.NumDelegates]types.EpochDelegate, totals types.QuorumTotals, numSlots int) *RejectionTracker {
	t := &RejectionTracker{delegates: delegates, totals: totals, slots: make(map[int]*slotTally, numSlots)}
	for i := 0; i < numSlots; i++ {
		t.slots[i] = newSlotTally()
	}
	return t
}

func (t *RejectionTracker) weightOf(delegate types.DelegateIdx) (vote, stake types.Amount) {
	d := t.delegates[delegate]
	return d.Vote, d.Stake
}

// RecordAccept records that delegate accepted (sent Prepare for) slot.
func (t *RejectionTracker) RecordAccept(slot int, delegate types.DelegateIdx) {
	s, ok := t.slots[slot]
	if !ok {
		return
	}
	v, st := t.weightOf(delegate)
	s.acceptVote, _ = s.acceptVote.Add(v)
	s.acceptStake, _ = s.acceptStake.Add(st)
	s.supporters.Add(delegate)
}

// RecordRejection records one Rejection message from delegate, scoped to
// slot (use slot -1 for a rejection that names no specific request, e.g. a
// structural rejection of the whole PrePrepare).
func (t *RejectionTracker) RecordRejection(slot int, delegate types.DelegateIdx, reason codec.RejectionReason) {
	v, st := t.weightOf(delegate)
	if reason == codec.RejectNewEpoch {
		t.newEpoch, _ = t.newEpoch.Add(v)
	}
	s, ok := t.slots[slot]
	if !ok {
		return
	}
	s.rejectVote, _ = s.rejectVote.Add(v)
	s.rejectStake, _ = s.rejectStake.Add(st)
}

// NewEpochHandover reports whether accumulated NewEpoch rejection weight has
// reached 1/3 of total vote, the "stop and hand over" condition.
func (t *RejectionTracker) NewEpochHandover() bool {
	return RejectionThreshold(t.newEpoch, t.totals.TotalVote)
}

// survives reports whether slot should stay in the next re-proposal: its
// rejection weight must stay under 1/3 total AND its acceptors must already
// clear quorum; a slot whose acceptors together fail to reach quorum is
// also dropped.
func (t *RejectionTracker) survives(slot int) bool {
	s := t.slots[slot]
	if RejectionThreshold(s.rejectVote, t.totals.TotalVote) || RejectionThreshold(s.rejectStake, t.totals.TotalStake) {
		return false
	}
	return MeetsQuorum(s.acceptVote, s.acceptStake, t.totals)
}

// Partition groups surviving slots by identical supporting-delegate sets,
// producing one or more re-proposal batches. Slots are returned in batches
// keyed by a deterministic string signature of the supporter set so
// callers get stable
// batch ordering across calls with the same input.
func (t *RejectionTracker) Partition() [][]int {
	groups := make(map[string][]int)
	var order []string
	for slot := 0; slot < len(t.slots); slot++ {
		if !t.survives(slot) {
			continue
		}
		key := supporterKey(t.slots[slot].supporters)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], slot)
	}
	batches := make([][]int, 0, len(order))
	for _, key := range order {
		batches = append(batches, groups[key])
	}
	return batches
}

func supporterKey(s mapset.Set[types.DelegateIdx]) string {
	var bm types.Bitmap
	for _, d := range s.ToSlice() {
		bm.Set(d)
	}
	return string(bm[:])
}
