package persistence

import (
	"fmt"
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// MBProposalTime bounds how far past the previous MB's timestamp an RB may
// still be cut into the next MB.
// Decision recorded in DESIGN.md: modeled as a package constant rather than
// a Config field pending an Open-Question resolution on whether it should
// be operator-tunable.
const MBProposalTime = 30 * time.Second

// ValidateMB checks sequence continuity and epoch continuity against the
// chain's current MB tip. It does not apply the cut-off rule; Cutoff
// computes that bound separately.
// prev is nil only for the very first MB of the chain.
func ValidateMB(mb *types.MicroBlock, prev *types.MicroBlock) Code {
	if prev == nil {
		if mb.Sequence != 0 {
			return CodeGapPrevious
		}
		return CodeProgress
	}

	if mb.Sequence != prev.Sequence+1 {
		return CodeGapPrevious
	}

	wantNewEpoch := prev.LastMicroBlock
	gotNewEpoch := mb.EpochNum == prev.EpochNum+1
	if wantNewEpoch != gotNewEpoch {
		return CodeFork
	}
	if !wantNewEpoch && mb.EpochNum != prev.EpochNum {
		return CodeFork
	}

	return CodeProgress
}

// Cutoff computes the latest RB timestamp eligible for inclusion in the MB
// that follows prev. When prev is nil (the genesis-adjacent MB, no prior MB
// timestamp to anchor on), the caller falls back to the minimum timestamp
// observed across the RBs actually being cut.
func Cutoff(prev *types.MicroBlock) (time.Time, bool) {
	if prev == nil {
		return time.Time{}, false
	}
	return prev.Timestamp.Add(MBProposalTime), true
}

// ApplyMB persists mb, advances the MB tip, and back-patches nothing (MBs
// form a simple chain via Previous, no Next pointer is required since
// nothing but the chain itself walks backward from an MB).
func ApplyMB(tx store.Tx, mb *types.MicroBlock) (types.Hash, error) {
	hash, err := crypto.Digest(mb)
	if err != nil {
		return types.Hash{}, fmt.Errorf("%w: hashing micro block: %v", ErrFatal, err)
	}
	if err := tx.PutMB(hash, mb); err != nil {
		return types.Hash{}, fmt.Errorf("%w: storing micro block: %v", ErrFatal, err)
	}
	if err := tx.SetMBTip(hash); err != nil {
		return types.Hash{}, fmt.Errorf("%w: advancing mb tip: %v", ErrFatal, err)
	}
	return hash, nil
}
