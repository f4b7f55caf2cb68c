package persistence

import (
	"fmt"
	"sort"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ValidateEB checks that eb.MicroBlockTip matches the chain's current MB
// tip; delegate-set correctness is checked
// by DeriveCommittee separately since it requires the full candidate table.
func ValidateEB(tx store.Tx, eb *types.EpochBlock) (Code, error) {
	tip, err := tx.GetMBTip()
	if err != nil && err != store.ErrNotFound {
		return "", err
	}
	if eb.MicroBlockTip != tip {
		return CodeFork, nil
	}
	return CodeProgress, nil
}

// candidateScore is a candidate's weight for committee seating: the raw
// ElectionVote tally plus the candidate's own diluted voting power
// (self-stake and proxy), weighted votes_received after applying the
// dilution factor to unlocked proxy. Decision recorded in DESIGN.md: the
// dilution factor is applied to the candidate's own proxy balance, not to
// individual ballots, since ElectionVotePayload carries
// voter-assigned weights that are already final at cast time.
type candidateScore struct {
	account types.Hash
	score   types.Amount
}

// DeriveCommittee ranks every active candidate by candidateScore and
// returns the top NUM_DELEGATES as the next epoch's seated committee.
func DeriveCommittee(tx store.Tx, candidates []types.Hash, epoch types.EpochNum) ([types.NumDelegates]types.EpochDelegate, error) {
	var out [types.NumDelegates]types.EpochDelegate

	scores := make([]candidateScore, 0, len(candidates))
	for _, account := range candidates {
		c, err := tx.GetCandidacy(account)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return out, err
		}
		if !c.Active {
			continue
		}

		vp, err := votingPower(tx, account, epoch)
		if err != nil {
			return out, err
		}
		own := EffectiveVote(vp.Current)
		total, err := c.VotesReceived.Add(own)
		if err != nil {
			return out, err
		}
		scores = append(scores, candidateScore{account: account, score: total})
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].score.Cmp(scores[j].score) > 0
	})
	if len(scores) > types.NumDelegates {
		scores = scores[:types.NumDelegates]
	}

	for i, s := range scores {
		vp, err := votingPower(tx, s.account, epoch)
		if err != nil {
			return out, err
		}
		out[i] = types.EpochDelegate{
			Account:      s.account,
			Vote:         s.score,
			Stake:        vp.Current.SelfStake,
			StartingTerm: true,
		}
	}
	return out, nil
}

// ApplyEB persists eb, advances the EB tip, transitions every seated
// delegate's voting power into Current for the new epoch. It does not
// prune VotingPowerInfo rows.
func ApplyEB(tx store.Tx, eb *types.EpochBlock) (types.Hash, error) {
	hash, err := crypto.Digest(eb)
	if err != nil {
		return types.Hash{}, fmt.Errorf("%w: hashing epoch block: %v", ErrFatal, err)
	}
	if err := tx.PutEB(hash, eb); err != nil {
		return types.Hash{}, fmt.Errorf("%w: storing epoch block: %v", ErrFatal, err)
	}
	if err := tx.SetEBTip(hash); err != nil {
		return types.Hash{}, fmt.Errorf("%w: advancing eb tip: %v", ErrFatal, err)
	}

	for _, d := range eb.Delegates {
		if d.Account == types.ZeroHash {
			continue
		}
		if _, err := transitionVotingPower(tx, d.Account, eb.EpochNum); err != nil {
			return types.Hash{}, fmt.Errorf("%w: transitioning voting power: %v", ErrFatal, err)
		}
	}

	return hash, nil
}
