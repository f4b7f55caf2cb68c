package persistence

import (
	"math/big"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// UnlockedProxyDilution is the factor applied to unlocked-proxy weight when
// deriving a candidate's effective vote for committee seating. It is a
// package-level var rather than a function parameter threaded through
// DeriveCommittee/EffectiveVote: cmd/ledgernode sets it once from
// Config.UnlockedProxyDilution at node startup, matching the source's
// own process-lifetime-constant treatment while still making it
// operator-tunable (DESIGN.md).
var UnlockedProxyDilution = 0.60

// EffectiveVote computes a representative's weighted vote for committee
// seating: self-stake and locked proxy count 1:1, unlocked proxy counts at
// UnlockedProxyDilution").
func EffectiveVote(snap types.VotingPowerSnapshot) types.Amount {
	base, _ := snap.SelfStake.Add(snap.LockedProxied)
	diluted := dilute(snap.UnlockedProxied, UnlockedProxyDilution)
	total, _ := base.Add(diluted)
	return total
}

func dilute(amount types.Amount, factor float64) types.Amount {
	// Scale by a fixed-point rational (factor*1e6 / 1e6) to avoid floating
	// point in the on-chain arithmetic itself; factor is set once at
	// startup, and converting it keeps six decimal places.
	scaled := int64(factor * 1e6)
	num := new(big.Int).Mul(amount.Big(), big.NewInt(scaled))
	num.Div(num, big.NewInt(1e6))
	out, err := types.AmountFromBig(num)
	if err != nil {
		return types.NewAmount(0)
	}
	return out
}

// transitionVotingPower forces rep's lazy next->current copy for epoch and
// writes the record back; ApplyEB calls it for every seated delegate of the
// applied EB.
func transitionVotingPower(tx store.Tx, rep types.Hash, epoch types.EpochNum) (types.VotingPowerSnapshot, error) {
	vp, err := votingPower(tx, rep, epoch)
	if err != nil {
		return types.VotingPowerSnapshot{}, err
	}
	if err := tx.PutVotingPower(rep, vp); err != nil {
		return types.VotingPowerSnapshot{}, err
	}
	return vp.Current, nil
}
