package consensus

import (
	"math/big"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ceilTwoThirds computes ceil(2*total/3), reporting whether the division
// had a remainder so callers can apply the explicit boundary rule: the
// boundary is inclusive iff the division had a remainder (rounded), so an
// exact 2/3 requires strict excess over the threshold.
func ceilTwoThirds(total types.Amount) (threshold types.Amount, rounded bool) {
	num := new(big.Int).Mul(total.Big(), big.NewInt(2))
	q, r := new(big.Int).QuoRem(num, big.NewInt(3), new(big.Int))
	rounded = r.Sign() != 0
	if rounded {
		q.Add(q, big.NewInt(1))
	}
	amt, err := types.AmountFromBig(q)
	if err != nil {
		return types.Amount{}, rounded
	}
	return amt, rounded
}

// MeetsQuorum reports whether (vote, stake) weight clears both the vote and
// stake 2/3 thresholds of totals: ceiling thresholds, with an exact
// (no-remainder) threshold requiring strict excess rather than equality.
func MeetsQuorum(vote, stake types.Amount, totals types.QuorumTotals) bool {
	return meetsOne(vote, totals.TotalVote) && meetsOne(stake, totals.TotalStake)
}

func meetsOne(weight, total types.Amount) bool {
	threshold, rounded := ceilTwoThirds(total)
	cmp := weight.Cmp(threshold)
	if rounded {
		return cmp >= 0
	}
	return cmp > 0
}

// RejectionThreshold reports whether rejection weight has reached 1/3 of
// total, the drop condition for rejection handling.
func RejectionThreshold(rejectWeight, total types.Amount) bool {
	num := new(big.Int).Mul(rejectWeight.Big(), big.NewInt(3))
	return num.Cmp(total.Big()) >= 0
}
