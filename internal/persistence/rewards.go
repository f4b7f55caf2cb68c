package persistence

import (
	"math/big"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// DistributeRewards splits pool proportionally across delegates by
// participation (signed commits out of totalRounds), crediting each
// delegate's `reward` store entry for later withdrawal via a Claim
// request.
func DistributeRewards(tx store.Tx, epoch types.EpochNum, pool types.Amount, delegates []types.Hash, signedCommits []uint32, totalRounds uint32) error {
	if totalRounds == 0 || len(delegates) != len(signedCommits) {
		return nil
	}

	distributed := types.NewAmount(0)
	for i, delegate := range delegates {
		share := rewardShare(pool, signedCommits[i], totalRounds)
		if share.IsZero() {
			continue
		}
		existing, err := tx.GetReward(delegate)
		if err != nil && err != store.ErrNotFound {
			return err
		}
		credited, err := existing.Add(share)
		if err != nil {
			return err
		}
		if err := tx.PutReward(delegate, credited); err != nil {
			return err
		}
		distributed, err = distributed.Add(share)
		if err != nil {
			return err
		}
	}

	return tx.PutGlobalReward(epoch, distributed)
}

func rewardShare(pool types.Amount, signed, total uint32) types.Amount {
	num := new(big.Int).Mul(pool.Big(), big.NewInt(int64(signed)))
	num.Div(num, big.NewInt(int64(total)))
	share, err := types.AmountFromBig(num)
	if err != nil {
		return types.NewAmount(0)
	}
	return share
}
