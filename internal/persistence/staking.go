package persistence

import (
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// applyStaking dispatches Stake/Unstake/Proxy/Claim, each of which mutates
// the origin's voting-power "next" snapshot and the staked/thawing/liability
// mirror tables.
func (v *Validator) applyStaking(tx store.Tx, req *types.Request, reqHash types.Hash, epoch types.EpochNum) error {
	switch req.Type {
	case types.RequestStake:
		if err := v.applyStake(tx, req, epoch); err != nil {
			return err
		}
	case types.RequestUnstake:
		if err := v.applyUnstake(tx, req, epoch); err != nil {
			return err
		}
	case types.RequestProxy:
		if err := v.applyProxy(tx, req, epoch); err != nil {
			return err
		}
	case types.RequestClaim:
		if err := v.applyClaim(tx, req, epoch); err != nil {
			return err
		}
	}

	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}
	account.StakingSubchainHead = reqHash
	account.Head = reqHash
	account.BlockCount++
	account.Reservation = types.ZeroHash
	account.Modified = time.Now().Unix()
	return tx.PutAccount(req.Origin, account)
}

func votingPower(tx store.Tx, rep types.Hash, epoch types.EpochNum) (*types.VotingPowerInfo, error) {
	vp, err := tx.GetVotingPower(rep)
	if err == store.ErrNotFound {
		vp = &types.VotingPowerInfo{EpochModified: epoch}
		return vp, nil
	}
	if err != nil {
		return nil, err
	}
	vp.TransitionIfNecessary(epoch)
	return vp, nil
}

// applyStake locks req.Stake.Amount of origin's balance toward
// req.Stake.Target, recording a StakedFunds row and adding the amount to
// the target's self-stake voting power.
func (v *Validator) applyStake(tx store.Tx, req *types.Request, epoch types.EpochNum) error {
	p := req.Stake
	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}
	newBal, err := account.Balance.Sub(p.Amount)
	if err != nil {
		return err
	}
	account.Balance = newBal
	if err := tx.PutAccount(req.Origin, account); err != nil {
		return err
	}

	existing, err := tx.GetStakedFunds(req.Origin, p.Target)
	amount := p.Amount
	if err == nil {
		amount, err = amount.Add(existing.Amount)
		if err != nil {
			return err
		}
	} else if err != store.ErrNotFound {
		return err
	}
	staked := &types.StakedFunds{Origin: req.Origin, Target: p.Target, Amount: amount}
	if err := tx.PutStakedFunds(req.Origin, p.Target, staked); err != nil {
		return err
	}
	if err := tx.PutLiability(liabilityID(req.Origin, p.Target, types.LiabilityStaked), &types.Liability{
		ID: liabilityID(req.Origin, p.Target, types.LiabilityStaked), Kind: types.LiabilityStaked,
		Origin: req.Origin, Target: p.Target, Amount: amount,
	}); err != nil {
		return err
	}

	vp, err := votingPower(tx, p.Target, epoch)
	if err != nil {
		return err
	}
	vp.Next.SelfStake, err = vp.Next.SelfStake.Add(p.Amount)
	if err != nil {
		return err
	}
	return tx.PutVotingPower(p.Target, vp)
}

// applyUnstake removes a StakedFunds row and opens a ThawingFunds entry
// keyed by its Expiration, EpochCreated+ThawingPeriod; applyClaim releases
// it once that epoch is reached.
func (v *Validator) applyUnstake(tx store.Tx, req *types.Request, epoch types.EpochNum) error {
	p := req.Unstake
	staked, err := tx.GetStakedFunds(req.Origin, p.Target)
	if err != nil {
		return err
	}
	if err := tx.DeleteStakedFunds(req.Origin, p.Target); err != nil {
		return err
	}
	if err := tx.DeleteLiability(liabilityID(req.Origin, p.Target, types.LiabilityStaked)); err != nil {
		return err
	}

	thaw := &types.ThawingFunds{
		Origin:       req.Origin,
		Target:       p.Target,
		Amount:       staked.Amount,
		EpochCreated: epoch,
		Expiration:   epoch + types.ThawingPeriod,
	}
	if err := tx.PutThawingFunds(req.Origin, thaw.Expiration, thaw); err != nil {
		return err
	}
	if err := tx.PutLiability(liabilityID(req.Origin, p.Target, types.LiabilityThawing), &types.Liability{
		ID: liabilityID(req.Origin, p.Target, types.LiabilityThawing), Kind: types.LiabilityThawing,
		Origin: req.Origin, Target: p.Target, Amount: staked.Amount,
	}); err != nil {
		return err
	}

	vp, err := votingPower(tx, p.Target, epoch)
	if err != nil {
		return err
	}
	vp.Next.SelfStake, err = vp.Next.SelfStake.Sub(staked.Amount)
	if err != nil {
		return err
	}
	return tx.PutVotingPower(p.Target, vp)
}

// applyProxy delegates origin's balance as voting weight to a
// representative, split between locked and unlocked proxy weight per
// p.Locked. The unlocked-proxy dilution factor is applied at EB
// committee-derivation time, not here.
func (v *Validator) applyProxy(tx store.Tx, req *types.Request, epoch types.EpochNum) error {
	p := req.Proxy
	vp, err := votingPower(tx, p.Target, epoch)
	if err != nil {
		return err
	}
	if p.Locked {
		vp.Next.LockedProxied, err = vp.Next.LockedProxied.Add(p.Amount)
	} else {
		vp.Next.UnlockedProxied, err = vp.Next.UnlockedProxied.Add(p.Amount)
	}
	if err != nil {
		return err
	}
	return tx.PutVotingPower(p.Target, vp)
}

// applyClaim withdraws a matured thawing fund or an accrued reward into
// origin's balance.
func (v *Validator) applyClaim(tx store.Tx, req *types.Request, epoch types.EpochNum) error {
	p := req.Claim
	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}

	claimed := types.Amount{}
	err = tx.IterThawingFunds(req.Origin, func(t *types.ThawingFunds) error {
		if t.Target != p.Target || !t.Matured(epoch) {
			return nil
		}
		claimed, err = claimed.Add(t.Amount)
		return err
	})
	if err != nil {
		return err
	}
	if !claimed.IsZero() {
		newBal, err := account.Balance.Add(claimed)
		if err != nil {
			return err
		}
		account.Balance = newBal
		if err := tx.PutAccount(req.Origin, account); err != nil {
			return err
		}
	}

	reward, err := tx.GetReward(req.Origin)
	if err == nil && !reward.IsZero() {
		newBal, err := account.Balance.Add(reward)
		if err != nil {
			return err
		}
		account.Balance = newBal
		if err := tx.PutAccount(req.Origin, account); err != nil {
			return err
		}
		return tx.PutReward(req.Origin, types.NewAmount(0))
	} else if err != nil && err != store.ErrNotFound {
		return err
	}
	return nil
}

func liabilityID(origin, target types.Hash, kind types.LiabilityKind) types.Hash {
	var id types.Hash
	copy(id[:16], origin[:16])
	copy(id[16:], target[16:])
	id[0] ^= byte(kind)
	return id
}
