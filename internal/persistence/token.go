package persistence

import (
	"math/big"
	"time"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// tokenFee computes the fee owed on a token transfer of amount, given the
// token's configured fee type: flat or percentage-of-amount.
func tokenFee(token *types.TokenAccount, amount types.Amount) types.Amount {
	if token.FeeType != types.TokenFeePercentage {
		return token.FeeRate
	}
	// rate is parts-per-10000 to avoid floating point on-chain.
	prod := new(big.Int).Mul(amount.Big(), token.FeeRate.Big())
	prod.Div(prod, types.NewAmount(10000).Big())
	out, err := types.AmountFromBig(prod)
	if err != nil {
		// Overflow here means a misconfigured fee rate; fall back to the
		// full amount rather than propagating an error through a pure
		// helper function.
		return amount
	}
	return out
}

// applyTokenSend moves token balance from origin's token entry to the
// destination's, charging the token's configured fee into the token
// account's fee pool.
func (v *Validator) applyTokenSend(tx store.Tx, req *types.Request, reqHash types.Hash) error {
	token, err := tx.GetTokenAccount(req.TokenSend.TokenID)
	if err != nil {
		return err
	}

	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}

	fee := tokenFee(token, req.TokenSend.Amount)
	idx := findTokenEntry(account, req.TokenSend.TokenID)
	if idx < 0 {
		return store.ErrNotFound
	}
	total, err := req.TokenSend.Amount.Add(fee)
	if err != nil {
		return err
	}
	newBal, err := account.TokenEntries[idx].Balance.Sub(total)
	if err != nil {
		return err
	}
	account.TokenEntries[idx].Balance = newBal
	account.Head = reqHash
	account.BlockCount++
	account.Reservation = types.ZeroHash
	account.Modified = time.Now().Unix()
	if err := tx.PutAccount(req.Origin, account); err != nil {
		return err
	}

	token.TokenFeeBalance, err = token.TokenFeeBalance.Add(fee)
	if err != nil {
		return err
	}
	if err := tx.PutTokenAccount(req.TokenSend.TokenID, token); err != nil {
		return err
	}

	return v.creditDestinationToken(tx, req.TokenSend.To, req.TokenSend.TokenID, req.TokenSend.Amount, reqHash)
}

func (v *Validator) creditDestinationToken(tx store.Tx, dest, tokenID types.Hash, amount types.Amount, sourceHash types.Hash) error {
	unlock := v.destLocks.Lock(dest)
	defer unlock()

	destAccount, err := tx.GetAccount(dest)
	if err == store.ErrNotFound {
		destAccount = &types.UserAccount{OpenBlock: sourceHash}
	} else if err != nil {
		return err
	}

	idx := findTokenEntry(destAccount, tokenID)
	if idx < 0 {
		destAccount.TokenEntries = append(destAccount.TokenEntries, types.TokenEntry{TokenID: tokenID})
		idx = len(destAccount.TokenEntries) - 1
	}
	newBal, err := destAccount.TokenEntries[idx].Balance.Add(amount)
	if err != nil {
		return err
	}
	destAccount.TokenEntries[idx].Balance = newBal
	destAccount.ReceiveCount++
	destAccount.Modified = time.Now().Unix()
	return tx.PutAccount(dest, destAccount)
}

func findTokenEntry(a *types.UserAccount, tokenID types.Hash) int {
	for i := range a.TokenEntries {
		if a.TokenEntries[i].TokenID == tokenID {
			return i
		}
	}
	return -1
}

// applyTokenGovernance dispatches Issuance/Revoke/AdjustFee/
// UpdateController/etc. requests. It does not check controller
// authorization or setting mutability before applying them.
func (v *Validator) applyTokenGovernance(tx store.Tx, req *types.Request, reqHash types.Hash) error {
	switch req.Type {
	case types.RequestIssuance:
		return v.applyIssuance(tx, req, reqHash)
	default:
		return v.applyTokenSetting(tx, req, reqHash)
	}
}

func (v *Validator) applyIssuance(tx store.Tx, req *types.Request, reqHash types.Hash) error {
	p := req.Issuance
	token := &types.TokenAccount{
		Head:        reqHash,
		TotalSupply: p.TotalSupply,
		TokenBalance: p.TotalSupply,
		FeeType:     p.FeeType,
		FeeRate:     p.FeeRate,
		Symbol:      p.Symbol,
		Name:        p.Name,
		Controllers: p.Controllers,
		Settings:    p.Settings,
	}
	if err := tx.PutTokenAccount(p.TokenID, token); err != nil {
		return err
	}

	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}
	account.TokenEntries = append(account.TokenEntries, types.TokenEntry{TokenID: p.TokenID, Balance: p.TotalSupply})
	account.Head = reqHash
	account.BlockCount++
	account.Reservation = types.ZeroHash
	account.Modified = time.Now().Unix()
	return tx.PutAccount(req.Origin, account)
}

// applyTokenSetting handles the token mutation requests
// (Revoke/AdjustFee/UpdateController/ChangeSetting/ImmuteSetting/...);
// ImmuteSetting clears a setting's "may modify" guard bit. The origin is
// not checked against the token's controllers.
func (v *Validator) applyTokenSetting(tx store.Tx, req *types.Request, reqHash types.Hash) error {
	p := req.Governance
	token, err := tx.GetTokenAccount(p.TokenID)
	if err != nil {
		return err
	}

	switch req.Type {
	case types.RequestAdjustFee:
		token.FeeRate = p.FeeRate
	case types.RequestUpdateController:
		token.Controllers = append(token.Controllers, p.Controller)
	case types.RequestChangeSetting:
		setBit(&token.Settings, uint(p.Setting), p.NewValue)
	case types.RequestImmuteSetting:
		setBit(&token.Settings, uint(p.Setting+1), false)
	case types.RequestRevoke:
		// Revoke pulls amount back from target into the issuer's balance.
		target, err := tx.GetAccount(p.Target)
		if err != nil {
			return err
		}
		idx := findTokenEntry(target, p.TokenID)
		if idx < 0 {
			return store.ErrNotFound
		}
		newBal, err := target.TokenEntries[idx].Balance.Sub(p.Amount)
		if err != nil {
			return err
		}
		target.TokenEntries[idx].Balance = newBal
		if err := tx.PutAccount(p.Target, target); err != nil {
			return err
		}
		token.TokenBalance, err = token.TokenBalance.Add(p.Amount)
		if err != nil {
			return err
		}
	case types.RequestWithdrawFee:
		token.TokenFeeBalance, err = token.TokenFeeBalance.Sub(p.Amount)
		if err != nil {
			return err
		}
	case types.RequestIssueAdditional:
		token.TotalSupply, err = token.TotalSupply.Add(p.Amount)
		if err != nil {
			return err
		}
		token.TokenBalance, err = token.TokenBalance.Add(p.Amount)
		if err != nil {
			return err
		}
	case types.RequestTokenBurn:
		token.TotalSupply, err = token.TotalSupply.Sub(p.Amount)
		if err != nil {
			return err
		}
		token.TokenBalance, err = token.TokenBalance.Sub(p.Amount)
		if err != nil {
			return err
		}
	case types.RequestDistribute:
		token.TokenBalance, err = token.TokenBalance.Sub(p.Amount)
		if err != nil {
			return err
		}
		if err := tx.PutTokenAccount(p.TokenID, token); err != nil {
			return err
		}
		if err := v.creditDestinationToken(tx, p.Target, p.TokenID, p.Amount, reqHash); err != nil {
			return err
		}
	case types.RequestWithdrawLogos:
		account, err := tx.GetAccount(req.Origin)
		if err != nil {
			return err
		}
		newBal, err := account.Balance.Add(p.Amount)
		if err != nil {
			return err
		}
		account.Balance = newBal
		if err := tx.PutAccount(req.Origin, account); err != nil {
			return err
		}
	}
	if err := tx.PutTokenAccount(p.TokenID, token); err != nil {
		return err
	}

	account, err := tx.GetAccount(req.Origin)
	if err != nil {
		return err
	}
	account.Head = reqHash
	account.BlockCount++
	account.Reservation = types.ZeroHash
	account.Modified = time.Now().Unix()
	return tx.PutAccount(req.Origin, account)
}

func setBit(field *uint32, bit uint, value bool) {
	if value {
		*field |= 1 << bit
	} else {
		*field &^= 1 << bit
	}
}
