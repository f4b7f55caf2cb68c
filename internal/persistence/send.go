package persistence

import (
	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// MinTransactionFee is the minimum fee a Send/TokenSend must carry.
var MinTransactionFee = types.NewAmount(10)

// Validator implements the Validate/ApplyUpdates contract for every
// request and block type.
type Validator struct {
	reservationLocks *KeyedMutex
	destLocks        *KeyedMutex
}

// NewValidator builds a Validator with fresh per-account lock tables.
func NewValidator() *Validator {
	return &Validator{
		reservationLocks: NewKeyedMutex(),
		destLocks:        NewKeyedMutex(),
	}
}

// ValidateSend runs the ordered Send checks (first failure returns with a
// coded reason). allowDuplicates enables the single re-submission
// exception: a request whose content hash equals the account's current
// head is accepted a second time as a no-op "progress" rather than
// rejected as a fork.
func (v *Validator) ValidateSend(tx store.Tx, req *types.Request, currentEpoch types.EpochNum, allowDuplicates bool) (Result, error) {
	// 1. origin != 0
	if req.Origin == types.ZeroHash {
		return Result{Code: CodeOpenedBurnAccount}, nil
	}

	// 2. fee >= MIN_TRANSACTION_FEE
	if req.Fee.Cmp(MinTransactionFee) < 0 {
		return Result{Code: CodeInsufficientFee}, nil
	}

	// 3. Acquire reservation under the per-account reservation lock.
	unlock := v.reservationLocks.Lock(req.Origin)
	defer unlock()

	reqHash, err := crypto.Digest(req)
	if err != nil {
		return Result{}, err
	}

	account, err := tx.GetAccount(req.Origin)
	if err == store.ErrNotFound {
		// 7. Unknown account (accounts are opened only by receiving).
		return Result{Code: CodeUnknownSourceAcct}, nil
	}
	if err != nil {
		return Result{}, err
	}

	// 4. previous/head/fork/gap/old checks.
	if account.BlockCount == 0 {
		if req.Previous != types.ZeroHash {
			return Result{Code: CodeGapPrevious}, nil
		}
	} else {
		if reqHash == account.Head && allowDuplicates {
			return Result{Code: CodeProgress, Hash: reqHash}, nil
		}
		if req.Previous == types.ZeroHash {
			return Result{Code: CodeFork}, nil
		}
		has, err := tx.HasRequest(req.Previous)
		if err != nil {
			return Result{}, err
		}
		if !has {
			return Result{Code: CodeGapPrevious}, nil
		}
		if req.Previous != account.Head {
			if reqHash == account.Head && allowDuplicates {
				return Result{Code: CodeProgress, Hash: reqHash}, nil
			}
			present, err := tx.HasRequest(reqHash)
			if err != nil {
				return Result{}, err
			}
			if present {
				return Result{Code: CodeOld}, nil
			}
			return Result{Code: CodeFork}, nil
		}
	}

	// 5. Reservation check.
	if account.Reservation == types.ZeroHash {
		account.Reservation = reqHash
		account.ReservationEpoch = currentEpoch
		if err := tx.PutAccount(req.Origin, account); err != nil {
			return Result{}, err
		}
	} else if account.Reservation != reqHash && currentEpoch < account.ReservationEpoch+types.ReservationPeriod {
		return Result{Code: CodeAlreadyReserved}, nil
	} else {
		account.Reservation = reqHash
		account.ReservationEpoch = currentEpoch
		if err := tx.PutAccount(req.Origin, account); err != nil {
			return Result{}, err
		}
	}

	// 6. amount + fee > balance -> insufficient_balance.
	var amount types.Amount
	switch req.Type {
	case types.RequestSend:
		amount = req.Send.Amount
	case types.RequestTokenSend:
		amount = types.NewAmount(0) // token balance is checked by ValidateTokenRequest
	}
	total, err := amount.Add(req.Fee)
	if err != nil {
		return Result{}, err
	}
	if total.Cmp(account.Balance) > 0 {
		return Result{Code: CodeInsufficientBalance}, nil
	}

	return Result{Code: CodeProgress, Hash: reqHash}, nil
}
