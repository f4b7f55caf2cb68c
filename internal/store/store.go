// Package store specifies the transactional key-space contract that
// backs every on-chain entity. The real, production-grade
// storage engine is an LMDB-like embedded database and is explicitly an
// out-of-scope external collaborator; this package owns only
// the key-spaces and the transaction contract, plus a reference in-memory
// implementation (memstore) used by tests and by the block cache/
// persistence packages during development.
package store

import (
	"errors"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ErrNotFound is returned by Get when a key is absent from its space.
var ErrNotFound = errors.New("store: key not found")

// ErrFatal wraps a write failure inside a transaction that the caller
// could not recover from. The only safe response to a Fatal error
// surfacing from ApplyUpdates is to halt the process; restart-from-disk is
// the recovery path because the store's own transactions that did commit
// remain durable.
var ErrFatal = errors.New("store: fatal transaction failure")

// RequestLocator pins a request to the RB that sealed it: the request
// space stores value = request + locator (rb hash, index).
type RequestLocator struct {
	RBHash types.Hash
	Index  uint32
}

// Tx is a single read-write transaction over every key-space. All store
// mutation during ApplyUpdates happens inside exactly one Tx, committed
// atomically.
type Tx interface {
	// Blocks
	PutRB(hash types.Hash, rb *types.RequestBlock) error
	GetRB(hash types.Hash) (*types.RequestBlock, error)
	PutMB(hash types.Hash, mb *types.MicroBlock) error
	GetMB(hash types.Hash) (*types.MicroBlock, error)
	PutEB(hash types.Hash, eb *types.EpochBlock) error
	GetEB(hash types.Hash) (*types.EpochBlock, error)

	// Tips
	SetRBTip(delegate types.DelegateIdx, hash types.Hash) error
	GetRBTip(delegate types.DelegateIdx) (types.Hash, error)
	SetMBTip(hash types.Hash) error
	GetMBTip() (types.Hash, error)
	SetEBTip(hash types.Hash) error
	GetEBTip() (types.Hash, error)

	// Accounts
	PutAccount(account types.Hash, a *types.UserAccount) error
	GetAccount(account types.Hash) (*types.UserAccount, error)
	PutTokenAccount(token types.Hash, a *types.TokenAccount) error
	GetTokenAccount(token types.Hash) (*types.TokenAccount, error)

	// Receive chain
	PutReceive(hash types.Hash, r *types.ReceiveBlock) error
	GetReceive(hash types.Hash) (*types.ReceiveBlock, error)

	// Requests
	PutRequest(hash types.Hash, req *types.Request, loc RequestLocator) error
	GetRequest(hash types.Hash) (*types.Request, RequestLocator, error)
	HasRequest(hash types.Hash) (bool, error)

	// Staking
	PutStakedFunds(origin, target types.Hash, f *types.StakedFunds) error
	GetStakedFunds(origin, target types.Hash) (*types.StakedFunds, error)
	DeleteStakedFunds(origin, target types.Hash) error
	PutThawingFunds(origin types.Hash, expiration types.EpochNum, f *types.ThawingFunds) error
	IterThawingFunds(origin types.Hash, fn func(*types.ThawingFunds) error) error
	DeleteThawingFunds(origin types.Hash, expiration types.EpochNum) error
	PutLiability(id types.Hash, l *types.Liability) error
	DeleteLiability(id types.Hash) error

	// Voting power / governance
	PutVotingPower(rep types.Hash, v *types.VotingPowerInfo) error
	GetVotingPower(rep types.Hash) (*types.VotingPowerInfo, error)
	DeleteVotingPower(rep types.Hash) error
	PutCandidacy(account types.Hash, c *types.CandidacyInfo) error
	GetCandidacy(account types.Hash) (*types.CandidacyInfo, error)
	PutRepresentative(account types.Hash, r *types.RepresentativeInfo) error
	GetRepresentative(account types.Hash) (*types.RepresentativeInfo, error)
	PutReward(account types.Hash, amount types.Amount) error
	GetReward(account types.Hash) (types.Amount, error)
	PutGlobalReward(epoch types.EpochNum, amount types.Amount) error
	GetGlobalReward(epoch types.EpochNum) (types.Amount, error)

	// Peer DB blob storage (opaque to this package)
	PutP2p(name string, blob []byte) error
	GetP2p(name string) ([]byte, error)

	// Schema version, for migrations.
	SetMetaVersion(v int) error
	GetMetaVersion() (int, error)

	// Commit finalizes the transaction. Returns ErrFatal if the underlying
	// engine cannot guarantee the write landed.
	Commit() error
	// Rollback discards all writes made in this Tx.
	Rollback() error
}

// Store opens read-write transactions over every key-space.
type Store interface {
	// Begin starts a new read-write transaction. The in-memory reference
	// implementation serializes all transactions: a single writer per
	// transaction.
	Begin() (Tx, error)

	Close() error
}
