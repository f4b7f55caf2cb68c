package store

import (
	"sync"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// MemStore is a reference, in-memory implementation of Store, standing in
// for the out-of-scope LMDB-like engine. It serializes
// all transactions behind a single mutex — "the consensus loop is the sole
// writer for on-chain spaces". It also allocates a fastcache byte cache
// that account writes invalidate; lookups read the maps and never read or
// fill that cache.
type MemStore struct {
	mu sync.Mutex

	rb    map[types.Hash]*types.RequestBlock
	mb    map[types.Hash]*types.MicroBlock
	eb    map[types.Hash]*types.EpochBlock
	rbTip [types.NumDelegates]types.Hash
	mbTip types.Hash
	ebTip types.Hash

	accounts      map[types.Hash]*types.UserAccount
	tokenAccounts map[types.Hash]*types.TokenAccount
	receives      map[types.Hash]*types.ReceiveBlock

	requests map[types.Hash]requestEntry

	staked     map[stakeKey]*types.StakedFunds
	thawing    map[thawKey]*types.ThawingFunds
	liability  map[types.Hash]*types.Liability
	votingPow  map[types.Hash]*types.VotingPowerInfo
	candidacy  map[types.Hash]*types.CandidacyInfo
	reps       map[types.Hash]*types.RepresentativeInfo
	rewards    map[types.Hash]types.Amount
	globalRwd  map[types.EpochNum]types.Amount
	p2pBlobs   map[string][]byte
	metaVer    int

	accountCache *fastcache.Cache
}

type requestEntry struct {
	req *types.Request
	loc RequestLocator
}

type stakeKey struct {
	origin, target types.Hash
}

type thawKey struct {
	origin     types.Hash
	expiration types.EpochNum
}

// NewMemStore builds an empty in-memory store and allocates its account
// byte cache.
func NewMemStore() *MemStore {
	return &MemStore{
		rb:            make(map[types.Hash]*types.RequestBlock),
		mb:            make(map[types.Hash]*types.MicroBlock),
		eb:            make(map[types.Hash]*types.EpochBlock),
		accounts:      make(map[types.Hash]*types.UserAccount),
		tokenAccounts: make(map[types.Hash]*types.TokenAccount),
		receives:      make(map[types.Hash]*types.ReceiveBlock),
		requests:      make(map[types.Hash]requestEntry),
		staked:        make(map[stakeKey]*types.StakedFunds),
		thawing:       make(map[thawKey]*types.ThawingFunds),
		liability:     make(map[types.Hash]*types.Liability),
		votingPow:     make(map[types.Hash]*types.VotingPowerInfo),
		candidacy:     make(map[types.Hash]*types.CandidacyInfo),
		reps:          make(map[types.Hash]*types.RepresentativeInfo),
		rewards:       make(map[types.Hash]types.Amount),
		globalRwd:     make(map[types.EpochNum]types.Amount),
		p2pBlobs:      make(map[string][]byte),
		accountCache:  fastcache.New(8 << 20),
	}
}

func (s *MemStore) Close() error {
	s.accountCache.Reset()
	return nil
}

// Begin locks the store for the duration of the transaction and returns a
// handle that commits (releases the lock, keeping the writes) or rolls
// back (replays, newest first, the undo log each write recorded, then
// releases the lock).
func (s *MemStore) Begin() (Tx, error) {
	s.mu.Lock()
	return &memTx{s: s}, nil
}

// memTx applies writes directly to the parent MemStore's maps but keeps an
// undo log so Rollback can restore pre-transaction state; this mirrors an
// LMDB write transaction's all-or-nothing semantics without requiring a
// full copy-on-write snapshot for every Begin.
type memTx struct {
	s      *MemStore
	done   bool
	undo   []func()
	failed bool
}

func (t *memTx) record(undo func()) { t.undo = append(t.undo, undo) }

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *memTx) PutRB(hash types.Hash, rb *types.RequestBlock) error {
	prev, existed := t.s.rb[hash]
	t.record(func() {
		if existed {
			t.s.rb[hash] = prev
		} else {
			delete(t.s.rb, hash)
		}
	})
	t.s.rb[hash] = rb
	return nil
}

func (t *memTx) GetRB(hash types.Hash) (*types.RequestBlock, error) {
	rb, ok := t.s.rb[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return rb, nil
}

func (t *memTx) PutMB(hash types.Hash, mb *types.MicroBlock) error {
	prev, existed := t.s.mb[hash]
	t.record(func() {
		if existed {
			t.s.mb[hash] = prev
		} else {
			delete(t.s.mb, hash)
		}
	})
	t.s.mb[hash] = mb
	return nil
}

func (t *memTx) GetMB(hash types.Hash) (*types.MicroBlock, error) {
	mb, ok := t.s.mb[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return mb, nil
}

func (t *memTx) PutEB(hash types.Hash, eb *types.EpochBlock) error {
	prev, existed := t.s.eb[hash]
	t.record(func() {
		if existed {
			t.s.eb[hash] = prev
		} else {
			delete(t.s.eb, hash)
		}
	})
	t.s.eb[hash] = eb
	return nil
}

func (t *memTx) GetEB(hash types.Hash) (*types.EpochBlock, error) {
	eb, ok := t.s.eb[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return eb, nil
}

func (t *memTx) SetRBTip(delegate types.DelegateIdx, hash types.Hash) error {
	prev := t.s.rbTip[delegate]
	t.record(func() { t.s.rbTip[delegate] = prev })
	t.s.rbTip[delegate] = hash
	return nil
}

func (t *memTx) GetRBTip(delegate types.DelegateIdx) (types.Hash, error) {
	return t.s.rbTip[delegate], nil
}

func (t *memTx) SetMBTip(hash types.Hash) error {
	prev := t.s.mbTip
	t.record(func() { t.s.mbTip = prev })
	t.s.mbTip = hash
	return nil
}

func (t *memTx) GetMBTip() (types.Hash, error) { return t.s.mbTip, nil }

func (t *memTx) SetEBTip(hash types.Hash) error {
	prev := t.s.ebTip
	t.record(func() { t.s.ebTip = prev })
	t.s.ebTip = hash
	return nil
}

func (t *memTx) GetEBTip() (types.Hash, error) { return t.s.ebTip, nil }

func (t *memTx) PutAccount(account types.Hash, a *types.UserAccount) error {
	prev, existed := t.s.accounts[account]
	t.record(func() {
		if existed {
			t.s.accounts[account] = prev
		} else {
			delete(t.s.accounts, account)
		}
		t.s.accountCache.Del(account[:])
	})
	t.s.accounts[account] = a
	t.s.accountCache.Del(account[:]) // invalidate the cached entry, if any
	return nil
}

func (t *memTx) GetAccount(account types.Hash) (*types.UserAccount, error) {
	a, ok := t.s.accounts[account]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (t *memTx) PutTokenAccount(token types.Hash, a *types.TokenAccount) error {
	prev, existed := t.s.tokenAccounts[token]
	t.record(func() {
		if existed {
			t.s.tokenAccounts[token] = prev
		} else {
			delete(t.s.tokenAccounts, token)
		}
	})
	t.s.tokenAccounts[token] = a
	return nil
}

func (t *memTx) GetTokenAccount(token types.Hash) (*types.TokenAccount, error) {
	a, ok := t.s.tokenAccounts[token]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (t *memTx) PutReceive(hash types.Hash, r *types.ReceiveBlock) error {
	prev, existed := t.s.receives[hash]
	t.record(func() {
		if existed {
			t.s.receives[hash] = prev
		} else {
			delete(t.s.receives, hash)
		}
	})
	t.s.receives[hash] = r
	return nil
}

func (t *memTx) GetReceive(hash types.Hash) (*types.ReceiveBlock, error) {
	r, ok := t.s.receives[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (t *memTx) PutRequest(hash types.Hash, req *types.Request, loc RequestLocator) error {
	prev, existed := t.s.requests[hash]
	t.record(func() {
		if existed {
			t.s.requests[hash] = prev
		} else {
			delete(t.s.requests, hash)
		}
	})
	t.s.requests[hash] = requestEntry{req: req, loc: loc}
	return nil
}

func (t *memTx) GetRequest(hash types.Hash) (*types.Request, RequestLocator, error) {
	e, ok := t.s.requests[hash]
	if !ok {
		return nil, RequestLocator{}, ErrNotFound
	}
	return e.req, e.loc, nil
}

func (t *memTx) HasRequest(hash types.Hash) (bool, error) {
	_, ok := t.s.requests[hash]
	return ok, nil
}

func (t *memTx) PutStakedFunds(origin, target types.Hash, f *types.StakedFunds) error {
	k := stakeKey{origin, target}
	prev, existed := t.s.staked[k]
	t.record(func() {
		if existed {
			t.s.staked[k] = prev
		} else {
			delete(t.s.staked, k)
		}
	})
	t.s.staked[k] = f
	return nil
}

func (t *memTx) GetStakedFunds(origin, target types.Hash) (*types.StakedFunds, error) {
	f, ok := t.s.staked[stakeKey{origin, target}]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (t *memTx) DeleteStakedFunds(origin, target types.Hash) error {
	k := stakeKey{origin, target}
	prev, existed := t.s.staked[k]
	t.record(func() {
		if existed {
			t.s.staked[k] = prev
		}
	})
	delete(t.s.staked, k)
	return nil
}

func (t *memTx) PutThawingFunds(origin types.Hash, expiration types.EpochNum, f *types.ThawingFunds) error {
	k := thawKey{origin, expiration}
	prev, existed := t.s.thawing[k]
	t.record(func() {
		if existed {
			t.s.thawing[k] = prev
		} else {
			delete(t.s.thawing, k)
		}
	})
	t.s.thawing[k] = f
	return nil
}

func (t *memTx) IterThawingFunds(origin types.Hash, fn func(*types.ThawingFunds) error) error {
	for k, f := range t.s.thawing {
		if k.origin != origin {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (t *memTx) DeleteThawingFunds(origin types.Hash, expiration types.EpochNum) error {
	k := thawKey{origin, expiration}
	prev, existed := t.s.thawing[k]
	t.record(func() {
		if existed {
			t.s.thawing[k] = prev
		}
	})
	delete(t.s.thawing, k)
	return nil
}

func (t *memTx) PutLiability(id types.Hash, l *types.Liability) error {
	prev, existed := t.s.liability[id]
	t.record(func() {
		if existed {
			t.s.liability[id] = prev
		} else {
			delete(t.s.liability, id)
		}
	})
	t.s.liability[id] = l
	return nil
}

func (t *memTx) DeleteLiability(id types.Hash) error {
	prev, existed := t.s.liability[id]
	t.record(func() {
		if existed {
			t.s.liability[id] = prev
		}
	})
	delete(t.s.liability, id)
	return nil
}

func (t *memTx) PutVotingPower(rep types.Hash, v *types.VotingPowerInfo) error {
	prev, existed := t.s.votingPow[rep]
	t.record(func() {
		if existed {
			t.s.votingPow[rep] = prev
		} else {
			delete(t.s.votingPow, rep)
		}
	})
	t.s.votingPow[rep] = v
	return nil
}

func (t *memTx) GetVotingPower(rep types.Hash) (*types.VotingPowerInfo, error) {
	v, ok := t.s.votingPow[rep]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (t *memTx) DeleteVotingPower(rep types.Hash) error {
	prev, existed := t.s.votingPow[rep]
	t.record(func() {
		if existed {
			t.s.votingPow[rep] = prev
		}
	})
	delete(t.s.votingPow, rep)
	return nil
}

func (t *memTx) PutCandidacy(account types.Hash, c *types.CandidacyInfo) error {
	prev, existed := t.s.candidacy[account]
	t.record(func() {
		if existed {
			t.s.candidacy[account] = prev
		} else {
			delete(t.s.candidacy, account)
		}
	})
	t.s.candidacy[account] = c
	return nil
}

func (t *memTx) GetCandidacy(account types.Hash) (*types.CandidacyInfo, error) {
	c, ok := t.s.candidacy[account]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (t *memTx) PutRepresentative(account types.Hash, r *types.RepresentativeInfo) error {
	prev, existed := t.s.reps[account]
	t.record(func() {
		if existed {
			t.s.reps[account] = prev
		} else {
			delete(t.s.reps, account)
		}
	})
	t.s.reps[account] = r
	return nil
}

func (t *memTx) GetRepresentative(account types.Hash) (*types.RepresentativeInfo, error) {
	r, ok := t.s.reps[account]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (t *memTx) PutReward(account types.Hash, amount types.Amount) error {
	prev, existed := t.s.rewards[account]
	t.record(func() {
		if existed {
			t.s.rewards[account] = prev
		} else {
			delete(t.s.rewards, account)
		}
	})
	t.s.rewards[account] = amount
	return nil
}

func (t *memTx) GetReward(account types.Hash) (types.Amount, error) {
	a, ok := t.s.rewards[account]
	if !ok {
		return types.Amount{}, ErrNotFound
	}
	return a, nil
}

func (t *memTx) PutGlobalReward(epoch types.EpochNum, amount types.Amount) error {
	prev, existed := t.s.globalRwd[epoch]
	t.record(func() {
		if existed {
			t.s.globalRwd[epoch] = prev
		} else {
			delete(t.s.globalRwd, epoch)
		}
	})
	t.s.globalRwd[epoch] = amount
	return nil
}

func (t *memTx) GetGlobalReward(epoch types.EpochNum) (types.Amount, error) {
	a, ok := t.s.globalRwd[epoch]
	if !ok {
		return types.Amount{}, ErrNotFound
	}
	return a, nil
}

func (t *memTx) PutP2p(name string, blob []byte) error {
	prev, existed := t.s.p2pBlobs[name]
	t.record(func() {
		if existed {
			t.s.p2pBlobs[name] = prev
		} else {
			delete(t.s.p2pBlobs, name)
		}
	})
	t.s.p2pBlobs[name] = blob
	return nil
}

func (t *memTx) GetP2p(name string) ([]byte, error) {
	b, ok := t.s.p2pBlobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (t *memTx) SetMetaVersion(v int) error {
	prev := t.s.metaVer
	t.record(func() { t.s.metaVer = prev })
	t.s.metaVer = v
	return nil
}

func (t *memTx) GetMetaVersion() (int, error) { return t.s.metaVer, nil }
