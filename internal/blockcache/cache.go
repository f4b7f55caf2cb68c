// Package blockcache holds p2p-delivered post-committed blocks whose
// predecessors have not yet been persisted, and drives their application
// once a contiguous prefix becomes available.
package blockcache

import (
	"errors"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/persistence"
	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// ErrAlreadyCached is returned by AddRB/AddMB/AddEB when the block's hash is
// already present: blocks are deduped by hash.
var ErrAlreadyCached = errors.New("blockcache: block already cached")

// ErrBadAggregateSig is returned when a block's aggregate signature fails to
// verify under the epoch's committee.
var ErrBadAggregateSig = errors.New("blockcache: aggregate signature verification failed")

// CommitteeSource resolves the BLS public keys seated for an epoch, so the
// cache can verify an incoming block's aggregate signature against the
// *current* committee before admitting it.
type CommitteeSource interface {
	Committee(epoch types.EpochNum) ([]crypto.BLSPublicKey, error)
}

// Epoch is one double-linked-list node: the state of one epoch's blocks as
// they arrive out of order.
type Epoch struct {
	Num types.EpochNum
	EB  *types.EpochBlock
	MBs []*types.MicroBlock                 // ordered by Sequence
	RBs [types.NumDelegates][]*types.RequestBlock // per-delegate, ordered by Sequence
}

// Cache is the double-ended Epoch list plus O(1) membership test.
type Cache struct {
	mu sync.Mutex

	epochs    []*Epoch
	index     *lru.Cache[types.EpochNum, int] // epoch_num -> index into epochs, accelerates Validate's per-epoch lookup
	cached    mapset.Set[types.Hash]
	committee CommitteeSource
	aggregate crypto.Aggregator
	applier   *persistence.Validator
	db        store.Store
}

// New builds an empty Cache. committee resolves each epoch's seated BLS
// keys, aggregate verifies aggregate signatures against them, applier/db
// are used by Validate to persist newly-applicable blocks.
func New(committee CommitteeSource, aggregate crypto.Aggregator, applier *persistence.Validator, db store.Store) *Cache {
	idx, _ := lru.New[types.EpochNum, int](64)
	return &Cache{
		index:     idx,
		cached:    mapset.NewSet[types.Hash](),
		committee: committee,
		aggregate: aggregate,
		applier:   applier,
		db:        db,
	}
}

func (c *Cache) epochFor(num types.EpochNum) *Epoch {
	if i, ok := c.index.Get(num); ok && i < len(c.epochs) && c.epochs[i].Num == num {
		return c.epochs[i]
	}
	for i, e := range c.epochs {
		if e.Num == num {
			c.index.Add(num, i)
			return e
		}
	}
	return nil
}

func (c *Cache) epochForInsert(num types.EpochNum) *Epoch {
	if e := c.epochFor(num); e != nil {
		return e
	}
	e := &Epoch{Num: num}
	i := sort.Search(len(c.epochs), func(i int) bool { return c.epochs[i].Num >= num })
	c.epochs = append(c.epochs, nil)
	copy(c.epochs[i+1:], c.epochs[i:])
	c.epochs[i] = e
	c.index.Purge() // indices shifted; cheap to recompute lazily on next lookup
	return e
}

func (c *Cache) verifyRB(rb *types.RequestBlock) error {
	committee, err := c.committee.Committee(rb.EpochNum)
	if err != nil {
		return err
	}
	digest, err := crypto.Digest(rb)
	if err != nil {
		return err
	}
	ok, err := c.aggregate.Verify(digest, rb.AggSig.Signature, rb.AggSig.Bitmap, committee)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadAggregateSig
	}
	return nil
}

func (c *Cache) verifyMB(mb *types.MicroBlock) error {
	committee, err := c.committee.Committee(mb.EpochNum)
	if err != nil {
		return err
	}
	digest, err := crypto.Digest(mb)
	if err != nil {
		return err
	}
	ok, err := c.aggregate.Verify(digest, mb.AggSig.Signature, mb.AggSig.Bitmap, committee)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadAggregateSig
	}
	return nil
}

func (c *Cache) verifyEB(eb *types.EpochBlock) error {
	committee, err := c.committee.Committee(eb.EpochNum)
	if err != nil {
		return err
	}
	digest, err := crypto.Digest(eb)
	if err != nil {
		return err
	}
	ok, err := c.aggregate.Verify(digest, eb.AggSig.Signature, eb.AggSig.Bitmap, committee)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadAggregateSig
	}
	return nil
}

// AddRB verifies and inserts an RB into its delegate's ordered list
//. The returned bool reports whether the
// insertion could unblock application (inserted at the list head, or into a
// newer epoch than any previously cached).
func (c *Cache) AddRB(rb *types.RequestBlock) (bool, error) {
	if err := c.verifyRB(rb); err != nil {
		return false, err
	}
	hash, err := crypto.Digest(rb)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Contains(hash) {
		return false, ErrAlreadyCached
	}
	c.cached.Add(hash)

	e := c.epochForInsert(rb.EpochNum)
	list := e.RBs[rb.PrimaryDelegateIdx]
	i := sort.Search(len(list), func(i int) bool { return list[i].Sequence >= rb.Sequence })
	atHead := i == 0
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = rb
	e.RBs[rb.PrimaryDelegateIdx] = list

	return atHead, nil
}

// AddMB verifies and inserts an MB into its epoch's ordered list.
func (c *Cache) AddMB(mb *types.MicroBlock) (bool, error) {
	if err := c.verifyMB(mb); err != nil {
		return false, err
	}
	hash, err := crypto.Digest(mb)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Contains(hash) {
		return false, ErrAlreadyCached
	}
	c.cached.Add(hash)

	e := c.epochForInsert(mb.EpochNum)
	i := sort.Search(len(e.MBs), func(i int) bool { return e.MBs[i].Sequence >= mb.Sequence })
	atHead := i == 0
	e.MBs = append(e.MBs, nil)
	copy(e.MBs[i+1:], e.MBs[i:])
	e.MBs[i] = mb

	return atHead, nil
}

// AddEB verifies and seats an EB as the candidate close of its epoch.
// Insertion of an EB always unblocks application.
func (c *Cache) AddEB(eb *types.EpochBlock) (bool, error) {
	if err := c.verifyEB(eb); err != nil {
		return false, err
	}
	hash, err := crypto.Digest(eb)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached.Contains(hash) {
		return false, ErrAlreadyCached
	}
	c.cached.Add(hash)

	e := c.epochForInsert(eb.EpochNum)
	e.EB = eb
	return true, nil
}

// Validate runs the round-robin application pass, starting the delegate
// round-robin at startDelegateIdx so repeated calls rotate which delegate
// gets first crack at a contested slot.
func (c *Cache) Validate(startDelegateIdx types.DelegateIdx) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.epochs) > 0 {
		if c.twoTipOverlap() {
			return nil
		}

		e := c.epochs[0]
		if err := c.drainEpoch(e); err != nil {
			return err
		}

		if e.EB != nil && c.canApplyEB(e) {
			tx, err := c.db.Begin()
			if err != nil {
				return err
			}
			code, err := persistence.ValidateEB(tx, e.EB)
			if err != nil {
				tx.Rollback()
				return err
			}
			if code != persistence.CodeProgress {
				tx.Rollback()
				break
			}
			if _, err := persistence.ApplyEB(tx, e.EB); err != nil {
				tx.Rollback()
				return err
			}
			if err := tx.Commit(); err != nil {
				return err
			}
			c.epochs = c.epochs[1:]
			c.index.Purge()
			continue
		}
		break
	}
	return nil
}

// twoTipOverlap implements the special case where exactly two epochs
// remain, neither has any MBs nor an EB yet — both the current and
// incoming primaries are still filling their first MBs concurrently, so
// Validate must not try to advance past them.
func (c *Cache) twoTipOverlap() bool {
	if len(c.epochs) != 2 {
		return false
	}
	a, b := c.epochs[0], c.epochs[1]
	return len(a.MBs) == 0 && a.EB == nil && len(b.MBs) == 0 && b.EB == nil
}

// drainEpoch applies every RB it can across the epoch's 32 delegate lists
// (round-robin, stopping a delegate's turn on its first gap) and then every
// MB in sequence, up to NUM_DELEGATES consecutive no-progress rounds.
func (c *Cache) drainEpoch(e *Epoch) error {
	noProgress := 0
	for noProgress < types.NumDelegates {
		progressed := false
		for d := 0; d < types.NumDelegates; d++ {
			list := e.RBs[d]
			if len(list) == 0 {
				continue
			}
			head := list[0]
			tx, err := c.db.Begin()
			if err != nil {
				return err
			}
			code, err := c.applier.ValidateRBContinuity(tx, head)
			if err != nil {
				tx.Rollback()
				return err
			}
			if code != persistence.CodeProgress {
				tx.Rollback()
				continue // gap or fork: stop this delegate's turn this round
			}
			if err := c.applier.ApplyRB(tx, head); err != nil {
				tx.Rollback()
				return err
			}
			if err := tx.Commit(); err != nil {
				return err
			}
			e.RBs[d] = list[1:]
			progressed = true
		}
		if !progressed {
			noProgress++
		} else {
			noProgress = 0
		}
		if allRBListsEmpty(e) {
			break
		}
	}

	for len(e.MBs) > 0 {
		mb := e.MBs[0]
		tx, err := c.db.Begin()
		if err != nil {
			return err
		}
		var prev *types.MicroBlock
		if mb.Previous != types.ZeroHash {
			prev, err = tx.GetMB(mb.Previous)
			if err != nil && err != store.ErrNotFound {
				tx.Rollback()
				return err
			}
		}
		if persistence.ValidateMB(mb, prev) != persistence.CodeProgress {
			tx.Rollback()
			break
		}
		if _, err := persistence.ApplyMB(tx, mb); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		e.MBs = e.MBs[1:]
	}

	return nil
}

func allRBListsEmpty(e *Epoch) bool {
	for _, list := range e.RBs {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

// canApplyEB reports whether e's EB is eligible to apply: all of its MBs
// have drained and the closing MB declared LastMicroBlock.
func (c *Cache) canApplyEB(e *Epoch) bool {
	if e.EB == nil || len(e.MBs) != 0 {
		return false
	}
	tx, err := c.db.Begin()
	if err != nil {
		return false
	}
	defer tx.Rollback()
	tip, err := tx.GetMBTip()
	if err != nil {
		return false
	}
	mb, err := tx.GetMB(tip)
	if err != nil {
		return false
	}
	return mb.LastMicroBlock
}

// Contains reports whether hash has already been seen by this cache.
func (c *Cache) Contains(hash types.Hash) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached.Contains(hash)
}
