// Package p2p implements the propagation-store dedup contract and the
// Overlay boundary: the gossip overlay itself is an out-of-scope external
// collaborator, so this package only specifies the interface a real
// overlay must satisfy and ships an in-process loopback implementation for
// tests.
package p2p

import (
	"container/list"
	"sync"

	bloomfilter "github.com/holiman/bloomfilter/v2"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// bloomBitsPerItem and bloomHashFunctions size the cheap-hash fast path the
// same way go-ethereum's trie.SyncBloom sizes its filter for a target
// false-positive rate, scaled down for propagation-store-sized capacities
// rather than full-state-sync-sized ones.
const (
	bloomBitsPerItem   = 20
	bloomHashFunctions = 4
)

type storeEntry struct {
	hash    types.Hash
	payload []byte
}

// PropagationStore is the capacity-bounded, insertion-ordered dedup cache:
// a cheap-hash Bloom-like filter gives an O(1) fast rejection of messages
// that were never seen, and an exact
// multi-index confirms (or corrects) positives — the bloom filter cannot
// forget an evicted entry, so a bloom hit must still be checked against
// the exact index before being trusted. Eviction is FIFO by insertion
// label.
type PropagationStore struct {
	mu       sync.Mutex
	capacity int
	bloom    *bloomfilter.Filter
	exact    map[types.Hash]*list.Element
	order    *list.List // front = oldest
}

// NewPropagationStore builds a store holding up to capacity messages.
func NewPropagationStore(capacity int) *PropagationStore {
	bits := uint64(capacity) * bloomBitsPerItem
	if bits == 0 {
		bits = bloomBitsPerItem
	}
	bloom, err := bloomfilter.New(bits, bloomHashFunctions)
	if err != nil {
		// Only invalid (zero) parameters cause New to fail, and bits is
		// guaranteed non-zero above; this is a construction-time invariant,
		// not a runtime condition callers need to handle.
		panic("p2p: failed to construct propagation bloom filter: " + err.Error())
	}
	return &PropagationStore{
		capacity: capacity,
		bloom:    bloom,
		exact:    make(map[types.Hash]*list.Element),
		order:    list.New(),
	}
}

// Find reports whether hash has already been seen.
func (s *PropagationStore) Find(hash types.Hash) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(hash)
}

func (s *PropagationStore) findLocked(hash types.Hash) bool {
	if !s.bloom.Contains(bloomfilter.HashBytes(hash[:])) {
		return false
	}
	_, ok := s.exact[hash]
	return ok
}

// Insert records hash/payload if not already present, evicting the oldest
// entry once capacity is exceeded. It reports whether the message was
// newly inserted (false means it was a duplicate and should not be
// re-gossiped).
func (s *PropagationStore) Insert(hash types.Hash, payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(hash) {
		return false
	}

	s.bloom.Add(bloomfilter.HashBytes(hash[:]))
	elem := s.order.PushBack(storeEntry{hash: hash, payload: payload})
	s.exact[hash] = elem

	for s.order.Len() > s.capacity {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.exact, oldest.Value.(storeEntry).hash)
	}
	return true
}

// Len reports the number of messages currently held (post-eviction).
func (s *PropagationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
