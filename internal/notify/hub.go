// Package notify implements the WebSocket confirmation-notification
// contract: subscribers receive a filtered event for every successful
// post-commit, and only for successful post-commits. Intermediate
// consensus states are never surfaced. The façade that accepts inbound
// WebSocket connections and the RPC surface around it are explicitly out
// of scope; this package owns only the hub and the event contract.
package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// Topic is the fixed subscription topic name.
const Topic = "confirmation"

// writeTimeout bounds a single subscriber write so one slow socket cannot
// stall the hub's broadcast loop.
const writeTimeout = 5 * time.Second

// sendBufferSize is how many pending notifications a subscriber may have
// queued; while its buffer is full, further events for it are dropped.
const sendBufferSize = 64

// Filter selects which block types and accounts a subscriber wants.
type Filter struct {
	IncludeRequestBlock bool
	IncludeMicroBlock   bool
	IncludeEpochBlock   bool
	// Accounts, if non-empty, restricts RB notifications to those
	// carrying a request whose origin is one of these accounts. Empty
	// means no account filter. MB and EB notifications are not
	// account-filtered.
	Accounts map[types.Hash]bool
}

func (f Filter) includes(blockType types.BlockType) bool {
	switch blockType {
	case types.BlockTypeRequest:
		return f.IncludeRequestBlock
	case types.BlockTypeMicro:
		return f.IncludeMicroBlock
	case types.BlockTypeEpoch:
		return f.IncludeEpochBlock
	default:
		return false
	}
}

func (f Filter) matchesAccounts(touched []types.Hash) bool {
	if len(f.Accounts) == 0 {
		return true
	}
	for _, a := range touched {
		if f.Accounts[a] {
			return true
		}
	}
	return false
}

// Event is the JSON payload delivered on Topic for every matching
// post-commit.
type Event struct {
	Topic     string        `json:"topic"`
	BlockType string        `json:"block_type"`
	Hash      types.Hash    `json:"hash"`
	EpochNum  types.EpochNum `json:"epoch_num"`
	Sequence  types.Sequence `json:"sequence"`
}

// subscription is one live WebSocket connection plus its filter.
type subscription struct {
	conn   *websocket.Conn
	filter Filter
	send   chan Event
	done   chan struct{}
}

// Hub fans out confirmation events to every subscription whose Filter
// matches.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscription]bool
}

// NewHub builds an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscription]bool)}
}

// Subscribe registers conn with filter and starts its write pump. The
// returned func unsubscribes and closes the connection.
func (h *Hub) Subscribe(conn *websocket.Conn, filter Filter) func() {
	s := &subscription{conn: conn, filter: filter, send: make(chan Event, sendBufferSize), done: make(chan struct{})}

	h.mu.Lock()
	h.subs[s] = true
	h.mu.Unlock()

	go h.writePump(s)

	return func() {
		h.mu.Lock()
		delete(h.subs, s)
		h.mu.Unlock()
		close(s.done)
		conn.Close()
	}
}

func (h *Hub) writePump(s *subscription) {
	for {
		select {
		case <-s.done:
			return
		case ev := <-s.send:
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error("notify: failed to marshal confirmation event", "err", err)
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("notify: subscriber write failed, stopping its write pump", "err", err)
				return
			}
		}
	}
}

// NotifyRB emits a confirmation event for a sealed Request Block, filtered
// by each subscriber's account allow-list against the requests it carries.
func (h *Hub) NotifyRB(rb *types.RequestBlock, hash types.Hash) {
	touched := make([]types.Hash, len(rb.Requests))
	for i := range rb.Requests {
		touched[i] = rb.Requests[i].Origin
	}
	h.broadcast(types.BlockTypeRequest, hash, rb.EpochNum, rb.Sequence, touched)
}

// NotifyMB emits a confirmation event for a sealed Micro Block.
func (h *Hub) NotifyMB(mb *types.MicroBlock, hash types.Hash) {
	h.broadcast(types.BlockTypeMicro, hash, mb.EpochNum, mb.Sequence, nil)
}

// NotifyEB emits a confirmation event for a sealed Epoch Block.
func (h *Hub) NotifyEB(eb *types.EpochBlock, hash types.Hash) {
	h.broadcast(types.BlockTypeEpoch, hash, eb.EpochNum, 0, nil)
}

func (h *Hub) broadcast(blockType types.BlockType, hash types.Hash, epochNum types.EpochNum, seq types.Sequence, touched []types.Hash) {
	ev := Event{Topic: Topic, BlockType: blockType.String(), Hash: hash, EpochNum: epochNum, Sequence: seq}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !s.filter.includes(blockType) {
			continue
		}
		if blockType == types.BlockTypeRequest && !s.filter.matchesAccounts(touched) {
			continue
		}
		select {
		case s.send <- ev:
		default:
			log.Warn("notify: subscriber send buffer full, dropping event")
		}
	}
}

// Len reports the number of live subscriptions, for tests and metrics.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
