// Package netio implements the per-peer framed TCP channel: a lock
// guarding mutable connection state, a semaphore bounding outstanding
// work, and a dispatch table keyed by the remote's identity.
package netio

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// HeartbeatInterval is how often a channel sends a heartbeat; one is sent
// on every tick, whatever other traffic there is.
const HeartbeatInterval = 20 * time.Second

// MessageAgeLimit is how long a channel tolerates silence before closing
// itself. A closed channel is not redialed.
const MessageAgeLimit = 100 * time.Second

// ReconnectBackoff is the fixed back-off between dial attempts while
// Network.Connect establishes a connection.
const ReconnectBackoff = 5 * time.Second

// ErrChannelClosed is returned by Send after Close.
var ErrChannelClosed = errors.New("netio: channel closed")

// ErrEpochOver is returned by Send once the channel has been retired by an
// epoch transition.
var ErrEpochOver = errors.New("netio: channel retired at epoch boundary")

// Dispatcher routes an inbound frame to the consensus machine bound to
// (remote delegate, consensus type).
type Dispatcher interface {
	Dispatch(remote types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte)
}

// Channel is one peer connection: one goroutine reads frames and dispatches
// them, a heartbeat goroutine watches for silence, and Send serializes
// writers behind activeWrites.
type Channel struct {
	lock sync.RWMutex

	remoteIdx types.DelegateIdx
	localIdx  types.DelegateIdx
	addr      string
	conn      net.Conn

	// sessionID identifies this particular dial/accept instance, so log
	// lines and reconnect metrics can be correlated across a channel
	// being replaced after a drop.
	sessionID uuid.UUID

	dispatcher Dispatcher

	activeWrites *semaphore.Weighted

	lastSeen atomicTime

	closed    bool
	epochOver bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewChannel wraps an already-dialed or -accepted conn as a channel bound
// to remoteIdx, dispatching inbound frames to dispatcher.
func NewChannel(localIdx, remoteIdx types.DelegateIdx, addr string, conn net.Conn, dispatcher Dispatcher) *Channel {
	c := &Channel{
		remoteIdx:    remoteIdx,
		localIdx:     localIdx,
		addr:         addr,
		conn:         conn,
		sessionID:    uuid.New(),
		dispatcher:   dispatcher,
		activeWrites: semaphore.NewWeighted(1),
		stopCh:       make(chan struct{}),
	}
	c.lastSeen.set(time.Now())
	c.wg.Add(2)
	log.Debug("netio: channel opened", "remote", remoteIdx, "addr", addr, "session", c.sessionID)
	go c.readLoop()
	go c.heartbeatLoop()
	return c
}

// SessionID identifies this dial/accept instance, for log correlation.
func (c *Channel) SessionID() uuid.UUID { return c.sessionID }

// DialPolicy reports whether localIdx should dial remoteIdx rather than
// wait to accept: the smaller index dials.
func DialPolicy(localIdx, remoteIdx types.DelegateIdx) bool {
	return localIdx < remoteIdx
}

func (c *Channel) readLoop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		p, payload, err := codec.ReadFrame(c.conn)
		if err != nil {
			log.Debug("netio: read failed, read loop stopped", "remote", c.remoteIdx, "err", err)
			return
		}
		c.lastSeen.set(time.Now())

		c.lock.RLock()
		over := c.epochOver
		c.lock.RUnlock()
		if over {
			continue // messages to a retired channel are silently dropped
		}
		c.dispatcher.Dispatch(c.remoteIdx, p.ConsensusType, p.Type, payload)
	}
}

func (c *Channel) heartbeatLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			age := time.Since(c.lastSeen.get())
			if age > MessageAgeLimit {
				log.Warn("netio: peer silent past age limit, closing channel", "remote", c.remoteIdx, "age", age)
				c.Close()
				return
			}
			if err := c.Send(context.Background(), codec.MsgHeartBeat, codec.ConsensusRequest, nil); err != nil {
				log.Debug("netio: heartbeat send failed", "remote", c.remoteIdx, "err", err)
			}
		}
	}
}

// Send writes a framed message, bounded by the channel's write semaphore so
// a slow peer cannot accumulate unbounded outstanding writes.
func (c *Channel) Send(ctx context.Context, msgType codec.MessageType, consensusType codec.ConsensusType, payload []byte) error {
	c.lock.RLock()
	closed, epochOver := c.closed, c.epochOver
	c.lock.RUnlock()
	if closed {
		return ErrChannelClosed
	}
	if epochOver {
		return ErrEpochOver
	}

	if err := c.activeWrites.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.activeWrites.Release(1)

	return codec.WriteFrame(c.conn, msgType, consensusType, payload)
}

// MarkEpochOver retires the channel for the epoch transition: further
// Sends fail and inbound frames are dropped, but the socket stays open
// during the drain window until Close.
func (c *Channel) MarkEpochOver() {
	c.lock.Lock()
	c.epochOver = true
	c.lock.Unlock()
}

// Close stops the read/heartbeat goroutines and closes the socket.
func (c *Channel) Close() error {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return nil
	}
	c.closed = true
	c.lock.Unlock()

	close(c.stopCh)
	err := c.conn.Close()
	c.wg.Wait()
	return err
}

// atomicTime is a small RWMutex-backed clock, sufficient for the single
// reader/single writer heartbeat pattern here without pulling in
// sync/atomic's pointer dance for time.Time.
type atomicTime struct {
	mu sync.RWMutex
	t  time.Time
}

func (a *atomicTime) set(t time.Time) {
	a.mu.Lock()
	a.t = t
	a.mu.Unlock()
}

func (a *atomicTime) get() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.t
}
