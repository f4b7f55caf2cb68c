package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ethereum/go-ethereum/log"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/metrics"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// RequestTimeout bounds a single PullRequest round trip.
const RequestTimeout = 60 * time.Second

// OverallTimeout is the fail-safe ceiling on one bootstrap run regardless
// of individual retries.
const OverallTimeout = 30 * time.Minute

// errStopped is returned by in-flight operations once Stop has been
// called.
var errStopped = fmt.Errorf("bootstrap: driver stopped")

// Driver runs one bootstrap pass: open connections, resolve a Puller from
// a peer's TipSet, and fan pull requests out across idle clients until
// the Puller reports AllDone.
//
// Concurrency: a single mutex + condition variable guards idleClients and
// workingClients; maxConnected bounds concurrent outbound pulls via a
// weighted semaphore, the same pattern used to bound concurrent outbound
// network requests elsewhere in this node.
type Driver struct {
	mu             sync.Mutex
	cond           *sync.Cond
	idleClients    []Client
	workingClients map[Client]bool
	stopped        bool

	sem  *semaphore.Weighted
	sink Sink
}

// NewDriver builds a Driver bounded to maxConnected concurrent pulls,
// feeding validated blocks into sink.
func NewDriver(maxConnected int64, sink Sink) *Driver {
	d := &Driver{
		workingClients: make(map[Client]bool),
		sem:            semaphore.NewWeighted(maxConnected),
		sink:           sink,
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// AddClient adds a newly connected client to the idle pool and wakes any
// goroutine waiting for one.
func (d *Driver) AddClient(c Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		c.Close()
		return
	}
	d.idleClients = append(d.idleClients, c)
	d.cond.Broadcast()
}

// Stop closes every client socket and wakes all waiters: on stop, all
// client sockets are closed and the condition is broadcast.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	for _, c := range d.idleClients {
		c.Close()
	}
	for c := range d.workingClients {
		c.Close()
	}
	d.idleClients = nil
	d.workingClients = make(map[Client]bool)
	d.cond.Broadcast()
}

// takeIdle blocks until a client is idle or the driver stops.
func (d *Driver) takeIdle() (Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for !d.stopped && len(d.idleClients) == 0 {
		d.cond.Wait()
	}
	if d.stopped {
		return nil, errStopped
	}
	c := d.idleClients[0]
	d.idleClients = d.idleClients[1:]
	d.workingClients[c] = true
	return c, nil
}

func (d *Driver) release(c Client) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.workingClients, c)
	if d.stopped {
		c.Close()
		return
	}
	d.idleClients = append(d.idleClients, c)
	d.cond.Broadcast()
}

// Bootstrap runs one full bootstrap pass against whatever clients have
// already been registered via AddClient, picking an idle one to fetch a
// TipSet, building a Puller from it, and then fanning pulls out until
// AllDone.
func (d *Driver) Bootstrap(ctx context.Context, local LocalTips, peerEBNum types.EpochNum) error {
	ctx, cancel := context.WithTimeout(ctx, OverallTimeout)
	defer cancel()

	tipClient, err := d.takeIdle()
	if err != nil {
		return err
	}
	tipCtx, tipCancel := context.WithTimeout(ctx, RequestTimeout)
	tips, err := tipClient.RequestTip(tipCtx)
	tipCancel()
	d.release(tipClient)
	if err != nil {
		return fmt.Errorf("bootstrap: requesting tip: %w", err)
	}

	puller := NewPuller(local, tips, peerEBNum)

	for !puller.AllDone() {
		g, gCtx := errgroup.WithContext(ctx)
		for {
			u, ok := puller.Next()
			if !ok {
				break
			}
			u := u
			if err := d.sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			g.Go(func() error {
				defer d.sem.Release(1)
				d.pullOne(gCtx, puller, u)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	if failed := puller.Failed(); len(failed) > 0 {
		log.Warn("bootstrap: pass finished with permanently failed units", "count", len(failed))
	}
	return nil
}

func (d *Driver) pullOne(ctx context.Context, p *Puller, u PullUnit) {
	c, err := d.takeIdle()
	if err != nil {
		p.Requeue(u)
		return
	}
	defer d.release(c)

	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	err = c.PullRange(reqCtx, u.Range, func(chainType types.BlockType, raw []byte) error {
		return d.applyOne(chainType, raw)
	})
	if err != nil {
		metrics.BootstrapPulls.WithLabelValues("failed").Inc()
		log.Debug("bootstrap: pull failed, re-queueing", "unit", u.ID, "range", u.Range, "err", err)
		p.Requeue(u)
		return
	}
	metrics.BootstrapPulls.WithLabelValues("completed").Inc()
	p.Complete(u.Range)
}

func (d *Driver) applyOne(chainType types.BlockType, raw []byte) error {
	switch chainType {
	case types.BlockTypeRequest:
		rb, err := codec.UnmarshalRequestBlock(raw)
		if err != nil {
			return err
		}
		_, err = d.sink.AddRB(rb)
		return err
	case types.BlockTypeMicro:
		mb, err := codec.UnmarshalMicroBlock(raw)
		if err != nil {
			return err
		}
		_, err = d.sink.AddMB(mb)
		return err
	case types.BlockTypeEpoch:
		eb, err := codec.UnmarshalEpochBlock(raw)
		if err != nil {
			return err
		}
		_, err = d.sink.AddEB(eb)
		return err
	default:
		return fmt.Errorf("bootstrap: unknown chain type %v", chainType)
	}
}
