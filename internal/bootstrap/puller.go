package bootstrap

import (
	"sync"

	"github.com/google/uuid"

	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// PullUnit is one still-outstanding pull: a Range plus its retry count.
// ID identifies this unit across Requeue calls, for log correlation.
type PullUnit struct {
	ID      uuid.UUID
	Range   Range
	Retries int
}

// MaxRetries bounds how many times a single pull unit is re-queued before
// the Puller gives up on it.
const MaxRetries = 5

// Puller enumerates the gap between local tips and a peer's TipSet into
// pull units, and tracks completion as blocks arrive.
// One Puller instance serves one bootstrap run; it is safe for concurrent
// use by the Driver's worker pool.
type Puller struct {
	mu       sync.Mutex
	pending  []PullUnit
	inFlight map[Range]bool
	failed   []PullUnit
}

// NewPuller builds a Puller with the ranges needed to catch local up to
// peer, given the chain-type granularity local already has on disk.
func NewPuller(local LocalTips, peer TipSet, peerEBNum types.EpochNum) *Puller {
	p := &Puller{inFlight: make(map[Range]bool)}

	if peerEBNum > local.EBNum {
		p.pending = append(p.pending, PullUnit{ID: uuid.New(), Range: Range{
			ChainType: types.BlockTypeEpoch,
			From:      types.Sequence(local.EBNum),
			To:        types.Sequence(peerEBNum),
		}})
	}

	// MB/RB gap sizes are not known until the peer's tip blocks are
	// fetched and decoded (their Sequence fields), so every chain whose
	// peer tip is non-zero gets one exploratory single-block pull starting
	// at the local sequence; peer tips are not compared with local tips.
	// Longer ranges can be queued with Extend; Driver itself does not call
	// it, so a pass pulls only these single-block units.
	for d := types.DelegateIdx(0); int(d) < types.NumDelegates; d++ {
		if peer.RBTips[d] != types.ZeroHash {
			p.pending = append(p.pending, PullUnit{ID: uuid.New(), Range: Range{
				ChainType: types.BlockTypeRequest,
				Delegate:  d,
				From:      local.RBSeqs[d],
				To:        local.RBSeqs[d] + 1, // exploratory single block
			}})
		}
	}
	if peer.MBTip != types.ZeroHash {
		p.pending = append(p.pending, PullUnit{ID: uuid.New(), Range: Range{
			ChainType: types.BlockTypeMicro,
			From:      local.MBSeq,
			To:        local.MBSeq + 1,
		}})
	}
	return p
}

// Next returns the next pull unit to dispatch, moving it from pending to
// in-flight. The second return is false once nothing is left to dispatch
// (though units may still be in flight).
func (p *Puller) Next() (PullUnit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return PullUnit{}, false
	}
	u := p.pending[0]
	p.pending = p.pending[1:]
	p.inFlight[u.Range] = true
	return u, true
}

// Extend appends a freshly-discovered range (e.g. once a peer's tip
// sequence number for a chain is known) to the pending queue.
func (p *Puller) Extend(r Range) {
	if r.Len() == 0 {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, PullUnit{ID: uuid.New(), Range: r})
	p.mu.Unlock()
}

// Complete marks r as successfully pulled.
func (p *Puller) Complete(r Range) {
	p.mu.Lock()
	delete(p.inFlight, r)
	p.mu.Unlock()
}

// Requeue puts u back on the pending queue with Retries incremented,
// unless it has exhausted MaxRetries, in which case it is recorded as
// permanently failed.
func (p *Puller) Requeue(u PullUnit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, u.Range)
	u.Retries++
	if u.Retries > MaxRetries {
		p.failed = append(p.failed, u)
		return
	}
	p.pending = append(p.pending, u)
}

// AllDone reports whether nothing is pending and nothing is in flight
//").
func (p *Puller) AllDone() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending) == 0 && len(p.inFlight) == 0
}

// Failed returns the pull units that exhausted their retry budget.
func (p *Puller) Failed() []PullUnit {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PullUnit, len(p.failed))
	copy(out, p.failed)
	return out
}
