package consensus

import (
	"sync"
	"time"
)

// PrimaryTimeout is how long a primary waits for quorum before recalling a
// round.
const PrimaryTimeout = 60 * time.Second

// RecallTimeout bounds how long a round may sit in Recall before the round
// is abandoned outright.
const RecallTimeout = 300 * time.Second

// ticketTimer is a cancellable, monotonically-ticketed one-shot timer: a
// fire callback carrying a stale ticket is a no-op, so cancellation never
// races a fire that has already been scheduled. Cancellation is idempotent
// via a monotonically advancing ticket.
type ticketTimer struct {
	mu     sync.Mutex
	ticket uint64
	timer  *time.Timer
}

// Arm schedules fn to run after d, invalidating any previously armed timer.
func (t *ticketTimer) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ticket++
	ticket := t.ticket
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		current := t.ticket
		t.mu.Unlock()
		if ticket != current {
			return // stale fire, a later Arm/Cancel already moved on
		}
		fn()
	})
}

// Cancel invalidates any armed timer without requiring it to have fired.
func (t *ticketTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ticket++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
