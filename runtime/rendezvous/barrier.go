// Package rendezvous provides the quorum barrier a group leader waits on
// before it asks for a printer.
package rendezvous

import (
	"context"
	"sync"
	"time"

	"github.com/viant/printshare/internal/clock"
)

// Barrier is a one-cycle countdown latch for a group.  Members report ready
// with MarkReady; the call that completes the quorum closes the latch and
// thereby signals the leader blocked in Wait.
type Barrier struct {
	GroupID  int
	Expected int

	mu      sync.Mutex
	ready   map[int]bool
	order   []int
	doneCh  chan struct{}
	readyAt *time.Time
}

// New creates a barrier expecting the supplied number of members.
func New(groupID, expected int) *Barrier {
	return &Barrier{
		GroupID:  groupID,
		Expected: expected,
		ready:    make(map[int]bool, expected),
		doneCh:   make(chan struct{}),
	}
}

// MarkReady registers studentID and returns true when this call completed the
// quorum.  Repeated calls for the same student are ignored.
func (b *Barrier) MarkReady(studentID int) (quorum bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready[studentID] || b.readyAt != nil {
		return false
	}
	b.ready[studentID] = true
	b.order = append(b.order, studentID)
	if len(b.ready) >= b.Expected && b.Expected > 0 {
		now := clock.Now()
		b.readyAt = &now
		close(b.doneCh)
		return true
	}
	return false
}

// Wait blocks until the quorum is reached or ctx is done.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns whether the quorum was reached.
func (b *Barrier) Done() bool {
	select {
	case <-b.doneCh:
		return true
	default:
		return false
	}
}

// Count returns how many members reported ready.
func (b *Barrier) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ready)
}

// ReadyAt returns when the quorum was reached, or nil before that.
func (b *Barrier) ReadyAt() *time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readyAt == nil {
		return nil
	}
	ret := *b.readyAt
	return &ret
}

// Arrivals returns member ids in arrival order.
func (b *Barrier) Arrivals() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.order...)
}
