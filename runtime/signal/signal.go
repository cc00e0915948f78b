// Package signal implements the one-shot wakeup a group leader uses to release
// a single student.
package signal

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadySignaled is returned when Signal is called twice.
var ErrAlreadySignaled = errors.New("signal: already signaled")

// OneShot is a single-slot notification.  Signal stores the wakeup even when
// nobody waits yet, so a leader may release a member before the member starts
// waiting.  A signal serves exactly one cycle.
type OneShot struct {
	mu       sync.Mutex
	ch       chan struct{}
	signaled bool
}

// New creates an armed signal.
func New() *OneShot {
	return &OneShot{ch: make(chan struct{}, 1)}
}

// Signal delivers the wakeup.
func (s *OneShot) Signal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signaled {
		return ErrAlreadySignaled
	}
	s.signaled = true
	s.ch <- struct{}{}
	return nil
}

// Wait blocks until the wakeup was delivered or ctx is done.
func (s *OneShot) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Signaled returns true once Signal succeeded.
func (s *OneShot) Signaled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signaled
}
