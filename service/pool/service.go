package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/viant/printshare/internal/clock"
	"github.com/viant/printshare/model"
	"github.com/viant/printshare/progress"
	"github.com/viant/printshare/service/event"
	"golang.org/x/sync/semaphore"
)

// Service is the printer pool.
type Service struct {
	mu        sync.Mutex
	printers  []*model.Printer
	owners    map[int]int // printer id -> group id holding it
	holders   map[int]int // printer id -> student id printing on it
	slots     *semaphore.Weighted
	seq       uint64
	waiters   []*waiter
	grants    []Grant
	publisher *event.Publisher
}

// waiter is a group queued in Obtain.  ready receives the handle once a
// returned printer is passed on to it.
type waiter struct {
	seq         uint64
	groupID     int
	requestedAt time.Time
	ready       chan *Handle
}

// New creates a pool over printers.  Printer ids must equal their index.
func New(printers []*model.Printer, options ...Option) (*Service, error) {
	if len(printers) == 0 {
		return nil, model.NewConfigError("printers", "at least one printer is required")
	}
	for i, p := range printers {
		if p == nil || p.ID != i {
			return nil, model.NewConfigError("printers", "printer at index %d has mismatched id", i)
		}
		if !p.IsIdle() {
			return nil, model.NewConfigError("printers", "printer %d is not idle", i)
		}
	}
	s := &Service{
		printers: printers,
		owners:   make(map[int]int),
		holders:  make(map[int]int),
		slots:    semaphore.NewWeighted(int64(len(printers))),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Obtain blocks until a printer is available for groupID, marks it busy and
// returns a handle.  Requests are served in arrival order.
func (s *Service) Obtain(ctx context.Context, groupID int) (*Handle, error) {
	s.mu.Lock()
	s.seq++
	w := &waiter{seq: s.seq, groupID: groupID, requestedAt: clock.Now(), ready: make(chan *Handle, 1)}
	s.publish(event.NewEvent(event.KindGroup, event.NameRequested, groupID).WithGroup(groupID))
	if len(s.waiters) == 0 && s.slots.TryAcquire(1) {
		printer := s.lowestIdle()
		if printer == nil {
			s.slots.Release(1)
			s.mu.Unlock()
			return nil, model.NewViolation(model.InvariantConservation, "slot granted but no printer is idle").WithGroup(groupID)
		}
		printer.State = model.PrinterStateBusy
		s.publish(event.NewEvent(event.KindPrinter, event.NameState, printer.ID).
			WithGroup(groupID).WithPrinter(printer.ID).
			WithTransition(string(model.PrinterStateIdle), string(model.PrinterStateBusy)))
		handle := s.grant(w, printer)
		s.mu.Unlock()
		progress.UpdateCtx(ctx, progress.Delta{BusyPrinters: 1, Grants: 1})
		return handle, nil
	}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()
	progress.UpdateCtx(ctx, progress.Delta{WaitingGroups: 1})

	select {
	case handle := <-w.ready:
		progress.UpdateCtx(ctx, progress.Delta{WaitingGroups: -1, Grants: 1})
		return handle, nil
	case <-ctx.Done():
	}

	s.mu.Lock()
	if s.dequeue(w) {
		s.mu.Unlock()
		progress.UpdateCtx(ctx, progress.Delta{WaitingGroups: -1})
		return nil, fmt.Errorf("group %d: waiting for printer: %w", groupID, ctx.Err())
	}
	// a printer was passed on while the context ended; give it to the next group
	handle := <-w.ready
	idled := s.release(handle)
	s.mu.Unlock()
	delta := progress.Delta{WaitingGroups: -1, Grants: 1}
	if idled {
		delta.BusyPrinters = -1
	}
	progress.UpdateCtx(ctx, delta)
	return nil, fmt.Errorf("group %d: waiting for printer: %w", groupID, ctx.Err())
}

// grant must be called with the lock held.
func (s *Service) grant(w *waiter, printer *model.Printer) *Handle {
	s.owners[printer.ID] = w.groupID
	handle := &Handle{Grant: Grant{
		Seq:         w.seq,
		GroupID:     w.groupID,
		PrinterID:   printer.ID,
		RequestedAt: w.requestedAt,
		GrantedAt:   clock.Now(),
	}}
	s.grants = append(s.grants, handle.Grant)
	s.publish(event.NewEvent(event.KindGroup, event.NameGranted, w.groupID).WithGroup(w.groupID).WithPrinter(printer.ID))
	return handle
}

// dequeue must be called with the lock held.  It reports whether w was
// still waiting.
func (s *Service) dequeue(w *waiter) bool {
	for i, candidate := range s.waiters {
		if candidate == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// lowestIdle must be called with the lock held.
func (s *Service) lowestIdle() *model.Printer {
	for _, p := range s.printers {
		if p.IsIdle() {
			return p
		}
	}
	return nil
}

// release must be called with the lock held.  The printer of h goes straight
// to the oldest waiting group, or back to idle when nobody waits; the result
// reports the latter.
func (s *Service) release(h *Handle) bool {
	printer := s.printers[h.PrinterID()]
	delete(s.holders, printer.ID)
	delete(s.owners, printer.ID)
	h.released = true
	if len(s.waiters) == 0 {
		printer.State = model.PrinterStateIdle
		s.publish(event.NewEvent(event.KindPrinter, event.NameState, printer.ID).
			WithGroup(h.GroupID).WithPrinter(printer.ID).
			WithTransition(string(model.PrinterStateBusy), string(model.PrinterStateIdle)))
		s.publish(event.NewEvent(event.KindGroup, event.NameReturned, h.GroupID).WithGroup(h.GroupID).WithPrinter(printer.ID))
		s.slots.Release(1)
		return true
	}
	s.publish(event.NewEvent(event.KindGroup, event.NameReturned, h.GroupID).WithGroup(h.GroupID).WithPrinter(printer.ID))
	next := s.waiters[0]
	s.waiters = s.waiters[1:]
	next.ready <- s.grant(next, printer)
	return false
}

// Leave returns the printer held by h to the pool and passes it to the
// oldest waiting group.  A printer still in use is returned anyway, so that
// teardown never leaks a printer; a printer the group does not hold is left
// untouched.
func (s *Service) Leave(ctx context.Context, h *Handle) error {
	if h == nil {
		return nil
	}
	s.mu.Lock()
	if h.released {
		s.mu.Unlock()
		return model.NewViolation(model.InvariantConservation, "printer returned twice").WithGroup(h.GroupID).WithPrinter(h.PrinterID())
	}
	printer := s.printers[h.PrinterID()]
	if owner, ok := s.owners[printer.ID]; !ok || owner != h.GroupID || printer.IsIdle() {
		h.released = true
		s.mu.Unlock()
		return model.NewViolation(model.InvariantPrinterOwnership, "printer is not held by the group").WithGroup(h.GroupID).WithPrinter(printer.ID)
	}
	var violation error
	if studentID, ok := s.holders[printer.ID]; ok {
		violation = model.NewViolation(model.InvariantMutualExclusion, "printer returned while student %d is printing", studentID).WithGroup(h.GroupID).WithPrinter(printer.ID).WithStudent(studentID)
	}
	idled := s.release(h)
	s.mu.Unlock()

	if idled {
		progress.UpdateCtx(ctx, progress.Delta{BusyPrinters: -1})
	}
	return violation
}

// Use registers studentID of groupID as the one printing on printerID.  It
// fails when the printer is not held by the group or someone else is already
// printing on it.
func (s *Service) Use(printerID, groupID, studentID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if printerID < 0 || printerID >= len(s.printers) {
		return model.NewViolation(model.InvariantPrinterOwnership, "unknown printer").WithGroup(groupID).WithPrinter(printerID).WithStudent(studentID)
	}
	if owner, ok := s.owners[printerID]; !ok || owner != groupID {
		return model.NewViolation(model.InvariantPrinterOwnership, "printer is not held by the student's group").WithGroup(groupID).WithPrinter(printerID).WithStudent(studentID)
	}
	if holder, ok := s.holders[printerID]; ok {
		return model.NewViolation(model.InvariantMutualExclusion, "printer already in use by student %d", holder).WithGroup(groupID).WithPrinter(printerID).WithStudent(studentID)
	}
	s.holders[printerID] = studentID
	return nil
}

// Finish ends the print turn of studentID on printerID.
func (s *Service) Finish(printerID, studentID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	holder, ok := s.holders[printerID]
	if !ok || holder != studentID {
		return model.NewViolation(model.InvariantMutualExclusion, "student is not printing on this printer").WithPrinter(printerID).WithStudent(studentID)
	}
	delete(s.holders, printerID)
	return nil
}

// Waiting returns the number of groups blocked in Obtain.
func (s *Service) Waiting() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}

// Busy returns the number of busy printers.
func (s *Service) Busy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	busy := 0
	for _, p := range s.printers {
		if !p.IsIdle() {
			busy++
		}
	}
	return busy
}

// Grants returns the grant log in grant order.
func (s *Service) Grants() []Grant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Grant(nil), s.grants...)
}

// Printers returns copies of every printer.
func (s *Service) Printers() []model.Printer {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]model.Printer, len(s.printers))
	for i, p := range s.printers {
		ret[i] = *p
	}
	return ret
}

// publish must be called with the lock held.
func (s *Service) publish(e *event.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}
