// Package progress provides a lightweight tracker that keeps aggregated
// counters (students ready, printing, done, groups waiting, printers busy)
// for a single simulation run.  The tracker instance lives in the run context
// – every component that receives the context can atomically update the
// counters via the Delta helper without requiring a global registry.

package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the coordinator
// or the printer pool.  Fields are signed and can be either positive
// (increment) or negative (decrement).
type Delta struct {
	Ready         int
	Printing      int
	Done          int
	WaitingGroups int
	BusyPrinters  int
	Grants        int
}

// Snapshot is a point-in-time copy of the tracker counters.
type Snapshot struct {
	// Identification – informative only, filled when the run starts.
	RunID     string
	Name      string
	StartedAt time.Time

	Students int
	Printers int

	ReadyStudents    int
	PrintingStudents int
	DoneStudents     int
	WaitingGroups    int
	BusyPrinters     int
	Grants           int

	// High-water marks, used to verify resource conservation after a run.
	MaxPrinting     int
	MaxBusyPrinters int
}

// Progress keeps aggregated counters of a run.  It is safe for concurrent
// use.
type Progress struct {
	mu       sync.Mutex
	state    Snapshot
	onChange func(Snapshot)
}

// Update applies the supplied delta to the tracker.  It is safe to call from
// multiple goroutines.  If an onChange callback has been registered it is
// invoked with a snapshot of the updated counters outside the critical
// section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.mu.Lock()

	s := &p.state
	s.ReadyStudents += d.Ready
	s.PrintingStudents += d.Printing
	s.DoneStudents += d.Done
	s.WaitingGroups += d.WaitingGroups
	s.BusyPrinters += d.BusyPrinters
	s.Grants += d.Grants
	if s.PrintingStudents > s.MaxPrinting {
		s.MaxPrinting = s.PrintingStudents
	}
	if s.BusyPrinters > s.MaxBusyPrinters {
		s.MaxBusyPrinters = s.BusyPrinters
	}

	snapshot := p.state
	cb := p.onChange

	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Snapshot {
	if p == nil {
		return Snapshot{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.  onChange, when not nil, observes every Update.
func WithNewTracker(ctx context.Context, runID, name string, students, printers int, onChange func(Snapshot)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		state: Snapshot{
			RunID:     runID,
			Name:      name,
			StartedAt: time.Now(),
			Students:  students,
			Printers:  printers,
		},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
