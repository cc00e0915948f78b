package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/printshare/model"
	"github.com/viant/printshare/policy"
	"github.com/viant/printshare/runtime/rendezvous"
	"github.com/viant/printshare/runtime/signal"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/event"
	"github.com/viant/printshare/service/pool"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeUnit is the wall-clock duration of one timer unit.
const DefaultTimeUnit = time.Millisecond

// Service coordinates a single run over a topology.
type Service struct {
	topology  *model.Topology
	pool      *pool.Service
	policy    *policy.Policy
	arrivals  timer.Factory
	prints    timer.Factory
	timeUnit  time.Duration
	publisher *event.Publisher

	wakeups  []*signal.OneShot
	barriers *rendezvous.Store
	started  atomic.Bool

	mu        sync.Mutex
	intervals []Interval
}

// Quorum records how a group gathered before its leader asked for a printer.
type Quorum struct {
	GroupID  int        `json:"groupId"`
	Arrivals []int      `json:"arrivals"`
	ReadyAt  *time.Time `json:"readyAt,omitempty"`
}

// cohort is the leader-owned runtime state of a group.
type cohort struct {
	group    *model.Group
	barrier  *rendezvous.Barrier
	order    []int
	finished chan int
	handle   *pool.Handle
}

// New creates a coordinator.  Without timer options every delay is zero.
func New(topology *model.Topology, printers *pool.Service, options ...Option) (*Service, error) {
	if topology == nil || len(topology.Students) == 0 {
		return nil, model.NewConfigError("topology", "no students")
	}
	if printers == nil {
		return nil, model.NewConfigError("printers", "printer pool is required")
	}
	ret := &Service{
		topology: topology,
		pool:     printers,
		timeUnit: DefaultTimeUnit,
		barriers: rendezvous.NewStore(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.arrivals == nil {
		ret.arrivals = timer.FixedFactory(nil)
	}
	if ret.prints == nil {
		ret.prints = timer.FixedFactory(nil)
	}
	if ret.timeUnit <= 0 {
		return nil, model.NewConfigError("timeUnit", "must be > 0, got %v", ret.timeUnit)
	}
	if ret.policy != nil {
		if err := ret.policy.Validate(); err != nil {
			return nil, err
		}
	}
	ret.wakeups = make([]*signal.OneShot, len(topology.Students))
	for i := range ret.wakeups {
		ret.wakeups[i] = signal.New()
	}
	return ret, nil
}

// Run starts every student task and blocks until all of them are done.  The
// first error, a violation or ctx being done, cancels the remaining tasks.
func (s *Service) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	releasePolicy := s.policy
	if releasePolicy == nil {
		releasePolicy = policy.FromContext(ctx)
	}
	if releasePolicy == nil {
		releasePolicy = policy.Default()
	}
	if err := releasePolicy.Validate(); err != nil {
		return err
	}

	cohorts := make([]*cohort, len(s.topology.Groups))
	for i, g := range s.topology.Groups {
		cohorts[i] = &cohort{
			group:    g,
			barrier:  s.barriers.Create(rendezvous.New(g.ID, g.Size())),
			order:    releasePolicy.ReleaseOrder(g),
			finished: make(chan int, 1),
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, student := range s.topology.Students {
		c := cohorts[student.GroupID]
		eg.Go(func() error {
			return s.studentTask(ctx, c, student)
		})
	}
	return eg.Wait()
}

// Intervals returns the recorded print intervals in completion order.
func (s *Service) Intervals() []Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Interval(nil), s.intervals...)
}

// Quorums reports, per group, the order in which members became ready and
// when the quorum was reached.
func (s *Service) Quorums() []Quorum {
	var ret []Quorum
	s.barriers.Iterate(func(groupID int, b *rendezvous.Barrier) {
		ret = append(ret, Quorum{GroupID: groupID, Arrivals: b.Arrivals(), ReadyAt: b.ReadyAt()})
	})
	sort.Slice(ret, func(i, j int) bool { return ret[i].GroupID < ret[j].GroupID })
	return ret
}

func (s *Service) record(interval Interval) {
	s.mu.Lock()
	s.intervals = append(s.intervals, interval)
	s.mu.Unlock()
}

func (s *Service) publish(e *event.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

// sleep suspends the calling task for units timer units; no lock is held.
func (s *Service) sleep(ctx context.Context, units int64) error {
	if units <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(units) * s.timeUnit)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release delivers the wakeup of studentID.
func (s *Service) release(c *cohort, studentID int) error {
	if c.barrier.Count() != c.group.Size() || !c.barrier.Done() {
		return model.NewViolation(model.InvariantQuorum, "member released with %d/%d ready", c.barrier.Count(), c.group.Size()).
			WithGroup(c.group.ID).WithStudent(studentID)
	}
	if err := s.wakeups[studentID].Signal(); err != nil {
		if errors.Is(err, signal.ErrAlreadySignaled) {
			return model.NewViolation(model.InvariantOneShot, "member released twice").WithGroup(c.group.ID).WithStudent(studentID)
		}
		return err
	}
	s.publish(event.NewEvent(event.KindStudent, event.NameReleased, studentID).WithGroup(c.group.ID).WithPrinter(c.handle.PrinterID()))
	return nil
}

func wrap(err error, format string, args ...interface{}) error {
	var violation *model.Violation
	if errors.As(err, &violation) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
