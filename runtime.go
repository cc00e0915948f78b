package printshare

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/printshare/internal/clock"
	"github.com/viant/printshare/internal/idgen"
	"github.com/viant/printshare/model"
	"github.com/viant/printshare/policy"
	"github.com/viant/printshare/progress"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/coordinator"
	"github.com/viant/printshare/service/dao"
	"github.com/viant/printshare/service/event"
	"github.com/viant/printshare/service/messaging"
	"github.com/viant/printshare/service/messaging/memory"
	"github.com/viant/printshare/service/pool"
	"github.com/viant/printshare/tracing"
)

// Run states.
const (
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// Result summarises a finished run.
type Result struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	State         string                  `json:"state"`
	StartedAt     time.Time               `json:"startedAt"`
	Elapsed       time.Duration           `json:"elapsed"`
	Students      []model.StudentSnapshot `json:"students"`
	Printers      []model.Printer         `json:"printers"`
	Grants        []pool.Grant            `json:"grants"`
	Intervals     []coordinator.Interval  `json:"intervals"`
	Quorums       []coordinator.Quorum    `json:"quorums"`
	Progress      progress.Snapshot       `json:"progress"`
	DroppedEvents int64                   `json:"droppedEvents,omitempty"`
	DeadLetters   int64                   `json:"deadLetters,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

// Runtime runs simulations and keeps their results.
type Runtime struct {
	config     *Config
	arrivals   timer.Factory
	prints     timer.Factory
	listeners  []event.Listener
	queue      messaging.Queue[event.Event]
	handler    func(*event.Event)
	onProgress func(progress.Snapshot)
	results    dao.Service[string, Result]
}

// Run builds a fresh topology, starts every student task and blocks until
// all of them are done or the run is aborted.  A result is returned, and
// stored, in both cases; err is the first error that aborted the run.
func (r *Runtime) Run(ctx context.Context) (*Result, error) {
	cfg := r.config
	topology, err := cfg.Topology()
	if err != nil {
		return nil, err
	}
	timeUnit, err := cfg.TimeUnitDuration()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	runID := idgen.NewRunID(cfg.Name)
	queue := r.queue
	var consumer *event.Consumer
	if r.handler != nil {
		if queue == nil {
			queue = memory.NewQueue[event.Event](memory.DefaultConfig())
		}
		consumer = event.NewConsumer(queue, r.handler)
	}
	publisher := event.NewPublisher(runID, queue, r.listeners...)
	printers, err := pool.New(topology.Printers, pool.WithPublisher(publisher))
	if err != nil {
		return nil, err
	}
	coord, err := coordinator.New(topology, printers,
		coordinator.WithArrivalTimer(r.arrivals),
		coordinator.WithPrintTimer(r.prints),
		coordinator.WithTimeUnit(timeUnit),
		coordinator.WithPublisher(publisher),
	)
	if err != nil {
		return nil, err
	}

	ctx, tracker := progress.WithNewTracker(ctx, runID, cfg.Name, len(topology.Students), len(topology.Printers), r.onProgress)
	ctx = policy.WithPolicy(ctx, cfg.Policy)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx, span := tracing.StartSpan(ctx, "simulation", tracing.KindInternal)
	span.WithAttributes(map[string]string{"run.id": runID, "run.name": cfg.Name}).
		WithInt("students", len(topology.Students)).
		WithInt("printers", len(topology.Printers)).
		WithInt("groups", len(topology.Groups))

	if consumer != nil {
		consumer.Start(ctx)
	}
	stopwatch := clock.Start()
	runErr := coord.Run(ctx)
	elapsed := stopwatch.Elapsed()
	if consumer != nil {
		consumer.Stop()
	}
	result := &Result{
		ID:            runID,
		Name:          cfg.Name,
		State:         StateCompleted,
		StartedAt:     stopwatch.StartedAt(),
		Elapsed:       elapsed,
		Students:      topology.StudentSnapshots(),
		Printers:      printers.Printers(),
		Grants:        printers.Grants(),
		Intervals:     coord.Intervals(),
		Quorums:       coord.Quorums(),
		Progress:      tracker.Snapshot(),
		DroppedEvents: publisher.Dropped(),
	}
	if consumer != nil {
		result.DeadLetters = consumer.DeadLetters()
	}
	if runErr != nil {
		result.State = StateFailed
		result.Error = runErr.Error()
	}
	tracing.EndSpan(span, runErr)

	if err := r.results.Save(context.WithoutCancel(ctx), result); err != nil {
		return result, fmt.Errorf("failed to save result %s: %w", runID, err)
	}
	return result, runErr
}

// Result returns a previous run by id.
func (r *Runtime) Result(ctx context.Context, id string) (*Result, error) {
	ret, err := r.results.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load result %s: %w", id, err)
	}
	return ret, nil
}

// Results lists previous runs, optionally filtered by state.
func (r *Runtime) Results(ctx context.Context, states ...string) ([]*Result, error) {
	var parameters []*dao.Parameter
	if len(states) > 0 {
		parameters = append(parameters, dao.NewParameter(dao.ParameterState, states...))
	}
	return r.results.List(ctx, parameters...)
}
