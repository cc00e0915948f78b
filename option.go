package printshare

import (
	"github.com/viant/printshare/policy"
	"github.com/viant/printshare/progress"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/dao"
	"github.com/viant/printshare/service/event"
	"github.com/viant/printshare/service/messaging"
	"github.com/viant/printshare/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service.  Options are applied in order, so WithConfig
// should precede options adjusting individual settings.
type Option func(s *Service)

// WithConfig replaces the whole configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithPrinters sets the number of printers.
func WithPrinters(count int) Option {
	return func(s *Service) {
		s.config.Printers = count
	}
}

// WithStudents partitions students into contiguous groups of groupSize.
func WithStudents(students, groupSize int) Option {
	return func(s *Service) {
		s.config.Students = students
		s.config.GroupSize = groupSize
		s.config.Groups = nil
	}
}

// WithGroups sets explicit group ranges.
func WithGroups(groups ...GroupConfig) Option {
	return func(s *Service) {
		s.config.Groups = groups
		s.config.Students, s.config.GroupSize = 0, 0
	}
}

// WithMean sets arrival and print means, in time units.
func WithMean(arrival, print float64) Option {
	return func(s *Service) {
		s.config.Mean = arrival
		s.config.PrintMean = print
	}
}

// WithSeed sets the seed of the random timers.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.config.Seed = seed
	}
}

// WithPolicy sets the leader and release policy.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.config.Policy = p
	}
}

// WithTimerFactory replaces the Poisson timers, typically with
// timer.FixedFactory in tests.
func WithTimerFactory(arrivals, prints timer.Factory) Option {
	return func(s *Service) {
		s.arrivals = arrivals
		s.prints = prints
	}
}

// WithListener registers event listeners, e.g. event.StdoutListener.
func WithListener(listeners ...event.Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

// WithEventQueue sets the queue every event is offered to.
func WithEventQueue(queue messaging.Queue[event.Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithEventConsumer hands every event to handler on a separate goroutine,
// through the event queue.  Without WithEventQueue each run gets its own
// in-memory queue.  A panicking handler gets the event redelivered.
func WithEventConsumer(handler func(*event.Event)) Option {
	return func(s *Service) {
		s.handler = handler
	}
}

// WithProgressListener registers a callback invoked on every counter change.
func WithProgressListener(fn func(progress.Snapshot)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithResultDAO sets the run history store.
func WithResultDAO(results dao.Service[string, Result]) Option {
	return func(s *Service) {
		s.runtime.results = results
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter, for example
// an in-memory exporter in tests.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
