package coordinator

import (
	"time"

	"github.com/viant/printshare/policy"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/event"
)

// Option customises the coordinator.
type Option func(*Service)

// WithPolicy sets the release policy.  When unset, the policy stored in the
// run context is used, falling back to policy.Default().
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithArrivalTimer sets the source of the delay before a student reports
// ready.
func WithArrivalTimer(factory timer.Factory) Option {
	return func(s *Service) {
		s.arrivals = factory
	}
}

// WithPrintTimer sets the source of print durations.
func WithPrintTimer(factory timer.Factory) Option {
	return func(s *Service) {
		s.prints = factory
	}
}

// WithTimeUnit sets the wall-clock duration of one timer unit.
func WithTimeUnit(unit time.Duration) Option {
	return func(s *Service) {
		s.timeUnit = unit
	}
}

// WithPublisher sets the publisher receiving student and group events.
func WithPublisher(publisher *event.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}
