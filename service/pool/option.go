package pool

import "github.com/viant/printshare/service/event"

// Option customises the pool.
type Option func(*Service)

// WithPublisher sets the publisher receiving printer and grant events.
// Events are published while the pool lock is held so that every printer's
// transitions are observed in order; listeners must not call back into the
// pool.
func WithPublisher(publisher *event.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}
