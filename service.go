package printshare

import (
	"github.com/viant/printshare/progress"
	"github.com/viant/printshare/runtime/timer"
	"github.com/viant/printshare/service/dao"
	"github.com/viant/printshare/service/dao/criteria"
	"github.com/viant/printshare/service/dao/store"
	"github.com/viant/printshare/service/event"
	"github.com/viant/printshare/service/messaging"
)

// Service is the printshare facade.
type Service struct {
	runtime    *Runtime
	config     *Config
	arrivals   timer.Factory
	prints     timer.Factory
	listeners  []event.Listener
	queue      messaging.Queue[event.Event]
	handler    func(*event.Event)
	onProgress func(progress.Snapshot)
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureTimers(); err != nil {
		return err
	}
	if s.runtime.results == nil {
		s.runtime.results = store.NewMemoryStore[string, Result](func(r *Result) string { return r.ID }).
			WithFilter(func(r *Result, parameters []*dao.Parameter) bool {
				return criteria.FilterByState(r.State, parameters)
			})
	}
	s.runtime.config = s.config
	s.runtime.arrivals = s.arrivals
	s.runtime.prints = s.prints
	s.runtime.listeners = s.listeners
	s.runtime.queue = s.queue
	s.runtime.handler = s.handler
	s.runtime.onProgress = s.onProgress
	return nil
}

func (s *Service) ensureTimers() error {
	var err error
	if s.arrivals == nil {
		if s.arrivals, err = timer.NewFactory(s.config.Mean, s.config.Seed); err != nil {
			return err
		}
	}
	if s.prints == nil {
		// distinct stream from arrivals for the same student
		if s.prints, err = timer.NewFactory(s.config.EffectivePrintMean(), s.config.Seed^printSeedMask); err != nil {
			return err
		}
	}
	return nil
}

const printSeedMask = 0x5bd1e995

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// New creates a service.  An invalid configuration is reported here, before
// any student task starts.
func New(options ...Option) (*Service, error) {
	ret := &Service{runtime: &Runtime{}, config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
