package event

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/viant/printshare/service/messaging"
)

// Publisher fans events out to listeners and, optionally, to a queue.  It
// never blocks and never fails: a panicking listener or a full queue is
// logged and counted, the simulation carries on.
type Publisher struct {
	runID     string
	queue     messaging.Queue[Event]
	mu        sync.RWMutex
	listeners []Listener
	dropped   atomic.Int64
}

// NewPublisher creates a publisher; queue may be nil.
func NewPublisher(runID string, queue messaging.Queue[Event], listeners ...Listener) *Publisher {
	return &Publisher{runID: runID, queue: queue, listeners: listeners}
}

// AddListener registers an additional listener.
func (p *Publisher) AddListener(l Listener) {
	if l == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

// Publish delivers e to every listener and offers it to the queue.
func (p *Publisher) Publish(e *Event) {
	if p == nil || e == nil {
		return
	}
	e.RunID = p.runID
	p.mu.RLock()
	listeners := p.listeners
	p.mu.RUnlock()
	for _, listener := range listeners {
		p.notify(listener, e)
	}
	if p.queue != nil {
		clone := *e
		if err := p.queue.Offer(&clone); err != nil {
			if p.dropped.Add(1) == 1 {
				log.Printf("event publisher: dropping events: %v", err)
			}
		}
	}
}

func (p *Publisher) notify(listener Listener, e *Event) {
	defer func() {
		if r := recover(); r != nil {
			p.dropped.Add(1)
			log.Printf("event publisher: listener panic on %s/%s: %v", e.Kind, e.Name, r)
		}
	}()
	clone := *e
	listener(&clone)
}

// Dropped returns how many deliveries failed.
func (p *Publisher) Dropped() int64 {
	if p == nil {
		return 0
	}
	return p.dropped.Load()
}
