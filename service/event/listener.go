package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/viant/printshare/service/messaging"
	"github.com/viant/printshare/tracing"
)

// Listener is invoked synchronously for every published event.  It must be
// fast; slow consumers should read from a queue via Consumer instead.
type Listener func(e *Event)

// StdoutListener prints every event as a single JSON line.
func StdoutListener(e *Event) {
	if e == nil {
		return
	}
	data, _ := json.Marshal(e)
	fmt.Println(string(data))
}

// Consumer drains an event queue on its own goroutine and hands every event to
// handler.  A handler panic nacks the message, so the queue may redeliver it.
type Consumer struct {
	queue       messaging.Queue[Event]
	handler     func(*Event)
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	handled     atomic.Int64
	deadLetters atomic.Int64
}

// NewConsumer creates a consumer; call Start to begin draining.
func NewConsumer(queue messaging.Queue[Event], handler func(*Event)) *Consumer {
	return &Consumer{queue: queue, handler: handler}
}

// Start launches the consume loop.  It stops when ctx is done or Stop is
// called.
func (c *Consumer) Start(ctx context.Context) {
	c.ctx = context.WithoutCancel(ctx)
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			msg, err := c.queue.Consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				log.Printf("event consumer: %v", err)
				continue
			}
			if msg != nil {
				c.handle(msg)
			}
		}
	}()
}

// Stop terminates the consume loop, waits for it to exit and then hands every
// event still buffered, redeliveries included, to the handler.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	for {
		msg, ok := c.queue.TryConsume()
		if !ok {
			return
		}
		c.handle(msg)
	}
}

// Handled returns how many events the handler accepted.
func (c *Consumer) Handled() int64 {
	return c.handled.Load()
}

// DeadLetters returns how many events were given up on after the handler
// kept failing.
func (c *Consumer) DeadLetters() int64 {
	return c.deadLetters.Load()
}

func (c *Consumer) handle(msg messaging.Message[Event]) {
	e := msg.T()
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := tracing.StartSpan(ctx, "event."+string(e.Kind)+"."+e.Name, tracing.KindConsumer)
	span.WithAttributes(map[string]string{"message.id": msg.ID(), "run.id": e.RunID})
	err := c.invoke(e)
	tracing.EndSpan(span, err)
	if err == nil {
		c.handled.Add(1)
		if err = msg.Ack(); err != nil {
			log.Printf("event consumer: ack: %v", err)
		}
		return
	}
	if nackErr := msg.Nack(err); nackErr != nil {
		if errors.Is(nackErr, messaging.ErrDeadLettered) {
			c.deadLetters.Add(1)
		}
		log.Printf("event consumer: %v", nackErr)
	}
}

func (c *Consumer) invoke(e *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic on %s/%s: %v", e.Kind, e.Name, r)
		}
	}()
	c.handler(e)
	return nil
}
