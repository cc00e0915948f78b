// Package messaging defines the queue contract used to hand transition events
// to asynchronous consumers.
package messaging

import (
	"context"
	"errors"
)

var (
	// ErrQueueFull is returned by Offer when the message cannot be buffered.
	ErrQueueFull = errors.New("messaging: queue full")

	// ErrDeadLettered is returned by Nack when the message will not be
	// redelivered.
	ErrDeadLettered = errors.New("messaging: message dead-lettered")
)

// Queue is a typed message queue.
type Queue[T any] interface {
	// Offer enqueues t or fails fast with ErrQueueFull.  Producers that must
	// never stall, such as the event publisher, use Offer.
	Offer(t *T) error

	// Consume blocks until a message is available or ctx is done.
	Consume(ctx context.Context) (Message[T], error)

	// TryConsume returns a buffered message without blocking.
	TryConsume() (Message[T], bool)
}

// Message is a consumed queue entry; exactly one of Ack or Nack settles it.
type Message[T any] interface {
	ID() string

	T() *T

	Ack() error

	// Nack returns the message for redelivery, or dead-letters it once
	// retries are exhausted and reports that with ErrDeadLettered.
	Nack(err error) error
}
