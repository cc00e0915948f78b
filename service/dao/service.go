// Package dao defines the storage contract for run history.  Records are kept
// in memory only; see the store subpackage.
package dao

import (
	"context"
)

// Service stores records of type T keyed by K.
type Service[K comparable, T any] interface {
	// Save inserts or replaces t.
	Save(ctx context.Context, t *T) error

	// Load returns ErrNotFound for unknown ids.
	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	// List returns records matching every parameter, in insertion order.
	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
