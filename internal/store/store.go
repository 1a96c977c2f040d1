package store

import (
	"context"
	"errors"
)

var (
	// ErrRead covers every read failure except a missing file, which is
	// normalized to an empty collection.
	ErrRead = errors.New("store: read failed")
	// ErrWrite covers any failure while persisting a collection.
	ErrWrite = errors.New("store: write failed")
)

// UpdateFunc receives the current collection and returns the collection to
// persist. The boolean reports whether anything changed; when false the store
// skips the write entirely.
type UpdateFunc[T any] func(records []T) ([]T, bool, error)

// Store holds one homogeneous collection of records. Implementations must
// serialize Update calls so concurrent read-modify-write sequences cannot
// lose updates.
type Store[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
	Update(ctx context.Context, fn UpdateFunc[T]) error
}
