package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It backs tests and
// ephemeral runs that do not need a file on disk.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	records []T
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: make([]T, 0)}
}

func (s *MemoryStore[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]T, len(s.records))
	copy(copied, s.records)
	return copied, nil
}

func (s *MemoryStore[T]) Save(ctx context.Context, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]T, len(records))
	copy(s.records, records)
	return nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, fn UpdateFunc[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]T, len(s.records))
	copy(copied, s.records)

	records, changed, err := fn(copied)
	if err != nil {
		return err
	}
	if changed {
		s.records = records
	}
	return nil
}
