package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists a collection as a single pretty-printed JSON array at
// path. Every operation reads or rewrites the whole file; there is no caching
// and no indexing.
type FileStore[T any] struct {
	path string
	mu   sync.Mutex
}

func NewFileStore[T any](path string) *FileStore[T] {
	return &FileStore[T]{path: path}
}

func (s *FileStore[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore[T]) Save(ctx context.Context, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Update runs fn under the store lock so the load-mutate-save sequence cannot
// interleave with another writer on the same store.
func (s *FileStore[T]) Update(ctx context.Context, fn UpdateFunc[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	records, changed, err := fn(records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.save(records)
}

func (s *FileStore[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// A missing file is an empty collection, not an error.
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (s *FileStore[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	// Write to a sibling temp file and rename so a crash mid-write cannot
	// leave a truncated document behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
