package memory

import (
	"context"
	"sort"
	"sync"
)

// CategoryStore provides an in-memory catalog.CategoryRepository.
type CategoryStore struct {
	mu    sync.Mutex
	names []string
}

// NewCategoryStore constructs an empty CategoryStore.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{}
}

// ListNames returns the category names in ascending order.
func (s *CategoryStore) ListNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	sort.Strings(out)
	return out, nil
}

// SeedIfEmpty stores names when the store holds no category. The check and
// the write happen under one lock.
func (s *CategoryStore) SeedIfEmpty(_ context.Context, names []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.names) > 0 || len(names) == 0 {
		return false, nil
	}
	s.names = append(s.names, names...)
	return true, nil
}
