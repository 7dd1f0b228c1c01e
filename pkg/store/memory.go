package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/gatesketch/pkg/errors"
)

// DefaultMaxRecords bounds a MemoryStore created without WithMaxRecords.
const DefaultMaxRecords = 1000

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMaxRecords sets how many records the store keeps. Values below one
// keep the default.
func WithMaxRecords(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.max = n
		}
	}
}

// MemoryStore keeps the most recent records in process memory. Once full,
// saving a record evicts the one with the oldest CreatedAt.
type MemoryStore struct {
	mu      sync.RWMutex
	max     int
	records map[string]Record
	order   []string // IDs sorted by CreatedAt, oldest first
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{max: DefaultMaxRecords, records: make(map[string]Record)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, r Record) error {
	if err := errors.ValidateRecordID(r.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.records[r.ID]; ok {
		i := s.position(old)
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.order = slices.Insert(s.order, s.position(r), r.ID)
	s.records[r.ID] = r

	if n := len(s.order) - s.max; n > 0 {
		for _, id := range s.order[:n] {
			delete(s.records, id)
		}
		s.order = slices.Delete(s.order, 0, n)
	}
	return nil
}

// position returns where r sorts in s.order. Callers hold the lock.
func (s *MemoryStore) position(r Record) int {
	i, _ := slices.BinarySearchFunc(s.order, r, func(id string, target Record) int {
		return compareRecords(s.records[id], target)
	})
	return i
}

func compareRecords(a, b Record) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeNotFound, "render %s not found", id)
	}
	return r, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(len(s.order), listLimit(limit))
	out := make([]Record, 0, n)
	for i := len(s.order) - 1; i >= len(s.order)-n; i-- {
		out = append(out, s.records[s.order[i]])
	}
	return out, nil
}

// Len returns the number of records held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
