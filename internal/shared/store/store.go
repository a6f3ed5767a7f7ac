// Package store provides a generic, mutex-guarded in-memory record
// collection with insertion-order iteration. It substitutes for a database
// in this demo; nothing survives a process restart.
package store

import (
	"errors"
	"sync"
)

// ErrRecordNotFound is returned when no record matches the given ID.
var ErrRecordNotFound = errors.New("record not found")

// Store is an ordered keyed collection. The key of each record is derived
// by the keyFn supplied at construction time. A single coarse lock guards
// all operations; these are low-throughput demo tables.
type Store[T any] struct {
	mu      sync.RWMutex
	records []T
	keyFn   func(T) string
}

// New creates an empty store keyed by keyFn.
func New[T any](keyFn func(T) string) *Store[T] {
	return &Store[T]{keyFn: keyFn}
}

// Insert prepends a record, making it the most-recent-inserted entry.
func (s *Store[T]) Insert(record T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]T{record}, s.records...)
	return record
}

// Append adds a record at the end of the collection.
func (s *Store[T]) Append(record T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return record
}

// FindByID returns the record whose key equals id.
func (s *Store[T]) FindByID(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if s.keyFn(r) == id {
			return r, nil
		}
	}
	var zero T
	return zero, ErrRecordNotFound
}

// FindOne returns the first record matching the predicate in insertion order.
func (s *Store[T]) FindOne(pred func(T) bool) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if pred(r) {
			return r, nil
		}
	}
	var zero T
	return zero, ErrRecordNotFound
}

// Update applies mutate to the record with the given id in place and
// returns the updated value.
func (s *Store[T]) Update(id string, mutate func(*T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.keyFn(s.records[i]) == id {
			mutate(&s.records[i])
			return s.records[i], nil
		}
	}
	var zero T
	return zero, ErrRecordNotFound
}

// Remove deletes the record with the given id and returns it.
func (s *Store[T]) Remove(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.keyFn(s.records[i]) == id {
			removed := s.records[i]
			s.records = append(s.records[:i], s.records[i+1:]...)
			return removed, nil
		}
	}
	var zero T
	return zero, ErrRecordNotFound
}

// Truncate keeps the first maxSize entries in current order and evicts the
// remainder. Insertion order, not creation-time order, governs eviction.
func (s *Store[T]) Truncate(maxSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if maxSize < 0 {
		maxSize = 0
	}
	if len(s.records) > maxSize {
		s.records = s.records[:maxSize]
	}
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns a copy of all records in insertion order. Callers may
// freely sort or filter the returned slice.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}
