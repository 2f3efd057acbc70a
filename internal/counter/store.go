// Package counter implements the shared counter collection, the background
// increment driver and the rate estimator.
package counter

import (
	"sync"

	"github.com/alexrttr/qt-table-increment/model"
)

// Store owns the ordered counter collection. Every operation takes the same
// exclusive lock, so increments can never interleave with add, remove or a
// snapshot copy. Callers only ever receive independent copies; no reference
// to the internal slice escapes the store.
type Store struct {
	mu       sync.Mutex
	counters []int64
}

func NewStore() *Store {
	return &Store{}
}

// Add appends value to the end of the collection.
func (s *Store) Add(value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, value)
}

// Remove deletes the counter at index, shifting later counters left.
// An out-of-range index is a silent no-op, not an error.
func (s *Store) Remove(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.counters) {
		return
	}
	s.counters = append(s.counters[:index], s.counters[index+1:]...)
}

// IncrementAll adds one to every counter in the collection.
func (s *Store) IncrementAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.counters {
		s.counters[i]++
	}
}

// Snapshot returns an independent copy of the collection as of a single
// consistent instant.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int64, len(s.counters))
	copy(out, s.counters)
	return model.Snapshot{Counters: out}
}

// ReplaceAll discards the current collection and installs values in its
// place. The input is copied, so the caller keeps no handle into the store.
func (s *Store) ReplaceAll(values []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = make([]int64, len(values))
	copy(s.counters, values)
}

// Len reports the current number of counters.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counters)
}
