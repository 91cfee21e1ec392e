package deck

import (
	"fmt"

	"github.com/conorfennell/cardtally/internal/domain"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Stats tracks how many times each term was answered incorrectly.
// Terms are kept in the order they were first tracked.
type Stats struct {
	counts *linkedhashmap.Map
}

// NewStats returns an empty tracker.
func NewStats() *Stats {
	return &Stats{counts: linkedhashmap.New()}
}

// Increment adds one mistake to term.
func (s *Stats) Increment(term string) error {
	n, ok := s.Get(term)
	if !ok {
		return fmt.Errorf("failed to record mistake for %q: %w", term, domain.ErrCardNotFound)
	}
	s.counts.Put(term, n+1)
	return nil
}

// Reset sets every tracked count to zero without forgetting any term.
func (s *Stats) Reset() {
	for _, k := range s.counts.Keys() {
		s.counts.Put(k, 0)
	}
}

// Get returns the mistake count for term.
func (s *Stats) Get(term string) (int, bool) {
	v, ok := s.counts.Get(term)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// Set overwrites the mistake count for term, tracking it if needed.
// Negative values are clamped to zero.
func (s *Stats) Set(term string, n int) {
	if n < 0 {
		n = 0
	}
	s.counts.Put(term, n)
}

// Delete stops tracking term.
func (s *Stats) Delete(term string) {
	s.counts.Remove(term)
}

// Terms returns the tracked terms in insertion order.
func (s *Stats) Terms() []string {
	keys := s.counts.Keys()
	terms := make([]string, 0, len(keys))
	for _, k := range keys {
		terms = append(terms, k.(string))
	}
	return terms
}

// Len returns the number of tracked terms.
func (s *Stats) Len() int {
	return s.counts.Size()
}

// Snapshot returns a copy of the current counts.
func (s *Stats) Snapshot() map[string]int {
	snap := make(map[string]int, s.counts.Size())
	s.counts.Each(func(k, v interface{}) {
		snap[k.(string)] = v.(int)
	})
	return snap
}
