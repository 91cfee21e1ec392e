package deck

import (
	"fmt"

	"github.com/conorfennell/cardtally/internal/domain"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Store holds the cards of one session. Terms are unique, and so are
// definitions: no two terms ever share a definition.
type Store struct {
	cards *linkedhashmap.Map
	stats *Stats
}

// NewStore returns an empty store with its own mistake tracker.
func NewStore() *Store {
	return &Store{
		cards: linkedhashmap.New(),
		stats: NewStats(),
	}
}

// Stats returns the mistake tracker bound to this store.
func (s *Store) Stats() *Stats {
	return s.stats
}

// Add inserts a new card and starts tracking it with zero mistakes.
// The term is checked before the definition.
func (s *Store) Add(term, definition string) error {
	if term == "" || definition == "" {
		return domain.ErrEmptyField
	}
	if s.HasTerm(term) {
		return fmt.Errorf("failed to add card %q: %w", term, domain.ErrDuplicateTerm)
	}
	if s.HasDefinition(definition) {
		return fmt.Errorf("failed to add card %q: %w", term, domain.ErrDuplicateDefinition)
	}
	s.cards.Put(term, definition)
	s.stats.Set(term, 0)
	return nil
}

// Remove deletes term and its mistake count. It reports whether the
// term was present.
func (s *Store) Remove(term string) bool {
	if !s.HasTerm(term) {
		return false
	}
	s.cards.Remove(term)
	s.stats.Delete(term)
	return true
}

// Upsert inserts or overwrites a card with the given mistake count.
// An existing term keeps its position. Any other card already holding
// definition is evicted; the evicted terms are returned.
func (s *Store) Upsert(term, definition string, mistakes int) []string {
	var evicted []string
	if owner, ok := s.TermFor(definition); ok && owner != term {
		s.Remove(owner)
		evicted = append(evicted, owner)
	}
	s.cards.Put(term, definition)
	s.stats.Set(term, mistakes)
	return evicted
}

// Get returns the definition for term.
func (s *Store) Get(term string) (string, bool) {
	v, ok := s.cards.Get(term)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *Store) HasTerm(term string) bool {
	_, ok := s.cards.Get(term)
	return ok
}

func (s *Store) HasDefinition(definition string) bool {
	_, ok := s.TermFor(definition)
	return ok
}

// TermFor returns the term whose definition is definition.
func (s *Store) TermFor(definition string) (string, bool) {
	it := s.cards.Iterator()
	for it.Next() {
		if it.Value().(string) == definition {
			return it.Key().(string), true
		}
	}
	return "", false
}

// ReverseIndex builds a definition to term lookup from the current cards.
// The result is a copy and is not kept in sync with later changes.
func (s *Store) ReverseIndex() map[string]string {
	idx := make(map[string]string, s.cards.Size())
	s.cards.Each(func(k, v interface{}) {
		idx[v.(string)] = k.(string)
	})
	return idx
}

// Terms returns the terms in insertion order.
func (s *Store) Terms() []string {
	keys := s.cards.Keys()
	terms := make([]string, 0, len(keys))
	for _, k := range keys {
		terms = append(terms, k.(string))
	}
	return terms
}

// Cards returns the cards in insertion order.
func (s *Store) Cards() []domain.Card {
	cards := make([]domain.Card, 0, s.cards.Size())
	s.cards.Each(func(k, v interface{}) {
		cards = append(cards, domain.Card{Term: k.(string), Definition: v.(string)})
	})
	return cards
}

func (s *Store) Len() int {
	return s.cards.Size()
}
