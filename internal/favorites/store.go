// Package favorites keeps per-session wishlists of countries in memory.
package favorites

import (
	"strings"
	"sync"

	"github.com/NoraMoser/exploring/internal/model"
)

// Store is an insertion-ordered set of favorites keyed by country code.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []model.Favorite
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Add inserts f unless an entry with the same code already exists.
// It reports whether the store changed.
func (s *Store) Add(f model.Favorite) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(f.Code) >= 0 {
		return false
	}
	s.items = append(s.items, f)
	return true
}

// Remove deletes the entry with the given code, if any.
func (s *Store) Remove(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(code)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// List returns a snapshot of the favorites in insertion order.
func (s *Store) List() []model.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Favorite, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Contains(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(code) >= 0
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf expects the lock to be held.
func (s *Store) indexOf(code string) int {
	for i, f := range s.items {
		if strings.EqualFold(f.Code, code) {
			return i
		}
	}
	return -1
}
