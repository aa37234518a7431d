// Package bookmark tracks which catalog items the user has bookmarked.
package bookmark

import (
	"slices"
	"sync"

	"github.com/mmcdole/flix/internal/domain"
)

// Set is the in-memory bookmark membership. It changes only through Toggle,
// Add and Remove; searches and page loads never clear it.
type Set struct {
	mu  sync.RWMutex
	ids map[int]struct{}
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{ids: make(map[int]struct{})}
}

// Toggle flips membership of id and returns the new state.
func (s *Set) Toggle(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Add marks id as bookmarked
func (s *Set) Add(id int) {
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()
}

// Remove unmarks id
func (s *Set) Remove(id int) {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}

func (s *Set) IsBookmarked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// FilterBookmarked returns the bookmarked items of list in list order.
func (s *Set) FilterBookmarked(list []domain.CatalogItem) []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CatalogItem, 0, len(s.ids))
	for _, item := range list {
		if _, ok := s.ids[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the bookmarked ids in ascending order
func (s *Set) IDs() []int {
	s.mu.RLock()
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}
