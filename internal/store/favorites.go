package store

import (
	"sync"

	"github.com/quickbites/storefront/internal/models"
)

// FavoritesStore holds the set of favorited items, keyed by item id, in
// insertion order.
type FavoritesStore struct {
	mu    sync.RWMutex
	items []models.FoodItem
}

// NewFavoritesStore creates an empty favorites set.
func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{}
}

// Add inserts the item if its id is not already present. The first-seen
// snapshot wins; a repeat add does not overwrite it.
func (s *FavoritesStore) Add(item models.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == item.ID {
			return
		}
	}
	s.items = append(s.items, item.Clone())
}

// Remove deletes the item with the given id. Absent ids are a no-op.
func (s *FavoritesStore) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether the given id is favorited.
func (s *FavoritesStore) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Count returns the number of favorited items.
func (s *FavoritesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns a snapshot of the favorites in insertion order.
func (s *FavoritesStore) Items() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FoodItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// Clear removes all favorites.
func (s *FavoritesStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
