// Package store contains the in-memory state containers behind the
// storefront: cart, favorites, search history and order history. Each store
// exclusively owns its collection and hands out value copies, never
// references into internal state.
package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/models"
)

// CartStore holds the active cart: at most one line per item id, each with
// quantity >= 1, in insertion order.
type CartStore struct {
	mu    sync.RWMutex
	lines []models.CartLine
}

// NewCartStore creates an empty cart.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Add inserts a new line with quantity 1 for the item, or increments the
// existing line's quantity by 1. The item is snapshotted at time of add.
func (s *CartStore) Add(item models.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, models.CartLine{Item: item.Clone(), Quantity: 1})
}

// Remove deletes the line for the given id. Removing an absent id is a no-op.
func (s *CartStore) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// UpdateQuantity sets the line's quantity to q exactly. A q <= 0 behaves as
// Remove. Updating an absent id is a no-op.
func (s *CartStore) UpdateQuantity(id, q int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q <= 0 {
		s.remove(id)
		return
	}
	if i := s.indexOf(id); i >= 0 {
		s.lines[i].Quantity = q
	}
}

// Clear empties all lines.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Total returns the sum of price * quantity over all lines, zero for an
// empty cart.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Contains reports whether a line for the given id exists.
func (s *CartStore) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Get returns a copy of the line for the given id, or false if absent.
func (s *CartStore) Get(id int) (models.CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.lines[i].Clone(), true
	}
	return models.CartLine{}, false
}

// Lines returns a snapshot of all lines in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartLine, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.Clone()
	}
	return out
}

func (s *CartStore) indexOf(id int) int {
	for i, l := range s.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

func (s *CartStore) remove(id int) {
	if i := s.indexOf(id); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}
