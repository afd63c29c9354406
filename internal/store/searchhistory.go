package store

import (
	"strings"
	"sync"
)

// maxRecentSearches caps the history; the oldest entry is evicted first.
const maxRecentSearches = 10

// popularSearches is static reference content, not derived from history.
var popularSearches = []string{
	"Pizza", "Burger", "Sushi", "Pasta", "Tacos",
	"Ice Cream", "Salad", "Coffee", "Sandwich", "Chicken",
}

// SearchHistoryStore keeps a bounded, most-recent-first list of search
// queries, unique case-insensitively.
type SearchHistoryStore struct {
	mu     sync.RWMutex
	recent []string
}

// NewSearchHistoryStore creates an empty search history.
func NewSearchHistoryStore() *SearchHistoryStore {
	return &SearchHistoryStore{}
}

// Add records a query. Blank queries are ignored. A query that already
// exists (case-insensitively) bubbles to the front with the new casing
// kept; the list is then truncated to the cap.
func (s *SearchHistoryStore) Add(query string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]string, 0, len(s.recent)+1)
	filtered = append(filtered, trimmed)
	for _, q := range s.recent {
		if !strings.EqualFold(q, trimmed) {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > maxRecentSearches {
		filtered = filtered[:maxRecentSearches]
	}
	s.recent = filtered
}

// Recent returns a copy of the history, most recent first.
func (s *SearchHistoryStore) Recent() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.recent...)
}

// Clear empties the history.
func (s *SearchHistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = nil
}

// Popular returns the fixed, non-personalized popular search list.
func (s *SearchHistoryStore) Popular() []string {
	return append([]string(nil), popularSearches...)
}
