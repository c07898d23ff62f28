package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/cardview/internal/itemsapi"
)

// Snapshot represents the latest API health data available to the UI.
type Snapshot struct {
	Online              bool
	Categories          []itemsapi.Category
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// TotalItems sums the per-category counts.
func (s Snapshot) TotalItems() int {
	total := 0
	for _, c := range s.Categories {
		total += c.Count
	}
	return total
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous
// categories are kept but the error is recorded for visibility.
func (s *Store) Update(categories []itemsapi.Category, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.Online = false
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Categories = cloneCategories(categories)
	s.snapshot.Online = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Categories = cloneCategories(s.snapshot.Categories)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCategories(items []itemsapi.Category) []itemsapi.Category {
	if len(items) == 0 {
		return nil
	}
	dup := make([]itemsapi.Category, len(items))
	copy(dup, items)
	return dup
}
