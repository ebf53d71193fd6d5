package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var (
	// ErrNotFound is returned when no completed search matches the request.
	ErrNotFound = errors.New("no search history")
)

var _ weather.HistoryStore = (*MemoryStore)(nil)

// MemoryStore is a concurrency-safe in-memory history of completed searches,
// ordered oldest first.
type MemoryStore struct {
	mu sync.RWMutex

	views []weather.View

	// retention configuration
	maxHistory int           // max number of views kept
	maxAge     time.Duration // optional max age for views
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveView appends a completed view and enforces retention.
// Views without a location are not recorded.
func (s *MemoryStore) SaveView(view weather.View) {
	if view.Location == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.views = append(s.views, view)
	s.pruneLocked()
}

func (s *MemoryStore) pruneLocked() {
	if s.maxHistory > 0 && len(s.views) > s.maxHistory {
		over := len(s.views) - s.maxHistory
		s.views = append([]weather.View(nil), s.views[over:]...)
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.views); i++ {
			if !s.views[i].UpdatedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.views = append([]weather.View(nil), s.views[i:]...)
		}
	}
}

// GetLatest returns the most recent completed view.
func (s *MemoryStore) GetLatest() (weather.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.views) == 0 {
		return weather.View{}, ErrNotFound
	}
	return s.views[len(s.views)-1].Clone(), nil
}

// GetRange returns the views completed between from and to (inclusive), oldest first.
// A non-empty city restricts the result to locations whose name matches case-insensitively.
func (s *MemoryStore) GetRange(city string, from, to time.Time) ([]weather.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.View
	for _, v := range s.views {
		if v.UpdatedAt.Before(from) || v.UpdatedAt.After(to) {
			continue
		}
		if city != "" && !strings.EqualFold(v.Location.Name, city) {
			continue
		}
		result = append(result, v.Clone())
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// Len reports how many views are currently retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}
