package store

import (
	"sync"
	"time"

	"github.com/NikhilShimpy/AskSIEM/internal/model"
)

// EventStore supplies the read-only event collection the pipeline queries.
// Implementations must return a snapshot that callers may read concurrently.
type EventStore interface {
	AllEvents() []model.SecurityEvent
}

// MemoryStore holds an immutable in-memory event snapshot. The snapshot is
// installed once (or replaced wholesale) and handed out by reference, so
// concurrent queries share it without copying.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []model.SecurityEvent
	loadedAt time.Time
}

// NewMemoryStore creates a store holding the given events.
func NewMemoryStore(events []model.SecurityEvent) *MemoryStore {
	return &MemoryStore{events: events, loadedAt: time.Now().UTC()}
}

// AllEvents returns the current snapshot. Callers must not mutate it.
func (s *MemoryStore) AllEvents() []model.SecurityEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// Replace swaps in a new snapshot.
func (s *MemoryStore) Replace(events []model.SecurityEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	s.loadedAt = time.Now().UTC()
}

// Stats returns store statistics for health reporting.
func (s *MemoryStore) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var oldest, newest time.Time
	for i, ev := range s.events {
		if i == 0 {
			oldest, newest = ev.Timestamp, ev.Timestamp
			continue
		}
		if ev.Timestamp.Before(oldest) {
			oldest = ev.Timestamp
		}
		if ev.Timestamp.After(newest) {
			newest = ev.Timestamp
		}
	}

	return map[string]interface{}{
		"total_events": len(s.events),
		"loaded_at":    s.loadedAt,
		"oldest_event": oldest,
		"newest_event": newest,
	}
}
