package store

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count     int64
	expiresAt time.Time
}

// RateLimitMemoryStore is an in-memory fixed-window implementation of ratelimit.Store.
type RateLimitMemoryStore struct {
	mu         sync.Mutex
	windows    map[string]*windowEntry
	now        func() time.Time
	lastPruned time.Time
}

const pruneInterval = time.Minute

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return NewRateLimitMemoryStoreWithClock(time.Now)
}

// NewRateLimitMemoryStoreWithClock creates a store that reads time from now.
func NewRateLimitMemoryStoreWithClock(now func() time.Time) *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		windows: make(map[string]*windowEntry),
		now:     now,
	}
}

// Increment counts a request for key. The window starts on the first
// increment after the previous one lapsed.
func (s *RateLimitMemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, ok := s.windows[key]
	if !ok || !now.Before(entry.expiresAt) {
		s.windows[key] = &windowEntry{count: 1, expiresAt: now.Add(window)}
		s.prune(now)

		return 1, nil
	}

	entry.count++

	return entry.count, nil
}

// prune drops lapsed windows at most once per pruneInterval.
func (s *RateLimitMemoryStore) prune(now time.Time) {
	if now.Sub(s.lastPruned) < pruneInterval {
		return
	}

	s.lastPruned = now

	for key, entry := range s.windows {
		if !now.Before(entry.expiresAt) {
			delete(s.windows, key)
		}
	}
}
