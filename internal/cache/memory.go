package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// DefaultMaxEntries bounds a MemoryStore created by NewMemoryStore
const DefaultMaxEntries = 1024

// MemoryStore is an in-process Store used when Redis is not configured.
// Expired entries are dropped on every Set and the store never holds more
// than maxEntries values.
type MemoryStore struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithLimit(DefaultMaxEntries)
}

// NewMemoryStoreWithLimit creates a store holding at most maxEntries values
func NewMemoryStoreWithLimit(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.data, key)
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	if _, exists := m.data[key]; !exists {
		for len(m.data) >= m.maxEntries {
			m.evictOne()
		}
	}

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryStore) sweep(now time.Time) {
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}

// evictOne drops the entry closest to expiry. Entries without a TTL go last.
func (m *MemoryStore) evictOne() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, entry := range m.data {
		if !found || (!entry.expiresAt.IsZero() && (soonest.IsZero() || entry.expiresAt.Before(soonest))) {
			victim, soonest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, victim)
	}
}
