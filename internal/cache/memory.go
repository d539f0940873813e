package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
)

// sweepEvery is the number of writes between purges of expired entries.
const sweepEvery = 256

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e memoryEntry[T]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

var _ core.Cache[struct{}] = (*MemoryCache[struct{}])(nil)

// MemoryCache keeps values in process memory. Reads skip expired entries and
// every sweepEvery writes drop them, so a long running instance does not hold
// on to users that stopped calling. Only suitable for a single replica.
type MemoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	writes  int
	now     func() time.Time
}

// NewMemoryCache creates an empty memory cache
func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{
		entries: make(map[string]memoryEntry[T]),
		now:     time.Now,
	}
}

// WithClock replaces the time source, for tests
func (m *MemoryCache[T]) WithClock(now func() time.Time) *MemoryCache[T] {
	m.now = now
	return m
}

func (m *MemoryCache[T]) Get(_ context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || entry.expired(m.now()) {
		var zero T
		return zero, ErrCacheMiss
	}
	return entry.value, nil
}

func (m *MemoryCache[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = memoryEntry[T]{value: value, expiresAt: now.Add(ttl)}

	m.writes++
	if m.writes >= sweepEvery {
		m.writes = 0
		for k, e := range m.entries {
			if e.expired(now) {
				delete(m.entries, k)
			}
		}
	}
	return nil
}

func (m *MemoryCache[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included
func (m *MemoryCache[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close drops every entry
func (m *MemoryCache[T]) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry[T])
	m.writes = 0
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache[T]) Health(context.Context) error {
	return nil
}

// GetWithFetch loads key through fetchFunc on a miss and stores the result.
// Concurrent misses on the same key may each call fetchFunc.
func (m *MemoryCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := m.Get(ctx, key); err == nil {
		return value, nil
	}
	value, err := fetchFunc(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = m.Set(ctx, key, value, ttl)
	return value, nil
}
