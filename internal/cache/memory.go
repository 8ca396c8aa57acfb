package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrKeyNotFound is returned when a key is absent or its entry has expired.
var ErrKeyNotFound = errors.New("cache: key not found")

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryProvider is a process-local cache provider. Expiry is checked lazily
// on read; there is no background sweeper.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// MemoryOption configures a MemoryProvider.
type MemoryOption func(*MemoryProvider)

// WithMemoryClock overrides the time source used for expiry checks.
func WithMemoryClock(clock func() time.Time) MemoryOption {
	return func(m *MemoryProvider) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewMemoryProvider constructs an empty in-process cache.
func NewMemoryProvider(opts ...MemoryOption) *MemoryProvider {
	m := &MemoryProvider{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryProvider) Get(_ context.Context, key string) (any, error) {
	m.mu.RLock()
	record, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}
	if !record.expiresAt.IsZero() && m.now().After(record.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrKeyNotFound
	}
	return record.value, nil
}

func (m *MemoryProvider) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	record := entry{value: value}
	if ttl > 0 {
		record.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = record
	m.mu.Unlock()
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryProvider) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}
