package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
)

// DefaultMemoSize bounds the number of keys a Memo keeps before evicting
// the least recently used one.
const DefaultMemoSize = 64

// LoadFunc produces a fresh value for a memo key.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Memo is an in-memory TTL cache of decoded values. Each key is loaded at
// most once per TTL window; concurrent callers for an expired key wait for
// a single load instead of all hitting the backend.
type Memo[V any] struct {
	mu    sync.Mutex
	store gcache.Cache
}

// NewMemo creates a memo holding at most size keys. A nil clock uses the
// wall clock.
func NewMemo[V any](size int, clock gcache.Clock) *Memo[V] {
	if size <= 0 {
		size = DefaultMemoSize
	}
	if clock == nil {
		clock = gcache.NewRealClock()
	}
	return &Memo[V]{
		store: gcache.New(size).LRU().Clock(clock).Build(),
	}
}

// GetOrRefresh returns the value cached under key, calling load to refresh
// it when it is missing or older than ttl. A failed load leaves the memo
// untouched and returns the error.
func (m *Memo[V]) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, load LoadFunc[V]) (V, error) {
	if v, ok := m.lookup(key); ok {
		return v, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed the key while we waited.
	if v, ok := m.lookup(key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	if err := m.store.SetWithExpire(key, v, ttl); err != nil {
		return v, fmt.Errorf("store %q: %w", key, err)
	}
	return v, nil
}

// Cached reports whether key currently holds an unexpired value.
func (m *Memo[V]) Cached(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Invalidate drops key so that the next GetOrRefresh reloads it.
func (m *Memo[V]) Invalidate(key string) {
	m.store.Remove(key)
}

func (m *Memo[V]) lookup(key string) (V, bool) {
	var zero V
	raw, err := m.store.Get(key)
	if err != nil {
		// gcache.KeyNotFoundError for missing and expired keys alike.
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}
