package cache

import (
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	value      V
	expiration int64 // Unix nanoseconds; zero = no expire
}

// MemoryCache keeps entries in process memory and evicts expired ones from a janitor goroutine.
type MemoryCache[V any] struct {
	mu    sync.Mutex
	items map[string]item[V]
	quit  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a cache whose janitor runs every janitorInterval.
func NewMemoryCache[V any](janitorInterval time.Duration) *MemoryCache[V] {
	mc := &MemoryCache[V]{
		items: make(map[string]item[V]),
		quit:  make(chan struct{}),
	}
	go mc.startJanitor(janitorInterval)
	return mc
}

// Stop terminates the janitor goroutine.
func (mc *MemoryCache[V]) Stop() {
	mc.once.Do(func() { close(mc.quit) })
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	now := time.Now().UnixNano()

	mc.mu.Lock()
	defer mc.mu.Unlock()

	itm, ok := mc.items[key]
	if !ok {
		return zero, ErrCacheMiss
	}
	if itm.expiration > 0 && now > itm.expiration {
		delete(mc.items, key)
		return zero, ErrCacheMiss
	}
	return itm.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	mc.mu.Lock()
	mc.items[key] = item[V]{value: value, expiration: exp}
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included until the next sweep.
func (mc *MemoryCache[V]) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.items)
}

func (mc *MemoryCache[V]) evictExpired() {
	now := time.Now().UnixNano()
	mc.mu.Lock()
	for k, itm := range mc.items {
		if itm.expiration > 0 && now > itm.expiration {
			delete(mc.items, k)
		}
	}
	mc.mu.Unlock()
}

func (mc *MemoryCache[V]) startJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			mc.evictExpired()
		case <-mc.quit:
			return
		}
	}
}
