package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/repository"
)

// DatabaseCache stores JSON-encoded values in the request_cache table.
type DatabaseCache[V any] struct {
	repo repository.CacheRepository
	now  func() time.Time
}

// NewDatabaseCache wraps a cache repository.
func NewDatabaseCache[V any](repo repository.CacheRepository) *DatabaseCache[V] {
	return &DatabaseCache[V]{repo: repo, now: time.Now}
}

func (d *DatabaseCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	entry, err := d.repo.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if entry == nil {
		return zero, ErrCacheMiss
	}
	if entry.Expired(d.now().UnixNano()) {
		if err := d.repo.Delete(ctx, key); err != nil {
			return zero, fmt.Errorf("failed to drop expired cache entry: %w", err)
		}
		return zero, ErrCacheMiss
	}

	var val V
	if err := json.Unmarshal(entry.Payload, &val); err != nil {
		return zero, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return val, nil
}

func (d *DatabaseCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := d.now()
	entry := model.CacheEntry{
		Key:       key,
		Payload:   data,
		UpdatedAt: now.UnixNano(),
	}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl).UnixNano()
	}
	return d.repo.Put(ctx, entry)
}

func (d *DatabaseCache[V]) Delete(ctx context.Context, key string) error {
	return d.repo.Delete(ctx, key)
}
