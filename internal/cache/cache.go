package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/repository"
	"github.com/redis/go-redis/v9"
)

// CountriesKey is the cache key of the full country list.
const CountriesKey = "countries:all"

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the request cache in front of the REST Countries API.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key, with TTL. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
}

// CountryKey returns the cache key of a single country record.
func CountryKey(code string) string {
	return "country:" + strings.ToUpper(code)
}

// Backends carries the shared handles the non-memory backends write through.
type Backends struct {
	Redis          *redis.Client
	RedisOpTimeout time.Duration
	Repository     repository.CacheRepository
}

// New builds a cache for the configured backend.
func New[V any](backend config.CacheBackend, b Backends) (Cache[V], error) {
	switch backend {
	case config.CacheBackendMemory:
		return NewMemoryCache[V](time.Minute), nil
	case config.CacheBackendRedis:
		if b.Redis == nil {
			return nil, errors.New("redis cache backend requires a redis client")
		}
		return NewRedisCache[V](b.Redis, b.RedisOpTimeout), nil
	case config.CacheBackendDatabase:
		if b.Repository == nil {
			return nil, errors.New("database cache backend requires a cache repository")
		}
		return NewDatabaseCache[V](b.Repository), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
