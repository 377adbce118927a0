package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "exploring:"

// NewRedisClient configures a client from settings.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisCache stores JSON-encoded values in redis.
type RedisCache[V any] struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewRedisCache wraps a shared client. A zero opTimeout defaults to 50ms.
func NewRedisCache[V any](client *redis.Client, opTimeout time.Duration) *RedisCache[V] {
	if opTimeout == 0 {
		opTimeout = 50 * time.Millisecond
	}
	return &RedisCache[V]{
		client:    client,
		opTimeout: opTimeout,
	}
}

func (r *RedisCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrCacheMiss
	} else if err != nil {
		return zero, err
	}
	var val V
	if err := json.Unmarshal(data, &val); err != nil {
		return zero, err
	}
	return val, nil
}

func (r *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (r *RedisCache[V]) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Del(ctx, keyPrefix+key).Err()
}
