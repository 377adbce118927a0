package cache

import (
	"context"
	"testing"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache[V any](t *testing.T) (*RedisCache[V], *miniredis.Miniredis) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	client := NewRedisClient(config.RedisConfig{Addr: s.Addr()})
	t.Cleanup(func() {
		client.Close()
		s.Close()
	})
	return NewRedisCache[V](client, 100*time.Millisecond), s
}

func TestRedisCache_BasicAndExpiry(t *testing.T) {
	rc, s := setupRedisCache[string](t)
	ctx := context.Background()

	assert.NoError(t, rc.Set(ctx, "key", "value", 0))
	v, err := rc.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.True(t, s.Exists("exploring:key"))

	_, err = rc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, rc.Set(ctx, "temp", "x", 50*time.Millisecond))
	s.FastForward(100 * time.Millisecond)
	v, err = rc.Get(ctx, "temp")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Empty(t, v)

	assert.NoError(t, rc.Delete(ctx, "key"))
	_, err = rc.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_CountryRoundTrip(t *testing.T) {
	rc, _ := setupRedisCache[[]model.Country](t)
	ctx := context.Background()

	pop := int64(38000000)
	countries := []model.Country{
		{CCA3: "CAN", Name: model.CountryName{Common: "Canada", Official: "Canada"}, Population: &pop},
	}
	require.NoError(t, rc.Set(ctx, CountriesKey, countries, time.Hour))

	got, err := rc.Get(ctx, CountriesKey)
	require.NoError(t, err)
	assert.Equal(t, countries, got)
}

func TestRedisCache_DecodeError(t *testing.T) {
	rc, s := setupRedisCache[[]model.Country](t)
	require.NoError(t, s.Set("exploring:"+CountriesKey, "not json"))

	_, err := rc.Get(context.Background(), CountriesKey)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_ServerDown(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	client := NewRedisClient(config.RedisConfig{Addr: addr})
	defer client.Close()
	rc := NewRedisCache[string](client, 100*time.Millisecond)

	_, err = rc.Get(context.Background(), "key")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
