package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/database"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSessions int

func (f fixedSessions) SessionCount() int { return int(f) }

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	cfg := config.DBConfig{Type: config.DBTypeMemory, Name: "stats_" + uuid.NewString()}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))
	return db, cfg
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	for i, exp := range []int64{0, now.Add(time.Hour).UnixNano(), now.Add(-time.Hour).UnixNano()} {
		_, err := db.ExecContext(ctx,
			"INSERT INTO request_cache (cache_key, payload, expires_at, updated_at) VALUES (?, ?, ?, ?)",
			fmt.Sprintf("country:K%d", i), []byte(`{}`), exp, now.UnixNano())
		require.NoError(t, err)
	}

	collector := NewCollector(db, cfg, config.CacheBackendDatabase, fixedSessions(3))

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	require.NotNil(t, stats.Database)
	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(3), stats.Database.TotalRecords)
	assert.Equal(t, int64(1), stats.Database.ExpiredEntries)
	require.Len(t, stats.Database.TableStats, 1)
	assert.Equal(t, "request_cache", stats.Database.TableStats[0].Name)
	assert.Equal(t, "database", stats.Cache.Backend)
	assert.Equal(t, 3, stats.Favorites.ActiveSessions)

	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)

	stats2, err := collector.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Memory.Alloc, stats2.Memory.Alloc)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := setupTestDB(t)

	collector := NewCollector(db, cfg, config.CacheBackendDatabase, nil)

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Database.TotalRecords)
	assert.Equal(t, 0, stats.Favorites.ActiveSessions)
}

func TestCollector_WithoutDatabase(t *testing.T) {
	collector := NewCollector(nil, config.DBConfig{}, config.CacheBackendRedis, fixedSessions(1))

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Nil(t, stats.Database)
	assert.Equal(t, "redis", stats.Cache.Backend)
	assert.Equal(t, 1, stats.Favorites.ActiveSessions)
}
