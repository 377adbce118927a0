package repository

import (
	"context"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/jmoiron/sqlx"
)

// CacheRepository defines operations on the request_cache table
type CacheRepository interface {
	Get(ctx context.Context, key string) (*model.CacheEntry, error)
	Put(ctx context.Context, entry model.CacheEntry) error
	Delete(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Container holds all repositories
type Container struct {
	Cache CacheRepository
}

// NewRepositories creates repository implementations based on DB type
func NewRepositories(db *sqlx.DB, dbType config.DBType) *Container {
	if dbType == config.DBTypePostgreSQL {
		return &Container{
			Cache: &pgCacheRepository{db: db},
		}
	}

	// Default to SQLite
	return &Container{
		Cache: &sqliteCacheRepository{db: db},
	}
}
