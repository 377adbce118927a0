package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NoraMoser/exploring/internal/model"
	"github.com/jmoiron/sqlx"
)

type sqliteCacheRepository struct {
	db *sqlx.DB
}

func (r *sqliteCacheRepository) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	q := `SELECT cache_key, payload, expires_at, updated_at FROM request_cache WHERE cache_key = ?`
	if err := r.db.GetContext(ctx, &entry, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *sqliteCacheRepository) Put(ctx context.Context, entry model.CacheEntry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT OR REPLACE INTO request_cache (cache_key, payload, expires_at, updated_at)
		VALUES (:cache_key, :payload, :expires_at, :updated_at)`,
		entry)
	return err
}

func (r *sqliteCacheRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM request_cache WHERE cache_key = ?`, key)
	return err
}

func (r *sqliteCacheRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM request_cache WHERE expires_at > 0 AND expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sqliteCacheRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM request_cache`); err != nil {
		return 0, err
	}
	return count, nil
}
