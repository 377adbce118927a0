package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NoraMoser/exploring/internal/model"
	"github.com/jmoiron/sqlx"
)

// --- PostgreSQL Implementation ---

type pgCacheRepository struct {
	db *sqlx.DB
}

func (r *pgCacheRepository) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	q := `SELECT cache_key, payload, expires_at, updated_at FROM request_cache WHERE cache_key = $1`
	if err := r.db.GetContext(ctx, &entry, q, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *pgCacheRepository) Put(ctx context.Context, entry model.CacheEntry) error {
	q := `INSERT INTO request_cache (cache_key, payload, expires_at, updated_at)
		  VALUES ($1, $2, $3, $4)
		  ON CONFLICT (cache_key) DO UPDATE
		  SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, entry.Key, entry.Payload, entry.ExpiresAt, entry.UpdatedAt)
	return err
}

func (r *pgCacheRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM request_cache WHERE cache_key = $1`, key)
	return err
}

func (r *pgCacheRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM request_cache WHERE expires_at > 0 AND expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *pgCacheRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM request_cache`); err != nil {
		return 0, err
	}
	return count, nil
}
