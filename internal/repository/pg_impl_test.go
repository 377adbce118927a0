package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPgMock(t *testing.T) (CacheRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := NewRepositories(sqlx.NewDb(db, "pgx"), config.DBTypePostgreSQL)
	return repos.Cache, mock
}

func TestPgCacheRepository_Get(t *testing.T) {
	repo, mock := setupPgMock(t)

	rows := sqlmock.NewRows([]string{"cache_key", "payload", "expires_at", "updated_at"}).
		AddRow("country:FRA", []byte(`{"cca3":"FRA"}`), int64(42), int64(7))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM request_cache WHERE cache_key = $1`)).
		WithArgs("country:FRA").
		WillReturnRows(rows)

	entry, err := repo.Get(context.Background(), "country:FRA")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "country:FRA", entry.Key)
	assert.Equal(t, int64(42), entry.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCacheRepository_GetMissing(t *testing.T) {
	repo, mock := setupPgMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM request_cache WHERE cache_key = $1`)).
		WithArgs("country:XXX").
		WillReturnRows(sqlmock.NewRows([]string{"cache_key", "payload", "expires_at", "updated_at"}))

	entry, err := repo.Get(context.Background(), "country:XXX")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCacheRepository_Put(t *testing.T) {
	repo, mock := setupPgMock(t)

	entry := model.CacheEntry{Key: "countries:all", Payload: []byte("[]"), ExpiresAt: 10, UpdatedAt: 5}
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (cache_key) DO UPDATE`)).
		WithArgs(entry.Key, entry.Payload, entry.ExpiresAt, entry.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCacheRepository_DeleteExpired(t *testing.T) {
	repo, mock := setupPgMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM request_cache WHERE expires_at > 0 AND expires_at < $1`)).
		WithArgs(int64(500)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpired(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgCacheRepository_CountError(t *testing.T) {
	repo, mock := setupPgMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM request_cache`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Count(context.Background())
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
