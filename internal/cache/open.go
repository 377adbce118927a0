package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/database"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Stores holds the two request caches the service reads through, plus the
// handles behind them.
type Stores struct {
	List  Cache[[]model.Country]
	Items Cache[model.Country]

	// DB is set only for the database backend
	DB   *sqlx.DB
	repo repository.CacheRepository

	closers []func() error
}

// Open connects the configured backend and builds both caches.
// For the database backend pending migrations from migrationsDir are applied first.
func Open(ctx context.Context, cfg *config.Config, migrationsDir string) (*Stores, error) {
	s := &Stores{}
	b := Backends{RedisOpTimeout: cfg.Redis.OpTimeout}

	switch cfg.Cache.Backend {
	case config.CacheBackendDatabase:
		db, err := database.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		if err := database.Migrate(db, cfg.DB, migrationsDir); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		s.DB = db
		s.repo = repository.NewRepositories(db, cfg.DB.Type).Cache
		b.Repository = s.repo
	case config.CacheBackendRedis:
		client := NewRedisClient(cfg.Redis)
		s.closers = append(s.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b.Redis = client
	}

	list, err := New[[]model.Country](cfg.Cache.Backend, b)
	if err != nil {
		s.Close()
		return nil, err
	}
	items, err := New[model.Country](cfg.Cache.Backend, b)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.List, s.Items = list, items

	for _, c := range []any{list, items} {
		if stopper, ok := c.(interface{ Stop() }); ok {
			s.closers = append(s.closers, func() error { stopper.Stop(); return nil })
		}
	}
	return s, nil
}

// NewMemoryStores builds in-process caches, e.g. for the command line client.
func NewMemoryStores() *Stores {
	list := NewMemoryCache[[]model.Country](time.Minute)
	items := NewMemoryCache[model.Country](time.Minute)
	return &Stores{
		List:  list,
		Items: items,
		closers: []func() error{
			func() error { list.Stop(); return nil },
			func() error { items.Stop(); return nil },
		},
	}
}

// PurgeExpired deletes expired rows of the database backend. Other backends expire on their own.
func (s *Stores) PurgeExpired(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.DeleteExpired(ctx, time.Now().UnixNano())
}

// Close releases every handle in reverse order of acquisition.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
