package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/model"
	"go.uber.org/zap"
)

// Warmer fills the request cache from parsed records so the first page load skips the upstream
type Warmer struct {
	list   cache.Cache[[]model.Country]
	items  cache.Cache[model.Country]
	ttl    time.Duration
	logger *zap.Logger
}

// NewWarmer creates a new warmer instance
func NewWarmer(list cache.Cache[[]model.Country], items cache.Cache[model.Country], ttl time.Duration, logger *zap.Logger) *Warmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warmer{list: list, items: items, ttl: ttl, logger: logger}
}

// Warm stores the full list and one entry per country. It returns the number of country entries written.
func (w *Warmer) Warm(ctx context.Context, countries []model.Country) (int, error) {
	if err := w.list.Set(ctx, cache.CountriesKey, countries, w.ttl); err != nil {
		return 0, fmt.Errorf("failed to cache country list: %w", err)
	}

	written := 0
	for _, c := range countries {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := w.items.Set(ctx, cache.CountryKey(c.CCA3), c, w.ttl); err != nil {
			return written, fmt.Errorf("failed to cache country %s: %w", c.CCA3, err)
		}
		written++
	}

	w.logger.Info("Warmed request cache", zap.Int("countries", written))
	return written, nil
}
