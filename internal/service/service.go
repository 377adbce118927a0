package service

import (
	"time"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/favorites"
	"github.com/NoraMoser/exploring/internal/model"
	"go.uber.org/zap"
)

// Settings tunes caching and the list page size
type Settings struct {
	TTL      time.Duration
	PageSize int
}

// Service provides business logic for the API and the pages
type Service struct {
	client    CountryClient
	listCache cache.Cache[[]model.Country]
	itemCache cache.Cache[model.Country]
	registry  *favorites.Registry
	settings  Settings
	logger    *zap.Logger
}

// NewService creates a new service instance
func NewService(
	client CountryClient,
	listCache cache.Cache[[]model.Country],
	itemCache cache.Cache[model.Country],
	registry *favorites.Registry,
	settings Settings,
	logger *zap.Logger,
) *Service {
	if settings.PageSize <= 0 {
		settings.PageSize = catalog.DefaultPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:    client,
		listCache: listCache,
		itemCache: itemCache,
		registry:  registry,
		settings:  settings,
		logger:    logger,
	}
}

// SessionCount returns the number of live favorites sessions
func (s *Service) SessionCount() int {
	return s.registry.Len()
}
