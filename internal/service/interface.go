package service

import (
	"context"

	"github.com/NoraMoser/exploring/internal/model"
)

// CountryClient fetches country records from the upstream API
type CountryClient interface {
	FetchAll(ctx context.Context) ([]model.Country, error)
	FetchByCode(ctx context.Context, code string) (*model.Country, error)
}

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ListCountries(ctx context.Context, req model.ListRequest) (*model.ListView, error)
	GetCountry(ctx context.Context, code string) (*model.CountryDetail, error)
	AddFavorite(ctx context.Context, session, code string) (*model.Favorite, error)
	RemoveFavorite(session, code string) bool
	ListFavorites(session string) []model.Favorite
	IsFavorite(session, code string) bool
	SessionCount() int
}
