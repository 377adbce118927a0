package service

import (
	"context"

	"github.com/NoraMoser/exploring/internal/model"
)

// AddFavorite resolves the country and adds it to the session's favorites.
// Adding a country twice leaves the list unchanged.
func (s *Service) AddFavorite(ctx context.Context, session, code string) (*model.Favorite, error) {
	country, err := s.country(ctx, code)
	if err != nil {
		return nil, err
	}

	fav := country.ToFavorite()
	s.registry.Store(session).Add(fav)
	return &fav, nil
}

// RemoveFavorite drops code from the session's favorites. Unknown codes are ignored.
func (s *Service) RemoveFavorite(session, code string) bool {
	store, ok := s.registry.Lookup(session)
	if !ok {
		return false
	}
	return store.Remove(code)
}

// ListFavorites returns the session's favorites in the order they were added
func (s *Service) ListFavorites(session string) []model.Favorite {
	store, ok := s.registry.Lookup(session)
	if !ok {
		return []model.Favorite{}
	}
	return store.List()
}

func (s *Service) IsFavorite(session, code string) bool {
	store, ok := s.registry.Lookup(session)
	return ok && store.Contains(code)
}
