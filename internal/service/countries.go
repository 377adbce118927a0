package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/model"
	"go.uber.org/zap"
)

// ListCountries returns one page of the sorted and filtered country list.
// A changed query sends the caller back to page 1.
func (s *Service) ListCountries(ctx context.Context, req model.ListRequest) (*model.ListView, error) {
	records, err := s.allCountries(ctx)
	if err != nil {
		return nil, err
	}

	size := req.PageSize
	if size <= 0 {
		size = s.settings.PageSize
	}
	q := catalog.Query{Text: req.Query, Page: req.Page, PageSize: size}
	if req.PreviousQuery != nil {
		q = q.ResetOnChange(*req.PreviousQuery)
	}

	view := catalog.Derive(records, q)
	return &view, nil
}

// GetCountry retrieves the detail view of a single country
func (s *Service) GetCountry(ctx context.Context, code string) (*model.CountryDetail, error) {
	country, err := s.country(ctx, code)
	if err != nil {
		return nil, err
	}
	detail := BuildDetail(*country)
	return &detail, nil
}

func (s *Service) allCountries(ctx context.Context) ([]model.Country, error) {
	records, err := s.listCache.Get(ctx, cache.CountriesKey)
	if err == nil {
		return records, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Failed to read country list from cache", zap.Error(err))
	}

	records, err = s.client.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	if err := s.listCache.Set(ctx, cache.CountriesKey, records, s.settings.TTL); err != nil {
		s.logger.Warn("Failed to cache country list", zap.Error(err))
	}
	return records, nil
}

func (s *Service) country(ctx context.Context, code string) (*model.Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := cache.CountryKey(code)

	record, err := s.itemCache.Get(ctx, key)
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Failed to read country from cache", zap.String("code", code), zap.Error(err))
	}

	country, err := s.client.FetchByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch country: %w", err)
	}

	if err := s.itemCache.Set(ctx, key, *country, s.settings.TTL); err != nil {
		s.logger.Warn("Failed to cache country", zap.String("code", code), zap.Error(err))
	}
	return country, nil
}
