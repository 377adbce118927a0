package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/favorites"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/NoraMoser/exploring/internal/restcountries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCountryClient implements CountryClient
type MockCountryClient struct {
	mock.Mock
}

func (m *MockCountryClient) FetchAll(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockCountryClient) FetchByCode(ctx context.Context, code string) (*model.Country, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Country), args.Error(1)
}

// brokenCache fails every operation
type brokenCache[V any] struct{}

func (brokenCache[V]) Get(context.Context, string) (V, error) {
	var zero V
	return zero, errors.New("connection refused")
}

func (brokenCache[V]) Set(context.Context, string, V, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache[V]) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

var (
	canada = model.Country{CCA3: "CAN", CCA2: "CA", Name: model.CountryName{Common: "Canada", Official: "Canada"}}
	france = model.Country{CCA3: "FRA", CCA2: "FR", Name: model.CountryName{Common: "France", Official: "French Republic"}}
)

func newTestService(t *testing.T, client CountryClient) *Service {
	list := cache.NewMemoryCache[[]model.Country](time.Minute)
	items := cache.NewMemoryCache[model.Country](time.Minute)
	t.Cleanup(list.Stop)
	t.Cleanup(items.Stop)
	return NewService(client, list, items, favorites.NewRegistry(time.Hour), Settings{TTL: time.Hour, PageSize: 12}, nil)
}

func strPtr(s string) *string { return &s }

func TestService_ListCountries(t *testing.T) {
	tests := []struct {
		name          string
		req           model.ListRequest
		setupMocks    func(*MockCountryClient)
		expectedError string
		expectedNames []string
		expectedPage  int
	}{
		{
			name: "filters and sorts",
			req:  model.ListRequest{Query: "fra", Page: 1},
			setupMocks: func(c *MockCountryClient) {
				c.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil)
			},
			expectedNames: []string{"France"},
			expectedPage:  1,
		},
		{
			name: "no query lists everything",
			req:  model.ListRequest{Page: 1},
			setupMocks: func(c *MockCountryClient) {
				c.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil)
			},
			expectedNames: []string{"Canada", "France"},
			expectedPage:  1,
		},
		{
			name: "changed query resets page",
			req:  model.ListRequest{Query: "a", PreviousQuery: strPtr(""), Page: 3, PageSize: 1},
			setupMocks: func(c *MockCountryClient) {
				c.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil)
			},
			expectedNames: []string{"Canada"},
			expectedPage:  1,
		},
		{
			name: "same query keeps page",
			req:  model.ListRequest{Query: "a", PreviousQuery: strPtr("a"), Page: 2, PageSize: 1},
			setupMocks: func(c *MockCountryClient) {
				c.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil)
			},
			expectedNames: []string{"France"},
			expectedPage:  2,
		},
		{
			name: "upstream failure",
			req:  model.ListRequest{Page: 1},
			setupMocks: func(c *MockCountryClient) {
				c.On("FetchAll", mock.Anything).Return(nil, &restcountries.NetworkError{Op: "fetch all", StatusCode: 500})
			},
			expectedError: "failed to fetch countries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockCountryClient)
			tt.setupMocks(client)
			svc := newTestService(t, client)

			view, err := svc.ListCountries(context.Background(), tt.req)

			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				var netErr *restcountries.NetworkError
				assert.ErrorAs(t, err, &netErr)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, r := range view.Rows {
				names = append(names, r.CommonName)
			}
			assert.Equal(t, tt.expectedNames, names)
			assert.Equal(t, tt.expectedPage, view.Page)
		})
	}
}

func TestService_ListCountries_UsesCache(t *testing.T) {
	client := new(MockCountryClient)
	client.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil).Once()
	svc := newTestService(t, client)

	for i := 0; i < 3; i++ {
		_, err := svc.ListCountries(context.Background(), model.ListRequest{Page: 1})
		require.NoError(t, err)
	}

	client.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestService_BrokenCacheFallsThrough(t *testing.T) {
	client := new(MockCountryClient)
	client.On("FetchAll", mock.Anything).Return([]model.Country{france, canada}, nil)
	client.On("FetchByCode", mock.Anything, "FRA").Return(&france, nil)

	svc := NewService(client, brokenCache[[]model.Country]{}, brokenCache[model.Country]{},
		favorites.NewRegistry(time.Hour), Settings{TTL: time.Hour}, nil)

	view, err := svc.ListCountries(context.Background(), model.ListRequest{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, 12, view.PageSize)

	detail, err := svc.GetCountry(context.Background(), "fra")
	require.NoError(t, err)
	assert.Equal(t, "France", detail.CommonName)
}

func TestService_GetCountry(t *testing.T) {
	t.Run("found and cached", func(t *testing.T) {
		client := new(MockCountryClient)
		client.On("FetchByCode", mock.Anything, "FRA").Return(&france, nil).Once()
		svc := newTestService(t, client)

		detail, err := svc.GetCountry(context.Background(), "fra")
		require.NoError(t, err)
		assert.Equal(t, "FRA", detail.Code)
		assert.Equal(t, "French Republic", detail.OfficialName)

		_, err = svc.GetCountry(context.Background(), "FRA")
		require.NoError(t, err)
		client.AssertNumberOfCalls(t, "FetchByCode", 1)
	})

	t.Run("not found", func(t *testing.T) {
		client := new(MockCountryClient)
		client.On("FetchByCode", mock.Anything, "XXX").Return(nil, restcountries.ErrNotFound)
		svc := newTestService(t, client)

		detail, err := svc.GetCountry(context.Background(), "XXX")
		assert.ErrorIs(t, err, restcountries.ErrNotFound)
		assert.Nil(t, detail)
	})
}

func TestService_Favorites(t *testing.T) {
	client := new(MockCountryClient)
	client.On("FetchByCode", mock.Anything, "FRA").Return(&france, nil)
	client.On("FetchByCode", mock.Anything, "CAN").Return(&canada, nil)
	client.On("FetchByCode", mock.Anything, "XXX").Return(nil, restcountries.ErrNotFound)
	svc := newTestService(t, client)
	ctx := context.Background()

	assert.Empty(t, svc.ListFavorites("s1"))
	assert.False(t, svc.RemoveFavorite("s1", "FRA"))

	fav, err := svc.AddFavorite(ctx, "s1", "fra")
	require.NoError(t, err)
	assert.Equal(t, model.Favorite{Code: "FRA", Name: "France"}, *fav)

	_, err = svc.AddFavorite(ctx, "s1", "CAN")
	require.NoError(t, err)
	_, err = svc.AddFavorite(ctx, "s1", "FRA")
	require.NoError(t, err)

	_, err = svc.AddFavorite(ctx, "s1", "XXX")
	assert.ErrorIs(t, err, restcountries.ErrNotFound)

	assert.Equal(t, []model.Favorite{{Code: "FRA", Name: "France"}, {Code: "CAN", Name: "Canada"}}, svc.ListFavorites("s1"))
	assert.True(t, svc.IsFavorite("s1", "CAN"))
	assert.False(t, svc.IsFavorite("s2", "CAN"))
	assert.Empty(t, svc.ListFavorites("s2"))

	assert.True(t, svc.RemoveFavorite("s1", "FRA"))
	assert.False(t, svc.RemoveFavorite("s1", "FRA"))
	assert.Equal(t, []model.Favorite{{Code: "CAN", Name: "Canada"}}, svc.ListFavorites("s1"))
	assert.Equal(t, 1, svc.SessionCount())
}
