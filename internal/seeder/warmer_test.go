package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmer_Warm(t *testing.T) {
	list := cache.NewMemoryCache[[]model.Country](time.Minute)
	items := cache.NewMemoryCache[model.Country](time.Minute)
	t.Cleanup(list.Stop)
	t.Cleanup(items.Stop)

	countries := []model.Country{
		{CCA3: "FRA", Name: model.CountryName{Common: "France"}},
		{CCA3: "CAN", Name: model.CountryName{Common: "Canada"}},
	}

	n, err := NewWarmer(list, items, time.Hour, nil).Warm(context.Background(), countries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := list.Get(context.Background(), cache.CountriesKey)
	require.NoError(t, err)
	assert.Equal(t, countries, all)

	fra, err := items.Get(context.Background(), cache.CountryKey("fra"))
	require.NoError(t, err)
	assert.Equal(t, "France", fra.Name.Common)
	assert.Equal(t, 3, list.Len()+items.Len())
}

func TestWarmer_CanceledContext(t *testing.T) {
	list := cache.NewMemoryCache[[]model.Country](time.Minute)
	items := cache.NewMemoryCache[model.Country](time.Minute)
	t.Cleanup(list.Stop)
	t.Cleanup(items.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := NewWarmer(list, items, time.Hour, nil).Warm(ctx, []model.Country{{CCA3: "FRA"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}
