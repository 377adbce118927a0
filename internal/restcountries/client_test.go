package restcountries

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCountries = `[
  {"name":{"common":"France","official":"French Republic"},"cca2":"FR","cca3":"FRA","capital":["Paris"],"region":"Europe","population":67000000,"latlng":[46,2]},
  {"name":{"common":"Canada","official":"Canada"},"cca2":"CA","cca3":"CAN","capital":["Ottawa"],"region":"Americas","population":38000000,"area":9984670}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.APIConfig{BaseURL: server.URL, Timeout: time.Second})
}

func TestFetchAll_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("fields"), "cca3")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, twoCountries)
	})

	countries, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, countries, 2)
	// upstream order is preserved
	assert.Equal(t, "France", countries[0].Name.Common)
	assert.Equal(t, "CAN", countries[1].CCA3)
	require.NotNil(t, countries[1].Area)
	assert.Equal(t, 9984670.0, *countries[1].Area)
	assert.Nil(t, countries[0].Area)
	assert.Equal(t, []float64{46, 2}, countries[0].LatLng)
}

func TestFetchAll_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchAll(context.Background())

	require.Error(t, err)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	assert.Contains(t, err.Error(), "received non-2xx status code: 500")
}

func TestFetchAll_NotFoundIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchAll(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFetchAll_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `[{"name": "France"`) // Malformed JSON
	})

	_, err := client.FetchAll(context.Background())

	require.Error(t, err)
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestFetchAll_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: time.Second})
	server.Close()

	_, err := client.FetchAll(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
}

func TestFetchAll_ContextTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond) // Simulate a slow response
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchAll(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchByCode(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		status       int
		body         string
		expectedCode string
		expectedErr  error
	}{
		{
			name:         "single match",
			code:         "FRA",
			status:       http.StatusOK,
			body:         `[{"name":{"common":"France"},"cca3":"FRA"}]`,
			expectedCode: "FRA",
		},
		{
			name:         "multiple results prefer exact cca3",
			code:         "can",
			status:       http.StatusOK,
			body:         twoCountries,
			expectedCode: "CAN",
		},
		{
			name:         "multiple results without exact match use first",
			code:         "FR",
			status:       http.StatusOK,
			body:         twoCountries,
			expectedCode: "FRA",
		},
		{
			name:        "empty array",
			code:        "XXX",
			status:      http.StatusOK,
			body:        `[]`,
			expectedErr: ErrNotFound,
		},
		{
			name:        "upstream 404",
			code:        "ZZZ",
			status:      http.StatusNotFound,
			body:        `{"status":404,"message":"Not Found"}`,
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/alpha/"+tt.code, r.URL.Path)
				w.WriteHeader(tt.status)
				fmt.Fprintln(w, tt.body)
			})

			country, err := client.FetchByCode(context.Background(), tt.code)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, country)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, country.CCA3)
		})
	}
}

func TestFetchByCode_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchByCode(context.Background(), "FRA")

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(config.APIConfig{})
	assert.Equal(t, defaultBaseURL, client.BaseURL)
	assert.Equal(t, DefaultListFields, client.ListFields)
	assert.LessOrEqual(t, len(DefaultListFields), 10)
}
