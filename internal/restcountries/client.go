package restcountries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/model"
)

const (
	defaultBaseURL = "https://restcountries.com/v3.1"
	clientTimeout  = 10 * time.Second
)

// DefaultListFields is the projection requested from /all. The upstream caps it at ten fields.
var DefaultListFields = []string{
	"name", "cca2", "cca3", "capital", "region", "subregion", "population", "area", "flags", "latlng",
}

// ErrNotFound is returned when the upstream has no record for a code.
var ErrNotFound = errors.New("country not found")

// NetworkError reports a failed fetch: a transport error, an unexpected status, or an undecodable body.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: received non-2xx status code: %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client interacts with the REST Countries API.
type Client struct {
	client     *http.Client
	BaseURL    string
	ListFields []string
}

// NewClient creates a new client for the REST Countries API.
func NewClient(cfg config.APIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = clientTimeout
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	fields := cfg.ListFields
	if len(fields) == 0 {
		fields = DefaultListFields
	}
	return &Client{
		client:     &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		ListFields: fields,
	}
}

// FetchAll fetches every country, in upstream order.
func (c *Client) FetchAll(ctx context.Context) ([]model.Country, error) {
	endpoint := c.BaseURL + "/all"
	if len(c.ListFields) > 0 {
		endpoint += "?fields=" + url.QueryEscape(strings.Join(c.ListFields, ","))
	}

	var countries []model.Country
	if err := c.get(ctx, "fetch all", endpoint, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// FetchByCode fetches one country by its alpha code.
// The upstream answers with an array; the element whose cca3 equals code wins,
// otherwise the first one is used.
func (c *Client) FetchByCode(ctx context.Context, code string) (*model.Country, error) {
	endpoint := fmt.Sprintf("%s/alpha/%s", c.BaseURL, url.PathEscape(code))

	var countries []model.Country
	if err := c.get(ctx, "fetch by code", endpoint, &countries); err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) && netErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
		}
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	for i := range countries {
		if strings.EqualFold(countries[i].CCA3, code) {
			return &countries[i], nil
		}
	}
	return &countries[0], nil
}

func (c *Client) get(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
