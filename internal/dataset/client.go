// Package dataset fetches the two static JSON endpoints feeding the atlas
// and holds their results in memory for the session: an append-only month
// cache for the gridded climate files and a load-once store for the city
// collection.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/climate-atlas/internal/domain"
)

// Client fetches climate and city JSON from the configured data host.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a data client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchMonth retrieves and validates one monthly climate file.
func (c *Client) FetchMonth(ctx context.Context, key domain.MonthKey) (*domain.GridDataset, error) {
	url := fmt.Sprintf("%s/climate_%s.json", c.baseURL, key)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch month %s: %w", key, err)
	}

	var ds domain.GridDataset
	if err := json.Unmarshal(domain.SanitizeNaN(body), &ds); err != nil {
		return nil, fmt.Errorf("decode month %s: %w", key, err)
	}
	if ds.Month == "" {
		ds.Month = key
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate month %s: %w", key, err)
	}
	return &ds, nil
}

// FetchCities retrieves the city collection. Records failing identity
// validation are logged and skipped; a single bad record never aborts the
// rest of the dataset.
func (c *Client) FetchCities(ctx context.Context) ([]domain.CityRecord, error) {
	url := c.baseURL + "/cities.json"

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}

	var raw []domain.CityRecord
	if err := json.Unmarshal(domain.SanitizeNaN(body), &raw); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}

	cities := make([]domain.CityRecord, 0, len(raw))
	for i := range raw {
		if err := raw[i].Validate(); err != nil {
			c.logger.Warn("skipping invalid city record", "index", i, "error", err)
			continue
		}
		cities = append(cities, raw[i])
	}
	return cities, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
