package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"movequote-cloud/internal/observability/metrics"
)

// Client is a minimal REST client for an external route/distance service.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient constructs a routing client.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("routing: empty base url")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type routeResponse struct {
	DistanceKm    json.Number `json:"distance_km"`
	DurationHours json.Number `json:"duration_hours"`
}

// Route resolves distance and car travel time between two postal codes.
// A missing duration in the response is tolerated and reported as zero.
func (c *Client) Route(ctx context.Context, originPostal, destinationPostal string) (decimal.Decimal, decimal.Decimal, error) {
	start := time.Now()
	distance, travel, err := c.route(ctx, originPostal, destinationPostal)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveRouteLookup(result, time.Since(start))
	return distance, travel, err
}

func (c *Client) route(ctx context.Context, originPostal, destinationPostal string) (decimal.Decimal, decimal.Decimal, error) {
	if c == nil || c.client == nil {
		return decimal.Zero, decimal.Zero, errors.New("routing: nil client")
	}
	if originPostal == "" || destinationPostal == "" {
		return decimal.Zero, decimal.Zero, errors.New("routing: empty postal code")
	}

	query := url.Values{}
	query.Set("origin", originPostal)
	query.Set("destination", destinationPostal)
	endpoint := c.baseURL + "/route?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, decimal.Zero, ErrRouteUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, decimal.Zero, fmt.Errorf("routing: unexpected status %d", resp.StatusCode)
	}

	var payload routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if payload.DistanceKm == "" {
		return decimal.Zero, decimal.Zero, ErrRouteUnavailable
	}
	distance, err := decimal.NewFromString(payload.DistanceKm.String())
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("routing: bad distance_km: %w", err)
	}

	travel := decimal.Zero
	if payload.DurationHours != "" {
		travel, err = decimal.NewFromString(payload.DurationHours.String())
		if err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("routing: bad duration_hours: %w", err)
		}
	}
	return distance, travel, nil
}
