package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

const defaultPlacesURL = "https://muslim-vegukin-api.onrender.com"

// The places backend runs on a free tier that cold-starts; 30 seconds gives
// it time to wake up.
const placesTimeout = 30 * time.Second

// PlaceKind selects which point-of-interest collection to search.
type PlaceKind string

const (
	Mosques     PlaceKind = "mosques"
	Restaurants PlaceKind = "restaurants"
	Shops       PlaceKind = "shops"
)

const (
	defaultPlaceLimit = 5
	maxPlaceLimit     = 10
)

// PlacesClient searches the Vegukin POI database: mosques, halal restaurants
// and shops, ranked by distance.
type PlacesClient struct {
	httpClient *http.Client
	// BaseURL is exported for tests to point at an httptest server.
	BaseURL string
}

// NewPlacesClient creates a client with the cold-start-tolerant timeout.
func NewPlacesClient(baseURL string) *PlacesClient {
	if baseURL == "" {
		baseURL = defaultPlacesURL
	}
	return &PlacesClient{
		httpClient: &http.Client{Timeout: placesTimeout},
		BaseURL:    baseURL,
	}
}

type placesResponse struct {
	Success     bool          `json:"success"`
	Count       int           `json:"count"`
	Error       string        `json:"error"`
	Mosques     []model.Place `json:"mosques"`
	Restaurants []model.Place `json:"restaurants"`
	Shops       []model.Place `json:"shops"`
}

func (r placesResponse) places(kind PlaceKind) []model.Place {
	switch kind {
	case Mosques:
		return r.Mosques
	case Restaurants:
		return r.Restaurants
	default:
		return r.Shops
	}
}

// Nearby returns up to limit places of the given kind closest to the
// coordinate.
func (c *PlacesClient) Nearby(ctx context.Context, kind PlaceKind, coord model.Coordinate, limit int) ([]model.Place, error) {
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreconditionViolated, err)
	}
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	return c.search(ctx, kind, fmt.Sprintf("/api/%s/nearby", kind), params)
}

// ByAddress geocodes a free-text address server-side and returns places
// near it.
func (c *PlacesClient) ByAddress(ctx context.Context, kind PlaceKind, address string, limit int) ([]model.Place, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrPreconditionViolated)
	}
	params := url.Values{}
	params.Set("address", address)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	return c.search(ctx, kind, fmt.Sprintf("/api/%s/by-address", kind), params)
}

// Health pings the backend, mostly to warm it up before a real query.
func (c *PlacesClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return fmt.Errorf("%w: %w: %v", ErrProviderUnavailable, ErrProviderTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *PlacesClient) search(ctx context.Context, kind PlaceKind, path string, params url.Values) ([]model.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w: %w: %v", ErrProviderUnavailable, ErrProviderTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	var result placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, result.Error)
	}
	return result.places(kind), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPlaceLimit
	}
	if limit > maxPlaceLimit {
		return maxPlaceLimit
	}
	return limit
}
