package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

const defaultIPAPIURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

const defaultFixTimeout = 10 * time.Second

// IPLocator resolves the device position from its public IP via ip-api.com.
// It is the stand-in Locator for environments without a platform geolocation
// bridge. A network lookup has no notion of accuracy or cached fixes, so
// HighAccuracy and MaximumAge are accepted but ignored.
type IPLocator struct {
	httpClient *http.Client
	// BaseURL is exported for tests to point at an httptest server.
	BaseURL string
}

// NewIPLocator creates a locator with sensible defaults.
func NewIPLocator() *IPLocator {
	return &IPLocator{
		httpClient: &http.Client{},
		BaseURL:    defaultIPAPIURL,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition implements Locator.
func (l *IPLocator) CurrentPosition(ctx context.Context, req FixRequest) (model.Coordinate, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultFixTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return model.Coordinate{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return model.Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("%w: status %d", ErrPositionUnavailable, resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	if result.Status != "success" {
		return model.Coordinate{}, fmt.Errorf("%w: %s", ErrPositionUnavailable, result.Message)
	}

	coord := model.Coordinate{Latitude: result.Lat, Longitude: result.Lon}
	if err := coord.Validate(); err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
	log.Debug().Str("coord", coord.String()).Msg("[geo] fix from ip-api")
	return coord, nil
}
