package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

const geocodeTimeout = 10 * time.Second

// Geocoder resolves coordinates to a human-readable place name via the
// OpenStreetMap Nominatim API.
type Geocoder struct {
	httpClient *http.Client
	// BaseURL is exported for tests to point at an httptest server.
	BaseURL string
	// Language is the accept-language parameter sent with every request.
	Language string
}

// NewGeocoder creates a Geocoder. An empty language defaults to Uzbek,
// matching the app's audience.
func NewGeocoder(language string) *Geocoder {
	if language == "" {
		language = "uz"
	}
	return &Geocoder{
		httpClient: &http.Client{Timeout: geocodeTimeout},
		BaseURL:    defaultNominatimURL,
		Language:   language,
	}
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
	} `json:"address"`
}

// ResolvePlaceName returns the best place name for the coordinate:
// city, then town, then village, then county, first non-empty wins.
// Every failure mode returns model.UnknownPlace; no error ever escapes,
// because a missing name must not block the rest of the flow.
func (g *Geocoder) ResolvePlaceName(ctx context.Context, coord model.Coordinate) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("accept-language", g.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return model.UnknownPlace
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("[geocode] reverse lookup failed")
		return model.UnknownPlace
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("[geocode] reverse lookup failed")
		return model.UnknownPlace
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn().Err(err).Msg("[geocode] malformed response")
		return model.UnknownPlace
	}

	for _, name := range []string{
		result.Address.City,
		result.Address.Town,
		result.Address.Village,
		result.Address.County,
	} {
		if name != "" {
			return name
		}
	}
	return model.UnknownPlace
}
