// Package config holds environment-based settings. A .env file is honored
// when present; otherwise the process environment wins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/providers"
	"github.com/muslim-vegukin/miniapp/internal/store"
)

// Config is everything the app wiring needs.
type Config struct {
	// Prayer calculation parameters, passed through to the provider opaquely.
	Method int
	School int

	// Language for reverse-geocoded place names (accept-language).
	Language string

	// PlacesURL is the POI backend base URL.
	PlacesURL string

	// CacheDir roots the file store. Empty means the user cache dir.
	CacheDir string

	// RedisAddress switches the cache to the Redis backend when non-empty.
	RedisAddress  string
	RedisUsername string
	RedisPassword string

	// MQTTBrokerURL enables the display fan-out bridge when non-empty.
	MQTTBrokerURL string
	MQTTClientID  string

	// Fallback is the location used after a first-run permission denial.
	// Nil (the three variables unset) means no fallback: callers get
	// ErrNoLocation instead.
	Fallback *model.ResolvedLocation

	SilentInterval time.Duration
	StaleAfter     time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Method:         providers.DefaultMethod,
		School:         providers.DefaultSchool,
		Language:       getEnv("ACCEPT_LANGUAGE", "uz"),
		PlacesURL:      os.Getenv("PLACES_API_URL"),
		CacheDir:       os.Getenv("CACHE_DIR"),
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisUsername:  os.Getenv("REDIS_USERNAME"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MQTTBrokerURL:  os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:   getEnv("MQTT_CLIENT_ID", "vegukin-miniapp"),
		SilentInterval: store.SilentRefreshInterval,
		StaleAfter:     store.StaleAfter,
	}

	var err error
	if cfg.Method, err = intEnv("PRAYER_METHOD", cfg.Method); err != nil {
		return nil, err
	}
	if cfg.School, err = intEnv("PRAYER_SCHOOL", cfg.School); err != nil {
		return nil, err
	}
	if cfg.SilentInterval, err = durationEnv("SILENT_REFRESH_INTERVAL", cfg.SilentInterval); err != nil {
		return nil, err
	}
	if cfg.StaleAfter, err = durationEnv("LOCATION_STALE_AFTER", cfg.StaleAfter); err != nil {
		return nil, err
	}
	if cfg.Fallback, err = fallbackEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fallbackEnv assembles the denied-permission fallback location. All three
// variables must be set together; a partial set is a configuration error
// rather than a guess.
func fallbackEnv() (*model.ResolvedLocation, error) {
	latRaw, lonRaw, city := os.Getenv("FALLBACK_LAT"), os.Getenv("FALLBACK_LON"), os.Getenv("FALLBACK_CITY")
	if latRaw == "" && lonRaw == "" && city == "" {
		return nil, nil
	}
	if latRaw == "" || lonRaw == "" || city == "" {
		return nil, fmt.Errorf("FALLBACK_LAT, FALLBACK_LON and FALLBACK_CITY must be set together")
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_LAT %q: %w", latRaw, err)
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_LON %q: %w", lonRaw, err)
	}
	loc := &model.ResolvedLocation{
		Coordinate: model.Coordinate{Latitude: lat, Longitude: lon},
		PlaceName:  city,
	}
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fallback location: %w", err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
