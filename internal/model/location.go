package model

import (
	"fmt"
	"time"
)

// UnknownPlace is the sentinel place name used whenever reverse geocoding
// fails or returns no usable address field.
const UnknownPlace = "Noma'lum joy"

// Coordinate is a single device-reported geographic position.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Validate checks the coordinate is within the WGS84 range.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Longitude)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// ResolvedLocation is a device fix paired with a human-readable place name.
// PlaceName is never empty: resolution failures substitute UnknownPlace.
type ResolvedLocation struct {
	Coordinate
	PlaceName  string    `json:"city"`
	AcquiredAt time.Time `json:"ts"`
}

// PermissionState tracks the geolocation permission lifecycle. Once Granted
// it never reverts automatically: later fix failures are reported but do not
// revoke the flag.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
)

func (p PermissionState) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// MarshalText persists the state as its string form.
func (p PermissionState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a persisted state. Anything unrecognized maps to
// PermissionUnknown rather than failing: the on-device blob has no schema
// version, so parsing is defensive.
func (p *PermissionState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "granted":
		*p = PermissionGranted
	case "denied":
		*p = PermissionDenied
	default:
		*p = PermissionUnknown
	}
	return nil
}

// CacheEntry is the whole on-device persisted record. It is always read and
// written as a unit; there is no field-level partial update.
type CacheEntry struct {
	Location            ResolvedLocation `json:"location"`
	Permission          PermissionState  `json:"permission"`
	LastSilentRefreshAt time.Time        `json:"last_silent_refresh,omitzero"`
}

// HasLocation reports whether the entry carries a usable fix.
func (e CacheEntry) HasLocation() bool {
	return !e.Location.AcquiredAt.IsZero()
}
