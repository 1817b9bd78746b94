// Package geo abstracts the device geolocation collaborator. The acquisition
// manager only sees the Locator interface; the concrete source may be a
// platform bridge or, absent one, a network-based lookup.
package geo

import (
	"context"
	"errors"
	"time"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// Fix request errors, mirroring the positioning error codes hosts report.
var (
	ErrPermissionDenied    = errors.New("geo: permission denied")
	ErrPositionUnavailable = errors.New("geo: position unavailable")
	ErrTimeout             = errors.New("geo: fix timed out")
)

// FixRequest describes how hard the locator should try.
type FixRequest struct {
	// HighAccuracy asks for a fresh precise fix (GPS) instead of a coarse one.
	HighAccuracy bool
	// Timeout bounds the whole attempt. Zero means the locator's default.
	Timeout time.Duration
	// MaximumAge is how old a device-cached fix may be and still be accepted.
	// Zero demands a fresh fix; a negative value accepts any age.
	MaximumAge time.Duration
}

// Locator produces device fixes. Implementations must honor ctx and the
// request timeout; no call may hang indefinitely.
type Locator interface {
	CurrentPosition(ctx context.Context, req FixRequest) (model.Coordinate, error)
}
