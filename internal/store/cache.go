package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// Storage keys mirror the ones the web app kept in localStorage, so a
// migrated device keeps its permission state.
const (
	locationKey   = "userLocation"
	permissionKey = "locationPermissionGranted"
)

// Default staleness thresholds. StaleAfter drives the "consider refreshing"
// hint; SilentRefreshInterval gates background refresh attempts.
const (
	StaleAfter            = 24 * time.Hour
	SilentRefreshInterval = 5 * time.Minute
)

// locationBlob is the persisted shape of the location half of a CacheEntry.
type locationBlob struct {
	model.ResolvedLocation
	LastSilentRefreshAt time.Time `json:"last_silent_refresh,omitzero"`
}

// Cache reads and writes the whole persisted entry. It performs no network
// or device access; the acquisition manager is its sole writer.
type Cache struct {
	store Store
	now   func() time.Time
}

// NewCache wraps a Store. The clock defaults to time.Now.
func NewCache(s Store) *Cache {
	return &Cache{store: s, now: time.Now}
}

// NewCacheWithClock is NewCache with an injected clock, for tests.
func NewCacheWithClock(s Store, now func() time.Time) *Cache {
	return &Cache{store: s, now: now}
}

// Load reads the persisted entry. It fails soft: any missing key or
// deserialization error yields (zero, false), never an error. A readable
// permission flag with a corrupt location blob still yields the permission
// state, so a device that granted access once is not re-prompted.
func (c *Cache) Load(ctx context.Context) (model.CacheEntry, bool) {
	var entry model.CacheEntry

	if raw, err := c.store.Get(ctx, permissionKey); err == nil {
		_ = entry.Permission.UnmarshalText(raw)
	}

	raw, err := c.store.Get(ctx, locationKey)
	if err != nil {
		return entry, entry.Permission != model.PermissionUnknown
	}
	var blob locationBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		log.Warn().Err(err).Msg("[store] discarding corrupt location blob")
		return entry, entry.Permission != model.PermissionUnknown
	}
	entry.Location = blob.ResolvedLocation
	entry.LastSilentRefreshAt = blob.LastSilentRefreshAt
	return entry, true
}

// Save overwrites the persisted entry as a whole.
func (c *Cache) Save(ctx context.Context, entry model.CacheEntry) error {
	perm, _ := entry.Permission.MarshalText()
	if err := c.store.Set(ctx, permissionKey, perm); err != nil {
		return err
	}
	blob := locationBlob{
		ResolvedLocation:    entry.Location,
		LastSilentRefreshAt: entry.LastSilentRefreshAt,
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, locationKey, raw)
}

// Clear removes the persisted entry. Nothing in the refresh lifecycle calls
// this; it exists so a host shell can honor an OS-level permission
// revocation deliberately.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, locationKey); err != nil {
		return err
	}
	return c.store.Delete(ctx, permissionKey)
}

// IsStale reports whether the entry's fix is older than maxAge. An entry
// without a fix is always stale. An entry aged exactly maxAge is not yet
// stale (strict comparison).
func (c *Cache) IsStale(entry model.CacheEntry, maxAge time.Duration) bool {
	if !entry.HasLocation() {
		return true
	}
	return c.now().Sub(entry.Location.AcquiredAt) > maxAge
}

// EligibleForSilentRefresh reports whether enough time has passed since the
// last successful silent refresh.
func (c *Cache) EligibleForSilentRefresh(entry model.CacheEntry, minInterval time.Duration) bool {
	return c.now().Sub(entry.LastSilentRefreshAt) >= minInterval
}
