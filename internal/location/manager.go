// Package location orchestrates the geolocation lifecycle: when to prompt
// the user for a fix, when to refresh silently, and how outcomes reach the
// cache and the event bus. The Manager owns the cache and permission state
// explicitly and is the sole writer of both.
package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/events"
	"github.com/muslim-vegukin/miniapp/internal/geo"
	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/store"
)

var (
	// ErrNoLocation means permission was denied and no fallback location is
	// configured; the caller decides how to proceed without one.
	ErrNoLocation = errors.New("location: no location available")
	// ErrRefreshInFlight rejects a manual refresh while another manual
	// refresh is still running.
	ErrRefreshInFlight = errors.New("location: refresh already in progress")
)

// User-facing messages. The first-run denial is blocking and tells the user
// how to grant access; manual-refresh failure is a dismissible nudge.
const (
	msgPermissionDenied = "Lokatsiyani olish imkoni bo'lmadi. Iltimos, Telegram sozlamalarida ruxsat bering."
	msgRefreshFailed    = "Lokatsiyani yangilab bo'lmadi. Telegram'ning lokatsiya ruxsatini tekshiring."
)

// Fix parameters per operation, matching the behavior users saw in the web
// app: the first fix is patient and precise, the silent one is quick and
// happy with a device-cached position, the manual one sits in between.
var (
	initialFixRequest = geo.FixRequest{HighAccuracy: true, Timeout: 10 * time.Second, MaximumAge: 0}
	silentFixRequest  = geo.FixRequest{HighAccuracy: false, Timeout: 5 * time.Second, MaximumAge: 10 * time.Minute}
	manualFixRequest  = geo.FixRequest{HighAccuracy: false, Timeout: 15 * time.Second, MaximumAge: -1}
)

// PlaceResolver names a coordinate; failures substitute the sentinel, so it
// returns no error.
type PlaceResolver interface {
	ResolvePlaceName(ctx context.Context, coord model.Coordinate) string
}

// Shell is the host application chrome: the Telegram WebApp in production,
// a terminal shell in the CLI build.
type Shell interface {
	// Alert shows a blocking message the user must dismiss.
	Alert(message string)
	// Confirm asks a one-shot yes/no question.
	Confirm(message string) bool
}

// Config tunes the manager's policy knobs.
type Config struct {
	// Fallback, when non-nil, is returned (and persisted) after a first-run
	// permission denial. When nil, Initialize returns ErrNoLocation instead.
	// Exactly one of the two policies is active per deployment.
	Fallback *model.ResolvedLocation
	// SilentInterval is the minimum gap between successful silent refreshes.
	SilentInterval time.Duration
	// StaleAfter is the age past which IsStale suggests refreshing.
	StaleAfter time.Duration
}

// Manager is the location acquisition state machine.
type Manager struct {
	cache    *store.Cache
	locator  geo.Locator
	resolver PlaceResolver
	bus      *events.Bus
	shell    Shell
	cfg      Config
	now      func() time.Time

	mu             sync.Mutex
	entry          model.CacheEntry
	loaded         bool
	manualInFlight bool
	silentInFlight bool
}

// NewManager wires the state machine. All collaborators are required except
// the bus and shell, which may be nil in headless tests.
func NewManager(cache *store.Cache, locator geo.Locator, resolver PlaceResolver, bus *events.Bus, shell Shell, cfg Config) *Manager {
	if cfg.SilentInterval <= 0 {
		cfg.SilentInterval = store.SilentRefreshInterval
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = store.StaleAfter
	}
	return &Manager{
		cache:    cache,
		locator:  locator,
		resolver: resolver,
		bus:      bus,
		shell:    shell,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetClock injects a clock for tests.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Initialize is called on every page load.
//
// With a cached location it returns that location immediately and kicks off
// a silent refresh in the background; the caller never waits for the
// refresh. On the first-ever run it requests a device fix, prompting the
// user. After a persisted denial with no cached location it does not prompt
// again (only ManualRefresh re-prompts): it yields the configured fallback
// or ErrNoLocation.
func (m *Manager) Initialize(ctx context.Context) (model.ResolvedLocation, error) {
	entry := m.loadEntry(ctx)

	if entry.HasLocation() {
		go func() {
			bg, cancel := context.WithTimeout(context.Background(), silentFixRequest.Timeout+time.Second)
			defer cancel()
			m.SilentRefresh(bg)
		}()
		return entry.Location, nil
	}

	if entry.Permission == model.PermissionDenied {
		return m.denied(ctx, false)
	}
	return m.requestInitialFix(ctx)
}

// SilentRefresh attempts a background location update. It never prompts and
// never alerts: ineligibility is a silent no-op and failure is only logged.
// Eligibility: permission granted, no manual refresh in flight, and at
// least the configured interval since the last successful silent refresh.
func (m *Manager) SilentRefresh(ctx context.Context) {
	m.mu.Lock()
	entry := m.entry
	switch {
	case m.manualInFlight || m.silentInFlight:
		m.mu.Unlock()
		log.Debug().Msg("[location] silent refresh dropped: refresh in flight")
		return
	case entry.Permission != model.PermissionGranted:
		m.mu.Unlock()
		log.Debug().Msg("[location] silent refresh skipped: permission not granted")
		return
	case !m.cache.EligibleForSilentRefresh(entry, m.cfg.SilentInterval):
		m.mu.Unlock()
		log.Debug().Msg("[location] silent refresh skipped: too soon")
		return
	}
	m.silentInFlight = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.silentInFlight = false
		m.mu.Unlock()
	}()

	coord, err := m.locator.CurrentPosition(ctx, silentFixRequest)
	if err != nil {
		// Cached data stays authoritative; a failed silent refresh must not
		// surface anywhere and never revokes the permission flag.
		log.Warn().Err(err).Msg("[location] silent refresh failed, keeping cached location")
		return
	}

	loc := m.resolve(ctx, coord)
	m.commit(ctx, func(e *model.CacheEntry) {
		e.Location = loc
		e.Permission = model.PermissionGranted
		e.LastSilentRefreshAt = m.now()
	})
	log.Info().Str("city", loc.PlaceName).Msg("[location] silent refresh succeeded")
}

// ManualRefresh is the user-initiated update. A second overlapping call is
// rejected with ErrRefreshInFlight rather than queued, matching the
// double-tap guard the refresh button had. Without a granted permission it
// behaves like a first run and may prompt. On failure it shows a
// dismissible alert and returns the previous cached location unchanged.
func (m *Manager) ManualRefresh(ctx context.Context) (model.ResolvedLocation, error) {
	m.loadEntry(ctx)

	m.mu.Lock()
	if m.manualInFlight {
		m.mu.Unlock()
		return model.ResolvedLocation{}, ErrRefreshInFlight
	}
	m.manualInFlight = true
	entry := m.entry
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.manualInFlight = false
		m.mu.Unlock()
	}()

	if entry.Permission != model.PermissionGranted {
		return m.requestInitialFix(ctx)
	}

	coord, err := m.locator.CurrentPosition(ctx, manualFixRequest)
	if err != nil {
		log.Warn().Err(err).Msg("[location] manual refresh failed")
		if entry.HasLocation() {
			m.alert(msgRefreshFailed)
			return entry.Location, nil
		}
		// Granted but nothing cached and no fix: fall back to the first-run
		// path as a last resort.
		return m.requestInitialFix(ctx)
	}

	loc := m.resolve(ctx, coord)
	m.commit(ctx, func(e *model.CacheEntry) {
		e.Location = loc
		e.Permission = model.PermissionGranted
	})
	return loc, nil
}

// Current returns the cached location, if any, without touching the device.
func (m *Manager) Current(ctx context.Context) (model.ResolvedLocation, bool) {
	entry := m.loadEntry(ctx)
	return entry.Location, entry.HasLocation()
}

// IsStale reports whether the cached location is older than the configured
// threshold. Staleness is a UX hint, not a correctness condition.
func (m *Manager) IsStale(ctx context.Context) bool {
	return m.cache.IsStale(m.loadEntry(ctx), m.cfg.StaleAfter)
}

// Forget clears the persisted entry. Not part of the refresh lifecycle; for
// hosts that detect an OS-level permission revocation.
func (m *Manager) Forget(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = model.CacheEntry{}
	m.loaded = true
	return m.cache.Clear(ctx)
}

// requestInitialFix runs the first-ever (or re-prompted) device request.
func (m *Manager) requestInitialFix(ctx context.Context) (model.ResolvedLocation, error) {
	coord, err := m.locator.CurrentPosition(ctx, initialFixRequest)
	if err != nil {
		log.Warn().Err(err).Msg("[location] initial fix failed")
		m.commit(ctx, func(e *model.CacheEntry) {
			if e.Permission == model.PermissionUnknown {
				e.Permission = model.PermissionDenied
			}
		})
		return m.denied(ctx, true)
	}

	loc := m.resolve(ctx, coord)
	m.commit(ctx, func(e *model.CacheEntry) {
		e.Location = loc
		e.Permission = model.PermissionGranted
	})
	log.Info().Str("city", loc.PlaceName).Msg("[location] initial fix acquired")
	return loc, nil
}

// denied applies the configured no-permission policy.
func (m *Manager) denied(ctx context.Context, alert bool) (model.ResolvedLocation, error) {
	if alert {
		m.alert(msgPermissionDenied)
	}
	if m.cfg.Fallback == nil {
		return model.ResolvedLocation{}, ErrNoLocation
	}
	fallback := *m.cfg.Fallback
	fallback.AcquiredAt = m.now()
	m.commit(ctx, func(e *model.CacheEntry) {
		e.Location = fallback
	})
	log.Info().Str("city", fallback.PlaceName).Msg("[location] using fallback location")
	return fallback, nil
}

// resolve attaches a place name and timestamp to a fix.
func (m *Manager) resolve(ctx context.Context, coord model.Coordinate) model.ResolvedLocation {
	return model.ResolvedLocation{
		Coordinate: coord,
		PlaceName:  m.resolver.ResolvePlaceName(ctx, coord),
		AcquiredAt: m.now(),
	}
}

// commit applies a mutation to the whole entry, persists it, and publishes
// location-updated when the mutation produced a new location. All cache
// writes funnel through here, serialized by the manager's lock.
func (m *Manager) commit(ctx context.Context, mutate func(*model.CacheEntry)) {
	m.mu.Lock()
	before := m.entry.Location
	entry := m.entry
	mutate(&entry)
	m.entry = entry
	m.loaded = true
	m.mu.Unlock()

	if err := m.cache.Save(ctx, entry); err != nil {
		log.Error().Err(err).Msg("[location] failed to persist cache entry")
	}
	if m.bus != nil && entry.HasLocation() && entry.Location != before {
		m.bus.Publish(events.LocationUpdated, entry.Location)
	}
}

// loadEntry returns the in-memory entry, reading the cache once lazily.
func (m *Manager) loadEntry(ctx context.Context) model.CacheEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		entry, _ := m.cache.Load(ctx)
		m.entry = entry
		m.loaded = true
	}
	return m.entry
}

func (m *Manager) alert(message string) {
	if m.shell != nil {
		m.shell.Alert(message)
	}
}
