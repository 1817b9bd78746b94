package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) (*Cache, *MemoryStore) {
	t.Helper()
	s := NewMemoryStore()
	return NewCacheWithClock(s, func() time.Time { return testNow }), s
}

func sampleEntry() model.CacheEntry {
	return model.CacheEntry{
		Location: model.ResolvedLocation{
			Coordinate: model.Coordinate{Latitude: 37.5665, Longitude: 126.978},
			PlaceName:  "Seoul",
			AcquiredAt: testNow.Add(-time.Hour),
		},
		Permission:          model.PermissionGranted,
		LastSilentRefreshAt: testNow.Add(-10 * time.Minute),
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	entry := sampleEntry()
	require.NoError(t, cache.Save(ctx, entry))

	got, ok := cache.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, entry.Location.Coordinate, got.Location.Coordinate)
	assert.Equal(t, entry.Location.PlaceName, got.Location.PlaceName)
	assert.True(t, entry.Location.AcquiredAt.Equal(got.Location.AcquiredAt))
	assert.Equal(t, entry.Permission, got.Permission)
	assert.True(t, entry.LastSilentRefreshAt.Equal(got.LastSilentRefreshAt))
}

func TestCacheLoadAbsent(t *testing.T) {
	cache, _ := newTestCache(t)

	entry, ok := cache.Load(context.Background())
	assert.False(t, ok)
	assert.False(t, entry.HasLocation())
	assert.Equal(t, model.PermissionUnknown, entry.Permission)
}

func TestCacheLoadCorruptBlobFailsSoft(t *testing.T) {
	cache, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "locationPermissionGranted", []byte("granted")))
	require.NoError(t, s.Set(ctx, "userLocation", []byte("{definitely not json")))

	// The permission survives a corrupt location blob so the device is not
	// re-prompted.
	entry, ok := cache.Load(ctx)
	assert.True(t, ok)
	assert.False(t, entry.HasLocation())
	assert.Equal(t, model.PermissionGranted, entry.Permission)
}

func TestCacheClear(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, sampleEntry()))
	require.NoError(t, cache.Clear(ctx))

	_, ok := cache.Load(ctx)
	assert.False(t, ok)
}

func TestIsStale(t *testing.T) {
	cache, _ := newTestCache(t)

	entry := sampleEntry()

	entry.Location.AcquiredAt = testNow.Add(-25 * time.Hour)
	assert.True(t, cache.IsStale(entry, 24*time.Hour))

	entry.Location.AcquiredAt = testNow.Add(-23 * time.Hour)
	assert.False(t, cache.IsStale(entry, 24*time.Hour))

	// Exactly at the threshold: not yet stale (strict comparison).
	entry.Location.AcquiredAt = testNow.Add(-24 * time.Hour)
	assert.False(t, cache.IsStale(entry, 24*time.Hour))

	// No location at all is always stale.
	assert.True(t, cache.IsStale(model.CacheEntry{}, 24*time.Hour))
}

func TestEligibleForSilentRefresh(t *testing.T) {
	cache, _ := newTestCache(t)

	entry := sampleEntry()

	entry.LastSilentRefreshAt = testNow.Add(-4 * time.Minute)
	assert.False(t, cache.EligibleForSilentRefresh(entry, 5*time.Minute))

	entry.LastSilentRefreshAt = testNow.Add(-5 * time.Minute)
	assert.True(t, cache.EligibleForSilentRefresh(entry, 5*time.Minute))

	// Never refreshed silently: eligible.
	entry.LastSilentRefreshAt = time.Time{}
	assert.True(t, cache.EligibleForSilentRefresh(entry, 5*time.Minute))
}
