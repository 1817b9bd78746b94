package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Latitude: 37.5665, Longitude: 126.978}, false},
		{"zero is valid", Coordinate{}, false},
		{"lat edge", Coordinate{Latitude: -90, Longitude: 180}, false},
		{"lat too big", Coordinate{Latitude: 90.01}, true},
		{"lat too small", Coordinate{Latitude: -91}, true},
		{"lon too big", Coordinate{Longitude: 180.5}, true},
		{"lon too small", Coordinate{Longitude: -181}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPermissionStateText(t *testing.T) {
	for _, state := range []PermissionState{PermissionUnknown, PermissionGranted, PermissionDenied} {
		raw, err := state.MarshalText()
		require.NoError(t, err)

		var parsed PermissionState
		require.NoError(t, parsed.UnmarshalText(raw))
		assert.Equal(t, state, parsed)
	}
}

func TestPermissionStateUnmarshalDefensive(t *testing.T) {
	// The persisted blob has no schema version; junk must not fail.
	var parsed PermissionState
	require.NoError(t, parsed.UnmarshalText([]byte("GRANTED!!")))
	assert.Equal(t, PermissionUnknown, parsed)
}

func TestResolvedLocationJSONKeys(t *testing.T) {
	// The JSON keys match what the web app kept in localStorage.
	loc := ResolvedLocation{
		Coordinate: Coordinate{Latitude: 41.3, Longitude: 69.25},
		PlaceName:  "Toshkent",
	}
	raw, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lat":41.3`)
	assert.Contains(t, string(raw), `"lon":69.25`)
	assert.Contains(t, string(raw), `"city":"Toshkent"`)
}
