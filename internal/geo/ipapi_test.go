package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator(handler http.HandlerFunc) (*IPLocator, *httptest.Server) {
	srv := httptest.NewServer(handler)
	l := NewIPLocator()
	l.BaseURL = srv.URL
	return l, srv
}

func TestIPLocatorSuccess(t *testing.T) {
	l, srv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":41.2995,"lon":69.2401}`))
	})
	defer srv.Close()

	coord, err := l.CurrentPosition(context.Background(), FixRequest{})
	require.NoError(t, err)
	assert.InDelta(t, 41.2995, coord.Latitude, 1e-9)
	assert.InDelta(t, 69.2401, coord.Longitude, 1e-9)
}

func TestIPLocatorAPIFailure(t *testing.T) {
	l, srv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	})
	defer srv.Close()

	_, err := l.CurrentPosition(context.Background(), FixRequest{})
	assert.ErrorIs(t, err, ErrPositionUnavailable)
	assert.ErrorContains(t, err, "private range")
}

func TestIPLocatorBadStatus(t *testing.T) {
	l, srv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	_, err := l.CurrentPosition(context.Background(), FixRequest{})
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestIPLocatorTimeout(t *testing.T) {
	l, srv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	defer srv.Close()

	_, err := l.CurrentPosition(context.Background(), FixRequest{Timeout: 20 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestIPLocatorOutOfRangeCoordinate(t *testing.T) {
	l, srv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":512.0,"lon":0}`))
	})
	defer srv.Close()

	_, err := l.CurrentPosition(context.Background(), FixRequest{})
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}
