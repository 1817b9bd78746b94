package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

const defaultAladhanURL = "https://api.aladhan.com/v1"

// Calculation defaults: method 3 (Muslim World League) and school 1
// (Hanafi). Both are Aladhan-defined values passed through opaquely and
// overridable via configuration.
const (
	DefaultMethod = 3
	DefaultSchool = 1
)

const prayerFetchTimeout = 30 * time.Second

// boundaryOrder lists the timings the schedule carries, in day order.
var boundaryOrder = []string{
	model.Fajr, model.Sunrise, model.Dhuhr, model.Asr, model.Maghrib, model.Isha,
}

// PrayerClient fetches the daily prayer schedule from the Aladhan API.
// Unlike the geocoder it hard-fails: the prayer engine cannot run without a
// schedule, so errors propagate as ErrProviderUnavailable.
type PrayerClient struct {
	httpClient *http.Client
	// BaseURL is exported for tests to point at an httptest server.
	BaseURL string
}

// NewPrayerClient creates a client with a generous timeout: the upstream can
// be slow to answer the first request of the day.
func NewPrayerClient() *PrayerClient {
	return &PrayerClient{
		httpClient: &http.Client{Timeout: prayerFetchTimeout},
		BaseURL:    defaultAladhanURL,
	}
}

type aladhanResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Gregorian struct {
				Date    string `json:"date"`
				Weekday struct {
					En string `json:"en"`
				} `json:"weekday"`
			} `json:"gregorian"`
			Hijri struct {
				Date string `json:"date"`
			} `json:"hijri"`
		} `json:"date"`
	} `json:"data"`
}

// FetchPrayerSchedule fetches today's timings for the coordinate. Method and
// school are passed through as-is. The returned schedule's boundaries are
// sorted ascending by time of day.
func (c *PrayerClient) FetchPrayerSchedule(ctx context.Context, coord model.Coordinate, method, school int) (model.PrayerSchedule, error) {
	if err := coord.Validate(); err != nil {
		return model.PrayerSchedule{}, fmt.Errorf("%w: %v", ErrPreconditionViolated, err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("method", strconv.Itoa(method))
	params.Set("school", strconv.Itoa(school))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/timings?"+params.Encode(), nil)
	if err != nil {
		return model.PrayerSchedule{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return model.PrayerSchedule{}, fmt.Errorf("%w: %w: %v", ErrProviderUnavailable, ErrProviderTimeout, err)
		}
		return model.PrayerSchedule{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.PrayerSchedule{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var apiResp aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return model.PrayerSchedule{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if apiResp.Code != http.StatusOK {
		return model.PrayerSchedule{}, fmt.Errorf("%w: code=%d status=%s", ErrProviderUnavailable, apiResp.Code, apiResp.Status)
	}

	schedule := model.PrayerSchedule{
		GregorianDate: apiResp.Data.Date.Gregorian.Date,
		HijriDate:     apiResp.Data.Date.Hijri.Date,
		Weekday:       apiResp.Data.Date.Gregorian.Weekday.En,
	}
	for _, name := range boundaryOrder {
		raw, ok := apiResp.Data.Timings[name]
		if !ok {
			return model.PrayerSchedule{}, fmt.Errorf("%w: missing timing %s", ErrProviderUnavailable, name)
		}
		minutes, err := ParseClock(raw)
		if err != nil {
			return model.PrayerSchedule{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		schedule.Boundaries = append(schedule.Boundaries, model.Boundary{Name: name, Minutes: minutes})
	}
	sort.SliceStable(schedule.Boundaries, func(i, j int) bool {
		return schedule.Boundaries[i].Minutes < schedule.Boundaries[j].Minutes
	})
	return schedule, nil
}

// ParseClock converts an "HH:MM" string to minutes since midnight. The API
// sometimes appends a timezone suffix like " (KST)", which is stripped.
func ParseClock(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", raw)
	}
	return hour*60 + minute, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
