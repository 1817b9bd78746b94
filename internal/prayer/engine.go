// Package prayer computes the current/next prayer pair and the live
// countdown from a day's schedule. Everything here is pure arithmetic over
// (schedule, now); nothing is persisted.
package prayer

import (
	"fmt"
	"time"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

const (
	minutesPerDay = 24 * 60
	secondsPerDay = 24 * 60 * 60
)

// CanonicalOrder lists the five prayers that partition the day. Sunrise is
// deliberately absent: it marks the end of Fajr's window for display, but a
// moment after sunrise still belongs to the Fajr interval.
var CanonicalOrder = []string{
	model.Fajr, model.Dhuhr, model.Asr, model.Maghrib, model.Isha,
}

// DisplayOrder is the enumeration order for rendering, Sunrise included.
var DisplayOrder = []string{
	model.Fajr, model.Sunrise, model.Dhuhr, model.Asr, model.Maghrib, model.Isha,
}

// CurrentAndNext determines which prayer most recently began and which
// follows, at nowMinutes (minutes since midnight). Boundary comparison is
// inclusive on the lower bound and exclusive on the upper: a timestamp
// exactly on a boundary counts as that prayer having begun. Before the
// first boundary the current prayer is the previous day's Isha; after the
// last, the next is the following day's Fajr.
func CurrentAndNext(schedule model.PrayerSchedule, nowMinutes int) (model.PrayerState, error) {
	if nowMinutes < 0 || nowMinutes >= minutesPerDay {
		return model.PrayerState{}, fmt.Errorf("now %d out of range [0, %d)", nowMinutes, minutesPerDay)
	}

	boundaries := make([]model.Boundary, 0, len(CanonicalOrder))
	for _, name := range CanonicalOrder {
		b, ok := schedule.Boundary(name)
		if !ok {
			return model.PrayerState{}, fmt.Errorf("schedule is missing %s", name)
		}
		boundaries = append(boundaries, b)
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i].Minutes < boundaries[i-1].Minutes {
			return model.PrayerState{}, fmt.Errorf("boundaries not sorted: %s before %s",
				boundaries[i].Name, boundaries[i-1].Name)
		}
	}

	last := len(boundaries) - 1
	current, next := boundaries[last], boundaries[0] // before Fajr: yesterday's Isha
	for i := range boundaries {
		if nowMinutes < boundaries[i].Minutes {
			break
		}
		current = boundaries[i]
		next = boundaries[(i+1)%len(boundaries)]
	}

	seconds := next.Minutes*60 - nowMinutes*60
	if seconds <= 0 {
		seconds += secondsPerDay
	}
	return model.PrayerState{
		Current:       current.Name,
		Next:          next.Name,
		SecondsToNext: seconds,
	}, nil
}

// StateAt is CurrentAndNext evaluated at a wall-clock instant, with the
// countdown carrying second precision.
func StateAt(schedule model.PrayerSchedule, now time.Time) (model.PrayerState, error) {
	state, err := CurrentAndNext(schedule, MinutesOfDay(now))
	if err != nil {
		return model.PrayerState{}, err
	}
	next, _ := schedule.Boundary(state.Next)
	state.SecondsToNext = int(Countdown(next.Minutes, now) / time.Second)
	return state, nil
}

// Countdown returns the duration from now until the target time of day,
// wrapping to tomorrow's occurrence when the target has already passed.
// The result is non-negative and at most 24 hours.
func Countdown(targetMinutes int, now time.Time) time.Duration {
	seconds := targetMinutes*60 - SecondsOfDay(now)
	if seconds < 0 {
		seconds += secondsPerDay
	}
	return time.Duration(seconds) * time.Second
}

// FormatCountdown renders a duration as zero-padded HH:MM:SS.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatClock renders minutes-since-midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOfDay returns t's minutes since local midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SecondsOfDay returns t's seconds since local midnight.
func SecondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
