package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// testSchedule is the canonical fixture:
// Fajr 05:00, Dhuhr 12:15, Asr 15:45, Maghrib 18:30, Isha 20:00.
func testSchedule() model.PrayerSchedule {
	return model.PrayerSchedule{
		GregorianDate: "29-08-2026",
		HijriDate:     "16-03-1448",
		Weekday:       "Saturday",
		Boundaries: []model.Boundary{
			{Name: model.Fajr, Minutes: 5 * 60},
			{Name: model.Sunrise, Minutes: 6*60 + 25},
			{Name: model.Dhuhr, Minutes: 12*60 + 15},
			{Name: model.Asr, Minutes: 15*60 + 45},
			{Name: model.Maghrib, Minutes: 18*60 + 30},
			{Name: model.Isha, Minutes: 20 * 60},
		},
	}
}

func clock(h, m, s int) time.Time {
	return time.Date(2026, 8, 29, h, m, s, 0, time.UTC)
}

func TestCurrentAndNextMidday(t *testing.T) {
	// 13:00 falls between Dhuhr and Asr.
	state, err := CurrentAndNext(testSchedule(), 13*60)
	require.NoError(t, err)
	assert.Equal(t, model.Dhuhr, state.Current)
	assert.Equal(t, model.Asr, state.Next)
	assert.Equal(t, "02:45:00", FormatCountdown(Countdown(15*60+45, clock(13, 0, 0))))
}

func TestCurrentAndNextAfterIsha(t *testing.T) {
	// 21:00 is after the last boundary: Isha is current and the next is
	// tomorrow's Fajr.
	state, err := CurrentAndNext(testSchedule(), 21*60)
	require.NoError(t, err)
	assert.Equal(t, model.Isha, state.Current)
	assert.Equal(t, model.Fajr, state.Next)
	assert.Equal(t, "08:00:00", FormatCountdown(Countdown(5*60, clock(21, 0, 0))))
}

func TestCurrentAndNextBeforeFajr(t *testing.T) {
	// 04:00 is before the first boundary: the previous day's Isha is
	// still current.
	state, err := CurrentAndNext(testSchedule(), 4*60)
	require.NoError(t, err)
	assert.Equal(t, model.Isha, state.Current)
	assert.Equal(t, model.Fajr, state.Next)
	assert.Equal(t, "01:00:00", FormatCountdown(Countdown(5*60, clock(4, 0, 0))))
}

func TestCurrentAndNextBoundaryInclusive(t *testing.T) {
	// Exactly at a boundary, that prayer has begun.
	state, err := CurrentAndNext(testSchedule(), 12*60+15)
	require.NoError(t, err)
	assert.Equal(t, model.Dhuhr, state.Current)
	assert.Equal(t, model.Asr, state.Next)

	// One minute earlier still belongs to Fajr's interval.
	state, err = CurrentAndNext(testSchedule(), 12*60+14)
	require.NoError(t, err)
	assert.Equal(t, model.Fajr, state.Current)
	assert.Equal(t, model.Dhuhr, state.Next)
}

func TestCurrentAndNextIgnoresSunrise(t *testing.T) {
	// 07:00 is after Sunrise but Fajr remains the current prayer.
	state, err := CurrentAndNext(testSchedule(), 7*60)
	require.NoError(t, err)
	assert.Equal(t, model.Fajr, state.Current)
	assert.Equal(t, model.Dhuhr, state.Next)
}

// TestCurrentAndNextWholeDay sweeps every minute of the day and checks the
// interval invariant: current began at or before now, next is strictly
// later (mod 24h), and next immediately follows current in the cycle.
func TestCurrentAndNextWholeDay(t *testing.T) {
	schedule := testSchedule()

	follows := make(map[string]string, len(CanonicalOrder))
	for i, name := range CanonicalOrder {
		follows[name] = CanonicalOrder[(i+1)%len(CanonicalOrder)]
	}

	for now := 0; now < 24*60; now++ {
		state, err := CurrentAndNext(schedule, now)
		require.NoError(t, err)

		assert.Equal(t, follows[state.Current], state.Next, "at %d", now)

		current, _ := schedule.Boundary(state.Current)
		next, _ := schedule.Boundary(state.Next)
		if current.Minutes <= next.Minutes {
			// Plain interval within the day.
			if now >= current.Minutes {
				assert.Less(t, now, next.Minutes, "at %d", now)
			}
		}
		assert.Greater(t, state.SecondsToNext, 0, "at %d", now)
		assert.LessOrEqual(t, state.SecondsToNext, 24*3600, "at %d", now)
	}
}

func TestCurrentAndNextMissingBoundary(t *testing.T) {
	schedule := testSchedule()
	schedule.Boundaries = schedule.Boundaries[:3] // drops Asr, Maghrib, Isha

	_, err := CurrentAndNext(schedule, 13*60)
	assert.Error(t, err)
}

func TestCurrentAndNextRejectsOutOfRangeNow(t *testing.T) {
	_, err := CurrentAndNext(testSchedule(), -1)
	assert.Error(t, err)
	_, err = CurrentAndNext(testSchedule(), 24*60)
	assert.Error(t, err)
}

func TestCountdownPure(t *testing.T) {
	now := clock(13, 0, 0)
	first := Countdown(15*60+45, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Countdown(15*60+45, now))
	}
}

func TestCountdownBounds(t *testing.T) {
	for target := 0; target < 24*60; target += 7 {
		for _, now := range []time.Time{clock(0, 0, 0), clock(4, 59, 59), clock(12, 0, 1), clock(23, 59, 59)} {
			d := Countdown(target, now)
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, 24*time.Hour)
		}
	}
}

func TestCountdownWrapsPastMidnight(t *testing.T) {
	// Target already passed today: tomorrow's occurrence.
	d := Countdown(5*60, clock(21, 0, 0))
	assert.Equal(t, 8*time.Hour, d)

	// Target exactly now: zero, not a full day.
	d = Countdown(13*60, clock(13, 0, 0))
	assert.Equal(t, time.Duration(0), d)
}

func TestCountdownSecondPrecision(t *testing.T) {
	d := Countdown(15*60+45, clock(13, 0, 30))
	assert.Equal(t, "02:44:30", FormatCountdown(d))
}

func TestStateAt(t *testing.T) {
	state, err := StateAt(testSchedule(), clock(13, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, model.Dhuhr, state.Current)
	assert.Equal(t, model.Asr, state.Next)
	assert.Equal(t, 2*3600+44*60+30, state.SecondsToNext)
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCountdown(0))
	assert.Equal(t, "00:00:01", FormatCountdown(time.Second))
	assert.Equal(t, "01:02:03", FormatCountdown(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "23:59:59", FormatCountdown(24*time.Hour-time.Second))
	assert.Equal(t, "00:00:00", FormatCountdown(-time.Minute))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "05:00", FormatClock(300))
	assert.Equal(t, "23:59", FormatClock(1439))
	assert.Equal(t, "00:00", FormatClock(0))
}
