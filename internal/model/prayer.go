package model

// Canonical prayer names as the Aladhan API spells them. Sunrise is a
// display-only marker, never a candidate for current/next.
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Boundary is one named time-of-day value partitioning the day.
// Minutes is minutes since midnight, 0-1439.
type Boundary struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

// PrayerSchedule holds one calendar day's boundaries, sorted ascending by
// time, plus the calendar metadata the provider returns alongside them.
type PrayerSchedule struct {
	GregorianDate string     `json:"gregorian_date"`
	HijriDate     string     `json:"hijri_date"`
	Weekday       string     `json:"weekday"`
	Boundaries    []Boundary `json:"boundaries"`
}

// Boundary returns the named boundary and whether it exists in the schedule.
func (s PrayerSchedule) Boundary(name string) (Boundary, bool) {
	for _, b := range s.Boundaries {
		if b.Name == name {
			return b, true
		}
	}
	return Boundary{}, false
}

// PrayerState is the derived current/next pair with the live countdown.
// It is pure output of (schedule, now) and is never persisted.
type PrayerState struct {
	Current       string `json:"current"`
	Next          string `json:"next"`
	SecondsToNext int    `json:"seconds_to_next"`
}
