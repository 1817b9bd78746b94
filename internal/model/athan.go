package model

// UzbekNames maps API prayer names to the labels the app displays.
var UzbekNames = map[string]string{
	Fajr:    "Bomdod",
	Sunrise: "Quyosh",
	Dhuhr:   "Peshin",
	Asr:     "Asr",
	Maghrib: "Shom",
	Isha:    "Xufton",
}

// PrayerRow is one rendered line of the athan view: a boundary with its
// display label and whether it is the current prayer.
type PrayerRow struct {
	Name    string
	Label   string
	Time    string // "05:12"
	Current bool
}

// AthanPageData is everything the athan view needs for one render.
type AthanPageData struct {
	City  string
	Date  string // "Saturday, 29-08-2026"
	Hijri string
	Rows  []PrayerRow
	State PrayerState
}
