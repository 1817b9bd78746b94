package prayer

import (
	"fmt"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

// BuildAthanPage assembles the render model for the full prayer list view:
// one row per displayed boundary, Sunrise included, with the current prayer
// marked.
func BuildAthanPage(loc model.ResolvedLocation, schedule model.PrayerSchedule, state model.PrayerState) model.AthanPageData {
	rows := make([]model.PrayerRow, 0, len(DisplayOrder))
	for _, name := range DisplayOrder {
		b, ok := schedule.Boundary(name)
		if !ok {
			continue
		}
		label := name
		if uz, ok := model.UzbekNames[name]; ok {
			label = uz
		}
		rows = append(rows, model.PrayerRow{
			Name:    name,
			Label:   label,
			Time:    FormatClock(b.Minutes),
			Current: name == state.Current,
		})
	}
	return model.AthanPageData{
		City:  loc.PlaceName,
		Date:  fmt.Sprintf("%s, %s", schedule.Weekday, schedule.GregorianDate),
		Hijri: schedule.HijriDate,
		Rows:  rows,
		State: state,
	}
}
