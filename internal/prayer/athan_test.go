package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muslim-vegukin/miniapp/internal/model"
)

func TestBuildAthanPage(t *testing.T) {
	loc := model.ResolvedLocation{PlaceName: "Toshkent"}
	schedule := testSchedule()
	state, err := StateAt(schedule, clock(13, 0, 0))
	require.NoError(t, err)

	page := BuildAthanPage(loc, schedule, state)

	assert.Equal(t, "Toshkent", page.City)
	assert.Equal(t, "Saturday, 29-08-2026", page.Date)
	assert.Equal(t, "16-03-1448", page.Hijri)
	assert.Equal(t, state, page.State)

	require.Len(t, page.Rows, len(DisplayOrder))
	assert.Equal(t, model.PrayerRow{Name: model.Fajr, Label: "Bomdod", Time: "05:00"}, page.Rows[0])
	assert.Equal(t, model.PrayerRow{Name: model.Sunrise, Label: "Quyosh", Time: "06:25"}, page.Rows[1])

	// Only the in-progress prayer is marked.
	for _, row := range page.Rows {
		assert.Equal(t, row.Name == model.Dhuhr, row.Current, row.Name)
	}
}

func TestBuildAthanPageSkipsMissingBoundaries(t *testing.T) {
	schedule := testSchedule()
	schedule.Boundaries = schedule.Boundaries[:2] // Fajr and Sunrise only

	page := BuildAthanPage(model.ResolvedLocation{}, schedule, model.PrayerState{})
	assert.Len(t, page.Rows, 2)
}
