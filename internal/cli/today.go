package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/prayer"
)

func (a *App) newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "City, date, current prayer and countdown",
		RunE:  a.runToday,
	}
}

func (a *App) runToday(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loc, err := a.locate(ctx)
	if err != nil {
		return err
	}
	schedule, state, err := a.fetchSchedule(ctx, loc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", loc.PlaceName, loc.Coordinate)
	fmt.Fprintf(out, "%s, %s / %s hijriy\n\n", schedule.Weekday, schedule.GregorianDate, schedule.HijriDate)

	current, _ := schedule.Boundary(state.Current)
	fmt.Fprintf(out, "Hozir:    %s (%s)\n", label(state.Current), prayer.FormatClock(current.Minutes))
	fmt.Fprintf(out, "Keyingi:  %s, %s dan keyin\n",
		label(state.Next),
		prayer.FormatCountdown(time.Duration(state.SecondsToNext)*time.Second))
	return nil
}

func label(name string) string {
	if uz, ok := model.UzbekNames[name]; ok {
		return uz
	}
	return name
}
