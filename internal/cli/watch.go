package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/prayer"
)

func (a *App) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live countdown to the next prayer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			loc, err := a.locate(ctx)
			if err != nil {
				return err
			}
			schedule, _, err := a.fetchSchedule(ctx, loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s — %s\n", loc.PlaceName, schedule.GregorianDate)

			ticker := prayer.NewTicker()
			ticker.Start(schedule, func(state model.PrayerState, countdown string) {
				fmt.Fprintf(out, "\r%s -> %s  %s   ", label(state.Current), label(state.Next), countdown)
			})
			defer ticker.Stop()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			select {
			case <-interrupt:
			case <-ctx.Done():
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
