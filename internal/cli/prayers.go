package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muslim-vegukin/miniapp/internal/prayer"
)

func (a *App) newPrayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prayers",
		Short: "Full prayer list for today, Sunrise included",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			loc, err := a.locate(ctx)
			if err != nil {
				return err
			}
			schedule, state, err := a.fetchSchedule(ctx, loc)
			if err != nil {
				return err
			}

			page := prayer.BuildAthanPage(loc, schedule, state)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s | %s (%s hijriy)\n\n", page.City, page.Date, page.Hijri)
			for _, row := range page.Rows {
				marker := "  "
				if row.Current {
					marker = "> "
				}
				fmt.Fprintf(out, "%s%-8s %s\n", marker, row.Label, row.Time)
			}
			return nil
		},
	}
}
