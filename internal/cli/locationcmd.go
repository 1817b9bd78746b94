package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newLocationCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "location",
		Short: "Show or refresh the cached location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			loc, err := a.locate(ctx)
			if err != nil {
				return err
			}
			if refresh {
				if loc, err = a.Manager.ManualRefresh(ctx); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "%s\n%s\n", loc.PlaceName, loc.Coordinate)
			fmt.Fprintf(out, "Yangilangan: %s\n", loc.AcquiredAt.Format("15:04:05, 02-01-2006"))
			if a.Manager.IsStale(ctx) {
				fmt.Fprintln(out, "Lokatsiya eskirgan — yangilash tavsiya etiladi.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Request a fresh device fix")
	return cmd
}
