package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/providers"
)

func (a *App) newPlacesCmd(kind providers.PlaceKind, use, short string) *cobra.Command {
	var (
		address string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if address != "" {
				results, err := a.Places.ByAddress(ctx, kind, address, limit)
				if err != nil {
					return describeProviderError(err)
				}
				return renderPlaces(out, results)
			}

			loc, err := a.locate(ctx)
			if err != nil {
				return err
			}
			results, err := a.Places.Nearby(ctx, kind, loc.Coordinate, limit)
			if err != nil {
				return describeProviderError(err)
			}
			return renderPlaces(out, results)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Search near a free-text address instead of the device location")
	cmd.Flags().IntVar(&limit, "limit", 5, "Number of results (max 10)")
	return cmd
}

func renderPlaces(out io.Writer, places []model.Place) error {
	if len(places) == 0 {
		fmt.Fprintln(out, "Hech narsa topilmadi.")
		return nil
	}
	for _, p := range places {
		fmt.Fprintf(out, "%s — %.2f km\n", p.Name, p.DistanceKM)
		fmt.Fprintf(out, "  %s", p.Address)
		if p.Phone != "" {
			fmt.Fprintf(out, " | %s", p.Phone)
		}
		fmt.Fprintln(out)
	}
	return nil
}
