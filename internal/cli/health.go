package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Ping the places backend (also warms it up)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Places.Health(cmd.Context()); err != nil {
				return describeProviderError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
