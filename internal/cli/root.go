// Package cli is the presentation shell: the cobra surface standing in for
// the Mini App pages. It owns no state machine logic, only wiring and
// rendering.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muslim-vegukin/miniapp/internal/config"
	"github.com/muslim-vegukin/miniapp/internal/events"
	"github.com/muslim-vegukin/miniapp/internal/location"
	"github.com/muslim-vegukin/miniapp/internal/model"
	"github.com/muslim-vegukin/miniapp/internal/prayer"
	"github.com/muslim-vegukin/miniapp/internal/providers"
)

// App bundles the wired collaborators the commands need.
type App struct {
	Config  *config.Config
	Manager *location.Manager
	Prayers *providers.PrayerClient
	Places  *providers.PlacesClient
	Bus     *events.Bus
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vegukin",
		Short: "Prayer times and halal places for your location",
		// Default action mirrors the app's main page.
		RunE:          app.runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(app.newTodayCmd())
	rootCmd.AddCommand(app.newPrayersCmd())
	rootCmd.AddCommand(app.newWatchCmd())
	rootCmd.AddCommand(app.newLocationCmd())
	rootCmd.AddCommand(app.newPlacesCmd(providers.Mosques, "mosques", "Nearby mosques"))
	rootCmd.AddCommand(app.newPlacesCmd(providers.Restaurants, "restaurants", "Nearby halal restaurants"))
	rootCmd.AddCommand(app.newPlacesCmd(providers.Shops, "shops", "Nearby halal shops"))
	rootCmd.AddCommand(app.newHealthCmd())

	return rootCmd
}

// locate runs the page-load location flow.
func (a *App) locate(ctx context.Context) (model.ResolvedLocation, error) {
	loc, err := a.Manager.Initialize(ctx)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to acquire location: %w", err)
	}
	return loc, nil
}

// fetchSchedule loads today's schedule for the location and republishes the
// derived state on the bus for decoupled consumers (display bridges).
func (a *App) fetchSchedule(ctx context.Context, loc model.ResolvedLocation) (model.PrayerSchedule, model.PrayerState, error) {
	schedule, err := a.Prayers.FetchPrayerSchedule(ctx, loc.Coordinate, a.Config.Method, a.Config.School)
	if err != nil {
		return model.PrayerSchedule{}, model.PrayerState{}, describeProviderError(err)
	}
	state, err := prayer.StateAt(schedule, time.Now())
	if err != nil {
		return model.PrayerSchedule{}, model.PrayerState{}, err
	}
	if a.Bus != nil {
		a.Bus.Publish(events.PrayerDataUpdated, events.PrayerUpdate{State: state, Schedule: schedule})
	}
	return schedule, state, nil
}

// describeProviderError keeps the timeout case distinguishable: the hosted
// backends sleep when idle and the first request of the day can be slow.
func describeProviderError(err error) error {
	if errors.Is(err, providers.ErrProviderTimeout) {
		return fmt.Errorf("service is waking up, retry shortly: %w", err)
	}
	return err
}
