package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/muslim-vegukin/miniapp/internal/cli"
	"github.com/muslim-vegukin/miniapp/internal/config"
	"github.com/muslim-vegukin/miniapp/internal/events"
	"github.com/muslim-vegukin/miniapp/internal/geo"
	"github.com/muslim-vegukin/miniapp/internal/location"
	"github.com/muslim-vegukin/miniapp/internal/providers"
	"github.com/muslim-vegukin/miniapp/internal/store"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	kv, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open cache store")
	}
	defer closeStore()

	bus := events.NewBus()
	if cfg.MQTTBrokerURL != "" {
		bridge, err := events.NewMQTTBridge(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect display bridge")
		}
		defer bridge.Close()
		bridge.Attach(bus)
	}

	manager := location.NewManager(
		store.NewCache(kv),
		geo.NewIPLocator(),
		providers.NewGeocoder(cfg.Language),
		bus,
		terminalShell{},
		location.Config{
			Fallback:       cfg.Fallback,
			SilentInterval: cfg.SilentInterval,
			StaleAfter:     cfg.StaleAfter,
		},
	)

	app := &cli.App{
		Config:  cfg,
		Manager: manager,
		Prayers: providers.NewPrayerClient(),
		Places:  providers.NewPlacesClient(cfg.PlacesURL),
		Bus:     bus,
	}

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

// newStore picks the cache backend: Redis when configured (kiosk installs),
// a JSON file under the cache dir otherwise.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.RedisAddress != "" {
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	fs, err := store.NewFileStore(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}
