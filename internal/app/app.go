// Package app wires configuration, logging, geolocation, the registry
// builder, the flight poller and the UI into the running skywatch
// application.
package app

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/skywatch/skywatch/internal/config"
	"github.com/skywatch/skywatch/internal/events"
	"github.com/skywatch/skywatch/internal/location"
	"github.com/skywatch/skywatch/internal/logging"
	"github.com/skywatch/skywatch/internal/opensky"
	"github.com/skywatch/skywatch/internal/registry"
	"github.com/skywatch/skywatch/internal/ui"
)

// Default working-directory paths for the registry and its source CSV.
const (
	defaultDBPath  = "skywatch_aircraft.db"
	defaultCSVPath = "data/aircraft-database.csv"
)

// Options configure the skywatch application.
type Options struct {
	ConfigPath string // empty uses ~/.config/skywatch/config.toml
	CSVPath    string // aircraft database CSV; empty uses default
	DBPath     string // registry database; empty uses default
}

// Run boots skywatch and blocks until the user quits or ctx is cancelled.
// Background workers are cancelled before Run returns.
func Run(ctx context.Context, opts Options) error {
	cfg := config.Load(opts.ConfigPath)

	logPath, err := logging.Init()
	if err != nil {
		// Keep going without a log file; the TUI is still usable.
		logPath = ""
	}
	defer logging.Close()
	log.Info("skywatch starting")

	// Quit must stop the workers, not just the UI.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lat, lon := cfg.Location.Latitude, cfg.Location.Longitude
	if cfg.Location.AutoLocate {
		lat, lon = location.Locate(ctx)
	}

	csvPath := opts.CSVPath
	if csvPath == "" {
		csvPath = defaultCSVPath
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	// First run only: convert the CSV into the registry database.
	var initEvents <-chan any
	if !registry.Exists(dbPath) {
		log.Info("registry missing, starting build", "csv", csvPath, "db", dbPath)
		initEvents = registry.StartBuild(ctx, csvPath, dbPath)
	}

	bus := events.NewBus()
	client := opensky.NewClient("")
	StartPoller(ctx, bus, client, PollerConfig{
		DBPath:    dbPath,
		Latitude:  lat,
		Longitude: lon,
		RadiusKM:  cfg.Location.DetectionRadiusKM,
		Interval:  cfg.PollInterval(),
	})

	return ui.Run(ui.Options{
		Config:      cfg,
		ConfigPath:  opts.ConfigPath,
		Bus:         bus,
		InitEvents:  initEvents,
		ObserverLat: lat,
		ObserverLon: lon,
		LogPath:     logPath,
	})
}
