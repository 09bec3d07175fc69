package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/skywatch/skywatch/internal/events"
	"github.com/skywatch/skywatch/internal/opensky"
	"github.com/skywatch/skywatch/internal/registry"
)

// FlightFetcher is the slice of the OpenSky client the poller needs.
// Implemented by *opensky.Client; fakes implement it in tests.
type FlightFetcher interface {
	FetchOverhead(ctx context.Context, lat, lon, radiusKM float64) ([]opensky.Flight, error)
}

// PollerConfig parameterizes one polling session. Coordinates and radius
// are fixed for the session; changing them through Settings takes effect
// on restart.
type PollerConfig struct {
	DBPath    string
	Latitude  float64
	Longitude float64
	RadiusKM  float64
	Interval  time.Duration
}

// StartPoller launches the recurring flight fetch in its own goroutine.
// Every cycle publishes exactly one events.FlightUpdate on the bus,
// successful or not; a failed cycle carries no flights. The goroutine
// exits when ctx is cancelled.
func StartPoller(ctx context.Context, bus *events.Bus, fetcher FlightFetcher, cfg PollerConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	go func() {
		limiter := rate.NewLimiter(rate.Every(cfg.Interval), 1)
		for {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			bus.Publish(pollOnce(ctx, fetcher, cfg))
		}
	}()
}

// pollOnce performs one fetch-and-enrich cycle. The registry is opened
// read-only per cycle so enrichment turns on as soon as the builder has
// committed; an absent registry means flights pass through undecorated.
func pollOnce(ctx context.Context, fetcher FlightFetcher, cfg PollerConfig) events.FlightUpdate {
	flights, err := fetcher.FetchOverhead(ctx, cfg.Latitude, cfg.Longitude, cfg.RadiusKM)
	if err != nil {
		log.Error("flight fetch failed", "error", err)
		return events.FlightUpdate{At: time.Now(), OK: false}
	}

	hits := 0
	if registry.Exists(cfg.DBPath) {
		if store, err := registry.Open(cfg.DBPath); err == nil {
			hits = store.Decorate(flights)
			_ = store.Close()
		}
	}

	return events.FlightUpdate{
		Flights: flights,
		Hits:    hits,
		At:      time.Now(),
		OK:      true,
	}
}
