// Package aggregator drives the refresh cycle: one strictly sequential pass
// over the three upstream sources, folding results into the shared state
// container. The sequence fixes the alert list order: government feed first,
// then wildfire, then weather-derived.
package aggregator

import (
	"context"
	"sync/atomic"
	"time"

	"wildwatch/internal/config"
	"wildwatch/internal/fetchers"
	"wildwatch/internal/logger"
	"wildwatch/internal/models"
	"wildwatch/internal/observability"
	"wildwatch/internal/state"
)

// User-visible weather failure strings. Feed and wildfire failures are
// absorbed and never surfaced.
const (
	weatherDecodeMessage  = "Weather data could not be read"
	weatherGenericMessage = "Failed to fetch weather data"
)

// refreshTimeout bounds a background refresh cycle started via StartRefresh.
const refreshTimeout = 2 * time.Minute

// Aggregator orchestrates fetches and owns all writes to the state store.
type Aggregator struct {
	cfg     *config.Config
	fetcher *fetchers.DataFetcher
	store   *state.Store
	metrics *observability.Metrics
	log     *logger.Logger

	// inFlight serializes refreshes: an overlapping request is dropped
	// rather than racing the running cycle over the shared alert list.
	inFlight atomic.Bool
}

// New creates an aggregator writing into store.
func New(cfg *config.Config, fetcher *fetchers.DataFetcher, store *state.Store, metrics *observability.Metrics) *Aggregator {
	return &Aggregator{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		metrics: metrics,
		log:     logger.Global().WithComponent("aggregator"),
	}
}

// InFlight reports whether a refresh cycle is currently running.
func (a *Aggregator) InFlight() bool {
	return a.inFlight.Load()
}

// Refresh runs one full cycle centered on coord. It returns false without
// touching state when coord is invalid or another refresh is in flight.
func (a *Aggregator) Refresh(ctx context.Context, coord models.Coordinate) bool {
	if !a.acquire(coord) {
		return false
	}
	defer a.inFlight.Store(false)
	a.run(ctx, coord)
	return true
}

// StartRefresh claims the single-flight token synchronously and runs the
// cycle on its own goroutine. Callers get an accepted/rejected answer that
// cannot race the cycle it refers to.
func (a *Aggregator) StartRefresh(coord models.Coordinate) bool {
	if !a.acquire(coord) {
		return false
	}
	go func() {
		defer a.inFlight.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		a.run(ctx, coord)
	}()
	return true
}

// acquire validates coord and takes the single-flight token. The caller owns
// releasing it when acquire returns true.
func (a *Aggregator) acquire(coord models.Coordinate) bool {
	if !coord.Valid() {
		a.log.Warn("refresh rejected: coordinate out of range", map[string]interface{}{
			"latitude":  coord.Latitude,
			"longitude": coord.Longitude,
		})
		return false
	}
	if !a.inFlight.CompareAndSwap(false, true) {
		a.metrics.RefreshesDropped.Inc()
		a.log.Debug("refresh dropped: cycle already in flight")
		return false
	}
	return true
}

// run executes one cycle. The caller must hold the single-flight token.
func (a *Aggregator) run(ctx context.Context, coord models.Coordinate) {
	a.metrics.RefreshInFlight.Set(1)
	defer a.metrics.RefreshInFlight.Set(0)
	start := time.Now()
	defer func() {
		a.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	a.log.Info("refresh started", map[string]interface{}{
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
	})
	a.store.BeginRefresh(coord)

	a.fetchFeed(ctx, coord)
	a.fetchWildfire(ctx, coord)
	a.fetchWeather(ctx, coord)

	a.store.EndRefresh()
	a.log.Info("refresh complete", map[string]interface{}{
		"alerts":   len(a.store.Current().Alerts),
		"duration": time.Since(start).String(),
	})
}

func (a *Aggregator) fetchFeed(ctx context.Context, coord models.Coordinate) {
	alerts, err := a.fetcher.Feed.Fetch(ctx, a.cfg.AlertFeedURL, coord)
	if err != nil {
		a.metrics.FetchTotal.WithLabelValues("feed", "error").Inc()
		a.log.Error("government feed fetch failed", err)
		return
	}
	a.metrics.FetchTotal.WithLabelValues("feed", "success").Inc()
	a.metrics.AlertsCollected.WithLabelValues("feed").Add(float64(len(alerts)))
	a.store.AppendAlerts(alerts)
}

func (a *Aggregator) fetchWildfire(ctx context.Context, coord models.Coordinate) {
	alerts, err := a.fetcher.Wildfire.Fetch(ctx,
		a.cfg.WildfirePrimaryURL,
		a.cfg.WildfireFallbackURL,
		a.cfg.WildfireFallbackTypeName,
		coord,
	)
	if err != nil {
		a.metrics.FetchTotal.WithLabelValues("wildfire", "error").Inc()
		a.log.Error("wildfire fetch failed on both sources", err)
		return
	}
	a.metrics.FetchTotal.WithLabelValues("wildfire", "success").Inc()
	a.metrics.AlertsCollected.WithLabelValues("wildfire").Add(float64(len(alerts)))
	a.store.AppendAlerts(alerts)
}

func (a *Aggregator) fetchWeather(ctx context.Context, coord models.Coordinate) {
	snap, err := a.fetcher.Weather.Fetch(ctx, a.cfg.WeatherURL, a.cfg.WeatherAPIKey, coord)
	if err != nil {
		a.metrics.FetchTotal.WithLabelValues("weather", "error").Inc()
		a.log.Error("weather fetch failed", err)
		if fetchers.IsDecodeFailure(err) {
			a.store.SetWeatherError(weatherDecodeMessage)
		} else {
			a.store.SetWeatherError(weatherGenericMessage)
		}
		return
	}
	a.metrics.FetchTotal.WithLabelValues("weather", "success").Inc()
	a.store.SetWeather(snap)

	derived := fetchers.DeriveWeatherAlerts(snap)
	a.metrics.AlertsCollected.WithLabelValues("weather").Add(float64(len(derived)))
	a.store.AppendAlerts(derived)
}
