package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wildwatch/internal/aggregator"
	"wildwatch/internal/config"
	"wildwatch/internal/fetchers"
	"wildwatch/internal/llm"
	"wildwatch/internal/location"
	"wildwatch/internal/logger"
	"wildwatch/internal/models"
	"wildwatch/internal/observability"
	"wildwatch/internal/reports"
	"wildwatch/internal/server"
	"wildwatch/internal/state"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		logger.Global().SetLevel(level)
	}

	log := logger.Global().WithComponent("main")
	log.Info("Starting wildfire and weather alert service", map[string]interface{}{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	})

	center := models.Coordinate{Latitude: cfg.DefaultLatitude, Longitude: cfg.DefaultLongitude}
	store := state.New(center)
	metrics := observability.NewMetrics()
	agg := aggregator.New(cfg, fetchers.NewDataFetcher(), store, metrics)
	panel := reports.NewPanelBuilder(llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	srv := server.NewServer(cfg, store, agg, panel)

	// The configured map center stands in for a device location feed. Every
	// fix recenters the map and kicks off a refresh cycle.
	fixes := location.NewStaticSource(center)
	go func() {
		for coord := range fixes.Updates() {
			refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			agg.Refresh(refreshCtx, coord)
			cancel()
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}
