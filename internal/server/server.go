package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wildwatch/internal/aggregator"
	"wildwatch/internal/config"
	"wildwatch/internal/logger"
	"wildwatch/internal/reports"
	"wildwatch/internal/state"
)

// Server wires the HTTP surface to the conditions store and aggregator.
type Server struct {
	Config     *config.Config
	Store      *state.Store
	Aggregator *aggregator.Aggregator
	Panel      *reports.PanelBuilder

	log *logger.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, store *state.Store, agg *aggregator.Aggregator, panel *reports.PanelBuilder) *Server {
	return &Server{
		Config:     cfg,
		Store:      store,
		Aggregator: agg,
		Panel:      panel,
		log:        logger.Global().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/conditions", s.HandleConditions)
	mux.HandleFunc("/refresh", s.HandleRefresh)
	mux.Handle("/metrics", promhttp.Handler())

	// Root path last (catch-all).
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}
