package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"wildwatch/internal/models"
)

var errInvalidCoordinate = errors.New("lat and lon must both be valid coordinates")

// HandleRoot serves the HTML summary panel for the current report.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := s.Panel.Build(r.Context(), s.Store.Current())
	if err != nil {
		s.log.Error("panel build failed", err)
		http.Error(w, "Failed to build summary panel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// HandleConditions returns the current report as JSON.
func (s *Server) HandleConditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Store.Current())
}

// HandleRefresh starts a refresh cycle around the given coordinate (lat/lon
// query parameters) or the current map center when none is given. Overlapping
// requests are rejected so only one cycle runs at a time.
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	coord, err := s.refreshCoordinate(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  err.Error(),
			"status": "bad_request",
		})
		return
	}

	// The aggregator claims its single-flight token before this returns, so
	// the accepted/rejected answer cannot race the cycle it refers to.
	if !s.Aggregator.StartRefresh(coord) {
		s.log.Warn("refresh already in progress, rejecting request", nil)
		s.writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "Refresh already in progress",
			"status": "conflict",
		})
		return
	}

	s.writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":    "accepted",
		"latitude":  coord.Latitude,
		"longitude": coord.Longitude,
	})
}

// HandleHealth provides the health check endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"refreshing": s.Aggregator.InFlight(),
	})
}

// refreshCoordinate parses the optional lat/lon pair, falling back to the
// current map center when both are absent.
func (s *Server) refreshCoordinate(r *http.Request) (models.Coordinate, error) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" && lonStr == "" {
		return s.Store.Current().Coordinate, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinate{}, errInvalidCoordinate
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Coordinate{}, errInvalidCoordinate
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		return models.Coordinate{}, errInvalidCoordinate
	}
	return coord, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
