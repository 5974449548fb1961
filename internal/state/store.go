// Package state holds the aggregated conditions report behind a
// single-writer container that the HTTP layer and other observers read
// from. Only the aggregator mutates it; everyone else gets copies.
package state

import (
	"sync"
	"time"

	"wildwatch/internal/models"
)

// Observer receives a copy of the report after every published change.
// Observers run synchronously on the writer's goroutine, preserving the
// single-writer discipline: no observer ever sees a half-applied cycle.
type Observer func(models.ConditionsReport)

// Store owns the shared conditions report.
type Store struct {
	mu        sync.RWMutex
	report    models.ConditionsReport
	observers map[int]Observer
	nextID    int
}

// New creates a store centered on the given coordinate with no weather and
// no alerts.
func New(center models.Coordinate) *Store {
	return &Store{
		report: models.ConditionsReport{
			Coordinate: center,
			Alerts:     []models.Alert{},
		},
		observers: make(map[int]Observer),
	}
}

// Current returns a copy of the report. The alerts slice is copied so
// callers can hold the result across refresh cycles.
func (s *Store) Current() models.ConditionsReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer and returns a token for Unsubscribe.
func (s *Store) Subscribe(fn Observer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return id
}

// Unsubscribe removes a previously registered observer.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

// BeginRefresh starts a refresh cycle: recenter, clear the alert list, and
// raise the loading flag. The previous weather snapshot stays visible until
// a fresh one replaces it.
func (s *Store) BeginRefresh(center models.Coordinate) {
	s.mu.Lock()
	s.report.Coordinate = center
	s.report.Alerts = []models.Alert{}
	s.report.Loading = true
	s.publishLocked()
}

// AppendAlerts adds alerts to the end of the list, preserving fetch
// completion order.
func (s *Store) AppendAlerts(alerts []models.Alert) {
	if len(alerts) == 0 {
		return
	}
	s.mu.Lock()
	s.report.Alerts = append(s.report.Alerts, alerts...)
	s.publishLocked()
}

// SetWeather replaces the snapshot wholesale and clears any prior error.
func (s *Store) SetWeather(snap *models.WeatherSnapshot) {
	s.mu.Lock()
	s.report.Weather = snap
	s.report.ErrorMessage = ""
	s.publishLocked()
}

// SetWeatherError records a user-visible failure message; the previous
// snapshot is left untouched.
func (s *Store) SetWeatherError(message string) {
	s.mu.Lock()
	s.report.ErrorMessage = message
	s.publishLocked()
}

// EndRefresh drops the loading flag and stamps the report.
func (s *Store) EndRefresh() {
	s.mu.Lock()
	s.report.Loading = false
	s.report.UpdatedAt = time.Now().UTC()
	s.publishLocked()
}

// publishLocked copies the report, releases the lock, and notifies
// observers. Called with s.mu held for writing.
func (s *Store) publishLocked() {
	snapshot := s.snapshotLocked()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func (s *Store) snapshotLocked() models.ConditionsReport {
	out := s.report
	out.Alerts = make([]models.Alert, len(s.report.Alerts))
	copy(out.Alerts, s.report.Alerts)
	return out
}
