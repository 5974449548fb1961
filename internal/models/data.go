package models

import (
	"strings"
	"time"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// AlertCategory classifies an alert by hazard type
type AlertCategory string

const (
	CategoryFire         AlertCategory = "fire"
	CategoryThunderstorm AlertCategory = "thunderstorm"
	CategoryOther        AlertCategory = "other"
)

// Alert is a unified hazard record merged from any of the upstream sources.
// Alerts are never deduplicated: the same physical event reported by two
// sources yields two entries.
type Alert struct {
	ID          string        `json:"id"`
	Coordinate  Coordinate    `json:"coordinate"`
	Category    AlertCategory `json:"category"`
	Description string        `json:"description"` // may contain embedded newlines
	Source      string        `json:"source"`
}

// activeFireMarkers are the status substrings that mark a fire as ongoing.
var activeFireMarkers = []string{"Out of Control", "Holding", "Under Control"}

// IsActiveFire reports whether the alert describes an ongoing fire incident.
// The check is a literal substring match against the status line embedded in
// the description, which is how the map layer picks its icon.
func (a Alert) IsActiveFire() bool {
	if a.Category != CategoryFire {
		return false
	}
	for _, marker := range activeFireMarkers {
		if strings.Contains(a.Description, marker) {
			return true
		}
	}
	return false
}

// WeatherCondition is a single textual condition descriptor with its icon code.
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherSnapshot holds current conditions for one coordinate. Snapshots are
// immutable and replaced wholesale on each successful weather fetch.
type WeatherSnapshot struct {
	Temperature float64            `json:"temperature"` // °C
	FeelsLike   float64            `json:"feels_like"`  // °C
	Humidity    float64            `json:"humidity"`    // %
	WindSpeed   float64            `json:"wind_speed"`  // m/s
	WindDegrees float64            `json:"wind_degrees"`
	Conditions  []WeatherCondition `json:"conditions"`
	Coordinate  Coordinate         `json:"coordinate"`
	FetchedAt   time.Time          `json:"fetched_at"`
}

// HasThunder reports whether any condition descriptor mentions thunder.
func (w *WeatherSnapshot) HasThunder() bool {
	for _, c := range w.Conditions {
		if strings.Contains(strings.ToLower(c.Description), "thunder") {
			return true
		}
	}
	return false
}

// ConditionsReport is the aggregated view handed to observers and the HTTP
// layer: one coordinate, the latest weather snapshot (nil until the first
// successful fetch), and the alert list in fetch-completion order
// (government feed, then wildfire, then weather-derived).
type ConditionsReport struct {
	Coordinate   Coordinate       `json:"coordinate"`
	Weather      *WeatherSnapshot `json:"weather,omitempty"`
	Alerts       []Alert          `json:"alerts"`
	Loading      bool             `json:"loading"`
	ErrorMessage string           `json:"error_message,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ActiveFireCount counts alerts whose status marks an ongoing fire.
func (r *ConditionsReport) ActiveFireCount() int {
	n := 0
	for _, a := range r.Alerts {
		if a.IsActiveFire() {
			n++
		}
	}
	return n
}
