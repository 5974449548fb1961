package fetchers

import (
	"fmt"
	"math"
	"strings"

	"wildwatch/internal/models"
)

// Thresholds for weather-derived alerts.
const (
	// HighWindThreshold is the wind speed (m/s) above which a wind alert fires.
	HighWindThreshold = 20.0
	// FireRiskTemp is the temperature (°C) above which fire risk is considered.
	FireRiskTemp = 25.0
	// FireRiskWind is the wind speed (m/s) above which fire risk is considered.
	FireRiskWind = 10.0
	// FireRiskHumidity is the humidity (%) below which fire risk is considered.
	FireRiskHumidity = 30.0
)

const derivedSource = "Weather Conditions"

// ClassifyTitle maps an alert-feed title to a category. The match is on the
// lowercased title: thunder wins over fire when both appear.
func ClassifyTitle(title string) models.AlertCategory {
	lowered := strings.ToLower(title)
	switch {
	case strings.Contains(lowered, "thunder"):
		return models.CategoryThunderstorm
	case strings.Contains(lowered, "fire"):
		return models.CategoryFire
	default:
		return models.CategoryOther
	}
}

// DeriveWeatherAlerts applies the synthetic alert rules to a snapshot. The
// rules are independent and all of them may fire for the same snapshot.
func DeriveWeatherAlerts(snap *models.WeatherSnapshot) []models.Alert {
	var alerts []models.Alert

	if snap.HasThunder() {
		alerts = append(alerts, models.Alert{
			ID:          newAlertID(),
			Coordinate:  snap.Coordinate,
			Category:    models.CategoryThunderstorm,
			Description: "Thunderstorm conditions detected",
			Source:      derivedSource,
		})
	}

	if snap.WindSpeed > HighWindThreshold {
		alerts = append(alerts, models.Alert{
			ID:          newAlertID(),
			Coordinate:  snap.Coordinate,
			Category:    models.CategoryOther,
			Description: fmt.Sprintf("High wind conditions: %d m/s", int(math.Round(snap.WindSpeed))),
			Source:      derivedSource,
		})
	}

	if snap.Temperature > FireRiskTemp && snap.WindSpeed > FireRiskWind && snap.Humidity < FireRiskHumidity {
		alerts = append(alerts, models.Alert{
			ID:          newAlertID(),
			Coordinate:  snap.Coordinate,
			Category:    models.CategoryFire,
			Description: "High fire risk conditions: High temperature, low humidity, and strong winds",
			Source:      derivedSource,
		})
	}

	return alerts
}
