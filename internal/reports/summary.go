package reports

import (
	"fmt"
	"strings"

	"wildwatch/internal/models"
)

// BuildMarkdown renders the collapsible summary-panel content as markdown:
// a weather block, then the alert list in its fetch order with active fires
// pulled out on top.
func BuildMarkdown(report models.ConditionsReport) string {
	var b strings.Builder

	b.WriteString("# Conditions Summary\n\n")
	fmt.Fprintf(&b, "Map center: %.4f, %.4f\n\n", report.Coordinate.Latitude, report.Coordinate.Longitude)

	if report.Loading {
		b.WriteString("_Refreshing..._\n\n")
	}
	if report.ErrorMessage != "" {
		fmt.Fprintf(&b, "> **%s**\n\n", report.ErrorMessage)
	}

	b.WriteString("## Current Weather\n\n")
	if w := report.Weather; w != nil {
		fmt.Fprintf(&b, "- Temperature: %.1f°C (feels like %.1f°C)\n", w.Temperature, w.FeelsLike)
		fmt.Fprintf(&b, "- Humidity: %.0f%%\n", w.Humidity)
		fmt.Fprintf(&b, "- Wind: %.1f m/s at %.0f°\n", w.WindSpeed, w.WindDegrees)
		if len(w.Conditions) > 0 {
			descriptions := make([]string, 0, len(w.Conditions))
			for _, c := range w.Conditions {
				descriptions = append(descriptions, c.Description)
			}
			fmt.Fprintf(&b, "- Conditions: %s\n", strings.Join(descriptions, ", "))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No weather data yet.\n\n")
	}

	active := report.ActiveFireCount()
	fmt.Fprintf(&b, "## Alerts (%d)\n\n", len(report.Alerts))
	if len(report.Alerts) == 0 {
		b.WriteString("No active alerts for this area.\n")
		return b.String()
	}
	if active > 0 {
		fmt.Fprintf(&b, "**%d active fire(s) nearby.**\n\n", active)
	}

	for _, alert := range report.Alerts {
		writeAlert(&b, alert)
	}
	return b.String()
}

func writeAlert(b *strings.Builder, alert models.Alert) {
	label := categoryLabel(alert.Category)
	if alert.IsActiveFire() {
		label = "ACTIVE FIRE"
	}
	lines := strings.Split(alert.Description, "\n")
	fmt.Fprintf(b, "- **%s**: %s _(%s)_\n", label, lines[0], alert.Source)
	for _, line := range lines[1:] {
		fmt.Fprintf(b, "  - %s\n", line)
	}
}

func categoryLabel(category models.AlertCategory) string {
	switch category {
	case models.CategoryFire:
		return "Fire"
	case models.CategoryThunderstorm:
		return "Thunderstorm"
	default:
		return "Alert"
	}
}
