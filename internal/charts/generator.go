package charts

import (
	"bytes"
	"fmt"

	"wildwatch/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartGenerator builds the summary-panel chart fragments.
type ChartGenerator struct{}

// NewChartGenerator creates a new chart generator.
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// AlertMapChart renders the alert markers as a longitude/latitude scatter
// around the map center. Active fires get their own series so the legend
// separates them from everything else.
func (cg *ChartGenerator) AlertMapChart(report models.ConditionsReport) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "460px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Alerts Near Map Center",
			Subtitle: fmt.Sprintf("Centered on %.4f, %.4f", report.Coordinate.Latitude, report.Coordinate.Longitude),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  "Longitude",
			Type:  "value",
			Scale: true,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Latitude",
			Type:  "value",
			Scale: true,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: true,
		}),
	)

	var activeFires, otherAlerts []opts.ScatterData
	for _, alert := range report.Alerts {
		point := opts.ScatterData{
			Name:  string(alert.Category),
			Value: []interface{}{alert.Coordinate.Longitude, alert.Coordinate.Latitude},
		}
		if alert.IsActiveFire() {
			activeFires = append(activeFires, point)
		} else {
			otherAlerts = append(otherAlerts, point)
		}
	}
	center := []opts.ScatterData{{
		Name:  "map center",
		Value: []interface{}{report.Coordinate.Longitude, report.Coordinate.Latitude},
	}}

	scatter.AddSeries("Active Fires", activeFires).
		AddSeries("Other Alerts", otherAlerts).
		AddSeries("Map Center", center)

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WindGaugeSnippet builds an ECharts gauge for the current wind speed,
// marking the thresholds the synthetic alert rules use.
func (cg *ChartGenerator) WindGaugeSnippet(snap *models.WeatherSnapshot) (ChartSnippet, error) {
	if snap == nil {
		return ChartSnippet{}, fmt.Errorf("snapshot cannot be nil")
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{
			"formatter": "{a} <br/>{b} : {c} m/s",
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":        "Wind",
				"type":        "gauge",
				"min":         0,
				"max":         40,
				"splitNumber": 8,
				"radius":      "80%",
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 18,
						"color": [][]interface{}{
							{0.25, "#28a745"}, // 0-10: calm
							{0.5, "#ffc107"},  // 10-20: fire-risk contributor
							{1.0, "#dc3545"},  // above 20: high wind alert
						},
					},
				},
				"detail": map[string]interface{}{
					"formatter": "{value} m/s",
				},
				"data": []interface{}{
					map[string]interface{}{
						"value": snap.WindSpeed,
						"name":  "Wind Speed",
					},
				},
			},
		},
	}

	return renderOptionSnippet("chart-wind-gauge", "Wind Speed", 420, 320, option)
}
