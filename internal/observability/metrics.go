package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh cycle.
type Metrics struct {
	FetchTotal       *prometheus.CounterVec // labels: source={feed,wildfire,weather}, outcome={success,error}
	AlertsCollected  *prometheus.CounterVec // labels: source
	RefreshDuration  prometheus.Histogram
	RefreshesDropped prometheus.Counter
	RefreshInFlight  prometheus.Gauge
}

// NewMetrics creates and registers all refresh metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchTotal,
		m.AlertsCollected,
		m.RefreshDuration,
		m.RefreshesDropped,
		m.RefreshInFlight,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct as many instances as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildwatch",
			Name:      "fetch_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		AlertsCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildwatch",
			Name:      "alerts_collected_total",
			Help:      "Alerts appended to the list by source.",
		}, []string{"source"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildwatch",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete refresh cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RefreshesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildwatch",
			Name:      "refreshes_dropped_total",
			Help:      "Refresh requests dropped because one was already in flight.",
		}),
		RefreshInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildwatch",
			Name:      "refresh_in_flight",
			Help:      "1 while a refresh cycle is running, 0 otherwise.",
		}),
	}
}
