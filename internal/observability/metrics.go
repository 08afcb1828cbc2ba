package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	// Upstream dataset fetches.
	FetchRequests     *prometheus.CounterVec   // labels: dataset={earthquakes,plates}, outcome={success,error}
	FetchDuration     *prometheus.HistogramVec // labels: dataset
	MalformedFeatures *prometheus.CounterVec   // labels: dataset

	// Composition.
	MarkersRendered prometheus.Counter
	BoundaryLines   prometheus.Gauge
	ViewsComposed   *prometheus.CounterVec // labels: status={complete,degraded}

	// Publishing.
	MarkersPublished prometheus.Counter
	PublishRuns      *prometheus.CounterVec // labels: outcome={success,error}
	PublishRunning   prometheus.Gauge

	TileTokenValid prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.MalformedFeatures,
		m.MarkersRendered,
		m.BoundaryLines,
		m.ViewsComposed,
		m.MarkersPublished,
		m.PublishRuns,
		m.PublishRunning,
		m.TileTokenValid,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "fetch_requests_total",
			Help:      help("Upstream GeoJSON fetches by dataset and outcome."),
		}, []string{"dataset", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "fetch_duration_seconds",
			Help:      help("Upstream GeoJSON fetch duration in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"dataset"}),
		MalformedFeatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "malformed_features_total",
			Help:      help("Features skipped because they could not be decoded."),
		}, []string{"dataset"}),
		MarkersRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "markers_rendered_total",
			Help:      help("Earthquake markers placed on composed views."),
		}),
		BoundaryLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "plate_boundary_lines",
			Help:      help("Number of plate boundary lines in the last successful fetch."),
		}),
		ViewsComposed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "views_composed_total",
			Help:      help("Map views composed, by whether any layer degraded."),
		}, []string{"status"}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "markers_published_total",
			Help:      help("Styled markers written to the Kafka topic."),
		}),
		PublishRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "publish_runs_total",
			Help:      help("Fetch-style-publish cycles by outcome."),
		}, []string{"outcome"}),
		PublishRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "publish_running",
			Help:      help("1 while the marker publisher loop is running."),
		}),
		TileTokenValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "tile_token_valid",
			Help:      help("1 when the last Mapbox token check succeeded, 0 otherwise."),
		}),
	}
}
