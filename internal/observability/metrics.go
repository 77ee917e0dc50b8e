package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "road_safety"

// Metrics holds the Prometheus counters, histograms, and gauges for report
// generation and the read-only API.
type Metrics struct {
	RecordsLoaded   prometheus.Counter
	MalformedFields *prometheus.CounterVec // labels: field

	// Report generation metrics.
	ReportsWritten       *prometheus.CounterVec // labels: report
	ReportWriteFailures  *prometheus.CounterVec // labels: report
	RunDuration          prometheus.Histogram
	LastSuccessTimestamp prometheus.Gauge

	// Notification metrics.
	NotificationsPublished *prometheus.CounterVec // labels: outcome={success,error}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge

	// API metrics.
	ReportRequests *prometheus.CounterVec // labels: report, status
	Predictions    *prometheus.CounterVec // labels: outcome={success,error,unavailable,invalid}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics and registers them with reg. Batch runs
// use a dedicated registry so only their own series are pushed.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.RecordsLoaded,
		m.MalformedFields,
		m.ReportsWritten,
		m.ReportWriteFailures,
		m.RunDuration,
		m.LastSuccessTimestamp,
		m.NotificationsPublished,
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.ReportRequests,
		m.Predictions,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Accident records read from the source dataset.",
		}),
		MalformedFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_fields_total",
			Help:      "Dataset cells that were present but could not be coerced, by column.",
		}, []string{"field"}),
		ReportsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Report artifacts written successfully.",
		}, []string{"report"}),
		ReportWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_write_failures_total",
			Help:      "Report artifacts that failed to write.",
		}, []string{"report"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load, aggregate and write run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		LastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote every artifact.",
		}),
		NotificationsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_published_total",
			Help:      "Report notifications sent to Kafka by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when hotspot geocoding is enabled, 0 otherwise.",
		}),
		ReportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_requests_total",
			Help:      "Report API requests by report and status code.",
		}, []string{"report", "status"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Severity predictions by outcome.",
		}, []string{"outcome"}),
	}
}
