package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Snapshot metrics
	SnapshotRefreshTotal    *prometheus.CounterVec
	SnapshotRefreshDuration prometheus.Histogram
	SnapshotAge             prometheus.Gauge

	// Table query metrics
	TableQueriesTotal *prometheus.CounterVec
	TableQueryRows    prometheus.Histogram

	// Export metrics
	ExportsTotal    *prometheus.CounterVec
	ExportDuration  *prometheus.HistogramVec
	ExportsInFlight prometheus.Gauge
	ExportBytes     *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		SnapshotRefreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_refresh_total",
				Help: "Total number of snapshot regenerations",
			},
			[]string{"status", "trigger"},
		),

		SnapshotRefreshDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "snapshot_refresh_duration_seconds",
				Help:    "Snapshot regeneration duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		SnapshotAge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapshot_age_seconds",
				Help: "Age of the current snapshot in seconds at last publish",
			},
		),

		TableQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "table_queries_total",
				Help: "Total number of campaign table queries",
			},
			[]string{"sorted", "filtered"},
		),

		TableQueryRows: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "table_query_rows",
				Help:    "Number of rows matched per table query before pagination",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),

		ExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exports_total",
				Help: "Total number of export requests",
			},
			[]string{"format", "status"},
		),

		ExportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "export_duration_seconds",
				Help:    "Export duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),

		ExportsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "exports_in_flight",
				Help: "Number of exports currently being produced",
			},
		),

		ExportBytes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "export_bytes",
				Help:    "Size of produced export documents in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"format"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Snapshot regeneration metrics
func (m *Metrics) RecordSnapshotRefresh(status, trigger string, duration time.Duration) {
	m.SnapshotRefreshTotal.WithLabelValues(status, trigger).Inc()
	m.SnapshotRefreshDuration.Observe(duration.Seconds())
}

// Age of the snapshot being replaced
func (m *Metrics) RecordSnapshotAge(age time.Duration) {
	m.SnapshotAge.Set(age.Seconds())
}

// Table query metrics
func (m *Metrics) RecordTableQuery(sorted, filtered bool, matchedRows int) {
	m.TableQueriesTotal.WithLabelValues(boolLabel(sorted), boolLabel(filtered)).Inc()
	m.TableQueryRows.Observe(float64(matchedRows))
}

// Export metrics
func (m *Metrics) RecordExport(format, status string, duration time.Duration) {
	m.ExportsTotal.WithLabelValues(format, status).Inc()
	m.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// Export payload size
func (m *Metrics) RecordExportBytes(format string, size int) {
	m.ExportBytes.WithLabelValues(format).Observe(float64(size))
}

// Exports in flight counter
func (m *Metrics) IncExportsInFlight() {
	m.ExportsInFlight.Inc()
}

// Exports in flight counter
func (m *Metrics) DecExportsInFlight() {
	m.ExportsInFlight.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
