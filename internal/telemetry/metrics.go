package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP requests by method, endpoint, status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bragi_api_requests_total",
		Help: "Total HTTP API requests.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency in seconds.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bragi_api_request_duration_seconds",
		Help:    "HTTP API request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections gauges in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bragi_api_active_connections",
		Help: "In-flight HTTP API requests.",
	})

	// CurationRequestsTotal counts engine calls by operation and outcome.
	CurationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bragi_curation_requests_total",
		Help: "Curation engine calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	// CurationResultSize observes how many tracks each call returned.
	CurationResultSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bragi_curation_result_tracks",
		Help:    "Tracks returned per curation call.",
		Buckets: []float64{0, 1, 5, 10, 15, 25, 50, 100},
	}, []string{"operation"})

	// CatalogTracks gauges the loaded catalog size.
	CatalogTracks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bragi_catalog_tracks",
		Help: "Tracks in the loaded catalog.",
	})
)

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCuration records one engine call.
func ObserveCuration(operation, outcome string, resultCount int) {
	CurationRequestsTotal.WithLabelValues(operation, outcome).Inc()
	if outcome == "ok" {
		CurationResultSize.WithLabelValues(operation).Observe(float64(resultCount))
	}
}
