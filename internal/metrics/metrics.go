// Package metrics exposes Prometheus collectors for the computation engine,
// the catalog state and the HTTP API.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Operation results.
const (
	ResultOK           = "ok"
	ResultInvalidInput = "invalid_input"
	ResultError        = "error"
)

var (
	// Engine Metrics
	EngineOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starmap_engine_operations_total",
			Help: "Total engine computations by operation and result",
		},
		[]string{"operation", "result"},
	)

	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starmap_engine_duration_seconds",
			Help:    "Duration of engine computations in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"operation"},
	)

	// Catalog Metrics
	CatalogStars = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_catalog_stars",
			Help: "Number of stars in the loaded catalog",
		},
	)

	CatalogTerritories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_catalog_territories",
			Help: "Number of synthesized territories",
		},
	)

	TerritoryRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starmap_territory_recomputes_total",
			Help: "Total wholesale territory recomputations",
		},
	)

	EventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starmap_events_dropped_total",
			Help: "Territory events not delivered to a lagging subscriber",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starmap_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starmap_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_api_active_requests",
			Help: "Number of API requests in flight",
		},
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_stream_clients",
			Help: "Number of connected event stream clients",
		},
	)
)

// RecordOperation records one engine computation.
func RecordOperation(operation string, duration time.Duration, err error) {
	EngineDuration.WithLabelValues(operation).Observe(duration.Seconds())
	EngineOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, astro.ErrInvalidInput):
		return ResultInvalidInput
	default:
		return ResultError
	}
}

// SetCatalogSize updates the catalog gauges.
func SetCatalogSize(stars, territories int) {
	CatalogStars.Set(float64(stars))
	CatalogTerritories.Set(float64(territories))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
