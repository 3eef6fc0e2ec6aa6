// Package observability exposes Prometheus metrics for the band
// services.
package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"method", "route", "status"},
	)

	selectQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "band_select_queries_total",
			Help: "Filter selection queries by direction and outcome.",
		},
		[]string{"direction", "outcome"},
	)

	selectCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "band_select_cache_results_total",
			Help: "Select response cache results by outcome.",
		},
		[]string{"outcome"},
	)

	tableEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "band_table_entries",
			Help: "Number of entries in the compiled filter band table.",
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary (value is always 1).",
		},
		[]string{"version"},
	)
)

// Outcomes reported by ObserveSelect.
const (
	OutcomeMatch    = "match"
	OutcomeWideband = "wideband"
	OutcomeNone     = "none"
)

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func ObserveSelect(direction, outcome string) {
	selectQueriesTotal.WithLabelValues(direction, outcome).Inc()
}

func IncCacheHit()  { selectCacheResults.WithLabelValues("hit").Inc() }
func IncCacheMiss() { selectCacheResults.WithLabelValues("miss").Inc() }

func SetTableEntries(n int) { tableEntries.Set(float64(n)) }

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
