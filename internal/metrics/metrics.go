// Package metrics holds the Prometheus collectors shared by the resolver
// service, the placeholder decoder and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinoart_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kinoart_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kinoart_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Image selection metrics
var (
	ImageSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinoart_image_selections_total",
			Help: "Total number of image selections by matched rule",
		},
		[]string{"rule"},
	)

	ItemCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinoart_item_cache_lookups_total",
			Help: "Total number of item cache lookups",
		},
		[]string{"result"}, // "hit" or "miss"
	)
)

// Placeholder metrics
var (
	PlaceholderDecodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kinoart_placeholder_decodes_total",
			Help: "Total number of blurhash decodes",
		},
		[]string{"status"}, // "ok", "invalid", "canceled"
	)

	PlaceholderDecodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kinoart_placeholder_decode_duration_seconds",
			Help:    "Blurhash decode duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	PlaceholderWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kinoart_placeholder_workers",
			Help: "Number of running blurhash decode workers",
		},
	)
)
