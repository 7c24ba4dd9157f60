// Package metrics exposes Prometheus collectors for the movie catalog service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	movieMutationsTotal        *prometheus.CounterVec
	validationFailuresTotal    *prometheus.CounterVec
	webhookSyncsTotal          *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)

		movieMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movie_mutations_total",
				Help: "Total number of successful catalog writes, labeled by operation.",
			},
			[]string{"op"},
		)

		validationFailuresTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "movie_validation_failures_total",
				Help: "Total number of rejected movie forms, labeled by the failing check.",
			},
			[]string{"reason"},
		)

		webhookSyncsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_syncs_total",
				Help: "Total number of deploy webhook runs, labeled by result.",
			},
			[]string{"result"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveMovieMutation counts a successful create, update or delete.
func ObserveMovieMutation(op string) {
	if movieMutationsTotal == nil {
		return
	}
	movieMutationsTotal.WithLabelValues(op).Inc()
}

// ObserveValidationFailure counts a rejected form submission.
func ObserveValidationFailure(reason string) {
	if validationFailuresTotal == nil {
		return
	}
	validationFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveWebhookSync counts a webhook run by result ("ok", "error", "throttled", "unauthorized").
func ObserveWebhookSync(result string) {
	if webhookSyncsTotal == nil {
		return
	}
	webhookSyncsTotal.WithLabelValues(result).Inc()
}
