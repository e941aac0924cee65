// Package metrics exposes Prometheus collectors for the SERP intelligence
// service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamFetchesTotal       *prometheus.CounterVec
	fetchPlanAttempts          prometheus.Histogram
	overlayOutcomesTotal       *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		upstreamFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serpintel_upstream_fetches_total",
				Help: "Total search-provider fetches, labeled by market and outcome.",
			},
			[]string{"market", "outcome"},
		)

		fetchPlanAttempts = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "serpintel_fetch_plan_attempts",
				Help:    "Number of query plans executed before an ad fetch resolved.",
				Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
			},
		)

		overlayOutcomesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serpintel_overlay_outcomes_total",
				Help: "AI overlay outcomes, labeled by flow and insight source.",
			},
			[]string{"flow", "source"},
		)

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
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstreamFetch counts one provider fetch.
func ObserveUpstreamFetch(market string, outcome string) {
	upstreamFetchesTotal.WithLabelValues(market, outcome).Inc()
}

// ObservePlanAttempts records how many plans an ad fetch consumed.
func ObservePlanAttempts(n int) {
	fetchPlanAttempts.Observe(float64(n))
}

// ObserveOverlay counts one overlay resolution for a flow.
func ObserveOverlay(flow string, source string) {
	overlayOutcomesTotal.WithLabelValues(flow, source).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Middleware is a chi middleware that records HTTP request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		ObserveHTTPRequest(r.Method, routePattern, ww.status, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
