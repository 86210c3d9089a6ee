// Package metrics exposes Prometheus metrics for the content-scrape service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP surface metrics.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Business metrics.
	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_triggers_total",
			Help: "Total number of workflow scrape triggers by outcome",
		},
		[]string{"outcome"},
	)

	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scrape_trigger_duration_seconds",
			Help:    "Workflow scrape trigger duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HookGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hook_generations_total",
			Help: "Total number of hook generation calls by outcome",
		},
		[]string{"outcome"},
	)

	ToastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toasts_emitted_total",
			Help: "Total number of toasts emitted by kind",
		},
		[]string{"kind"},
	)

	EventStreamConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_stream_connections_active",
			Help: "Number of active dashboard event stream connections",
		},
	)
)

// Outcome labels for ScrapesTotal and HookGenerationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
