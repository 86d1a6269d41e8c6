// Package metrics exposes prometheus instruments for the HTTP surface and
// the storefront retrieval client.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	upstreamCalls   *prometheus.CounterVec
	upstreamRetries prometheus.Counter
	reportCompute   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storewatch_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storewatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storewatch_shopwire_requests_total",
			Help: "Shopwire API requests by resource and status code.",
		}, []string{"resource", "status"}),
		upstreamRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storewatch_shopwire_rate_limit_retries_total",
			Help: "Retries after Shopwire rate-limit responses.",
		}),
		reportCompute: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storewatch_report_compute_seconds",
			Help:    "Report recomputation time by report kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"report"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.upstreamCalls,
		m.upstreamRetries,
		m.reportCompute,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveUpstream(resource string, status int) {
	m.upstreamCalls.WithLabelValues(resource, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveRetry() {
	m.upstreamRetries.Inc()
}

func (m *Metrics) TimeReport(report string) func() {
	start := time.Now()
	return func() {
		m.reportCompute.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}

// GinMiddleware records request counts and latency per route template.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
