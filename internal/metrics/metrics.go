// Package metrics exposes request and provider-call metrics for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway collectors and their registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	ProviderCalls    *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "artisan",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route and status code",
			},
			[]string{"endpoint", "status"},
		),

		ProviderCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "artisan",
				Subsystem: "provider",
				Name:      "calls_total",
				Help:      "Total number of provider calls (outcome=success|error)",
			},
			[]string{"provider", "operation", "outcome"},
		),

		ProviderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "artisan",
				Subsystem: "provider",
				Name:      "call_duration_seconds",
				Help:      "Provider call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		),
	}

	m.registry.MustRegister(m.RequestsTotal, m.ProviderCalls, m.ProviderDuration)
	return m
}

// ObserveProviderCall records one provider call that started at start.
func (m *Metrics) ObserveProviderCall(provider, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.ProviderCalls.WithLabelValues(provider, operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
}

// Middleware counts requests by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if m == nil {
			return
		}
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
