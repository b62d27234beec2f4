// Package middleware holds the gin middleware shared by every route: request
// logging, Prometheus metrics, per-client rate limiting and the basic auth
// guarding /metrics.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the collectors and the registry they live in.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	exportsTotal    *prometheus.CounterVec
	generations     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meme_exports_total",
				Help: "Meme exports by outcome",
			},
			[]string{"outcome"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caption_generations_total",
				Help: "Caption generation requests by outcome",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.exportsTotal,
		m.generations,
		collectors.NewGoCollector(),
	)
	return m
}

// Middleware records every request. Routes are labelled by their pattern so
// ids in paths do not explode the label set.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveExport counts an export; outcome is "ok", "busy" or "error".
func (m *Metrics) ObserveExport(outcome string) { m.exportsTotal.WithLabelValues(outcome).Inc() }

// ObserveGeneration counts a caption generation by outcome.
func (m *Metrics) ObserveGeneration(outcome string) { m.generations.WithLabelValues(outcome).Inc() }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// BasicAuth protects a route with a single account. Empty credentials leave
// the route open.
func BasicAuth(user, pass string) gin.HandlerFunc {
	if user == "" || pass == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return gin.BasicAuthForRealm(gin.Accounts{user: pass}, "Metrics")
}
