package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusAdapter struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
}

// NewPrometheusAdapter uses its own registry so several adapters can coexist in tests.
func NewPrometheusAdapter() *PrometheusAdapter {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a := &PrometheusAdapter{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_console_http_requests_total",
			Help: "Console HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_console_http_request_duration_seconds",
			Help:    "Console HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_console_api_requests_total",
			Help: "Requests sent to the fleet API by path and status. Status 0 is a transport failure.",
		}, []string{"method", "path", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_console_api_request_duration_seconds",
			Help:    "Fleet API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(a.httpRequests, a.httpDuration, a.apiRequests, a.apiDuration)
	return a
}

func (a *PrometheusAdapter) RecordMetrics(c *gin.Context, start time.Time) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	method := c.Request.Method
	a.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	a.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

func (a *PrometheusAdapter) RecordAPICall(method, path string, status int, start time.Time) {
	a.apiRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	a.apiDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}

func (a *PrometheusAdapter) Handler() http.Handler {
	return promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry})
}

// Middleware records every console request.
func (a *PrometheusAdapter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.RecordMetrics(c, start)
	}
}
