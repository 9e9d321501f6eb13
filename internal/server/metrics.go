package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type requestMetrics struct {
	registry *prometheus.Registry
	duration *prometheus.SummaryVec
	active   prometheus.Gauge
}

// Each server owns its registry so repeated Init calls don't collide.
func newRequestMetrics() *requestMetrics {
	m := &requestMetrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: "webook",
			Subsystem: "users",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of served requests",
			Objectives: map[float64]float64{
				0.5:  0.01,
				0.9:  0.01,
				0.99: 0.001,
			},
		}, []string{"method", "pattern", "status"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "webook",
			Subsystem: "users",
			Name:      "active_requests",
			Help:      "Requests being served right now",
		}),
	}

	m.registry.MustRegister(m.duration, m.active)
	return m
}

func (m *requestMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.active.Inc()
		defer func() {
			m.active.Dec()
			pattern := c.FullPath()
			if pattern == "" {
				pattern = "unknown"
			}
			m.duration.
				WithLabelValues(c.Request.Method, pattern, strconv.Itoa(c.Writer.Status())).
				Observe(time.Since(start).Seconds())
		}()
		c.Next()
	}
}

func (m *requestMetrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
