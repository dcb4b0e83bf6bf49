// Package metrics exposes Prometheus metrics for the web app.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	OrdersPlaced  prometheus.Counter
	CartAdds      prometheus.Counter
	ForumPosts    prometheus.Counter
	ForumReplies  prometheus.Counter
	Logins        *prometheus.CounterVec
	AssistantCall *prometheus.CounterVec
	BackendCalls  *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders stored in the backend",
		}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_adds_total",
			Help:      "Total number of add-to-cart operations",
		}),
		ForumPosts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forum_posts_total",
			Help:      "Total number of forum posts",
		}),
		ForumReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forum_replies_total",
			Help:      "Total number of forum replies",
		}),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		AssistantCall: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assistant_requests_total",
				Help:      "Generative AI requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		BackendCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Hosted backend calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.OrdersPlaced, c.CartAdds, c.ForumPosts, c.ForumReplies,
		c.Logins, c.AssistantCall, c.BackendCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// RegisterSessionGauge exposes the live session count.
func (c *Collector) RegisterSessionGauge(namespace string, count func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live browser sessions",
		},
		func() float64 { return float64(count()) },
	))
}

// Registry returns the registry metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// Middleware records request count and latency per route template.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
