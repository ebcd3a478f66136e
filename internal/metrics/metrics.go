package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	paymentsTotal   *prometheus.CounterVec
	paymentDuration prometheus.Histogram
	ordersCreated   prometheus.Counter
	eventsPublished *prometheus.CounterVec
}

// New registers the service collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easyshop_http_requests_total",
				Help: "Total HTTP requests by method, path and status.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "easyshop_http_request_duration_seconds",
				Help:    "HTTP request latency by method and path.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		paymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easyshop_payments_total",
				Help: "Payment initiations by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		paymentDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "easyshop_payment_initiation_duration_seconds",
				Help:    "End-to-end payment initiation latency.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		ordersCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "easyshop_orders_created_total",
				Help: "Total orders created.",
			},
		),
		eventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "easyshop_events_published_total",
				Help: "Domain events published by type.",
			},
			[]string{"event_type"},
		),
	}
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.requestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// ObservePayment records one payment initiation attempt.
func (m *Metrics) ObservePayment(provider, outcome string, elapsed time.Duration) {
	m.paymentsTotal.WithLabelValues(provider, outcome).Inc()
	m.paymentDuration.Observe(elapsed.Seconds())
}

// OrderCreated increments the order creation counter.
func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

// EventPublished increments the published-event counter.
func (m *Metrics) EventPublished(eventType string) {
	m.eventsPublished.WithLabelValues(eventType).Inc()
}
