package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for persistence operations
const (
	ResultOK     = "ok"
	ResultAbsent = "absent"
	ResultError  = "error"
)

// Collector holds all Prometheus metrics for the application.
// A nil *Collector is valid and records nothing.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Persistence metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// Change bus metrics
	Publishes     *prometheus.CounterVec
	HandlerPanics prometheus.Counter

	// Insights metrics
	InsightsRecomputes prometheus.Counter
}

// NewCollector creates a new metrics collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of persistence loads and saves",
		},
		[]string{"operation", "key", "result"},
	)

	storeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Persistence operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "key"},
	)

	publishes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_publishes_total",
			Help:      "Total number of change notifications published",
		},
		[]string{"topic", "origin"},
	)

	handlerPanics := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_handler_panics_total",
			Help:      "Total number of recovered subscriber panics",
		},
	)

	recomputes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_recomputes_total",
			Help:      "Total number of insights snapshots computed",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		storeOperations,
		storeDuration,
		publishes,
		handlerPanics,
		recomputes,
	)

	return &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		StoreOperations:    storeOperations,
		StoreDuration:      storeDuration,
		Publishes:          publishes,
		HandlerPanics:      handlerPanics,
		InsightsRecomputes: recomputes,
	}
}

// ObserveStore records one persistence operation
func (c *Collector) ObserveStore(operation, key, result string, took time.Duration) {
	if c == nil {
		return
	}
	c.StoreOperations.WithLabelValues(operation, key, result).Inc()
	c.StoreDuration.WithLabelValues(operation, key).Observe(took.Seconds())
}

// ObservePublish records one bus publish
func (c *Collector) ObservePublish(topic, origin string) {
	if c == nil {
		return
	}
	c.Publishes.WithLabelValues(topic, origin).Inc()
}

// ObserveHandlerPanic records a recovered subscriber panic
func (c *Collector) ObserveHandlerPanic() {
	if c == nil {
		return
	}
	c.HandlerPanics.Inc()
}

// ObserveRecompute records an insights computation
func (c *Collector) ObserveRecompute() {
	if c == nil {
		return
	}
	c.InsightsRecomputes.Inc()
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route, status string, took time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
