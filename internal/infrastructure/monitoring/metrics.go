package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mealwise"

// Metrics handles Prometheus metrics collection. Each instance owns its
// registry so tests and multiple servers never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Catalog metrics
	catalogRecipes      prometheus.Gauge
	catalogLoadsTotal   *prometheus.CounterVec
	catalogLoadDuration prometheus.Histogram

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetrics creates a new metrics collector with Go and process collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		catalogRecipes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_recipes",
			Help:      "Number of unique recipes in the active catalog",
		}),
		catalogLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_loads_total",
				Help:      "Total number of catalog loads by result",
			},
			[]string{"result"},
		),
		catalogLoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_load_duration_seconds",
			Help:      "Time spent building the catalog index",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),

		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Total number of profile cache operations",
			},
			[]string{"operation", "result"},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its release func
func (m *Metrics) TrackInFlight() func() {
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

// RecordCatalogLoad records the outcome of a catalog (re)load
func (m *Metrics) RecordCatalogLoad(count int, duration time.Duration, err error) {
	m.catalogLoadDuration.Observe(duration.Seconds())
	if err != nil {
		m.catalogLoadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.catalogLoadsTotal.WithLabelValues("success").Inc()
	m.catalogRecipes.Set(float64(count))
}

// RecordCacheOperation records a cache operation by result
func (m *Metrics) RecordCacheOperation(operation, result string) {
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}
