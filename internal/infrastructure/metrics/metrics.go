// Package metrics exposes Prometheus metrics for conversions, the generation
// client and the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invacc/internal/core/types"
	"invacc/internal/domain/conversion"
)

// Metrics holds all service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Conversion metrics
	ConversionsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	AllocatedAmount    prometheus.Counter

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
}

// Config holds metrics configuration.
type Config struct {
	Namespace string
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{Namespace: "invacc"}
}

// New creates and registers all metrics.
func New(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	m.ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "conversions_total",
			Help:      "Conversions by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	m.GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of remote journal entry generation",
			Buckets:   []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"outcome"},
	)

	m.AllocatedAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "allocated_amount_total",
			Help:      "Sum of amounts allocated to inventory documents, in rials",
		},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ConversionsTotal,
		m.GenerationDuration,
		m.AllocatedAmount,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ConversionFinished implements conversion.Observer.
func (m *Metrics) ConversionFinished(mode conversion.Mode, outcome string) {
	m.ConversionsTotal.WithLabelValues(string(mode), outcome).Inc()
}

// Allocated implements conversion.Observer.
func (m *Metrics) Allocated(amount types.Money) {
	if !amount.IsPositive() {
		return
	}
	m.AllocatedAmount.Add(amount.InexactFloat64())
}

// ObserveGeneration records one remote generation call.
func (m *Metrics) ObserveGeneration(outcome string, duration time.Duration) {
	m.GenerationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// SetCircuitBreakerState implements resilience.StateReporter.
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

var _ conversion.Observer = (*Metrics)(nil)
