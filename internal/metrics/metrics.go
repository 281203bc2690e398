package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	scansTotal          *prometheus.CounterVec
	scanDuration        prometheus.Histogram
	adapterAttempts     *prometheus.CounterVec
}

// New creates a fresh Metrics registry with HTTP and scan metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wifiscan",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by core-go",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wifiscan",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by core-go",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	scansTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wifiscan",
		Name:      "scans_total",
		Help:      "Total number of discovery chain invocations by outcome",
	}, []string{"outcome"})

	scanDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wifiscan",
		Name:      "scan_duration_seconds",
		Help:      "Duration of discovery chain invocations from start to finish",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})

	adapterAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wifiscan",
		Name:      "adapter_attempts_total",
		Help:      "Adapter attempts by adapter and result",
	}, []string{"adapter", "result"})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		scansTotal,
		scanDuration,
		adapterAttempts,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		scansTotal:          scansTotal,
		scanDuration:        scanDuration,
		adapterAttempts:     adapterAttempts,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// ObserveScan records one finished discovery chain invocation.
func (m *Metrics) ObserveScan(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.scansTotal.WithLabelValues(outcome).Inc()
	m.scanDuration.Observe(duration.Seconds())
}

// IncAdapterAttempt counts one adapter attempt.
func (m *Metrics) IncAdapterAttempt(adapter, result string) {
	if m == nil {
		return
	}
	m.adapterAttempts.WithLabelValues(adapter, result).Inc()
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
