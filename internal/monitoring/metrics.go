package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "motorscreen"
	metricsSubsystem = "api"
)

// Metrics holds the Prometheus instruments for the service
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	assessmentsScored *prometheus.CounterVec
	riskLevels        *prometheus.CounterVec
	scoringDuration   *prometheus.HistogramVec
	scoringErrors     *prometheus.CounterVec

	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	rateLimitBlocks prometheus.Counter

	startTime time.Time
}

// NewMetrics creates a metrics instance backed by its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),
	}

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	m.assessmentsScored = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "assessments_scored_total",
			Help:      "Total number of scored assessments by modality and status",
		},
		[]string{"modality", "status"},
	)

	m.riskLevels = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "risk_levels_total",
			Help:      "Total number of risk classifications by modality and level",
		},
		[]string{"modality", "risk_level"},
	)

	m.scoringDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "scoring_duration_milliseconds",
			Help:      "Scoring pipeline duration in milliseconds by modality",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		},
		[]string{"modality"},
	)

	m.scoringErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "scoring_errors_total",
			Help:      "Total number of rejected scoring requests by modality",
		},
		[]string{"modality"},
	)

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of response cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of response cache misses",
	})

	m.rateLimitBlocks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "rate_limit_blocks_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})

	return m
}

// RecordRequest records a completed HTTP request
func (m *Metrics) RecordRequest(endpoint, method string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method).
		Observe(float64(duration.Nanoseconds()) / 1e6)
}

// RecordAssessment records a scored assessment result
func (m *Metrics) RecordAssessment(modality, status, riskLevel string, duration time.Duration) {
	m.assessmentsScored.WithLabelValues(modality, status).Inc()
	m.riskLevels.WithLabelValues(modality, riskLevel).Inc()
	m.scoringDuration.WithLabelValues(modality).
		Observe(float64(duration.Nanoseconds()) / 1e6)
}

// RecordScoringError records a rejected scoring request
func (m *Metrics) RecordScoringError(modality string) {
	m.scoringErrors.WithLabelValues(modality).Inc()
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	m.cacheHits.Inc()
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	m.cacheMisses.Inc()
}

// IncrementRateLimitBlock increments the rate limiter rejection count
func (m *Metrics) IncrementRateLimitBlock() {
	m.rateLimitBlocks.Inc()
}

// Uptime reports how long the service has been running
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// Handler exposes the registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
