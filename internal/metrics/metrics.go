// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names
const (
	MetricRecommendationRuns       = "cuppa_recommendation_runs_total"
	MetricRecommendationDuration   = "cuppa_recommendation_duration_seconds"
	MetricRecommendationCandidates = "cuppa_recommendation_candidates"
	MetricRecommendationCache      = "cuppa_recommendation_cache_total"
	MetricHTTPRequestsTotal        = "cuppa_http_requests_total"
	MetricHTTPRequestDuration      = "cuppa_http_request_duration_seconds"
)

// Recommendation kinds
const (
	KindPersonal = "personal"
	KindQuiz     = "quiz"
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Cache results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the service's collectors. All operations are safe for
// concurrent use.
type Metrics struct {
	recommendationRuns       *prometheus.CounterVec
	recommendationDuration   *prometheus.HistogramVec
	recommendationCandidates *prometheus.HistogramVec
	recommendationCache      *prometheus.CounterVec
	httpRequestsTotal        *prometheus.CounterVec
	httpRequestDuration      *prometheus.HistogramVec
}

// NewMetrics creates unregistered collectors; call Register to expose them.
func NewMetrics() *Metrics {
	return &Metrics{
		recommendationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRecommendationRuns,
				Help: "Recommendation runs by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		recommendationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRecommendationDuration,
				Help:    "Time to load data and rank recommendations in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"kind"},
		),
		recommendationCandidates: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRecommendationCandidates,
				Help:    "Coffees scored per recommendation run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"kind"},
		),
		recommendationCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRecommendationCache,
				Help: "Recommendation cache lookups by result",
			},
			[]string{"result"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Register registers all collectors with reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all collectors
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.recommendationRuns,
		m.recommendationDuration,
		m.recommendationCandidates,
		m.recommendationCache,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	}
}

// ObserveRecommendation records one recommendation run
func (m *Metrics) ObserveRecommendation(kind, outcome string, seconds float64, candidates int) {
	m.recommendationRuns.WithLabelValues(kind, outcome).Inc()
	m.recommendationDuration.WithLabelValues(kind).Observe(seconds)
	if outcome == OutcomeSuccess {
		m.recommendationCandidates.WithLabelValues(kind).Observe(float64(candidates))
	}
}

// IncCache counts a cache lookup result (CacheHit, CacheMiss or CacheError)
func (m *Metrics) IncCache(result string) {
	m.recommendationCache.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records a served request. route is the matched
// ServeMux pattern so cardinality stays bounded.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
