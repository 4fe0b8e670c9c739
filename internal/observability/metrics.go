package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// decision service.
type Metrics struct {
	DecisionsTotal   *prometheus.CounterVec // labels: branch={panic,no_input,emergency,conversation}, priority
	DecisionDuration prometheus.Histogram
	EngineReady      prometheus.Gauge

	// Classifier metrics.
	ClassifierRequests *prometheus.CounterVec   // labels: model={intent,emergency,profile}, outcome={success,error}
	ClassifierDuration *prometheus.HistogramVec // labels: model={intent,emergency,profile}

	// Facility resolver metrics.
	ResolverQueries       *prometheus.CounterVec // labels: kind={nearest}, outcome={success,empty,error}
	AuditRecordsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aura_sentinel",
			Name:      "decisions_total",
			Help:      "Decisions produced by branch and priority.",
		}, []string{"branch", "priority"}),
		DecisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aura_sentinel",
			Name:      "decision_duration_seconds",
			Help:      "End-to-end duration of a decision request.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		EngineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aura_sentinel",
			Name:      "engine_ready",
			Help:      "1 when all decision dependencies are loaded, 0 otherwise.",
		}),
		ClassifierRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aura_sentinel",
			Name:      "classifier_requests_total",
			Help:      "Classifier calls by model and outcome.",
		}, []string{"model", "outcome"}),
		ClassifierDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aura_sentinel",
			Name:      "classifier_duration_seconds",
			Help:      "Classifier call duration by model.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"model"}),
		ResolverQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aura_sentinel",
			Name:      "resolver_queries_total",
			Help:      "Zone and nearest-facility lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
		AuditRecordsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aura_sentinel",
			Name:      "audit_records_published_total",
			Help:      "Decision audit records published by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.DecisionsTotal,
		m.DecisionDuration,
		m.EngineReady,
		m.ClassifierRequests,
		m.ClassifierDuration,
		m.ResolverQueries,
		m.AuditRecordsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DecisionsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aura_sentinel", Name: "decisions_total"}, []string{"branch", "priority"}),
		DecisionDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "aura_sentinel", Name: "decision_duration_seconds"}),
		EngineReady:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "aura_sentinel", Name: "engine_ready"}),
		ClassifierRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aura_sentinel", Name: "classifier_requests_total"}, []string{"model", "outcome"}),
		ClassifierDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "aura_sentinel", Name: "classifier_duration_seconds"}, []string{"model"}),
		ResolverQueries:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aura_sentinel", Name: "resolver_queries_total"}, []string{"kind", "outcome"}),
		AuditRecordsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "aura_sentinel", Name: "audit_records_published_total"}, []string{"outcome"}),
	}
}
