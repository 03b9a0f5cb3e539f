// Package observability holds the Prometheus metrics of the session pipeline.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "physio"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the counters and histograms of session generation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// SessionsTotal counts CreateSession calls by outcome and error kind ("" on success).
	SessionsTotal *prometheus.CounterVec
	// SessionDurationSeconds measures a whole CreateSession call.
	SessionDurationSeconds prometheus.Histogram
	// GenerationsTotal counts plan generations by generator (ai, fallback) and outcome.
	GenerationsTotal *prometheus.CounterVec
	// GenerationDurationSeconds measures a single generator call.
	GenerationDurationSeconds *prometheus.HistogramVec
	// ErrorLogWritesTotal counts generation error log writes by code and whether the write worked.
	ErrorLogWritesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics on reg.
// Pass prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "sessions",
				Name:      "created_total",
				Help:      "Session creation attempts by outcome and error kind",
			},
			[]string{"outcome", "error_kind"},
		),
		SessionDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "sessions",
				Name:      "create_duration_seconds",
				Help:      "Duration of session creation including plan generation",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
			},
		),
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "plans",
				Name:      "generations_total",
				Help:      "Training plan generations by generator and outcome",
			},
			[]string{"generator", "outcome", "stage"},
		),
		GenerationDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "plans",
				Name:      "generation_duration_seconds",
				Help:      "Duration of a single generator call",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"generator"},
		),
		ErrorLogWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "generation_error_logs",
				Name:      "writes_total",
				Help:      "Generation error log writes by code and result",
			},
			[]string{"code", "result"},
		),
	}
}

// ObserveSession records one CreateSession call. errorKind is empty on success.
func (m *Metrics) ObserveSession(errorKind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if errorKind != "" {
		outcome = OutcomeFailure
	}
	m.SessionsTotal.WithLabelValues(outcome, errorKind).Inc()
	m.SessionDurationSeconds.Observe(elapsed.Seconds())
}

// ObserveGeneration records one generator call. stage is empty on success.
func (m *Metrics) ObserveGeneration(generator, stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if stage != "" {
		outcome = OutcomeFailure
	}
	m.GenerationsTotal.WithLabelValues(generator, outcome, stage).Inc()
	m.GenerationDurationSeconds.WithLabelValues(generator).Observe(elapsed.Seconds())
}

// ObserveErrorLogWrite records a generation error log write.
func (m *Metrics) ObserveErrorLogWrite(code string, err error) {
	if m == nil {
		return
	}
	result := OutcomeSuccess
	if err != nil {
		result = OutcomeFailure
	}
	m.ErrorLogWritesTotal.WithLabelValues(code, result).Inc()
}
