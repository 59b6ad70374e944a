package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ScoringMetrics records operational metrics for the scoring module. Service
// code depends on this interface so tests can run with NoOpMetrics.
type ScoringMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, gameID sharedtypes.GameID)
	RecordOperationSuccess(ctx context.Context, operation string, gameID sharedtypes.GameID)
	RecordOperationFailure(ctx context.Context, operation string, gameID sharedtypes.GameID)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordDBQueryDuration(ctx context.Context, duration time.Duration)
	RecordHolesScored(ctx context.Context, gameID sharedtypes.GameID, holes int)
	RecordInvalidationsDetected(ctx context.Context, gameID sharedtypes.GameID, count int)
}

type prometheusMetrics struct {
	operationAttempts     *prometheus.CounterVec
	operationSuccesses    *prometheus.CounterVec
	operationFailures     *prometheus.CounterVec
	operationDuration     *prometheus.HistogramVec
	dbQueryDuration       prometheus.Histogram
	holesScored           prometheus.Histogram
	invalidationsDetected prometheus.Counter
}

// NewScoringMetrics registers the scoring metric vectors on the registry.
func NewScoringMetrics(reg prometheus.Registerer) ScoringMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "looper_scoring_operation_attempts_total",
			Help: "Number of scoring service operations started.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "looper_scoring_operation_successes_total",
			Help: "Number of scoring service operations that succeeded.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "looper_scoring_operation_failures_total",
			Help: "Number of scoring service operations that failed.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "looper_scoring_operation_duration_seconds",
			Help:    "Duration of scoring service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		dbQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "looper_scoring_db_query_duration_seconds",
			Help:    "Duration of scoring repository queries.",
			Buckets: prometheus.DefBuckets,
		}),
		holesScored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "looper_scoring_holes_scored",
			Help:    "Fully scored holes per scoreboard computation.",
			Buckets: []float64{0, 3, 6, 9, 12, 15, 18},
		}),
		invalidationsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "looper_scoring_invalidations_detected_total",
			Help: "Recorded decisions invalidated by score edits.",
		}),
	}
	reg.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.dbQueryDuration,
		m.holesScored,
		m.invalidationsDetected,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string, _ sharedtypes.GameID) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation string, _ sharedtypes.GameID) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string, _ sharedtypes.GameID) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordDBQueryDuration(_ context.Context, duration time.Duration) {
	m.dbQueryDuration.Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordHolesScored(_ context.Context, _ sharedtypes.GameID, holes int) {
	m.holesScored.Observe(float64(holes))
}

func (m *prometheusMetrics) RecordInvalidationsDetected(_ context.Context, _ sharedtypes.GameID, count int) {
	m.invalidationsDetected.Add(float64(count))
}

// NoOpMetrics discards all measurements. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, sharedtypes.GameID) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, sharedtypes.GameID) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, sharedtypes.GameID) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordDBQueryDuration(context.Context, time.Duration)           {}
func (NoOpMetrics) RecordHolesScored(context.Context, sharedtypes.GameID, int)     {}

func (NoOpMetrics) RecordInvalidationsDetected(context.Context, sharedtypes.GameID, int) {}
