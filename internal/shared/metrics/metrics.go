package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evaluation_started_total",
		Help: "Total evaluations started",
	})
	evaluationCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evaluation_completed_total",
		Help: "Total evaluations scored successfully",
	})
	evaluationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evaluation_failed_total",
		Help: "Total evaluations that failed before a result was stored",
	})

	phrasingStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_started_total",
		Help: "Total phrasing passes started",
	})
	phrasingCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_completed_total",
		Help: "Total phrasing passes completed",
	})
	phrasingFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_failed_total",
		Help: "Total phrasing passes that failed",
	})

	phrasingJobsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_jobs_received_total",
		Help: "Total phrasing jobs received from the queue",
	})
	phrasingJobsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_jobs_completed_total",
		Help: "Total phrasing jobs processed successfully",
	})
	phrasingJobsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_jobs_failed_total",
		Help: "Total phrasing jobs left on the queue for retry",
	})
	phrasingJobsDeletedUnrecoverableTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasing_jobs_deleted_unrecoverable_total",
		Help: "Total phrasing jobs deleted because they can never succeed",
	})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evaluation_duration_ms",
		Help:    "Deterministic evaluation duration in milliseconds",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
	phrasingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phrasing_duration_ms",
		Help:    "Phrasing pass duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

// IncEvaluationStarted increments the started counter.
func IncEvaluationStarted() {
	evaluationStartedTotal.Inc()
}

// IncEvaluationCompleted increments the completed counter.
func IncEvaluationCompleted() {
	evaluationCompletedTotal.Inc()
}

// IncEvaluationFailed increments the failed counter.
func IncEvaluationFailed() {
	evaluationFailedTotal.Inc()
}

// IncPhrasingStarted increments the phrasing started counter.
func IncPhrasingStarted() {
	phrasingStartedTotal.Inc()
}

// IncPhrasingCompleted increments the phrasing completed counter.
func IncPhrasingCompleted() {
	phrasingCompletedTotal.Inc()
}

// IncPhrasingFailed increments the phrasing failed counter.
func IncPhrasingFailed() {
	phrasingFailedTotal.Inc()
}

// IncPhrasingJobsReceived counts a job pulled off the queue.
func IncPhrasingJobsReceived() {
	phrasingJobsReceivedTotal.Inc()
}

// IncPhrasingJobsCompleted counts a job processed and deleted.
func IncPhrasingJobsCompleted() {
	phrasingJobsCompletedTotal.Inc()
}

// IncPhrasingJobsFailed counts a job left on the queue for redelivery.
func IncPhrasingJobsFailed() {
	phrasingJobsFailedTotal.Inc()
}

// IncPhrasingJobsDeletedUnrecoverable counts a job deleted without processing.
func IncPhrasingJobsDeletedUnrecoverable() {
	phrasingJobsDeletedUnrecoverableTotal.Inc()
}

// ObserveEvaluationDurationMs records a deterministic pass duration in milliseconds.
func ObserveEvaluationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	evaluationDuration.Observe(value)
}

// ObservePhrasingDurationMs records a phrasing pass duration in milliseconds.
func ObservePhrasingDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	phrasingDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
