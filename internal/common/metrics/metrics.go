// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	GarageScoresCalculated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_scores_calculated_total",
			Help: "Total number of garage composite scores calculated",
		},
		[]string{"tier"},
	)

	GarageScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "garage_score_value",
			Help:    "Distribution of calculated garage composite scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	RefundDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refund_decisions_total",
			Help: "Total number of refund eligibility decisions",
		},
		[]string{"refund_percentage"},
	)
)
