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

	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_generated_total",
			Help: "Total number of university recommendations generated, by tier",
		},
		[]string{"tier"},
	)

	ProfileStrengthEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_strength_evaluations_total",
			Help: "Total number of profile strength evaluations, by overall status",
		},
		[]string{"status"},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_stage_transitions_total",
			Help: "Total number of journey stage transitions",
		},
		[]string{"from_stage", "to_stage"},
	)

	CandidatePoolCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_pool_cache_total",
			Help: "Candidate pool cache lookups, by result",
		},
		[]string{"result"},
	)
)
