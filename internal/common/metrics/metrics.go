// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_completed_total",
			Help: "Total number of provider/source tasks completed",
		},
		[]string{"target"},
	)

	TasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_failed_total",
			Help: "Total number of provider/source tasks failed",
		},
		[]string{"target", "error_code"},
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_task_duration_seconds",
			Help: "Duration of one provider/source task in seconds",
		},
		[]string{"target"},
	)

	TasksInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_tasks_in_flight",
			Help: "Number of tasks currently dispatched per target",
		},
		[]string{"target"},
	)

	ArtifactsCategorized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifacts_categorized_total",
			Help: "Total number of artifacts categorized",
		},
		[]string{"category"},
	)
)
