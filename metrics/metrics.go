// Package metrics holds the Prometheus collectors for the planner and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlannerRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_runs_total",
			Help: "Total number of planner runs by outcome",
		},
		[]string{"outcome"},
	)

	PlannerStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_stage_duration_seconds",
			Help:    "Duration of each planner stage in seconds",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route"},
	)
)

// Recorder is what the planner reports to.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	RunFinished(outcome string)
}

// Prometheus records into the package collectors.
type Prometheus struct{}

func (Prometheus) ObserveStage(stage string, d time.Duration) {
	PlannerStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (Prometheus) RunFinished(outcome string) {
	PlannerRuns.WithLabelValues(outcome).Inc()
}

// NoOp discards everything.
type NoOp struct{}

func (NoOp) ObserveStage(string, time.Duration) {}
func (NoOp) RunFinished(string)                 {}
