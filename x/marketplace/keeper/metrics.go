package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes marketplace activity to the node's Prometheus registry.
type Metrics struct {
	JobsSubmitted     prometheus.Counter
	JobsAssigned      prometheus.Counter
	JobsCompleted     prometheus.Counter
	JobsCancelled     prometheus.Counter
	JobsExpired       prometheus.Counter
	RewardsPaid       prometheus.Counter
	ActiveJobs        prometheus.Gauge
	RegisteredWorkers prometheus.Gauge
	ReputationUpdates *prometheus.CounterVec
	SettlementGated   prometheus.Counter
}

var (
	metricsOnce sync.Once
	metricsInst *Metrics
)

// NewMetrics returns the process-wide marketplace collector set. Collectors
// register with the default registry exactly once, so repeated keeper
// construction in tests shares the same instance.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInst = &Metrics{
			JobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "jobs_submitted_total",
				Help:      "Total number of jobs submitted to the ledger.",
			}),
			JobsAssigned: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "jobs_assigned_total",
				Help:      "Total number of jobs assigned to workers.",
			}),
			JobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "jobs_completed_total",
				Help:      "Total number of jobs with an accepted result.",
			}),
			JobsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "jobs_cancelled_total",
				Help:      "Total number of jobs cancelled by their client.",
			}),
			JobsExpired: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "jobs_expired_total",
				Help:      "Total number of jobs cancelled past their deadline.",
			}),
			RewardsPaid: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "rewards_paid_total",
				Help:      "Total number of completed jobs paid out.",
			}),
			ActiveJobs: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "active_jobs",
				Help:      "Jobs currently queued or processing.",
			}),
			RegisteredWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "registered_workers",
				Help:      "Workers currently registered.",
			}),
			ReputationUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "reputation_updates_total",
				Help:      "Reputation adjustments applied, by reason.",
			}, []string{"reason"}),
			SettlementGated: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "meshnet",
				Subsystem: "marketplace",
				Name:      "settlements_gated_total",
				Help:      "Payments routed through the proof-gated settlement path.",
			}),
		}

		prometheus.MustRegister(
			metricsInst.JobsSubmitted,
			metricsInst.JobsAssigned,
			metricsInst.JobsCompleted,
			metricsInst.JobsCancelled,
			metricsInst.JobsExpired,
			metricsInst.RewardsPaid,
			metricsInst.ActiveJobs,
			metricsInst.RegisteredWorkers,
			metricsInst.ReputationUpdates,
			metricsInst.SettlementGated,
		)
	})
	return metricsInst
}
