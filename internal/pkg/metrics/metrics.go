// Package metrics defines the Prometheus collectors the reconciler updates.
//
// Register adds the collectors to controller-runtime's metrics registry,
// which the manager started in main.go serves over HTTP on its metrics
// bind address (the -metrics-addr flag).
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Kind labels a reconcile failure by the tagged-error category it fell
// into, mirroring reconcileerr.Kind.
type Kind string

const (
	// KindTransient labels an observational failure that aborted a pass.
	KindTransient Kind = "transient"
	// KindMutationRejected labels a rejected update_instance call.
	KindMutationRejected Kind = "mutation_rejected"
)

var (
	// ReconcileDuration observes the wall-clock time of one reconcile pass,
	// labeled by its outcome. crictl.CLIQuery also observes the time of each
	// runtime probe here, under the label "get_node_slots".
	ReconcileDuration LatencyMetric = &latencyAdapter{m: reconcileDurationHistogram}

	// ReconcileErrors counts reconcile failures, partitioned by Kind.
	ReconcileErrors ResultMetric = &resultAdapter{m: reconcileErrorCounter}

	registerOnce sync.Once
)

var (
	reconcileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "akri_slot_reconcile_duration_seconds",
			Help:    "Distribution of the length of time a slot reconcile pass takes to complete.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	reconcileErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akri_slot_reconcile_errors_total",
			Help: "Number of reconcile failures, partitioned by failure kind.",
		},
		[]string{"kind"},
	)
)

// LatencyMetric observes the latency of an operation.
type LatencyMetric interface {
	Observe(outcome string, latency time.Duration)
}

// ResultMetric counts occurrences of a labeled outcome.
type ResultMetric interface {
	Increment(kind Kind)
}

// Register ensures the package's collectors are registered exactly once.
func Register() {
	registerOnce.Do(func() {
		ctrlmetrics.Registry.MustRegister(reconcileDurationHistogram)
		ctrlmetrics.Registry.MustRegister(reconcileErrorCounter)
	})
}

type latencyAdapter struct {
	m *prometheus.HistogramVec
}

func (l *latencyAdapter) Observe(outcome string, latency time.Duration) {
	l.m.WithLabelValues(outcome).Observe(latency.Seconds())
}

type resultAdapter struct {
	m *prometheus.CounterVec
}

func (r *resultAdapter) Increment(kind Kind) {
	r.m.WithLabelValues(string(kind)).Inc()
}
