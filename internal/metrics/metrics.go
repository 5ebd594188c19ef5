// Package metrics counts board mutation outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name
const Namespace = "dealflow"

// Metrics tracks board mutations. Counters are registered on the registerer
// passed to New, so tests and multiple stores do not collide on the global
// registry.
type Metrics struct {
	mutations *prometheus.CounterVec
	snapshots prometheus.Counter
	companies *prometheus.GaugeVec
}

// New creates and registers the board metrics. A nil registerer creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mutations_total",
			Help:      "Board mutation requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		snapshots: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "snapshots_committed_total",
			Help:      "Board snapshots committed by applied mutations.",
		}),
		companies: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "pipeline_companies",
			Help:      "Companies currently held by each pipeline.",
		}, []string{"pipeline"}),
	}
}

// ObserveMutation records the outcome of one mutation request
func (m *Metrics) ObserveMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

// IncSnapshots records a committed snapshot
func (m *Metrics) IncSnapshots() {
	if m == nil {
		return
	}
	m.snapshots.Inc()
}

// SetCompanies records the company count of a pipeline
func (m *Metrics) SetCompanies(pipeline string, count int) {
	if m == nil {
		return
	}
	m.companies.WithLabelValues(pipeline).Set(float64(count))
}

// MutationCount returns the current value of one mutation counter
func (m *Metrics) MutationCount(operation, outcome string) float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.mutations.WithLabelValues(operation, outcome))
}

// SnapshotCount returns how many snapshots have been committed
func (m *Metrics) SnapshotCount() float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.snapshots)
}
