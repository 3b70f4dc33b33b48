package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK         = "ok"
	outcomeFailed     = "failed"
	outcomeRolledBack = "rolled_back"
	outcomeUnchecked  = "unchecked"
)

// Metrics collects usage statistics of a System
type Metrics struct {
	Mutations   *prometheus.CounterVec
	Validations *prometheus.CounterVec
	Queries     *prometheus.CounterVec
}

// NewMetrics builds the metrics of a System and registers them.
//
// A nil registerer leaves the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revmon",
			Subsystem: "system",
			Name:      "mutations_total",
			Help:      "Number of mutations applied to the system, by operation and outcome",
		}, []string{"operation", "outcome"}),
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revmon",
			Subsystem: "system",
			Name:      "validations_total",
			Help:      "Number of validations of the system, by outcome",
		}, []string{"outcome"}),
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revmon",
			Subsystem: "system",
			Name:      "region_queries_total",
			Help:      "Number of region queries, by axis",
		}, []string{"axis"}),
	}
}

func (m *Metrics) mutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) validation(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Validations.WithLabelValues(outcomeFailed).Inc()
		return
	}
	m.Validations.WithLabelValues(outcomeOK).Inc()
}

func (m *Metrics) query(axis string) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(axis).Inc()
}
