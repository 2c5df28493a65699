// Package metrics exposes Prometheus collectors for the emoluments module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Lookups         *prometheus.CounterVec
	EconomyQueries  prometheus.Counter
	TablesActivated prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pratico_emoluments_lookups_total",
			Help: "Deed cost lookups by outcome.",
		}, []string{"outcome"}),
		EconomyQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pratico_emoluments_economy_queries_total",
			Help: "Cheapest-UF economy computations.",
		}),
		TablesActivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pratico_emoluments_tables_activated_total",
			Help: "Fee table activations.",
		}),
	}
}

// IncrementLookup records one deed cost lookup with its outcome label.
func (m *Metrics) IncrementLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementEconomy() {
	if m == nil {
		return
	}
	m.EconomyQueries.Inc()
}

func (m *Metrics) IncrementActivation() {
	if m == nil {
		return
	}
	m.TablesActivated.Inc()
}
