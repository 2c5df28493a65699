package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding module.
// Tracks registration lifecycle counts and the batch critical path.
type Metrics struct {
	RegistrationsStarted   prometheus.Counter
	RegistrationsActivated prometheus.Counter
	Transitions            *prometheus.CounterVec
	InboundEvents          *prometheus.CounterVec
	OutboundMessages       prometheus.Counter
	BatchRuns              *prometheus.CounterVec
	BatchDuration          prometheus.Histogram
	FinalizeDuration       prometheus.Histogram
}

// New creates a new Metrics instance with all onboarding module metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pratico_registrations_started_total",
			Help: "Total number of onboarding registrations started",
		}),
		RegistrationsActivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pratico_registrations_activated_total",
			Help: "Total number of registrations that reached the active status",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pratico_status_transitions_total",
			Help: "Total status transitions by origin and destination",
		}, []string{"from", "to"}),
		InboundEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pratico_inbound_events_total",
			Help: "Total inbound WhatsApp events by type",
		}, []string{"type"}),
		OutboundMessages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pratico_outbound_messages_total",
			Help: "Total outbound WhatsApp messages sent",
		}),
		BatchRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pratico_batch_runs_total",
			Help: "Total document batch runs by outcome",
		}, []string{"outcome"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pratico_batch_duration_seconds",
			Help:    "Duration of document batch processing (fetch + extraction + merge)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FinalizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pratico_finalize_duration_seconds",
			Help:    "Duration of the finalization chain (license, payment, contract)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncrementTransition records a completed status transition.
func (m *Metrics) IncrementTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

// IncrementInboundEvent records a received inbound event by type.
func (m *Metrics) IncrementInboundEvent(eventType string) {
	m.InboundEvents.WithLabelValues(eventType).Inc()
}

// IncrementBatchRun records a batch completion by outcome.
func (m *Metrics) IncrementBatchRun(outcome string) {
	m.BatchRuns.WithLabelValues(outcome).Inc()
}

// ObserveBatch records the duration of a batch run.
// Call with time.Now() at the start of the run.
func (m *Metrics) ObserveBatch(start time.Time) {
	m.BatchDuration.Observe(time.Since(start).Seconds())
}

// ObserveFinalize records the duration of a finalization chain.
// Call with time.Now() at the start of the chain.
func (m *Metrics) ObserveFinalize(start time.Time) {
	m.FinalizeDuration.Observe(time.Since(start).Seconds())
}
