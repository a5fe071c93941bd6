package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// ActivationToggles counts override upserts by entity type and decision.
	ActivationToggles *prometheus.CounterVec

	// PageTransitions counts page lifecycle events by event and decision.
	PageTransitions *prometheus.CounterVec

	// AuditPublishFailures counts audit facts that could not reach the sink.
	AuditPublishFailures prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ActivationToggles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_activation_toggles_total",
			Help: "Activation override upserts by entity type and outcome",
		}, []string{"entity_type", "decision"}),

		PageTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_page_transitions_total",
			Help: "Content page lifecycle events by event and outcome",
		}, []string{"event", "decision"}),

		AuditPublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "governance_audit_publish_failures_total",
			Help: "Audit events that failed to reach the external sink",
		}),
	}
}
