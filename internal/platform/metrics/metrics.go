package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Signups         *prometheus.CounterVec
	SignIns         *prometheus.CounterVec
	IdentityLookups *prometheus.CounterVec
	SeedRuns        prometheus.Counter
}

// New creates and registers all Prometheus metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Signups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthlink_signups_total",
			Help: "Total signup attempts by outcome.",
		}, []string{"outcome"}),
		SignIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthlink_signins_total",
			Help: "Total sign-in attempts by outcome.",
		}, []string{"outcome"}),
		IdentityLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthlink_identity_lookups_total",
			Help: "Total identity lookups by source.",
		}, []string{"source"}),
		SeedRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthlink_seed_runs_total",
			Help: "Total development seed invocations.",
		}),
	}
}

// Outcome label values shared by signup and sign-in counters.
const (
	OutcomeSuccess   = "success"
	OutcomeSimulated = "simulated"
	OutcomeRejected  = "rejected"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

func (m *Metrics) IncSignup(outcome string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSignIn(outcome string) {
	if m == nil {
		return
	}
	m.SignIns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncIdentityLookup(source string) {
	if m == nil {
		return
	}
	m.IdentityLookups.WithLabelValues(source).Inc()
}

func (m *Metrics) IncSeedRun() {
	if m == nil {
		return
	}
	m.SeedRuns.Inc()
}
