package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the kiosk.
type Metrics struct {
	ScansReceived   *prometheus.CounterVec
	ScansDispatched prometheus.Counter
	ScansDeaf       prometheus.Counter
	StrayEvents     prometheus.Counter
	StaleResults    prometheus.Counter
	ParseSkipped    prometheus.Counter
	BackendRequests *prometheus.CounterVec
	Unlocks         *prometheus.CounterVec
	CorrelatorPhase *prometheus.GaugeVec
}

// New creates the kiosk metrics against reg. Tests pass a fresh registry so
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScansReceived: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kms_scans_received_total",
			Help: "Identity events parsed from terminal pushes, by verify type",
		}, []string{"verify_type"}),
		ScansDispatched: f.NewCounter(prometheus.CounterOpts{
			Name: "kms_scans_dispatched_total",
			Help: "Identity events handed to the registered callback",
		}),
		ScansDeaf: f.NewCounter(prometheus.CounterOpts{
			Name: "kms_scans_discarded_while_stopped_total",
			Help: "Identity events acknowledged but discarded because the listener was logically stopped",
		}),
		StrayEvents: f.NewCounter(prometheus.CounterOpts{
			Name: "kms_stray_events_total",
			Help: "Identity events ignored because no scan was awaited",
		}),
		StaleResults: f.NewCounter(prometheus.CounterOpts{
			Name: "kms_correlator_stale_results_total",
			Help: "Background results discarded because the correlator had moved on",
		}),
		ParseSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "kms_attlog_lines_skipped_total",
			Help: "ATTLOG lines skipped as blank or malformed",
		}),
		BackendRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kms_backend_requests_total",
			Help: "Backend calls by operation and outcome category",
		}, []string{"operation", "outcome"}),
		Unlocks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kms_unlocks_total",
			Help: "Slot unlock attempts by result",
		}, []string{"result"}),
		CorrelatorPhase: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kms_correlator_phase",
			Help: "1 for the phase the correlator is currently in, 0 otherwise",
		}, []string{"phase"}),
	}
}

// Nop returns metrics registered against a private registry, for components
// constructed without explicit metrics.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveScan(verifyType string) {
	if verifyType == "" {
		verifyType = "unknown"
	}
	m.ScansReceived.WithLabelValues(verifyType).Inc()
}

func (m *Metrics) IncrementDispatched() { m.ScansDispatched.Inc() }

func (m *Metrics) IncrementDeaf() { m.ScansDeaf.Inc() }

func (m *Metrics) IncrementStray() { m.StrayEvents.Inc() }

func (m *Metrics) IncrementStale() { m.StaleResults.Inc() }

func (m *Metrics) AddParseSkipped(n int) { m.ParseSkipped.Add(float64(n)) }

func (m *Metrics) ObserveBackend(operation, outcome string) {
	m.BackendRequests.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveUnlock(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Unlocks.WithLabelValues(result).Inc()
}

// SetPhase marks phase as current and clears every other known phase.
func (m *Metrics) SetPhase(phase string, all []string) {
	for _, p := range all {
		v := 0.0
		if p == phase {
			v = 1
		}
		m.CorrelatorPhase.WithLabelValues(p).Set(v)
	}
}
