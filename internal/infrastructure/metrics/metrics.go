// Package metrics exposes Prometheus counters and histograms for the
// coordinator and the stage notifier.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "statecore"

// Metrics implements scenario.Metrics and notifier.Metrics.
type Metrics struct {
	registry *prometheus.Registry

	proposalsTotal     *prometheus.CounterVec
	proposalDuration   *prometheus.HistogramVec
	commitConflicts    prometheus.Counter
	stageTriggersTotal *prometheus.CounterVec
	triggerFailures    *prometheus.CounterVec
}

// New registers every collector on a fresh registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		proposalsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_total",
			Help:      "Proposals handled, by outcome (committed, replayed or an error kind)",
		}, []string{"outcome"}),

		proposalDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "proposal_duration_seconds",
			Help:      "Time from proposal receipt to commit or rejection",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),

		commitConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commit_conflicts_total",
			Help:      "Conditional writes lost to a concurrent commit",
		}),

		stageTriggersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_triggers_total",
			Help:      "Stage trigger deliveries by component and result",
		}, []string{"component", "result"}),

		triggerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downstream_trigger_failures_total",
			Help:      "Stage triggers that failed after every retry",
		}, []string{"component"}),
	}
}

// ProposalFinished implements scenario.Metrics.
func (m *Metrics) ProposalFinished(outcome string, duration time.Duration) {
	m.proposalsTotal.WithLabelValues(outcome).Inc()
	m.proposalDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// CommitConflict implements scenario.Metrics.
func (m *Metrics) CommitConflict() {
	m.commitConflicts.Inc()
}

// TriggerAttempt implements notifier.Metrics.
func (m *Metrics) TriggerAttempt(component, result string) {
	m.stageTriggersTotal.WithLabelValues(component, result).Inc()
}

// TriggerFailed implements notifier.Metrics.
func (m *Metrics) TriggerFailed(component string) {
	m.triggerFailures.WithLabelValues(component).Inc()
}

// RegisterGauge exposes fn as a gauge, for values owned elsewhere such as
// the registry's cache size.
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
