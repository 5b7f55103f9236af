// Package metrics exposes sync layer counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "genoguard"

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	remoteCalls   *prometheus.CounterVec
	reads         *prometheus.CounterVec
	localSaves    *prometheus.CounterVec
	mirrorUploads *prometheus.CounterVec
	taskFailures  *prometheus.CounterVec
	analyses      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		remoteCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "remote_calls_total",
			Help:      "Remote store calls by collection, operation and outcome.",
		}, []string{"collection", "op", "outcome"}),
		reads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "reads_total",
			Help:      "Reads served by collection and source store.",
		}, []string{"collection", "source"}),
		localSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "local_saves_total",
			Help:      "Records written to the local cache instead of the remote store.",
		}, []string{"collection"}),
		mirrorUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mirror",
			Name:      "uploads_total",
			Help:      "File mirror uploads by kind and result.",
		}, []string{"kind", "result"}),
		taskFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "task_failures_total",
			Help:      "Failed best-effort background tasks.",
		}, []string{"task"}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Analysis runs by engine and saved target.",
		}, []string{"engine", "saved"}),
	}
}

func (m *Metrics) ObserveRemote(collection, op, outcome string) {
	m.remoteCalls.WithLabelValues(collection, op, outcome).Inc()
}

func (m *Metrics) ObserveRead(collection, source string) {
	m.reads.WithLabelValues(collection, source).Inc()
}

func (m *Metrics) ObserveLocalSave(collection string) {
	m.localSaves.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveMirror(kind, result string) {
	m.mirrorUploads.WithLabelValues(kind, result).Inc()
}

// ObserveTaskFailure matches background.FailureHook.
func (m *Metrics) ObserveTaskFailure(task string, _ error) {
	m.taskFailures.WithLabelValues(task).Inc()
}

func (m *Metrics) ObserveAnalysis(engine, saved string) {
	m.analyses.WithLabelValues(engine, saved).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
