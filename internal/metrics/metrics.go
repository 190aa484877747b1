// Package metrics holds the Prometheus collectors describing loot store
// builds. All recording methods are safe to call on a nil *Metrics, which
// lets library code record unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "lootgraph"
	subsystem = "store"
)

// Metrics holds prometheus collectors for store builds.
type Metrics struct {
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	groupsBuilt   prometheus.Counter
	diagnostics   *prometheus.CounterVec
	collections   *prometheus.GaugeVec
}

// New creates an unregistered set of collectors.
func New() *Metrics {
	return &Metrics{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "builds_total",
				Help:      "Store builds by result.",
			},
			[]string{"result"}, // "success" or "error"
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_duration_seconds",
				Help:      "Wall time of a full store build.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
			},
		),
		groupsBuilt: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "groups_built_total",
				Help:      "Groups populated by the graph builder. Revisits are not counted.",
			},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "diagnostics_total",
				Help:      "Data quality anomalies absorbed during builds, by reason.",
			},
			[]string{"reason"},
		),
		collections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "collection_size",
				Help:      "Entries in each collection of the last successful build.",
			},
			[]string{"collection"},
		),
	}
}

// MustRegister registers the metrics with the given Prometheus registry.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.builds, m.buildDuration, m.groupsBuilt, m.diagnostics, m.collections)
}

// ObserveBuild records a finished build.
func (m *Metrics) ObserveBuild(durationSeconds float64, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.builds.WithLabelValues(result).Inc()
	m.buildDuration.Observe(durationSeconds)
}

// GroupBuilt counts one populated group.
func (m *Metrics) GroupBuilt() {
	if m == nil {
		return
	}
	m.groupsBuilt.Inc()
}

// Diagnostic counts one absorbed anomaly.
func (m *Metrics) Diagnostic(reason string) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(reason).Inc()
}

// SetCollectionSize records the size of a named collection.
func (m *Metrics) SetCollectionSize(collection string, n int) {
	if m == nil {
		return
	}
	m.collections.WithLabelValues(collection).Set(float64(n))
}
