package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	AllocationsTotal        *prometheus.CounterVec
	ReleasesTotal           *prometheus.CounterVec
	AllocationFailuresTotal *prometheus.CounterVec
	InvalidReleasesTotal    *prometheus.CounterVec
	OperationsTotal         *prometheus.CounterVec
	LiveBlocks              prometheus.Gauge
	LiveBytes               prometheus.Gauge
}

func NewPrometheusMetrics(registry prometheus.Registerer, namespace, subsystem string) *PrometheusMetrics {
	m := &PrometheusMetrics{}

	m.AllocationsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocations_total",
			Help:      "Total number of successful allocations.",
		},
		[]string{"kind"},
	)

	m.ReleasesTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "releases_total",
			Help:      "Total number of released blocks.",
		},
		[]string{"kind"},
	)

	m.AllocationFailuresTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "allocation_failures_total",
			Help:      "Total number of refused allocations.",
		},
		[]string{"kind"},
	)

	m.InvalidReleasesTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "invalid_releases_total",
			Help:      "Total number of releases without a matching allocation.",
		},
		[]string{"kind"},
	)

	m.OperationsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Total number of executed queue operations.",
		},
		[]string{"operation"},
	)

	m.LiveBlocks = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_blocks",
			Help:      "Number of allocated blocks not yet released.",
		},
	)

	m.LiveBytes = promauto.With(registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "live_bytes",
			Help:      "Number of allocated bytes not yet released.",
		},
	)

	return m
}
