package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	namespace := "qlist"
	subsystem := "queue"

	metrics := NewPrometheusMetrics(registry, namespace, subsystem)

	assert.NotNil(t, metrics)
	assert.NotNil(t, metrics.AllocationsTotal)
	assert.NotNil(t, metrics.ReleasesTotal)
	assert.NotNil(t, metrics.AllocationFailuresTotal)
	assert.NotNil(t, metrics.InvalidReleasesTotal)
	assert.NotNil(t, metrics.OperationsTotal)
	assert.NotNil(t, metrics.LiveBlocks)
	assert.NotNil(t, metrics.LiveBytes)
}

func TestPrometheusMetricsAreRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry, "qlist", "queue")

	metrics.AllocationsTotal.WithLabelValues("element").Add(3)
	metrics.OperationsTotal.WithLabelValues("sort").Inc()
	metrics.LiveBlocks.Set(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.AllocationsTotal.WithLabelValues("element")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OperationsTotal.WithLabelValues("sort")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.LiveBlocks))

	families, err := registry.Gather()
	require.NoError(t, err)

	names := []string{}
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "qlist_queue_allocations_total")
	assert.Contains(t, names, "qlist_queue_operations_total")
	assert.Contains(t, names, "qlist_queue_live_blocks")
}
