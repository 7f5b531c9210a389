package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Collectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegisterer(reg))

	m.SetActiveSessions(3)
	m.AddDroppedRecords(2)
	m.AddReports("charging", 5)
	m.ObserveDataPlaneOp("activate_flows", true)
	m.ObserveDataPlaneOp("activate_flows", false)
	m.SetCircuitState(CircuitOpen)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.droppedRecords))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.reportsEmitted.WithLabelValues("charging")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dataplaneOps.WithLabelValues("activate_flows", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dataplaneOps.WithLabelValues("activate_flows", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.circuitState))
}

func TestMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(WithRegisterer(reg))
	second := New(WithRegisterer(reg))

	first.SetActiveSessions(1)
	second.SetActiveSessions(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(first.activeSessions))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.SetActiveSessions(1)
	m.AddDroppedRecords(1)
	m.AddReports("monitoring", 1)
	m.ObserveDataPlaneOp("deactivate_flows", false)
	m.SetCircuitState(CircuitClosed)
}
