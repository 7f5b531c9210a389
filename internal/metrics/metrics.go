// Package metrics exposes Prometheus collectors for session
// enforcement observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CircuitState is the numeric encoding of the data-plane circuit
// breaker state: 0=closed, 1=half-open, 2=open.
type CircuitState float64

const (
	CircuitClosed   CircuitState = 0
	CircuitHalfOpen CircuitState = 1
	CircuitOpen     CircuitState = 2
)

// Metrics wraps the enforcement-core Prometheus collectors. A nil
// *Metrics is valid; every method no-ops on it, so callers that run
// without a registry (tests) pass nil.
type Metrics struct {
	activeSessions prometheus.Gauge
	droppedRecords prometheus.Counter
	reportsEmitted *prometheus.CounterVec
	dataplaneOps   *prometheus.CounterVec
	circuitState   prometheus.Gauge
}

// Option allows customizing the metrics registry.
type Option func(*config)

type config struct {
	registerer prometheus.Registerer
}

// WithRegisterer overrides the default Prometheus registerer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(cfg *config) {
		cfg.registerer = r
	}
}

// New constructs Metrics and registers its collectors.
func New(opts ...Option) *Metrics {
	cfg := config{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&cfg)
	}

	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessiond_active_sessions",
		Help: "Number of subscriber sessions currently held by the enforcer.",
	})

	droppedRecords := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessiond_dropped_records_total",
		Help: "Total usage records dropped for an unknown subscriber or rule.",
	})

	reportsEmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sessiond_reports_emitted_total",
		Help: "Total credit and monitor usage reports emitted toward the policy peer.",
	}, []string{"kind"})

	dataplaneOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sessiond_dataplane_ops_total",
		Help: "Total flow operations submitted to the data plane, by operation and outcome.",
	}, []string{"op", "outcome"})

	circuitState := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessiond_dataplane_circuit_state",
		Help: "Data-plane circuit breaker state. 0=closed, 1=half-open, 2=open.",
	})

	m := &Metrics{
		activeSessions: registerGauge(cfg.registerer, activeSessions),
		droppedRecords: registerCounter(cfg.registerer, droppedRecords),
		reportsEmitted: registerCounterVec(cfg.registerer, reportsEmitted),
		dataplaneOps:   registerCounterVec(cfg.registerer, dataplaneOps),
		circuitState:   registerGauge(cfg.registerer, circuitState),
	}
	return m
}

// SetActiveSessions records the current session-map size.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

// AddDroppedRecords counts usage records dropped from a batch.
func (m *Metrics) AddDroppedRecords(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedRecords.Add(float64(n))
}

// AddReports counts usage reports emitted toward the policy peer.
// kind is "charging" or "monitoring".
func (m *Metrics) AddReports(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reportsEmitted.WithLabelValues(kind).Add(float64(n))
}

// ObserveDataPlaneOp counts one flow operation outcome.
func (m *Metrics) ObserveDataPlaneOp(op string, success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.dataplaneOps.WithLabelValues(op, outcome).Inc()
}

// SetCircuitState records the data-plane circuit breaker state.
func (m *Metrics) SetCircuitState(state CircuitState) {
	if m == nil {
		return
	}
	m.circuitState.Set(float64(state))
}

func registerGauge(registerer prometheus.Registerer, collector prometheus.Gauge) prometheus.Gauge {
	if registerer == nil {
		return collector
	}
	if err := registerer.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing
			}
			return collector
		}
		panic(err)
	}
	return collector
}

func registerCounter(registerer prometheus.Registerer, collector prometheus.Counter) prometheus.Counter {
	if registerer == nil {
		return collector
	}
	if err := registerer.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
			return collector
		}
		panic(err)
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, collector *prometheus.CounterVec) *prometheus.CounterVec {
	if registerer == nil {
		return collector
	}
	if err := registerer.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
			return collector
		}
		panic(err)
	}
	return collector
}
