package interfaces

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the instrumentation contract. Metrics must be registered by
// name before they are incremented or observed.
type Metrics interface {
	GetRegistry() *prometheus.Registry

	RegisterCounter(name, help string)
	RegisterCounterVec(name, help string, labels []string)
	RegisterHistogram(name, help string, buckets []float64)
	RegisterGauge(name, help string)

	IncCounter(name string)
	IncCounterVec(name string, labels ...string)
	ObserveHistogram(name string, value float64)
	SetGauge(name string, value float64)
}
