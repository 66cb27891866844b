package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the Prometheus registry for the process and registers
// the standard Go runtime and process collectors.
type Collector struct {
	registry *prometheus.Registry
}

// NewCollector creates a metrics collector with a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{registry: registry}
}

// Registerer returns the registerer component metrics should register
// against.
func (c *Collector) Registerer() prometheus.Registerer {
	return c.registry
}

// Gatherer returns the gatherer backing the exposition handler.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}
