// Package metrics provides the Prometheus registry and exposition
// handler for telepace.
//
// # Overview
//
// The Collector owns a private prometheus.Registry so that tests can
// construct isolated collectors without colliding with the global
// default registry. Component metrics (the limits package's counters
// and histograms) register against the collector's registry through
// the Registerer accessor.
//
// # Usage
//
//	collector := metrics.NewCollector()
//	limitMetrics := limits.NewMetrics(collector.Registerer())
//	http.Handle("/metrics", collector.Handler())
package metrics
