// Package metrics exposes Prometheus instrumentation for the schedule
// service on a custom registry.
package metrics
