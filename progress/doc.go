// Package progress defines the live counters of a running simulation.  It
// abstracts away who produces the updates so that a CLI, a test or a tracing
// exporter can consume them in a uniform way.
package progress
