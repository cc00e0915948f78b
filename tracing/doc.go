// Package tracing integrates OpenTelemetry with the simulation so that every
// group cycle and every print turn shows up as a span.  All instrumentation is
// kept in a separate package; when tracing is not initialised the global
// no-op provider makes every call free.
package tracing
