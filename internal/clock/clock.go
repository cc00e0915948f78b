package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Stopwatch measures elapsed wall time of a simulation run. time.Time values
// returned by time.Now carry a monotonic reading, so Elapsed is immune to
// wall clock adjustments while the run is in progress.
type Stopwatch struct {
	started time.Time
}

// Start returns a running stopwatch.
func Start() Stopwatch {
	return Stopwatch{started: Now()}
}

// StartedAt returns the instant the stopwatch was started.
func (s Stopwatch) StartedAt() time.Time {
	return s.started
}

// Elapsed returns the time passed since Start.
func (s Stopwatch) Elapsed() time.Duration {
	return Now().Sub(s.started)
}

// ElapsedMs returns elapsed time in whole milliseconds.
func (s Stopwatch) ElapsedMs() int64 {
	return s.Elapsed().Milliseconds()
}
