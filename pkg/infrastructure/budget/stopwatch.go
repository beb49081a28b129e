// Package budget tracks the wall-clock budget of a run. All phases of a
// run (preprocessing, exact solve, fallback) share one stopwatch; the
// exact solve consumes most of it through its time limit.
package budget

import (
	"time"
)

// DefaultMaxRuntime is the total budget when none is configured.
const DefaultMaxRuntime = 10 * time.Minute

// Stopwatch measures elapsed time against a fixed total budget.
type Stopwatch struct {
	start time.Time
	total time.Duration
}

// NewStopwatch starts a stopwatch with the given total budget; a
// non-positive budget falls back to DefaultMaxRuntime.
func NewStopwatch(total time.Duration) *Stopwatch {
	if total <= 0 {
		total = DefaultMaxRuntime
	}
	return &Stopwatch{start: time.Now(), total: total}
}

// Elapsed returns the time since the stopwatch started.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Remaining returns the unconsumed budget, floored at zero.
func (s *Stopwatch) Remaining() time.Duration {
	left := s.total - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}
