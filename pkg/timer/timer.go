// Package timer tracks elapsed frame time against a fixed interval.
//
// A Timer fires at most once per Advance call, even when a single frame's
// delta covers several intervals. Firing resets the accumulator to zero, so
// overshoot is discarded rather than carried into the next interval.
package timer

import "time"

// Timer accumulates frame deltas until an interval is reached.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
	repeat   bool
	fired    bool
}

// New creates a one-shot timer. Once it becomes ready it stays ready until
// Reset is called.
func New(interval time.Duration) *Timer {
	return &Timer{interval: clamp(interval)}
}

// NewRepeating creates a timer that resets itself each time Advance reports
// a firing.
func NewRepeating(interval time.Duration) *Timer {
	return &Timer{interval: clamp(interval), repeat: true}
}

// Advance adds dt to the accumulator. Negative deltas are treated as zero.
// It reports whether the interval boundary was reached by this call; for a
// repeating timer that also resets the accumulator.
func (t *Timer) Advance(dt time.Duration) bool {
	t.elapsed += clamp(dt)
	if t.elapsed < t.interval {
		return false
	}
	if t.repeat {
		t.elapsed = 0
		return true
	}
	// one-shot timers report the crossing once
	if t.fired {
		return false
	}
	t.fired = true
	return true
}

// Ready reports whether the accumulated time has reached the interval since
// the last reset.
func (t *Timer) Ready() bool {
	return t.elapsed >= t.interval
}

// Reset zeroes the accumulator.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.fired = false
}

// Elapsed returns the time accumulated since the last reset.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Interval returns the configured interval.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Repeating reports whether the timer resets itself on firing.
func (t *Timer) Repeating() bool {
	return t.repeat
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
