package typing

import "time"

// Clock is the time source a Sequencer schedules its ticks on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop reports whether the call prevented the callback from running.
	Stop() bool
}

// RealClock schedules on the runtime timer heap.
type RealClock struct{}

// NewRealClock returns a wall-clock backed Clock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current time with monotonic clock reading
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine once d has elapsed.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
