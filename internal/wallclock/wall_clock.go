// Package wallclock provides an indirection over package time so that test
// code can interpose on timers and control apparent time.
package wallclock

import "time"

type (
	// WallClock abstracts a subset of functionality from package time.
	WallClock interface {
		After(d time.Duration) <-chan time.Time
		NewTimer(d time.Duration) Timer
		Now() time.Time
	}

	// Timer abstracts the functionality of time.Timer.
	Timer interface {
		C() <-chan time.Time
		Reset(d time.Duration) bool
		Stop() bool
	}

	wallClock struct{}

	timer struct {
		*time.Timer
	}
)

// After indirects time.After.
func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// NewTimer indirects time.NewTimer.
func (wallClock) NewTimer(d time.Duration) Timer {
	return timer{Timer: time.NewTimer(d)}
}

// Now indirects time.Now.
func (wallClock) Now() time.Time {
	return time.Now()
}

// C indirects time.Timer.C.
func (t timer) C() <-chan time.Time {
	return t.Timer.C
}

// Instance is a WallClock singleton used for indirect time-based references
// to package time.
var Instance WallClock = wallClock{}
