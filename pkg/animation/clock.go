// Package animation supplies the time source and small helpers used by the
// animation-frame protocol: a replaceable clock, a frame timer that yields
// the interval between painted frames, and eased progress values.
package animation

import "time"

// Clock provides time for animation frames. The default implementation uses
// system time. Tests can inject a fake clock via SetClock to control
// frame intervals deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

var clock Clock = realClock{}

// SetClock replaces the animation clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
