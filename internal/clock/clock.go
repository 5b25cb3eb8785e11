// Package clock provides an injectable time source so the timeline's
// debounce timer can be driven deterministically in tests.
//
// Production code uses Real(); tests use Fake() and call Advance.
package clock

import "time"

// Clock is the subset of the time package the timeline relies on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f. The returned Timer
	// can cancel the pending call with Stop.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the Timer from firing. It returns true if the call
	// stops the timer, false if the timer has already fired or been
	// stopped.
	Stop() bool
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
