// Package clock abstracts wall-clock time so the scheduler, crash screen,
// and soft watchdog can be driven deterministically in tests.
package clock

import "time"

// Clock is the subset of the time package the kernel depends on
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a stoppable, resettable one-shot timer
type Timer interface {
	Stop() bool
	Reset(d time.Duration) bool
}

// Real returns a Clock backed by the time package
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
