// Package clock abstracts wall-clock access so the tick loop and the timer
// service can be driven by a controllable time source in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
