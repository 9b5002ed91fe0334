package usage

import "time"

// Clock is the wall-clock source. An error means the time is currently
// unknown and the poll is deferred.
type Clock interface {
	Now() (time.Time, error)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() (time.Time, error)

func (f ClockFunc) Now() (time.Time, error) {
	return f()
}

// SystemClock reads time.Now and never fails.
type SystemClock struct{}

func (SystemClock) Now() (time.Time, error) {
	return time.Now().UTC(), nil
}
