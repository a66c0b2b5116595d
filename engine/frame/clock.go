package frame

import "time"

// Clock yields monotonic timestamps relative to an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock measures time since its creation using the runtime's monotonic reading.
type MonotonicClock struct {
	origin time.Time
}

var _ Clock = &MonotonicClock{}

// NewMonotonicClock creates a clock whose origin is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Duration

func (f ClockFunc) Now() time.Duration {
	return f()
}
