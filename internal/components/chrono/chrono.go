package chrono

import "time"

// API is the interface that anything depending on the system clock should use.
type API interface {
	Now() time.Time
}

// StandardImpl reads the system clock.
type StandardImpl struct{}

func NewStandardImpl() StandardImpl {
	return StandardImpl{}
}

func (StandardImpl) Now() time.Time {
	return time.Now()
}

// FixedImpl always returns the same instant.
type FixedImpl struct {
	instant time.Time
}

func NewFixedImpl(instant time.Time) FixedImpl {
	return FixedImpl{instant: instant}
}

func (f FixedImpl) Now() time.Time {
	return f.instant
}
