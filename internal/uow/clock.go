package uow

import "time"

// Clock returns the current instant. Injectable so services can be tested
// with a fixed point in time instead of wall-clock reads.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock, in UTC as required by the store
// session factory contract.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns T. Used by tests that need deterministic
// timestamps for audit-field assertions.
type FixedClock struct{ T time.Time }

// Now implements Clock.
func (c FixedClock) Now() time.Time { return c.T }
