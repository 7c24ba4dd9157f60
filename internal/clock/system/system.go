// Package system provides the wall clock used to stamp created_at.
package system

import "time"

// Clock implements catalog.Clock using time.Now.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC, truncated to milliseconds, the
// coarsest precision of the backing stores (BSON datetimes).
func (Clock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
