package ports

import "time"

// Clock supplies "now" in the configured time zone.
type Clock interface {
	Now() time.Time
}

// ZoneClock is the wall clock in a fixed location.
type ZoneClock struct {
	Loc *time.Location
}

// Now devuelve la hora actual en Loc.
func (c ZoneClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now()
	}
	return time.Now().In(c.Loc)
}

// FixedClock always returns T. Used by tests and the feature suite.
type FixedClock struct {
	T time.Time
}

// Now devuelve T.
func (c FixedClock) Now() time.Time { return c.T }
