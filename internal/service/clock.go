package service

import "time"

// Clock is the time source for services. Stored timestamps have second
// precision.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}
