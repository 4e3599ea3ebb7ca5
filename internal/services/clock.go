package services

import "time"

// Clock supplies the calendar day that logging and rollups treat as today.
type Clock interface {
	Today() time.Time
}

type SystemClock struct {
	location *time.Location
}

func NewSystemClock(location *time.Location) SystemClock {
	if location == nil {
		location = time.Local
	}
	return SystemClock{location: location}
}

func (clock SystemClock) Today() time.Time {
	return DateAtLocation(time.Now(), clock.location)
}

type FixedClock struct {
	Day time.Time
}

func (clock FixedClock) Today() time.Time {
	return DateAtLocation(clock.Day, clock.Day.Location())
}
