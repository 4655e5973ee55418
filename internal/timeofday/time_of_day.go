// Package timeofday converts between canonical time-of-day values and the
// strings a time picker displays and accepts.
package timeofday

import (
	"time"

	"time-picker/internal/clock"
)

// TimeOfDay is the number of milliseconds since local midnight, in [0, Day).
type TimeOfDay int64

const (
	Millisecond TimeOfDay = 1
	Second                = 1000 * Millisecond
	Minute                = 60 * Second
	Hour                  = 60 * Minute
	Day                   = 24 * Hour
)

// New builds a TimeOfDay from clock fields. It does not range-check.
func New(hours, minutes, seconds int) TimeOfDay {
	return TimeOfDay(hours)*Hour + TimeOfDay(minutes)*Minute + TimeOfDay(seconds)*Second
}

// FromTime returns the time of day of t in t's own location.
func FromTime(t time.Time) TimeOfDay {
	return New(t.Hour(), t.Minute(), t.Second()) + TimeOfDay(t.Nanosecond()/int(time.Millisecond))
}

// Current returns the wall-clock time of day with seconds zeroed unless allowSeconds.
// Sub-second precision is always dropped.
func Current(c clock.Clock, allowSeconds bool) TimeOfDay {
	now := c.Now()
	if allowSeconds {
		return New(now.Hour(), now.Minute(), now.Second())
	}
	return New(now.Hour(), now.Minute(), 0)
}

// Hours returns the hour component (0-23).
func (t TimeOfDay) Hours() int { return int(t / Hour) }

// Minutes returns the minute component (0-59).
func (t TimeOfDay) Minutes() int { return int(t % Hour / Minute) }

// Seconds returns the second component (0-59).
func (t TimeOfDay) Seconds() int { return int(t % Minute / Second) }

// IsValid reports whether t lies within a single day.
func (t TimeOfDay) IsValid() bool { return t >= 0 && t < Day }

// TruncateToMinute drops seconds and milliseconds.
func (t TimeOfDay) TruncateToMinute() TimeOfDay { return t - t%Minute }

// TruncateToSecond drops milliseconds.
func (t TimeOfDay) TruncateToSecond() TimeOfDay { return t - t%Second }

// Ptr returns a pointer to a copy of t.
func (t TimeOfDay) Ptr() *TimeOfDay { return &t }

// Duration converts t to a time.Duration since midnight.
func (t TimeOfDay) Duration() time.Duration { return time.Duration(t) * time.Millisecond }

// String renders t in the 24-hour value grammar with seconds.
func (t TimeOfDay) String() string {
	return Render(t, Format{Use24Hour: true, AllowSeconds: true})
}

// Equal compares two optional values; two nils are equal.
func Equal(a, b *TimeOfDay) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
