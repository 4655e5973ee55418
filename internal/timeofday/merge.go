package timeofday

import (
	"time"

	"time-picker/internal/errors"
)

// MergeDate applies a 12-hour ("04:00 PM") or 24-hour ("16:00") time string to
// the calendar day of date, in date's location.
func MergeDate(date time.Time, text string, allowSeconds bool) (time.Time, error) {
	_, meridiem := SplitMeridiem(text)
	f := Format{Use24Hour: meridiem == NoMeridiem, AllowSeconds: allowSeconds}

	v, ok := Parse(text, f)
	if !ok {
		return time.Time{}, errors.NewInvalidInputError("time", text, "not a valid time of day")
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, v.Hours(), v.Minutes(), v.Seconds(), 0, date.Location()), nil
}
