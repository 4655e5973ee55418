package validation

import (
	"sort"

	"time-picker/internal/timeofday"
)

// Constraints bound the values a time picker accepts.
type Constraints struct {
	Min        *timeofday.TimeOfDay
	Max        *timeofday.TimeOfDay
	Restricted map[timeofday.TimeOfDay]struct{}
}

// NewConstraints builds constraints from optional bounds and a restricted list.
func NewConstraints(min, max *timeofday.TimeOfDay, restricted ...timeofday.TimeOfDay) Constraints {
	c := Constraints{Min: min, Max: max}
	if len(restricted) > 0 {
		c.Restricted = make(map[timeofday.TimeOfDay]struct{}, len(restricted))
		for _, r := range restricted {
			c.Restricted[r] = struct{}{}
		}
	}
	return c
}

// IsRestricted reports whether value is in the restricted set.
func (c Constraints) IsRestricted(value timeofday.TimeOfDay) bool {
	_, ok := c.Restricted[value]
	return ok
}

// RestrictedTimes returns the restricted set in ascending order.
func (c Constraints) RestrictedTimes() []timeofday.TimeOfDay {
	out := make([]timeofday.TimeOfDay, 0, len(c.Restricted))
	for r := range c.Restricted {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsAllowed is false when value is below Min, above Max or restricted.
func IsAllowed(value timeofday.TimeOfDay, c Constraints) bool {
	if c.Min != nil && value < *c.Min {
		return false
	}
	if c.Max != nil && value > *c.Max {
		return false
	}
	return !c.IsRestricted(value)
}

// TimeValidator checks values and constraint sets on behalf of the picker.
type TimeValidator struct {
	// Custom, when set, must also accept a value for it to be allowed.
	Custom func(timeofday.TimeOfDay) bool
}

// NewTimeValidator creates a new validator instance
func NewTimeValidator() *TimeValidator {
	return &TimeValidator{}
}

// IsAllowed applies the constraints and then the custom callback.
func (v *TimeValidator) IsAllowed(value timeofday.TimeOfDay, c Constraints) bool {
	if !value.IsValid() || !IsAllowed(value, c) {
		return false
	}
	if v.Custom != nil {
		return v.Custom(value)
	}
	return true
}

// ValidateValue explains why value is not allowed, or returns nil.
func (v *TimeValidator) ValidateValue(field string, value timeofday.TimeOfDay, c Constraints) error {
	validationError := NewValidationError()

	switch {
	case !value.IsValid():
		validationError.AddInvalidValueError(field, int64(value), "must be within a single day")
	case c.Min != nil && value < *c.Min:
		validationError.AddInvalidRangeError(field, value.String(), "earlier than min "+c.Min.String())
	case c.Max != nil && value > *c.Max:
		validationError.AddInvalidRangeError(field, value.String(), "later than max "+c.Max.String())
	case c.IsRestricted(value):
		validationError.AddRestrictedError(field, value.String())
	case v.Custom != nil && !v.Custom(value):
		validationError.AddInvalidValueError(field, value.String(), "rejected by validation callback")
	}

	return validationError.OrNil()
}

// ValidateConstraints checks that the bounds are inside a day and ordered.
func (v *TimeValidator) ValidateConstraints(c Constraints) error {
	validationError := NewValidationError()

	if c.Min != nil && !c.Min.IsValid() {
		validationError.AddInvalidValueError("min", int64(*c.Min), "must be within a single day")
	}
	if c.Max != nil && !c.Max.IsValid() {
		validationError.AddInvalidValueError("max", int64(*c.Max), "must be within a single day")
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		validationError.AddInvalidRangeError("min", c.Min.String(), "min must not be later than max")
	}
	for r := range c.Restricted {
		if !r.IsValid() {
			validationError.AddInvalidValueError("restricted_times", int64(r), "must be within a single day")
		}
	}

	return validationError.OrNil()
}

// ValidateStep checks an option step in minutes. Zero means "use the default".
func (v *TimeValidator) ValidateStep(step int) error {
	if step < 0 || step > 24*60 {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("step", step, "must be between 0 and 1440 minutes")
		return validationError
	}
	return nil
}

// ParseTimeField parses a value-grammar string for a named field. Empty input
// yields nil without error.
func (v *TimeValidator) ParseTimeField(field, s string, allowSeconds bool) (*timeofday.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := timeofday.ParseValue(s, allowSeconds)
	if !ok {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError(field, s, "HH:mm or HH:mm:ss")
		return nil, validationError
	}
	return &t, nil
}
