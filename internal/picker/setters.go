package picker

import (
	"time-picker/internal/mask"
	"time-picker/internal/options"
	"time-picker/internal/timeofday"
)

// SetUse24HourTime switches the clock convention. Only the display changes.
func (c *Controller) SetUse24HourTime(use24Hour bool) {
	c.props.Use24HourTime = use24Hour
	c.resetMask()
	c.redisplay()
	c.refresh()
}

// SetAllowSeconds toggles seconds. Turning them off truncates the value to the minute.
func (c *Controller) SetAllowSeconds(allow bool) {
	c.props.AllowSeconds = allow
	if !allow && c.value != nil {
		v := c.value.TruncateToMinute()
		c.value = &v
		c.revalidate()
	}
	c.resetMask()
	c.redisplay()
	c.refresh()
}

// SetMasked toggles input masking. The value is kept.
func (c *Controller) SetMasked(masked bool) {
	c.props.Masked = masked
	c.resetMask()
	c.redisplay()
}

// SetAllowInvalidTime controls whether unparsable text stays in the input.
func (c *Controller) SetAllowInvalidTime(allow bool) { c.props.AllowInvalidTime = allow }

// SetAllowInput controls whether the input accepts typing.
func (c *Controller) SetAllowInput(allow bool) { c.props.AllowInput = allow }

// SetAllowDropdown enables the dropdown; disabling it closes an open one.
func (c *Controller) SetAllowDropdown(allow bool) {
	c.props.AllowDropdown = allow
	if !allow && c.open {
		c.close()
	}
}

// SetDisabled disables the picker and closes the dropdown.
func (c *Controller) SetDisabled(disabled bool) {
	c.props.Disabled = disabled
	c.presenter.SetDisabled(disabled)
	if disabled && c.open {
		c.close()
	}
}

// SetShowNow adds or removes the "Now" option.
func (c *Controller) SetShowNow(show bool) {
	c.props.ShowNow = show
	c.refresh()
}

// SetShowHourOptions adds or removes the step-spaced options.
func (c *Controller) SetShowHourOptions(show bool) {
	c.props.ShowHourOptions = show
	c.refresh()
}

// SetStep sets the option spacing in minutes.
func (c *Controller) SetStep(minutes int) {
	c.props.Step = minutes
	c.refresh()
}

// SetCustomOptions replaces the integrator-supplied options.
func (c *Controller) SetCustomOptions(custom []options.CustomOption) {
	c.props.CustomOptions = append([]options.CustomOption(nil), custom...)
	c.refresh()
}

// SetMin sets the lower bound. An unparsable string removes the bound.
func (c *Controller) SetMin(s string) {
	c.props.Min = timeofday.ParseOptionalValue(s, true)
	c.revalidate()
	c.refresh()
}

// SetMax sets the upper bound. An unparsable string removes the bound.
func (c *Controller) SetMax(s string) {
	c.props.Max = timeofday.ParseOptionalValue(s, true)
	c.revalidate()
	c.refresh()
}

// SetStartTime sets the time the option list is anchored on.
func (c *Controller) SetStartTime(s string) {
	c.props.StartTime = timeofday.ParseOptionalValue(s, true)
	c.refresh()
}

// SetRestrictedTimes replaces the restricted set. Unparsable entries are skipped.
func (c *Controller) SetRestrictedTimes(values []string) {
	restricted := make([]timeofday.TimeOfDay, 0, len(values))
	for _, s := range values {
		if t := timeofday.ParseOptionalValue(s, true); t != nil {
			restricted = append(restricted, *t)
		}
	}
	c.props.RestrictedTimes = restricted
	c.revalidate()
	c.refresh()
}

// Min returns the lower bound as a value string, or "".
func (c *Controller) Min() string { return boundString(c.props.Min) }

// Max returns the upper bound as a value string, or "".
func (c *Controller) Max() string { return boundString(c.props.Max) }

// StartTime returns the anchor time as a value string, or "".
func (c *Controller) StartTime() string { return boundString(c.props.StartTime) }

// RestrictedTimes returns the restricted set as value strings.
func (c *Controller) RestrictedTimes() []string {
	out := make([]string, 0, len(c.props.RestrictedTimes))
	for i := range c.props.RestrictedTimes {
		out = append(out, boundString(&c.props.RestrictedTimes[i]))
	}
	return out
}

// SetValidationCallback adds an integrator check every value must also pass.
func (c *Controller) SetValidationCallback(fn ValidationCallback) {
	c.validator.Custom = fn
	c.revalidate()
}

// SetParseCallback replaces parsing of value strings and typed text.
func (c *Controller) SetParseCallback(fn ParseCallback) { c.parseFn = fn }

// SetFormatCallback replaces rendering of the display text.
func (c *Controller) SetFormatCallback(fn FormatCallback) {
	c.formatFn = fn
	c.redisplay()
}

// SetCoercionCallback lets the integrator replace completed partial input.
func (c *Controller) SetCoercionCallback(fn timeofday.CoercionFunc) { c.coerceFn = fn }

func (c *Controller) resetMask() {
	c.masker = mask.New(c.props.Format())
	c.coerced = ""
}

func (c *Controller) redisplay() {
	if c.value != nil {
		c.setDisplay(c.render(c.value))
	}
}

func boundString(t *timeofday.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return timeofday.FormatValue(*t, t.Seconds() != 0)
}
