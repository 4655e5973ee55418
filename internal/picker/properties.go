package picker

import (
	"time-picker/internal/options"
	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

// Properties are the governing inputs of a picker.
type Properties struct {
	Use24HourTime    bool
	AllowSeconds     bool
	Masked           bool
	AllowInvalidTime bool
	ShowNow          bool
	ShowHourOptions  bool
	AllowInput       bool
	AllowDropdown    bool
	Disabled         bool
	// Step is in minutes.
	Step            int
	Min             *timeofday.TimeOfDay
	Max             *timeofday.TimeOfDay
	StartTime       *timeofday.TimeOfDay
	RestrictedTimes []timeofday.TimeOfDay
	CustomOptions   []options.CustomOption
}

// DefaultProperties returns a masked 12-hour picker with hourly options.
func DefaultProperties() Properties {
	return Properties{
		Masked:          true,
		ShowHourOptions: true,
		AllowInput:      true,
		AllowDropdown:   true,
		Step:            options.DefaultStep,
	}
}

// Format returns the display format.
func (p Properties) Format() timeofday.Format {
	return timeofday.Format{Use24Hour: p.Use24HourTime, AllowSeconds: p.AllowSeconds}
}

// Constraints returns the bounds values must satisfy.
func (p Properties) Constraints() validation.Constraints {
	return validation.NewConstraints(p.Min, p.Max, p.RestrictedTimes...)
}

// OptionParams returns the generator input for these properties.
func (p Properties) OptionParams() options.Params {
	return options.Params{
		Format:          p.Format(),
		ShowNow:         p.ShowNow,
		ShowHourOptions: p.ShowHourOptions,
		CustomOptions:   p.CustomOptions,
		Step:            p.Step,
		StartTime:       p.StartTime,
		Constraints:     p.Constraints(),
	}
}
