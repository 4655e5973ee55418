package picker

import (
	"slices"
	"strings"

	"github.com/gorilla/schema"

	apperrors "time-picker/internal/errors"
	"time-picker/internal/validation"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Attributes is the typed form of a picker's string attributes.
type Attributes struct {
	Value            string   `schema:"value"`
	Min              string   `schema:"min"`
	Max              string   `schema:"max"`
	StartTime        string   `schema:"start-time"`
	Step             int      `schema:"step,default:60"`
	RestrictedTimes  []string `schema:"restricted-times"`
	Use24HourTime    bool     `schema:"use-24-hour-time"`
	AllowSeconds     bool     `schema:"allow-seconds"`
	Masked           bool     `schema:"masked"`
	AllowInvalidTime bool     `schema:"allow-invalid-time"`
	ShowNow          bool     `schema:"show-now"`
	ShowHourOptions  bool     `schema:"show-hour-options"`
	AllowInput       bool     `schema:"allow-input"`
	AllowDropdown    bool     `schema:"allow-dropdown"`
	Disabled         bool     `schema:"disabled"`
}

// A boolean attribute that is present without a value is true.
var booleanAttributes = []string{
	"use-24-hour-time", "allow-seconds", "masked", "allow-invalid-time", "show-now",
	"show-hour-options", "allow-input", "allow-dropdown", "disabled",
}

// DecodeAttributes converts attribute name/value pairs into Attributes.
// Restricted times are a comma separated list. Attributes that fail
// conversion are reported as invalid input; the result is then validated.
func DecodeAttributes(attrs map[string]string) (Attributes, error) {
	src := make(map[string][]string, len(attrs))
	for name, value := range attrs {
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		switch {
		case name == "restricted-times":
			if list := splitList(value); len(list) > 0 {
				src[name] = list
			}
		case value == "" && slices.Contains(booleanAttributes, name):
			src[name] = []string{"true"}
		default:
			src[name] = []string{value}
		}
	}

	// Boolean defaults are seeded here; the decoder only touches keys present in src.
	a := Attributes{Masked: true, ShowHourOptions: true, AllowInput: true, AllowDropdown: true}
	if err := decoder.Decode(&a, src); err != nil {
		return Attributes{}, apperrors.WrapError(err, apperrors.ErrorTypeInvalidInput, "invalid time picker attributes")
	}
	return a, a.Validate()
}

// Validate reports a step outside a day and bounds that exclude every time.
// Unparsable times are not errors; they resolve to no bound.
func (a Attributes) Validate() error {
	validator := validation.NewTimeValidator()
	if err := validator.ValidateStep(a.Step); err != nil {
		return err
	}

	min, _ := validator.ParseTimeField("min", a.Min, true)
	max, _ := validator.ParseTimeField("max", a.Max, true)
	return validator.ValidateConstraints(validation.NewConstraints(min, max))
}

// ApplyAttributes writes every attribute through the property setters.
// Format and constraints are applied before the value so it is checked against them.
func (c *Controller) ApplyAttributes(a Attributes) {
	c.SetUse24HourTime(a.Use24HourTime)
	c.SetAllowSeconds(a.AllowSeconds)
	c.SetMasked(a.Masked)
	c.SetAllowInvalidTime(a.AllowInvalidTime)
	c.SetAllowInput(a.AllowInput)
	c.SetAllowDropdown(a.AllowDropdown)
	c.SetShowNow(a.ShowNow)
	c.SetShowHourOptions(a.ShowHourOptions)
	c.SetStep(a.Step)
	c.SetMin(a.Min)
	c.SetMax(a.Max)
	c.SetStartTime(a.StartTime)
	c.SetRestrictedTimes(a.RestrictedTimes)
	c.SetDisabled(a.Disabled)
	if a.Value != "" {
		c.SetValue(a.Value)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
