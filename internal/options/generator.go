// Package options builds the dropdown option list and resolves selections against it.
package options

import (
	"fmt"

	"time-picker/internal/clock"
	apperrors "time-picker/internal/errors"
	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

const (
	// DefaultStep is the spacing in minutes of generated options.
	DefaultStep = 60

	NowLabel    = "Now"
	NowMetadata = "now"
)

// Resolver turns a custom option's value into milliseconds since midnight.
type Resolver func(value any) (int64, error)

// Option is one entry of the dropdown. A nil Time means the option is
// resolved when it is selected.
type Option struct {
	Time     *timeofday.TimeOfDay
	Label    string
	Metadata any
	IsCustom bool
	Disabled bool
	Resolver Resolver
}

// IsNow reports whether o is the "Now" entry.
func (o Option) IsNow() bool {
	return o.Time == nil && !o.IsCustom && o.Metadata == NowMetadata
}

// IsLazy reports whether o has no time until it is resolved.
func (o Option) IsLazy() bool {
	return o.Time == nil
}

// CustomOption is an integrator-supplied entry.
type CustomOption struct {
	Label          string
	Value          any
	ToMilliseconds Resolver
}

// Params are the picker properties that govern the option list.
type Params struct {
	Format          timeofday.Format
	ShowNow         bool
	ShowHourOptions bool
	CustomOptions   []CustomOption
	// Step is in minutes; zero or less selects DefaultStep.
	Step        int
	StartTime   *timeofday.TimeOfDay
	Constraints validation.Constraints
}

// Generate builds the option list: "Now" first, then custom entries in
// input order, then the step-spaced sequence.
func Generate(p Params) []Option {
	var opts []Option

	if p.ShowNow {
		opts = append(opts, Option{Label: NowLabel, Metadata: NowMetadata})
	}

	for _, c := range p.CustomOptions {
		opts = append(opts, Option{
			Label:    c.Label,
			Metadata: c.Value,
			IsCustom: true,
			Resolver: c.ToMilliseconds,
		})
	}

	if p.ShowHourOptions {
		first, last := Bounds(p)
		for t := first; t <= last; t += stepOf(p) {
			v := t
			opts = append(opts, Option{
				Time:     &v,
				Label:    timeofday.Render(v, p.Format),
				Metadata: timeofday.FormatValue(v, p.Format.AllowSeconds),
				Disabled: p.Constraints.IsRestricted(v),
			})
		}
	}

	return opts
}

// Bounds returns the first and last instants of the step-spaced sequence.
// The sequence lies on the grid anchored at StartTime, or at the lower bound
// when there is none. first > last means the range is empty.
func Bounds(p Params) (first, last timeofday.TimeOfDay) {
	step := stepOf(p)

	lower := timeofday.TimeOfDay(0)
	if p.Constraints.Min != nil && *p.Constraints.Min > lower {
		lower = *p.Constraints.Min
	}

	first = lower
	if p.StartTime != nil {
		offset := (*p.StartTime - lower) % step
		if offset < 0 {
			offset += step
		}
		first = lower + offset
	}

	last = timeofday.Day - 1
	if p.Constraints.Max != nil && *p.Constraints.Max < last {
		last = *p.Constraints.Max
	}
	return first, last
}

func stepOf(p Params) timeofday.TimeOfDay {
	step := p.Step
	if step <= 0 {
		step = DefaultStep
	}
	return timeofday.TimeOfDay(step) * timeofday.Minute
}

// Resolve returns the time an option stands for. "Now" reads the clock and
// custom entries call their resolver; a missing resolver or a result outside
// a single day is a contract violation.
func Resolve(o Option, c clock.Clock, allowSeconds bool) (timeofday.TimeOfDay, error) {
	switch {
	case o.Time != nil:
		return *o.Time, nil
	case o.IsNow():
		return timeofday.Current(c, allowSeconds), nil
	case !o.IsCustom:
		return 0, apperrors.NewContractError(subject(o), "option has neither a time nor a resolver")
	case o.Resolver == nil:
		return 0, apperrors.NewContractError(subject(o), "custom option has no toMilliseconds resolver")
	}

	ms, err := o.Resolver(o.Metadata)
	if err != nil {
		appErr := apperrors.NewContractError(subject(o), "toMilliseconds failed")
		appErr.Cause = err
		return 0, appErr
	}

	t := timeofday.TimeOfDay(ms)
	if !t.IsValid() {
		return 0, apperrors.NewContractError(subject(o), fmt.Sprintf("toMilliseconds returned %d, outside a single day", ms)).
			WithContext("milliseconds", ms)
	}
	return t, nil
}

func subject(o Option) string {
	if o.Label != "" {
		return fmt.Sprintf("custom option %q", o.Label)
	}
	return "custom option"
}
