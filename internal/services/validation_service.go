package services

import (
	"context"
	stderrors "errors"

	"github.com/rs/zerolog"

	"time-picker/internal/errors"
	"time-picker/internal/options"
	"time-picker/internal/picker"
	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

// validationServiceImpl implements the ValidationService interface
type validationServiceImpl struct {
	validator *validation.TimeValidator
	logger    zerolog.Logger
}

// NewValidationService creates a new ValidationService instance
func NewValidationService(logger zerolog.Logger) ValidationService {
	return &validationServiceImpl{
		validator: validation.NewTimeValidator(),
		logger:    logger,
	}
}

// Validate checks value against the constraints in attrs. A malformed value
// is an error; a well-formed value that is not allowed is reported.
func (v *validationServiceImpl) Validate(ctx context.Context, value string, attrs picker.Attributes) (*ValidationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := v.validator.ParseTimeField("value", value, attrs.AllowSeconds)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewInvalidInputError("value", value, "a value is required")
	}

	params := v.params(attrs)
	report := &ValidationReport{
		Value:   timeofday.FormatValue(*t, attrs.AllowSeconds),
		Allowed: true,
	}

	if err := v.validator.ValidateValue("value", *t, params.Constraints); err != nil {
		var validationErr *validation.ValidationError
		if !stderrors.As(err, &validationErr) {
			return nil, err
		}
		report.Allowed = false
		report.Problems = validationErr.Errors
		report.Suggestion = v.suggest(*t, params)
		v.logger.Debug().Str("value", report.Value).Int("problems", len(report.Problems)).Msg("value not allowed")
	}

	return report, nil
}

// suggest returns the closest selectable hourly option, or "" when there is none.
func (v *validationServiceImpl) suggest(t timeofday.TimeOfDay, params options.Params) string {
	params.ShowNow = false
	params.CustomOptions = nil
	params.ShowHourOptions = true

	var opts []options.Option
	for _, o := range options.Generate(params) {
		if !o.Disabled {
			opts = append(opts, o)
		}
	}
	outcome := options.Match(&t, nil, opts, nil)
	if !outcome.HasActive() {
		return ""
	}
	return timeofday.FormatValue(*opts[outcome.ActiveIndex].Time, params.Format.AllowSeconds)
}

func (v *validationServiceImpl) params(attrs picker.Attributes) options.Params {
	parse := func(s string) *timeofday.TimeOfDay { return timeofday.ParseOptionalValue(s, true) }

	var restricted []timeofday.TimeOfDay
	for _, s := range attrs.RestrictedTimes {
		if r := parse(s); r != nil {
			restricted = append(restricted, *r)
		}
	}

	return options.Params{
		Format:      timeofday.Format{Use24Hour: attrs.Use24HourTime, AllowSeconds: attrs.AllowSeconds},
		Step:        attrs.Step,
		StartTime:   parse(attrs.StartTime),
		Constraints: validation.NewConstraints(parse(attrs.Min), parse(attrs.Max), restricted...),
	}
}
