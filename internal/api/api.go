package api

import (
	"context"
	"strconv"
	"strings"

	"time-picker/internal/config"
	"time-picker/internal/errors"
	"time-picker/internal/picker"
	"time-picker/internal/services"
)

// API defines the operations behind the tp commands. Every call runs
// against the picker properties the API was created with.
type API interface {
	// Parse types text into a picker and reports the committed value
	Parse(ctx context.Context, text string) (*services.ParsedTime, error)

	// Format renders a value string for display
	Format(ctx context.Context, value string) (*services.FormattedTime, error)

	// Options lists the dropdown for an optional current value
	Options(ctx context.Context, current string) (*services.OptionList, error)

	// Mask replays key tokens through a picker
	Mask(ctx context.Context, keys []string) (*services.MaskTrace, error)

	// Merge applies a time string to a date
	Merge(ctx context.Context, date, text string) (*services.MergedTime, error)

	// Validate checks a value string against min, max and restricted times
	Validate(ctx context.Context, value string) (*services.ValidationReport, error)

	// Attributes returns the picker attributes in effect
	Attributes() picker.Attributes
}

type apiImpl struct {
	services *services.ServiceContainer
	attrs    picker.Attributes
}

// New creates a new API instance for the picker configuration.
func New(container *services.ServiceContainer, cfg config.PickerConfig) (API, error) {
	attrs, err := AttributesFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &apiImpl{
		services: container,
		attrs:    attrs,
	}, nil
}

// AttributesFromConfig converts the picker configuration into attributes,
// decoded and validated the same way as markup attributes.
func AttributesFromConfig(cfg config.PickerConfig) (picker.Attributes, error) {
	attrs := map[string]string{
		"use-24-hour-time":   strconv.FormatBool(cfg.Use24Hour),
		"allow-seconds":      strconv.FormatBool(cfg.AllowSeconds),
		"masked":             strconv.FormatBool(cfg.Masked),
		"allow-invalid-time": strconv.FormatBool(cfg.AllowInvalidTime),
		"show-now":           strconv.FormatBool(cfg.ShowNow),
		"show-hour-options":  strconv.FormatBool(cfg.ShowHourOptions),
		"step":               strconv.Itoa(cfg.Step),
		"min":                cfg.Min,
		"max":                cfg.Max,
		"start-time":         cfg.StartTime,
	}
	if len(cfg.RestrictedTimes) > 0 {
		attrs["restricted-times"] = strings.Join(cfg.RestrictedTimes, ",")
	}

	a, err := picker.DecodeAttributes(attrs)
	if err != nil {
		return picker.Attributes{}, errors.WrapError(err, errors.ErrorTypeConfiguration, "invalid picker configuration")
	}
	return a, nil
}

func (a *apiImpl) Attributes() picker.Attributes {
	attrs := a.attrs
	attrs.RestrictedTimes = append([]string(nil), a.attrs.RestrictedTimes...)
	return attrs
}

func (a *apiImpl) Parse(ctx context.Context, text string) (*services.ParsedTime, error) {
	return a.services.CodecService.Parse(ctx, text, a.Attributes())
}

func (a *apiImpl) Format(ctx context.Context, value string) (*services.FormattedTime, error) {
	return a.services.CodecService.Format(ctx, value, a.Attributes())
}

func (a *apiImpl) Options(ctx context.Context, current string) (*services.OptionList, error) {
	attrs := a.Attributes()
	attrs.Value = current
	return a.services.OptionService.List(ctx, attrs)
}

func (a *apiImpl) Mask(ctx context.Context, keys []string) (*services.MaskTrace, error) {
	return a.services.MaskService.Replay(ctx, keys, a.Attributes())
}

func (a *apiImpl) Merge(ctx context.Context, date, text string) (*services.MergedTime, error) {
	return a.services.CodecService.Merge(ctx, date, text, a.attrs.AllowSeconds)
}

func (a *apiImpl) Validate(ctx context.Context, value string) (*services.ValidationReport, error) {
	return a.services.ValidationService.Validate(ctx, value, a.Attributes())
}
