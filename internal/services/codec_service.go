package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	"time-picker/internal/errors"
	"time-picker/internal/picker"
	"time-picker/internal/timeofday"
)

// Date layouts accepted by Merge, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// codecServiceImpl implements the CodecService interface
type codecServiceImpl struct {
	clock  clock.Clock
	logger zerolog.Logger
}

// NewCodecService creates a new CodecService instance
func NewCodecService(clk clock.Clock, logger zerolog.Logger) CodecService {
	return &codecServiceImpl{
		clock:  clk,
		logger: logger,
	}
}

// Parse types text into a fresh picker and blurs it, reporting the committed value
func (c *codecServiceImpl) Parse(ctx context.Context, text string, attrs picker.Attributes) (*ParsedTime, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewInvalidInputError("text", text, "cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attrs.Value = ""
	s := newSession(c.clock, c.logger, attrs)
	s.typeText(text)
	s.blur()

	value := s.controller.Value()
	return &ParsedTime{
		Input:   text,
		Value:   value,
		Display: s.controller.Display(),
		Valid:   value != "",
	}, nil
}

// Format renders a value string in the configured and both fixed conventions
func (c *codecServiceImpl) Format(ctx context.Context, value string, attrs picker.Attributes) (*FormattedTime, error) {
	t, ok := timeofday.ParseValue(value, attrs.AllowSeconds)
	if !ok {
		return nil, errors.NewInvalidInputError("value", value, "expected HH:mm or HH:mm:ss")
	}

	format := timeofday.Format{Use24Hour: attrs.Use24HourTime, AllowSeconds: attrs.AllowSeconds}
	return &FormattedTime{
		Value:     timeofday.FormatValue(t, attrs.AllowSeconds),
		Display:   timeofday.Render(t, format),
		Display12: timeofday.Render(t, timeofday.Format{AllowSeconds: attrs.AllowSeconds}),
		Display24: timeofday.Render(t, timeofday.Format{Use24Hour: true, AllowSeconds: attrs.AllowSeconds}),
	}, nil
}

// Merge applies a 12-hour or 24-hour time string to a date
func (c *codecServiceImpl) Merge(ctx context.Context, date, text string, allowSeconds bool) (*MergedTime, error) {
	day, err := c.parseDate(date)
	if err != nil {
		return nil, err
	}

	result, err := timeofday.MergeDate(day, text, allowSeconds)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("date", date).Str("time", text).Time("result", result).Msg("merged date and time")
	return &MergedTime{
		Date:   date,
		Time:   text,
		Result: result,
	}, nil
}

func (c *codecServiceImpl) parseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if strings.EqualFold(date, "today") {
		return c.clock.Now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, date, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError("date", date, "expected YYYY-MM-DD, an RFC 3339 timestamp or \"today\"")
}
