package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-picker/internal/clock"
	"time-picker/internal/errors"
	"time-picker/internal/logging"
	"time-picker/internal/picker"
	"time-picker/internal/validation"
)

var testNow = time.Date(2024, 5, 6, 14, 32, 45, 0, time.Local)

func testClock() clock.Clock { return clock.NewMock(testNow) }

func attrs(t *testing.T, pairs ...string) picker.Attributes {
	t.Helper()
	require.Zero(t, len(pairs)%2, "attribute pairs must be even")

	m := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	a, err := picker.DecodeAttributes(m)
	require.NoError(t, err)
	return a
}

func TestCodecService_Parse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		attrs   []string
		value   string
		display string
	}{
		{name: "should parse masked digits", text: "1111", value: "11:11", display: "11:11 AM"},
		{name: "should honor a marker while masked", text: "4:15pm", value: "16:15", display: "04:15 PM"},
		{name: "should parse 24 hour input", text: "1630", attrs: []string{"use-24-hour-time", ""}, value: "16:30", display: "16:30"},
		{name: "should parse unmasked text with marker", text: "4:15pm", attrs: []string{"masked", "false"}, value: "16:15", display: "04:15 PM"},
		{name: "should clear unparsable text", text: "xyz", attrs: []string{"masked", "false"}, value: "", display: ""},
		{name: "should keep unparsable text when invalid times are allowed", text: "xyz", attrs: []string{"masked", "false", "allow-invalid-time", ""}, value: "", display: "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			service := NewCodecService(testClock(), logging.Nop())

			// Act
			result, err := service.Parse(context.Background(), tt.text, attrs(t, tt.attrs...))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.text, result.Input)
			assert.Equal(t, tt.value, result.Value)
			assert.Equal(t, tt.display, result.Display)
			assert.Equal(t, tt.value != "", result.Valid)
		})
	}
}

func TestCodecService_Parse_Errors(t *testing.T) {
	service := NewCodecService(testClock(), logging.Nop())

	t.Run("should reject empty text", func(t *testing.T) {
		_, err := service.Parse(context.Background(), "  ", attrs(t))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})

	t.Run("should report a value outside the bounds as invalid", func(t *testing.T) {
		result, err := service.Parse(context.Background(), "0900", attrs(t, "min", "12:00"))
		require.NoError(t, err)
		assert.Equal(t, "", result.Value)
		assert.False(t, result.Valid)
	})

	t.Run("should stop on a canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.Parse(ctx, "1111", attrs(t))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCodecService_Format(t *testing.T) {
	service := NewCodecService(testClock(), logging.Nop())

	t.Run("should render every convention", func(t *testing.T) {
		result, err := service.Format(context.Background(), "16:15", attrs(t))
		require.NoError(t, err)
		assert.Equal(t, &FormattedTime{
			Value:     "16:15",
			Display:   "04:15 PM",
			Display12: "04:15 PM",
			Display24: "16:15",
		}, result)
	})

	t.Run("should include seconds when allowed", func(t *testing.T) {
		result, err := service.Format(context.Background(), "00:05:09", attrs(t, "allow-seconds", "", "use-24-hour-time", ""))
		require.NoError(t, err)
		assert.Equal(t, "00:05:09", result.Display)
		assert.Equal(t, "12:05:09 AM", result.Display12)
	})

	t.Run("should reject a non value string", func(t *testing.T) {
		_, err := service.Format(context.Background(), "4pm", attrs(t))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestCodecService_Merge(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		text     string
		expected time.Time
	}{
		{"should merge a 12 hour time", "2024-01-15", "04:00 PM", time.Date(2024, 1, 15, 16, 0, 0, 0, time.Local)},
		{"should merge a 24 hour time", "2024-01-15", "16:30", time.Date(2024, 1, 15, 16, 30, 0, 0, time.Local)},
		{"should use the clock for today", "today", "9:05 am", time.Date(2024, 5, 6, 9, 5, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewCodecService(testClock(), logging.Nop())

			result, err := service.Merge(context.Background(), tt.date, tt.text, false)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result.Result), "got %s", result.Result)
		})
	}

	t.Run("should reject a bad date", func(t *testing.T) {
		service := NewCodecService(testClock(), logging.Nop())
		_, err := service.Merge(context.Background(), "15/01/2024", "16:00", false)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})

	t.Run("should reject a bad time", func(t *testing.T) {
		service := NewCodecService(testClock(), logging.Nop())
		_, err := service.Merge(context.Background(), "2024-01-15", "25:00", false)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestOptionService_List(t *testing.T) {
	service := NewOptionService(testClock(), logging.Nop())

	t.Run("should mark the closest option active", func(t *testing.T) {
		list, err := service.List(context.Background(), attrs(t, "min", "08:00", "max", "11:00", "value", "09:30", "use-24-hour-time", ""))
		require.NoError(t, err)

		assert.Equal(t, "09:30", list.Current)
		require.Len(t, list.Options, 4)
		labels := make([]string, 0, len(list.Options))
		for _, o := range list.Options {
			labels = append(labels, o.Label)
			assert.Equal(t, KindHour, o.Kind)
			assert.False(t, o.Matched)
		}
		assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, labels)
		assert.True(t, list.Options[1].Active)
	})

	t.Run("should mark an exact match", func(t *testing.T) {
		list, err := service.List(context.Background(), attrs(t, "min", "08:00", "max", "11:00", "value", "10:00"))
		require.NoError(t, err)
		assert.True(t, list.Options[2].Matched)
		assert.False(t, list.Options[2].Active)
		assert.Equal(t, "10:00 AM", list.Options[2].Label)
	})

	t.Run("should resolve now against the clock", func(t *testing.T) {
		list, err := service.List(context.Background(), attrs(t, "show-now", "", "show-hour-options", "false"))
		require.NoError(t, err)
		require.Len(t, list.Options, 1)
		assert.Equal(t, &OptionEntry{Index: 0, Label: "Now", Value: "14:32", Kind: KindNow}, list.Options[0])
	})

	t.Run("should disable restricted times", func(t *testing.T) {
		list, err := service.List(context.Background(), attrs(t, "min", "08:00", "max", "11:00", "restricted-times", "10:00"))
		require.NoError(t, err)
		assert.True(t, list.Options[2].Disabled)
		assert.Equal(t, "10:00", list.Options[2].Value)
	})

	t.Run("should refuse an empty list", func(t *testing.T) {
		_, err := service.List(context.Background(), attrs(t, "show-hour-options", "false"))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))
	})

	t.Run("should refuse when the dropdown is not allowed", func(t *testing.T) {
		_, err := service.List(context.Background(), attrs(t, "allow-dropdown", "false"))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeState))
	})
}

func TestMaskService_Replay(t *testing.T) {
	service := NewMaskService(testClock(), logging.Nop())

	t.Run("should mask digits as they are typed", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"1", "1", "1", "1"}, attrs(t))
		require.NoError(t, err)

		require.Len(t, trace.Steps, 5)
		assert.Equal(t, "1", trace.Steps[0].Display)
		assert.Equal(t, "", trace.Steps[0].Value)
		assert.Equal(t, "11:", trace.Steps[1].Display)
		assert.Equal(t, "11:1", trace.Steps[2].Display)
		assert.Equal(t, "11:11 AM", trace.Steps[3].Display)
		assert.Equal(t, "blur", trace.Steps[4].Token)
		assert.Equal(t, "11:11", trace.Value)
		assert.Equal(t, "11:11 AM", trace.Display)
		require.NotEmpty(t, trace.Changes)
		assert.Equal(t, "11:11", trace.Changes[len(trace.Changes)-1].Value)
	})

	t.Run("should apply a meridiem key", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"11", "11", "pm"}, attrs(t))
		require.NoError(t, err)
		assert.Equal(t, "23:11", trace.Value)
		assert.Equal(t, "11:11 PM", trace.Display)
	})

	t.Run("should remove the last digit on backspace", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"123", "backspace"}, attrs(t))
		require.NoError(t, err)
		assert.Equal(t, "12:3", trace.Steps[0].Display)
		assert.Equal(t, "12:", trace.Steps[1].Display)
	})

	t.Run("should clear on shift backspace", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"0800", "shift+backspace"}, attrs(t))
		require.NoError(t, err)
		assert.Equal(t, "08:00", trace.Steps[0].Value)
		assert.Equal(t, "", trace.Value)
		assert.Equal(t, "", trace.Display)
		assert.Equal(t, picker.ChangeEvent{Previous: "08:00"}, trace.Changes[len(trace.Changes)-1])
	})

	t.Run("should select from the dropdown", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"down", "down", "enter"}, attrs(t))
		require.NoError(t, err)
		assert.True(t, trace.Steps[0].Open)
		assert.False(t, trace.Steps[2].Open)
		assert.Equal(t, "01:00", trace.Steps[2].Value)
		assert.Equal(t, "01:00", trace.Value)
		assert.Equal(t, "01:00 AM", trace.Display)
	})

	t.Run("should set the current time", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"n"}, attrs(t))
		require.NoError(t, err)
		assert.Equal(t, "14:32", trace.Value)
		assert.Equal(t, "02:32 PM", trace.Display)
	})

	t.Run("should not append a second blur", func(t *testing.T) {
		trace, err := service.Replay(context.Background(), []string{"0930", "blur"}, attrs(t))
		require.NoError(t, err)
		assert.Len(t, trace.Steps, 2)
		assert.Equal(t, "09:30", trace.Value)
	})

	t.Run("should require a key", func(t *testing.T) {
		_, err := service.Replay(context.Background(), nil, attrs(t))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestValidationService_Validate(t *testing.T) {
	bounds := []string{"min", "08:00", "max", "18:00", "restricted-times", "12:00"}

	tests := []struct {
		name       string
		value      string
		allowed    bool
		problem    validation.ValidationErrorType
		suggestion string
	}{
		{name: "should allow a value inside the bounds", value: "10:00", allowed: true},
		{name: "should reject a value before min", value: "07:00", problem: validation.ErrorTypeInvalidRange, suggestion: "08:00"},
		{name: "should reject a value after max", value: "23:15", problem: validation.ErrorTypeInvalidRange, suggestion: "18:00"},
		{name: "should reject a restricted value", value: "12:00", problem: validation.ErrorTypeRestricted, suggestion: "11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewValidationService(logging.Nop())

			report, err := service.Validate(context.Background(), tt.value, attrs(t, bounds...))

			require.NoError(t, err)
			assert.Equal(t, tt.value, report.Value)
			assert.Equal(t, tt.allowed, report.Allowed)
			assert.Equal(t, tt.suggestion, report.Suggestion)
			if tt.allowed {
				assert.Empty(t, report.Problems)
			} else {
				require.Len(t, report.Problems, 1)
				assert.Equal(t, tt.problem, report.Problems[0].Type)
			}
		})
	}
}

func TestValidationService_Validate_Errors(t *testing.T) {
	service := NewValidationService(logging.Nop())

	t.Run("should reject a malformed value", func(t *testing.T) {
		_, err := service.Validate(context.Background(), "noon", attrs(t))
		assert.True(t, validation.IsValidationError(err))
	})

	t.Run("should require a value", func(t *testing.T) {
		_, err := service.Validate(context.Background(), "", attrs(t))
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}
