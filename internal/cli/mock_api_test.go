package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"time-picker/internal/api"
	"time-picker/internal/config"
	"time-picker/internal/errors"
	"time-picker/internal/picker"
	"time-picker/internal/services"
	"time-picker/internal/validation"
)

// mockAPI implements the API interface for testing
type mockAPI struct {
	calls []string
	err   error
}

func newMockAPI() *mockAPI {
	return &mockAPI{}
}

func (m *mockAPI) record(call string) error {
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockAPI) Parse(ctx context.Context, text string) (*services.ParsedTime, error) {
	if err := m.record("parse " + text); err != nil {
		return nil, err
	}
	if text == "garbage" {
		return &services.ParsedTime{Input: text}, nil
	}
	return &services.ParsedTime{Input: text, Value: "16:15", Display: "04:15 PM", Valid: true}, nil
}

func (m *mockAPI) Format(ctx context.Context, value string) (*services.FormattedTime, error) {
	if err := m.record("format " + value); err != nil {
		return nil, err
	}
	if value == "4pm" {
		return nil, errors.NewInvalidInputError("value", value, "expected HH:mm or HH:mm:ss")
	}
	return &services.FormattedTime{Value: value, Display: "04:15 PM", Display12: "04:15 PM", Display24: "16:15"}, nil
}

func (m *mockAPI) Options(ctx context.Context, current string) (*services.OptionList, error) {
	if err := m.record("options " + current); err != nil {
		return nil, err
	}
	return &services.OptionList{
		Current: current,
		Options: []*services.OptionEntry{
			{Index: 0, Label: "Now", Value: "14:32", Kind: services.KindNow},
			{Index: 1, Label: "09:00 AM", Value: "09:00", Kind: services.KindHour, Active: true},
			{Index: 2, Label: "10:00 AM", Value: "10:00", Kind: services.KindHour, Disabled: true},
		},
	}, nil
}

func (m *mockAPI) Mask(ctx context.Context, keys []string) (*services.MaskTrace, error) {
	if err := m.record("mask"); err != nil {
		return nil, err
	}
	return &services.MaskTrace{
		Steps: []*services.MaskStep{
			{Token: "11", Display: "11:", Value: "00:11"},
			{Token: "blur", Display: "12:11 AM", Value: "00:11"},
		},
		Value:   "00:11",
		Display: "12:11 AM",
		Changes: []picker.ChangeEvent{{Value: "00:11"}},
	}, nil
}

func (m *mockAPI) Merge(ctx context.Context, date, text string) (*services.MergedTime, error) {
	if err := m.record("merge " + date + " " + text); err != nil {
		return nil, err
	}
	return &services.MergedTime{Date: date, Time: text, Result: time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)}, nil
}

func (m *mockAPI) Validate(ctx context.Context, value string) (*services.ValidationReport, error) {
	if err := m.record("validate " + value); err != nil {
		return nil, err
	}
	if value == "12:00" {
		return &services.ValidationReport{
			Value:      value,
			Problems:   []validation.FieldError{{Field: "value", Type: validation.ErrorTypeRestricted, Message: "12:00 is a restricted time"}},
			Suggestion: "11:00",
		}, nil
	}
	return &services.ValidationReport{Value: value, Allowed: true}, nil
}

func (m *mockAPI) Attributes() picker.Attributes {
	return picker.Attributes{}
}

var _ api.API = (*mockAPI)(nil)

// setupTestApp creates an App backed by the mock API that prints to a buffer
func setupTestApp(t *testing.T, format string) (*App, *mockAPI, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Output.Format = format
	mock := newMockAPI()
	out := &bytes.Buffer{}
	return NewApp(mock, cfg, out), mock, out
}
