package services

import (
	"context"

	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	"time-picker/internal/errors"
	"time-picker/internal/options"
	"time-picker/internal/picker"
	"time-picker/internal/timeofday"
)

// optionServiceImpl implements the OptionService interface
type optionServiceImpl struct {
	clock  clock.Clock
	logger zerolog.Logger
}

// NewOptionService creates a new OptionService instance
func NewOptionService(clk clock.Clock, logger zerolog.Logger) OptionService {
	return &optionServiceImpl{
		clock:  clk,
		logger: logger,
	}
}

// List opens a picker holding attrs.Value and reports what the dropdown shows
func (o *optionServiceImpl) List(ctx context.Context, attrs picker.Attributes) (*OptionList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newSession(o.clock, o.logger, attrs)
	if !s.controller.SetOpen(true) {
		return nil, errors.NewStateError("open dropdown", "no options are available")
	}

	opts := s.controller.Options()
	outcome := s.controller.Outcome()
	list := &OptionList{
		Current: s.controller.Value(),
		Options: make([]*OptionEntry, 0, len(opts)),
	}

	for i, opt := range opts {
		entry := &OptionEntry{
			Index:    i,
			Label:    opt.Label,
			Kind:     kindOf(opt),
			Disabled: opt.Disabled,
			Matched:  i == outcome.MatchedIndex,
			Active:   i == outcome.ActiveIndex,
		}

		t, err := options.Resolve(opt, o.clock, attrs.AllowSeconds)
		if err != nil {
			return nil, err
		}
		entry.Value = timeofday.FormatValue(t, attrs.AllowSeconds)

		list.Options = append(list.Options, entry)
	}

	return list, nil
}

func kindOf(o options.Option) string {
	switch {
	case o.IsNow():
		return KindNow
	case o.IsCustom:
		return KindCustom
	default:
		return KindHour
	}
}
