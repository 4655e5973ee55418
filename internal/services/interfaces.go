package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	"time-picker/internal/picker"
	"time-picker/internal/validation"
)

// ParsedTime is typed text run through a picker edit session
type ParsedTime struct {
	Input   string `json:"input"`
	Value   string `json:"value"`   // Value string, empty when nothing was committed
	Display string `json:"display"` // What the input shows after blur
	Valid   bool   `json:"valid"`
}

// FormattedTime is a value string rendered in every supported convention
type FormattedTime struct {
	Value     string `json:"value"`
	Display   string `json:"display"` // Rendered with the configured format
	Display12 string `json:"display_12h"`
	Display24 string `json:"display_24h"`
}

// MergedTime is a time of day applied to a calendar date
type MergedTime struct {
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Result time.Time `json:"result"`
}

// OptionEntry is one row of a dropdown option list
type OptionEntry struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Value    string `json:"value"` // Resolved value string, lazy options resolved against the clock
	Kind     string `json:"kind"`
	Disabled bool   `json:"disabled,omitempty"`
	Matched  bool   `json:"matched,omitempty"`
	Active   bool   `json:"active,omitempty"`
}

// Option kinds
const (
	KindNow    = "now"
	KindCustom = "custom"
	KindHour   = "hour"
)

// OptionList is the option list a dropdown shows for a value
type OptionList struct {
	Current string         `json:"current,omitempty"`
	Options []*OptionEntry `json:"options"`
}

// MaskStep is the picker state after one replayed token
type MaskStep struct {
	Token   string `json:"token"`
	Display string `json:"display"`
	Value   string `json:"value"`
	Open    bool   `json:"open,omitempty"`
}

// MaskTrace is the result of replaying a key sequence
type MaskTrace struct {
	Steps   []*MaskStep          `json:"steps"`
	Value   string               `json:"value"`
	Display string               `json:"display"`
	Changes []picker.ChangeEvent `json:"changes"`
}

// ValidationReport describes whether a value satisfies the configured constraints
type ValidationReport struct {
	Value      string                  `json:"value"`
	Allowed    bool                    `json:"allowed"`
	Problems   []validation.FieldError `json:"problems,omitempty"`
	Suggestion string                  `json:"suggestion,omitempty"` // Closest selectable option when not allowed
}

// CodecService handles conversions between typed text, value strings and dates
type CodecService interface {
	Parse(ctx context.Context, text string, attrs picker.Attributes) (*ParsedTime, error)
	Format(ctx context.Context, value string, attrs picker.Attributes) (*FormattedTime, error)
	Merge(ctx context.Context, date, text string, allowSeconds bool) (*MergedTime, error)
}

// OptionService builds the dropdown option list
type OptionService interface {
	List(ctx context.Context, attrs picker.Attributes) (*OptionList, error)
}

// MaskService replays keyboard input through a picker
type MaskService interface {
	Replay(ctx context.Context, tokens []string, attrs picker.Attributes) (*MaskTrace, error)
}

// ValidationService checks values against constraints
type ValidationService interface {
	Validate(ctx context.Context, value string, attrs picker.Attributes) (*ValidationReport, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	CodecService      CodecService
	OptionService     OptionService
	MaskService       MaskService
	ValidationService ValidationService
}

// NewServiceContainer wires every service to the same clock and logger
func NewServiceContainer(clk clock.Clock, logger zerolog.Logger) *ServiceContainer {
	return &ServiceContainer{
		CodecService:      NewCodecService(clk, logger),
		OptionService:     NewOptionService(clk, logger),
		MaskService:       NewMaskService(clk, logger),
		ValidationService: NewValidationService(logger),
	}
}
