package picker

import (
	"time-picker/internal/mask"
	"time-picker/internal/options"
	"time-picker/internal/timeofday"
)

// Key codes understood by HandleKey.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyN         = "KeyN"
	KeyA         = "KeyA"
	KeyP         = "KeyP"
)

// Key is a keydown event.
type Key struct {
	Code  string
	Shift bool
}

// ChangeEvent is raised before a user-originated value change is committed.
// Value and Previous are value strings; "" means no value.
type ChangeEvent struct {
	Value    string `json:"value"`
	Previous string `json:"previous"`
}

// ChangeListener returns false to cancel the change.
type ChangeListener func(ChangeEvent) bool

// Presenter renders the picker. The controller never reads back from it.
type Presenter interface {
	SetDisplay(text string)
	RenderOptions(opts []options.Option, outcome options.Outcome)
	SetOpen(open bool)
	SetDisabled(disabled bool)
}

// NopPresenter discards every rendering request.
type NopPresenter struct{}

func (NopPresenter) SetDisplay(string)                               {}
func (NopPresenter) RenderOptions([]options.Option, options.Outcome) {}
func (NopPresenter) SetOpen(bool)                                    {}
func (NopPresenter) SetDisabled(bool)                                {}

// Integrator callbacks that replace the built-in behavior.
type (
	ValidationCallback func(timeofday.TimeOfDay) bool
	ParseCallback      func(text string) (timeofday.TimeOfDay, bool)
	FormatCallback     func(timeofday.TimeOfDay) string
)

// State is a snapshot of everything the controller owns.
type State struct {
	ID         string
	Value      *timeofday.TimeOfDay
	Display    string
	Open       bool
	Closing    bool
	Options    []options.Option
	Outcome    options.Outcome
	Mask       mask.State
	Generation uint64
	LastLazy   *options.Resolved
}
