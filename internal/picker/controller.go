// Package picker implements the time picker controller: it owns the current
// value and reconciles typed input, keys, property writes and dropdown
// selections into it.
package picker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	apperrors "time-picker/internal/errors"
	"time-picker/internal/logging"
	"time-picker/internal/mask"
	"time-picker/internal/options"
	"time-picker/internal/schedule"
	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

// Dependencies are the collaborators of a Controller. Nil fields get defaults:
// the real clock, synchronous scheduling and a presenter that renders nothing.
type Dependencies struct {
	Clock     clock.Clock
	Scheduler schedule.Scheduler
	Presenter Presenter
	Logger    *zerolog.Logger
}

// Controller is the time picker state machine. It is not safe for concurrent use.
type Controller struct {
	id        string
	logger    zerolog.Logger
	clock     clock.Clock
	scheduler schedule.Scheduler
	sessions  schedule.Sessions
	presenter Presenter
	validator *validation.TimeValidator

	props    Properties
	listener ChangeListener
	parseFn  ParseCallback
	formatFn FormatCallback
	coerceFn timeofday.CoercionFunc

	value   *timeofday.TimeOfDay
	display string
	masker  *mask.Masker
	// coerced is the completed form of unmasked input, kept until blur.
	coerced string

	open      bool
	closing   bool
	closeTask *schedule.Task
	opts      []options.Option
	outcome   options.Outcome
	last      *options.Resolved
}

// NewController creates a picker with DefaultProperties and no value.
func NewController(deps Dependencies) *Controller {
	id := uuid.NewString()

	logger := logging.New("picker")
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = schedule.Immediate{}
	}
	if deps.Presenter == nil {
		deps.Presenter = NopPresenter{}
	}

	c := &Controller{
		id:        id,
		logger:    logger.With().Str("picker_id", id).Logger(),
		clock:     deps.Clock,
		scheduler: deps.Scheduler,
		presenter: deps.Presenter,
		validator: validation.NewTimeValidator(),
		props:     DefaultProperties(),
		outcome:   options.NoOutcome(),
	}
	c.masker = mask.New(c.props.Format())
	return c
}

// ID returns the instance identifier.
func (c *Controller) ID() string { return c.id }

// Properties returns a copy of the governing properties.
func (c *Controller) Properties() Properties { return c.props }

// Value returns the value string, or "" when there is no value.
func (c *Controller) Value() string { return c.valueString(c.value) }

// Time returns the current value.
func (c *Controller) Time() *timeofday.TimeOfDay {
	if c.value == nil {
		return nil
	}
	v := *c.value
	return &v
}

// Display returns the text shown in the input.
func (c *Controller) Display() string { return c.display }

// IsOpen reports whether the dropdown is open.
func (c *Controller) IsOpen() bool { return c.open }

// Options returns the option list of the open dropdown.
func (c *Controller) Options() []options.Option { return c.opts }

// Outcome returns the matched and active options of the open dropdown.
func (c *Controller) Outcome() options.Outcome { return c.outcome }

// Snapshot captures the controller state.
func (c *Controller) Snapshot() State {
	return State{
		ID:         c.id,
		Value:      c.Time(),
		Display:    c.display,
		Open:       c.open,
		Closing:    c.closing,
		Options:    append([]options.Option(nil), c.opts...),
		Outcome:    c.outcome,
		Mask:       c.masker.State(),
		Generation: c.sessions.Generation(),
		LastLazy:   c.last,
	}
}

// SetChangeListener installs the listener consulted before user changes.
func (c *Controller) SetChangeListener(l ChangeListener) { c.listener = l }

// SetValue assigns the value from the 24-hour value grammar. Malformed or
// disallowed values clear it. No change notification is raised.
func (c *Controller) SetValue(s string) {
	c.assign(c.parseValue(s))
}

// SetTime assigns the value directly. A nil t clears it.
func (c *Controller) SetTime(t *timeofday.TimeOfDay) {
	c.assign(t)
}

// HandleInput processes the full text of the input after an edit.
func (c *Controller) HandleInput(text string) {
	if c.props.Disabled {
		return
	}
	if c.open {
		c.close()
	}

	if !c.props.Masked {
		c.setDisplay(text)
		c.coerced = mask.CompleteText(text, c.props.AllowSeconds, c.coerceFn)
		return
	}

	c.setDisplay(c.masker.Apply(text))
	c.commitProvisional()
}

// HandleBlur closes the dropdown and commits the typed text on the next frame.
func (c *Controller) HandleBlur() {
	if c.open {
		c.close()
	}
	c.sessions.Defer(c.scheduler, c.commitText)
}

// HandleFocus starts a new edit session. Focus from a pointer opens the
// dropdown when typing is not allowed.
func (c *Controller) HandleFocus(viaMouse bool) {
	generation := c.sessions.Begin()
	c.masker = mask.New(c.props.Format())
	c.coerced = ""
	c.logger.Debug().Uint64("generation", generation).Msg("edit session started")

	if viaMouse && !c.props.AllowInput {
		c.SetOpen(true)
	}
}

// HandleKey processes a keydown. It reports whether the key was consumed.
func (c *Controller) HandleKey(k Key) (bool, error) {
	if c.props.Disabled {
		return false, nil
	}

	switch k.Code {
	case KeyArrowDown, KeyArrowUp:
		dir := options.Next
		if k.Code == KeyArrowUp {
			dir = options.Previous
		}
		if !c.open {
			if !c.openDropdown() {
				return false, nil
			}
			if c.outcome.HasMatch() || c.outcome.HasActive() {
				return true, nil
			}
		}
		c.navigate(dir)
		return true, nil

	case KeyHome, KeyEnd:
		if !c.open {
			return false, nil
		}
		if k.Code == KeyHome {
			c.navigate(options.First)
		} else {
			c.navigate(options.Last)
		}
		return true, nil

	case KeyEnter:
		if !c.open || !c.outcome.HasActive() {
			return false, nil
		}
		return true, c.Select(c.outcome.ActiveIndex)

	case KeyTab:
		if !c.open {
			return false, nil
		}
		var err error
		if c.outcome.HasActive() {
			err = c.Select(c.outcome.ActiveIndex)
		}
		if c.open {
			c.close()
		}
		return false, err

	case KeyEscape:
		if !c.open {
			return false, nil
		}
		c.close()
		return true, nil

	case KeyBackspace, KeyDelete:
		if !k.Shift {
			return false, nil
		}
		c.clear()
		return true, nil

	case KeyN:
		now := timeofday.Current(c.clock, c.props.AllowSeconds)
		c.masker.Clear()
		c.commit(&now, true)
		return true, nil

	case KeyA, KeyP:
		if !c.props.Masked || !c.masker.SetMeridiem(k.Code) {
			return false, nil
		}
		c.setDisplay(c.masker.Display())
		c.commitProvisional()
		return true, nil
	}

	return false, nil
}

// Toggle opens a closed dropdown and closes an open one.
func (c *Controller) Toggle() bool {
	if c.open {
		c.close()
		return false
	}
	return c.openDropdown()
}

// SetOpen requests the dropdown state and returns the resulting state.
// Opening is refused while disabled, when the dropdown is not allowed or
// when there are no options.
func (c *Controller) SetOpen(open bool) bool {
	if !open {
		if c.open {
			c.close()
		}
		return false
	}
	return c.openDropdown()
}

// Select commits the option at index of the open list.
func (c *Controller) Select(index int) error {
	if index < 0 || index >= len(c.opts) {
		return apperrors.NewStateError("select option", fmt.Sprintf("index %d is outside the option list", index))
	}
	return c.SelectOption(c.opts[index])
}

// SelectOption resolves o and commits it as a user selection, then closes
// the dropdown. Resolver failures are returned as contract errors and a
// resolved time that is not allowed leaves the value unchanged.
func (c *Controller) SelectOption(o options.Option) error {
	if o.Disabled {
		return apperrors.NewStateError("select option", "option is disabled")
	}

	t, err := options.Resolve(o, c.clock, c.props.AllowSeconds)
	if err != nil {
		c.logger.Error().Err(err).Str("label", o.Label).Msg("option could not be resolved")
		return err
	}
	t = c.truncate(t)

	if err := c.validator.ValidateValue("value", t, c.props.Constraints()); err != nil {
		c.logger.Debug().Str("value", timeofday.FormatValue(t, c.props.AllowSeconds)).Msg("selection not allowed")
		return err
	}

	previous := c.last
	if o.IsLazy() {
		c.last = &options.Resolved{Metadata: o.Metadata, Time: t}
	}
	c.masker.Clear()
	if !c.commit(&t, true) {
		c.last = previous
	}
	if c.open {
		c.close()
	}
	return nil
}

func (c *Controller) parseValue(s string) *timeofday.TimeOfDay {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if c.parseFn != nil {
		if t, ok := c.parseFn(s); ok && t.IsValid() {
			return &t
		}
		return nil
	}
	return timeofday.ParseOptionalValue(s, true)
}

func (c *Controller) parseText(s string) (timeofday.TimeOfDay, bool) {
	if c.parseFn != nil {
		t, ok := c.parseFn(s)
		return t, ok && t.IsValid()
	}
	return timeofday.Parse(s, c.props.Format())
}

func (c *Controller) truncate(t timeofday.TimeOfDay) timeofday.TimeOfDay {
	if c.props.AllowSeconds {
		return t.TruncateToSecond()
	}
	return t.TruncateToMinute()
}

// normalize truncates t and drops it when the constraints reject it.
func (c *Controller) normalize(t *timeofday.TimeOfDay) *timeofday.TimeOfDay {
	if t == nil {
		return nil
	}
	v := c.truncate(*t)
	if !c.validator.IsAllowed(v, c.props.Constraints()) {
		return nil
	}
	return &v
}

func (c *Controller) render(t *timeofday.TimeOfDay) string {
	if t == nil {
		return ""
	}
	if c.formatFn != nil {
		return c.formatFn(*t)
	}
	return timeofday.Render(*t, c.props.Format())
}

func (c *Controller) valueString(t *timeofday.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return timeofday.FormatValue(*t, c.props.AllowSeconds)
}

func (c *Controller) setDisplay(text string) {
	c.display = text
	c.presenter.SetDisplay(text)
}

// assign is a property write: no notification, display follows the value.
func (c *Controller) assign(t *timeofday.TimeOfDay) {
	c.value = c.normalize(t)
	c.masker.Clear()
	c.coerced = ""
	c.setDisplay(c.render(c.value))
	c.rematch()
}

// commit applies a user change. It raises the change notification unless
// the value is unchanged and reports whether the change went through.
func (c *Controller) commit(candidate *timeofday.TimeOfDay, updateDisplay bool) bool {
	next := c.normalize(candidate)
	if timeofday.Equal(next, c.value) {
		if updateDisplay {
			c.setDisplay(c.render(c.value))
		}
		return true
	}

	event := ChangeEvent{Value: c.valueString(next), Previous: c.valueString(c.value)}
	if c.listener != nil && !c.listener(event) {
		c.logger.Debug().Str("value", event.Value).Msg("change canceled")
		c.masker.Clear()
		c.setDisplay(c.render(c.value))
		return false
	}

	c.value = next
	c.logger.Debug().Str("value", event.Value).Str("previous", event.Previous).Msg("value committed")
	if updateDisplay {
		c.setDisplay(c.render(c.value))
	}
	c.rematch()
	return true
}

// commitProvisional commits the masked buffer once the hour is complete.
func (c *Controller) commitProvisional() {
	if !c.masker.Ready() {
		return
	}
	if t, ok := c.parseText(c.masker.Commit(c.coerceFn)); ok {
		c.commit(&t, false)
	}
}

// commitText settles the typed text into a value at the end of an edit session.
func (c *Controller) commitText() {
	text := c.display
	coerced := c.coerced
	c.masker.Clear()
	c.coerced = ""

	if strings.TrimSpace(text) == "" {
		c.commit(nil, true)
		return
	}
	if c.value != nil && text == c.render(c.value) {
		return
	}

	if c.props.Masked || coerced == "" {
		coerced = mask.CompleteText(text, c.props.AllowSeconds, c.coerceFn)
	}
	if t, ok := c.parseText(coerced); ok {
		c.commit(&t, true)
		return
	}
	if !c.props.Masked {
		if t, ok := c.parseText(text); ok {
			c.commit(&t, true)
			return
		}
	}

	result := timeofday.ParseInput(text, c.props.Format(), c.props.AllowInvalidTime)
	if c.commit(nil, false) {
		if result.PreserveText {
			c.setDisplay(text)
		} else {
			c.setDisplay("")
		}
	}
}

// clear drops the value and the display. The listener is told but cannot veto.
func (c *Controller) clear() {
	previous := c.value
	c.value = nil
	c.masker.Clear()
	c.coerced = ""
	c.setDisplay("")
	c.rematch()

	if previous != nil {
		c.logger.Debug().Str("previous", c.valueString(previous)).Msg("value cleared")
		if c.listener != nil {
			c.listener(ChangeEvent{Previous: c.valueString(previous)})
		}
	}
}

// revalidate clears a value that the current constraints reject.
func (c *Controller) revalidate() {
	if c.value == nil || c.validator.IsAllowed(*c.value, c.props.Constraints()) {
		return
	}
	c.logger.Debug().Str("value", c.Value()).Msg("value no longer allowed")
	c.value = nil
	c.masker.Clear()
	c.setDisplay("")
	c.rematch()
}

func (c *Controller) openDropdown() bool {
	if c.open {
		return true
	}
	if c.props.Disabled || !c.props.AllowDropdown {
		c.logger.Debug().Bool("disabled", c.props.Disabled).Msg("open refused")
		return false
	}

	opts := options.Generate(c.props.OptionParams())
	if len(opts) == 0 {
		c.logger.Debug().Msg("open refused: no options")
		return false
	}

	c.closeTask.Cancel()
	c.closing = false
	c.open = true
	c.opts = opts
	c.outcome = options.Match(c.value, c.props.StartTime, opts, c.last)
	c.presenter.RenderOptions(c.opts, c.outcome)
	c.presenter.SetOpen(true)
	return true
}

func (c *Controller) close() {
	c.open = false
	c.opts = nil
	c.outcome = options.NoOutcome()
	c.presenter.SetOpen(false)

	c.closing = true
	c.closeTask = c.scheduler.Schedule(func() {
		c.closing = false
	})
}

// refresh regenerates the open list after a governing property changed.
func (c *Controller) refresh() {
	if !c.open {
		return
	}
	opts := options.Generate(c.props.OptionParams())
	if len(opts) == 0 {
		c.close()
		return
	}
	c.opts = opts
	c.rematch()
}

func (c *Controller) rematch() {
	if !c.open {
		return
	}
	c.outcome = options.Match(c.value, c.props.StartTime, c.opts, c.last)
	c.presenter.RenderOptions(c.opts, c.outcome)
}

func (c *Controller) navigate(dir options.Direction) {
	c.outcome = options.Step(c.outcome, c.opts, dir)
	c.presenter.RenderOptions(c.opts, c.outcome)
}
