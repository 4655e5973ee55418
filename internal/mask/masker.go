// Package mask turns keystrokes into a masked time string while the user types.
package mask

import (
	"strings"

	"time-picker/internal/timeofday"
)

// Phase is the group of the time currently being typed.
type Phase int

const (
	EnteringHour Phase = iota
	EnteringMinute
	EnteringSecond
	Complete
)

// String returns a readable phase name.
func (p Phase) String() string {
	switch p {
	case EnteringHour:
		return "entering_hour"
	case EnteringMinute:
		return "entering_minute"
	case EnteringSecond:
		return "entering_second"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

const separator = ":"

// State is the transient buffer of one edit session.
type State struct {
	RawDigits string
	Display   string
	Meridiem  timeofday.Meridiem
	// Cursor is the offset in Display just past the last typed digit.
	Cursor int
}

// Masker owns the State of a single edit session.
type Masker struct {
	format timeofday.Format
	state  State
}

// New creates an empty masker for the given format.
func New(format timeofday.Format) *Masker {
	return &Masker{format: format}
}

// State returns a copy of the current buffer.
func (m *Masker) State() State {
	return m.state
}

// Display returns the masked display string.
func (m *Masker) Display() string {
	return m.state.Display
}

// Phase reports which group the next digit fills.
func (m *Masker) Phase() Phase {
	n := len(m.state.RawDigits)
	switch {
	case n >= m.maxDigits():
		return Complete
	case n >= 4:
		return EnteringSecond
	case n >= 2:
		return EnteringMinute
	default:
		return EnteringHour
	}
}

// Ready reports whether the hour group is closed, which is when a
// provisional value can first be derived from the buffer.
func (m *Masker) Ready() bool {
	return len(m.state.RawDigits) >= 2
}

// PushDigit appends one digit. Non-digits and digits past the last group are ignored.
func (m *Masker) PushDigit(d rune) bool {
	if d < '0' || d > '9' || m.Phase() == Complete {
		return false
	}
	digits := m.state.RawDigits
	// A leading hour digit above 2 cannot be followed by another hour digit.
	if digits == "" && d > '2' {
		digits = "0"
	}
	m.state.RawDigits = digits + string(d)
	m.render()
	return true
}

// Apply re-masks a whole input value, as delivered by an input event.
// Digits are consumed in order and a trailing AM/PM marker is honored.
func (m *Masker) Apply(rawText string) string {
	_, meridiem := timeofday.SplitMeridiem(rawText)
	if meridiem != timeofday.NoMeridiem {
		m.state.Meridiem = meridiem
	}
	m.state.RawDigits = ""
	for _, r := range timeofday.Digits(rawText) {
		m.PushDigit(r)
	}
	m.render()
	return m.state.Display
}

// Backspace removes the last digit.
func (m *Masker) Backspace() string {
	if n := len(m.state.RawDigits); n > 0 {
		m.state.RawDigits = m.state.RawDigits[:n-1]
	}
	m.render()
	return m.state.Display
}

// Clear empties the buffer and forgets the marker.
func (m *Masker) Clear() {
	m.state = State{}
}

// SetMeridiem records an AM/PM key press. It reports whether the key was a marker.
func (m *Masker) SetMeridiem(key string) bool {
	if m.format.Use24Hour {
		return false
	}
	meridiem := timeofday.MeridiemFromKey(key)
	if meridiem == timeofday.NoMeridiem {
		return false
	}
	m.state.Meridiem = meridiem
	m.render()
	return true
}

// Commit completes the buffer into a full time string and passes it
// through the optional coercion callback.
func (m *Masker) Commit(coerce timeofday.CoercionFunc) string {
	return CompleteText(m.state.Display, m.format.AllowSeconds, coerce)
}

// CompleteText coerces partially typed text and lets fn replace the result.
func CompleteText(raw string, allowSeconds bool, fn timeofday.CoercionFunc) string {
	coerced := timeofday.Coerce(raw, allowSeconds)
	if fn == nil {
		return coerced
	}
	return fn(raw, coerced, allowSeconds)
}

func (m *Masker) maxDigits() int {
	if m.format.AllowSeconds {
		return 6
	}
	return 4
}

func (m *Masker) render() {
	digits := m.state.RawDigits
	if len(digits) == 0 {
		m.state.Display = ""
		m.state.Cursor = 0
		return
	}

	var b strings.Builder
	for i := 0; i < len(digits); i += 2 {
		end := min(i+2, len(digits))
		b.WriteString(digits[i:end])
		if end-i == 2 && end < m.maxDigits() {
			b.WriteString(separator)
		}
	}
	m.state.Cursor = b.Len()

	if len(digits) == m.maxDigits() && !m.format.Use24Hour {
		meridiem := m.state.Meridiem
		if meridiem == timeofday.NoMeridiem {
			meridiem = timeofday.AM
		}
		b.WriteString(" " + meridiem.String())
	}
	m.state.Display = b.String()
}
