package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"time-picker/internal/clock"
	"time-picker/internal/errors"
	"time-picker/internal/picker"
	"time-picker/internal/timeofday"
)

// Named tokens understood by Replay. Anything else is typed character by character.
var namedKeys = map[string]picker.Key{
	"down":            {Code: picker.KeyArrowDown},
	"up":              {Code: picker.KeyArrowUp},
	"home":            {Code: picker.KeyHome},
	"end":             {Code: picker.KeyEnd},
	"enter":           {Code: picker.KeyEnter},
	"tab":             {Code: picker.KeyTab},
	"escape":          {Code: picker.KeyEscape},
	"esc":             {Code: picker.KeyEscape},
	"backspace":       {Code: picker.KeyBackspace},
	"delete":          {Code: picker.KeyDelete},
	"shift+backspace": {Code: picker.KeyBackspace, Shift: true},
	"shift+delete":    {Code: picker.KeyDelete, Shift: true},
}

// Tokens that are events rather than keys.
const (
	tokenBlur  = "blur"
	tokenFocus = "focus"
	tokenClick = "click"
)

// maskServiceImpl implements the MaskService interface
type maskServiceImpl struct {
	clock  clock.Clock
	logger zerolog.Logger
}

// NewMaskService creates a new MaskService instance
func NewMaskService(clk clock.Clock, logger zerolog.Logger) MaskService {
	return &maskServiceImpl{
		clock:  clk,
		logger: logger,
	}
}

// Replay focuses a picker, feeds it every token and blurs it at the end
func (m *maskServiceImpl) Replay(ctx context.Context, tokens []string, attrs picker.Attributes) (*MaskTrace, error) {
	if len(tokens) == 0 {
		return nil, errors.NewInvalidInputError("keys", tokens, "at least one key is required")
	}

	s := newSession(m.clock, m.logger, attrs)
	s.controller.HandleFocus(false)
	trace := &MaskTrace{Steps: make([]*MaskStep, 0, len(tokens)+1)}

	blurred := false
	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		blurred = false
		name := strings.ToLower(strings.TrimSpace(token))
		switch name {
		case tokenBlur:
			s.blur()
			blurred = true
		case tokenFocus:
			s.controller.HandleFocus(false)
		case tokenClick:
			s.controller.HandleFocus(true)
		default:
			if err := m.press(s, name, token); err != nil {
				return nil, err
			}
		}
		trace.Steps = append(trace.Steps, step(token, s.controller))
	}

	if !blurred {
		s.blur()
		trace.Steps = append(trace.Steps, step(tokenBlur, s.controller))
	}

	trace.Value = s.controller.Value()
	trace.Display = s.controller.Display()
	trace.Changes = s.changes
	return trace, nil
}

func (m *maskServiceImpl) press(s *session, name, token string) error {
	if key, ok := namedKeys[name]; ok {
		handled, err := s.controller.HandleKey(key)
		if err != nil {
			return err
		}
		if !handled && (key.Code == picker.KeyBackspace || key.Code == picker.KeyDelete) {
			s.controller.HandleInput(deleteLast(s.controller.Display(), s.controller.Properties().Masked))
		}
		return nil
	}

	for _, r := range token {
		if unicode.IsLetter(r) {
			code := "Key" + string(unicode.ToUpper(r))
			handled, err := s.controller.HandleKey(picker.Key{Code: code})
			if err != nil {
				return err
			}
			if handled {
				continue
			}
		}
		s.controller.HandleInput(s.controller.Display() + string(r))
	}
	return nil
}

// deleteLast is the input text after deleting the character before the
// caret. A masked display loses its last digit, since separators and the
// AM/PM suffix are regenerated by the mask.
func deleteLast(display string, masked bool) string {
	if !masked {
		if display == "" {
			return ""
		}
		runes := []rune(display)
		return string(runes[:len(runes)-1])
	}

	digits := timeofday.Digits(display)
	if digits == "" {
		return ""
	}
	return digits[:len(digits)-1]
}

func step(token string, c *picker.Controller) *MaskStep {
	return &MaskStep{
		Token:   token,
		Display: c.Display(),
		Value:   c.Value(),
		Open:    c.IsOpen(),
	}
}
