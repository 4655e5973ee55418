package timeofday

import (
	"fmt"
	"strconv"
	"strings"
)

// Format governs how a time is rendered and which grammar is accepted.
type Format struct {
	Use24Hour    bool
	AllowSeconds bool
}

// Meridiem is the AM/PM marker of a 12-hour string.
type Meridiem int

const (
	NoMeridiem Meridiem = iota
	AM
	PM
)

// String returns "AM", "PM" or "".
func (m Meridiem) String() string {
	switch m {
	case AM:
		return "AM"
	case PM:
		return "PM"
	default:
		return ""
	}
}

// MeridiemFromKey maps a key press or marker text to a Meridiem.
func MeridiemFromKey(key string) Meridiem {
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "A", "AM", "KEYA":
		return AM
	case "P", "PM", "KEYP":
		return PM
	default:
		return NoMeridiem
	}
}

// Render formats a valid TimeOfDay. Fields are always two digits wide and the
// AM/PM suffix is present only in 12-hour mode.
func Render(t TimeOfDay, f Format) string {
	h, m, s := t.Hours(), t.Minutes(), t.Seconds()
	suffix := ""
	if !f.Use24Hour {
		suffix = " AM"
		if h >= 12 {
			suffix = " PM"
		}
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	if f.AllowSeconds {
		return fmt.Sprintf("%02d:%02d:%02d%s", h, m, s, suffix)
	}
	return fmt.Sprintf("%02d:%02d%s", h, m, suffix)
}

// Parse accepts digits only ("1111"), colon delimited ("11:11") and, in
// 12-hour mode, an optional AM/PM marker. Seconds are truncated when the
// format does not allow them.
func Parse(text string, f Format) (TimeOfDay, bool) {
	body, meridiem := SplitMeridiem(text)
	if meridiem != NoMeridiem && f.Use24Hour {
		return 0, false
	}

	h, m, s, ok := splitFields(body)
	if !ok || m > 59 || s > 59 {
		return 0, false
	}

	if f.Use24Hour {
		if h > 23 {
			return 0, false
		}
	} else {
		if h > 12 {
			return 0, false
		}
		h %= 12
		if meridiem == PM {
			h += 12
		}
	}

	if !f.AllowSeconds {
		s = 0
	}
	return New(h, m, s), true
}

// ParseResult is the outcome of parsing user-entered text.
type ParseResult struct {
	Value *TimeOfDay
	// PreserveText is set when the text was rejected but invalid input is
	// allowed, so the caller keeps showing what the user typed.
	PreserveText bool
}

// ParseInput parses text and reports whether rejected text should be kept.
func ParseInput(text string, f Format, allowInvalid bool) ParseResult {
	if v, ok := Parse(text, f); ok {
		return ParseResult{Value: &v}
	}
	return ParseResult{PreserveText: allowInvalid && strings.TrimSpace(text) != ""}
}

// Reformat re-renders text written in one format using another.
func Reformat(text string, from, to Format) (string, bool) {
	v, ok := Parse(text, from)
	if !ok {
		return "", false
	}
	return Render(v, to), true
}

// ParseValue parses the 24-hour value grammar ("HH:mm" or "HH:mm:ss").
func ParseValue(s string, allowSeconds bool) (TimeOfDay, bool) {
	return Parse(s, Format{Use24Hour: true, AllowSeconds: allowSeconds})
}

// ParseOptionalValue parses a value string, resolving empty or malformed input to nil.
func ParseOptionalValue(s string, allowSeconds bool) *TimeOfDay {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if v, ok := ParseValue(s, allowSeconds); ok {
		return &v
	}
	return nil
}

// FormatValue renders t in the 24-hour value grammar.
func FormatValue(t TimeOfDay, allowSeconds bool) string {
	return Render(t, Format{Use24Hour: true, AllowSeconds: allowSeconds})
}

// SplitMeridiem removes a trailing AM/PM marker ("PM", "pm", "p", " a") and returns it.
func SplitMeridiem(text string) (string, Meridiem) {
	body := strings.ToUpper(strings.TrimSpace(text))
	for _, marker := range []string{"AM", "PM", "A", "P"} {
		if strings.HasSuffix(body, marker) {
			return strings.TrimSpace(strings.TrimSuffix(body, marker)), MeridiemFromKey(marker)
		}
	}
	return body, NoMeridiem
}

func splitFields(body string) (h, m, s int, ok bool) {
	if body == "" {
		return 0, 0, 0, false
	}

	var parts []string
	if strings.Contains(body, ":") {
		parts = strings.Split(body, ":")
		if len(parts) > 3 {
			return 0, 0, 0, false
		}
		for _, p := range parts {
			if len(p) == 0 || len(p) > 2 {
				return 0, 0, 0, false
			}
		}
	} else {
		switch len(body) {
		case 1, 2:
			parts = []string{body}
		case 3:
			parts = []string{body[:1], body[1:]}
		case 4:
			parts = []string{body[:2], body[2:]}
		case 5:
			parts = []string{body[:1], body[1:3], body[3:]}
		case 6:
			parts = []string{body[:2], body[2:4], body[4:]}
		default:
			return 0, 0, 0, false
		}
	}

	fields := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.ContainsAny(p, "+-") {
			return 0, 0, 0, false
		}
		fields[i] = n
	}
	return fields[0], fields[1], fields[2], true
}
