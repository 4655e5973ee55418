package timeofday

import "strings"

// CoercionFunc may replace the completed string produced from partial input.
// It receives the raw input, the coerced string and whether seconds are allowed.
type CoercionFunc func(raw, coerced string, allowSeconds bool) string

// Coerce completes partially typed input into a full time string.
//
// One or two digits are read as minutes after midnight ("03:" becomes "00:03"),
// three digits are right-padded ("12:0" becomes "12:00") and five digits are
// right-padded to include seconds. Digits beyond the allowed width are dropped
// and an AM/PM marker in the input is carried over.
func Coerce(input string, allowSeconds bool) string {
	_, meridiem := SplitMeridiem(input)
	digits := Digits(input)

	width := 4
	if allowSeconds {
		width = 6
	}
	if len(digits) > width {
		digits = digits[:width]
	}

	switch len(digits) {
	case 0:
		return ""
	case 1, 2:
		digits = strings.Repeat("0", 4-len(digits)) + digits
	case 3, 5:
		digits += "0"
	}

	out := digits[:2] + ":" + digits[2:4]
	if len(digits) == 6 {
		out += ":" + digits[4:6]
	}
	if meridiem != NoMeridiem {
		out += " " + meridiem.String()
	}
	return out
}

// Digits returns the ASCII digits of s in order.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
