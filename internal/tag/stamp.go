package tag

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// StampLayout is the timestamp shape used in folder names: YYYYMMDD-HHmm,
// minute precision, always UTC.
const StampLayout = "20060102-1504"

// ErrMalformedStamp is returned when a stamp string does not match the
// strict YYYYMMDD-HHmm shape or names an invalid calendar date/time.
var ErrMalformedStamp = errors.New("malformed timestamp")

// stampRegex guards the fixed-width shape before calendar validation.
// time.Parse alone is too lenient about field widths.
var stampRegex = regexp.MustCompile(`^\d{8}-\d{4}$`)

// ParseStamp parses a strict YYYYMMDD-HHmm stamp as a UTC instant.
// Accepts only fixed-width numeric fields, a single hyphen separator,
// and a valid 24-hour calendar time.
func ParseStamp(s string) (time.Time, error) {
	if !stampRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q does not match YYYYMMDD-HHmm", ErrMalformedStamp, s)
	}

	t, err := time.Parse(StampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date/time", ErrMalformedStamp, s)
	}
	return t, nil
}

// FormatStamp renders an instant as a YYYYMMDD-HHmm stamp in UTC.
func FormatStamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// EncodeStamp parses a stamp and encodes it in one step.
func EncodeStamp(s string) (string, error) {
	t, err := ParseStamp(s)
	if err != nil {
		return "", err
	}
	return Encode(t)
}
