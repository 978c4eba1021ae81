// Package tag implements the base-62 feature tag codec.
//
// A tag is a 4-character string over [0-9A-Za-z] encoding the number of
// whole minutes elapsed since the hallmark epoch (2026-01-01 00:00 UTC),
// most-significant digit first, left-padded with '0'. Tags are
// deterministic, fixed-width, and sort in offset order.
package tag

import (
	"errors"
	"fmt"
	"time"
)

// Alphabet is the base-62 digit set. The index of a character is its
// numeric value: '0'-'9' are 0-9, 'A'-'Z' are 10-35, 'a'-'z' are 36-61.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Length is the fixed width of every tag.
const Length = 4

// MaxOffset is the largest encodable minute offset (62^4 - 1),
// about 28.1 years after the epoch.
const MaxOffset = 62*62*62*62 - 1

// Epoch is the fixed instant minute offsets are measured from.
var Epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Codec domain errors. Callers match with errors.Is.
var (
	ErrBeforeEpoch  = errors.New("timestamp precedes the tag epoch")
	ErrOutOfRange   = errors.New("minute offset exceeds the 4-digit base-62 range")
	ErrMalformedTag = errors.New("malformed tag")
)

// Encode returns the tag for a timestamp. The timestamp is normalized to
// UTC and truncated to the minute before the offset is computed.
func Encode(t time.Time) (string, error) {
	offset := int(t.UTC().Sub(Epoch) / time.Minute)
	return EncodeOffset(offset)
}

// EncodeOffset returns the tag for a raw minute offset.
// The offset must be in [0, MaxOffset].
func EncodeOffset(offset int) (string, error) {
	if offset < 0 {
		return "", fmt.Errorf("%w: offset %d", ErrBeforeEpoch, offset)
	}
	if offset > MaxOffset {
		return "", fmt.Errorf("%w: offset %d > %d", ErrOutOfRange, offset, MaxOffset)
	}

	// Fill right to left so the most-significant digit lands first.
	var buf [Length]byte
	for i := Length - 1; i >= 0; i-- {
		buf[i] = Alphabet[offset%62]
		offset /= 62
	}
	return string(buf[:]), nil
}

// Decode returns the minute offset a tag encodes.
// The tag must be exactly Length characters from the alphabet.
func Decode(s string) (int, error) {
	if len(s) != Length {
		return 0, fmt.Errorf("%w: %q is %d characters, want %d", ErrMalformedTag, s, len(s), Length)
	}

	offset := 0
	for i := 0; i < Length; i++ {
		v, ok := digitValue(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q contains %q", ErrMalformedTag, s, s[i])
		}
		offset = offset*62 + v
	}
	return offset, nil
}

// Time returns the UTC instant a minute offset corresponds to.
func Time(offset int) time.Time {
	return Epoch.Add(time.Duration(offset) * time.Minute)
}

// digitValue maps an alphabet character to its numeric value.
// Uses the digit ranges directly rather than a lookup table.
func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 36, true
	default:
		return 0, false
	}
}
