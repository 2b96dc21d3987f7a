package types

import (
	"strings"
	"unicode"
)

// MinSerialLength is the shortest value treated as a real serial number.
// Shorter values are placeholders and are ignored by duplicate checks.
const MinSerialLength = 3

// StripSpaces removes every whitespace rune from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeSerial is the form reference-dataset series are stored and
// looked up in.
func NormalizeSerial(s string) string {
	return strings.ToUpper(StripSpaces(s))
}

// IsPopulated reports whether v is long enough to count as a serial.
func IsPopulated(v string) bool {
	return len(v) >= MinSerialLength
}
