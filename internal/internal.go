// Package internal provides low-level helpers for the vobject codecs.
package internal

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// isControl reports whether r is a C0 control character (other than TAB, LF
// and CR), DEL or a C1 control character. These are never valid in a
// property value.
func isControl(r rune) bool {
	return r <= 0x08 || r == 0x0B || r == 0x0C || (r >= 0x0E && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}

// ControlByte returns the first control character in s. Bytes which aren't
// part of a valid UTF-8 sequence are skipped: they're reported as invalid
// UTF-8, not as control characters.
func ControlByte(s string) (byte, bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isControl(r) {
			return byte(r), true
		}
		i += size
	}
	return 0, false
}

// IsUTF8 reports whether s is well-formed UTF-8 free of control characters.
func IsUTF8(s string) bool {
	if _, ok := ControlByte(s); ok {
		return false
	}
	return utf8.ValidString(s)
}

// ToUTF8 coerces s into UTF-8. Input that isn't valid UTF-8 is assumed to be
// Windows-1252, the usual culprit in legacy vCard and iCalendar exports.
// Control characters are dropped.
func ToUTF8(s string) string {
	if !utf8.ValidString(s) {
		decoded, err := charmap.Windows1252.NewDecoder().String(s)
		if err != nil {
			decoded = strings.ToValidUTF8(s, "")
		}
		s = decoded
	}
	return strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, s)
}

// IsContinuationByte reports whether b is a UTF-8 continuation byte, ie. its
// top two bits are 10.
func IsContinuationByte(b byte) bool {
	return b&0xC0 == 0x80
}
