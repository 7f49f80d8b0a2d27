package vobject

import (
	"strings"

	"github.com/emersion/go-vobject/internal"
)

// Maximum number of content bytes per physical line. Continuation lines are
// prefixed with a space, which makes them 75 bytes long.
const foldWidth = 74

// Fold splits a logical line into physical lines as defined in RFC 5545
// section 3.1. The result has no trailing line break.
//
// Lines are never split inside a UTF-8 sequence. When the 74th byte falls
// inside one, the break is moved back to the start of the sequence rather
// than after its end, so that no physical line exceeds 75 bytes.
func Fold(line string) string {
	if len(line) <= foldWidth {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line) + 3*(len(line)/foldWidth))
	for len(line) > foldWidth {
		n := foldWidth
		for n > 0 && internal.IsContinuationByte(line[n]) {
			n--
		}
		if n == 0 {
			// not UTF-8, split anywhere
			n = foldWidth
		}
		sb.WriteString(line[:n])
		sb.WriteString("\r\n ")
		line = line[n:]
	}
	sb.WriteString(line)
	return sb.String()
}

var unfolder = strings.NewReplacer("\r\n ", "", "\r\n\t", "")

// Unfold joins physical lines produced by Fold back into a logical line.
func Unfold(s string) string {
	return unfolder.Replace(s)
}
