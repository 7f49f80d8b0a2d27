package vobject_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emersion/go-vobject"
)

func physicalLines(t *testing.T, folded string) []string {
	lines := strings.Split(folded, "\r\n")
	for i, line := range lines {
		if i > 0 {
			require.True(t, strings.HasPrefix(line, " "), "continuation line %d must start with a space", i)
		}
		require.LessOrEqual(t, len(line), 75, "line %d is too long", i)
	}
	return lines
}

func TestFold_short(t *testing.T) {
	s := "SUMMARY:Lunch"
	assert.Equal(t, s, vobject.Fold(s))

	s = strings.Repeat("a", 74)
	assert.Equal(t, s, vobject.Fold(s))
}

func TestFold_ascii(t *testing.T) {
	s := strings.Repeat("0123456789", 20)
	folded := vobject.Fold(s)

	lines := physicalLines(t, folded)
	require.Len(t, lines, 3)
	assert.Equal(t, s[:74], lines[0])
	assert.Equal(t, " "+s[74:148], lines[1])
	assert.Equal(t, " "+s[148:], lines[2])
	assert.False(t, strings.HasSuffix(folded, " "))
	assert.False(t, strings.HasSuffix(folded, "\r\n"))

	assert.Equal(t, s, vobject.Unfold(folded))
}

func TestFold_exactMultiple(t *testing.T) {
	s := strings.Repeat("x", 148)
	folded := vobject.Fold(s)
	assert.Equal(t, s[:74]+"\r\n "+s[74:], folded)
}

func TestFold_multibyte(t *testing.T) {
	// "é" straddles the 74th byte
	s := strings.Repeat("a", 73) + "é" + strings.Repeat("b", 10)
	lines := physicalLines(t, vobject.Fold(s))
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("a", 73), lines[0])
	assert.Equal(t, " é"+strings.Repeat("b", 10), lines[1])
}

func TestFold_breakBeforeSequence(t *testing.T) {
	// the 4-byte emoji covers bytes 72 to 75: the break moves before it
	s := strings.Repeat("x", 72) + "🎉" + "tail"
	lines := physicalLines(t, vobject.Fold(s))
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("x", 72), lines[0])
	assert.Equal(t, " 🎉tail", lines[1])
}

func TestFold_noBrokenSequences(t *testing.T) {
	for _, s := range []string{
		strings.Repeat("☃", 100),
		"DESCRIPTION:" + strings.Repeat("Grüße aus Köln 🎉 ", 30),
		strings.Repeat("x", 72) + strings.Repeat("🎉", 40),
	} {
		folded := vobject.Fold(s)
		for _, line := range physicalLines(t, folded) {
			assert.True(t, utf8.ValidString(line), "line %q splits a UTF-8 sequence", line)
		}
		assert.Equal(t, s, vobject.Unfold(folded))
		assert.Equal(t, folded, vobject.Fold(s), "folding must be deterministic")
	}
}

func TestProperty_Serialize_folded(t *testing.T) {
	p := vobject.NewProperty(vobject.DocumentOf(vobject.ICalendar20), "DESCRIPTION", vobject.Text{})
	p.SetValue(strings.Repeat("Lorem ipsum, dolor sit amet. ", 5))

	out := p.Serialize()
	require.True(t, strings.HasSuffix(out, "\r\n"))
	assert.False(t, strings.HasSuffix(out, "\r\n \r\n"))
	physicalLines(t, strings.TrimSuffix(out, "\r\n"))

	unfolded := vobject.Unfold(strings.TrimSuffix(out, "\r\n"))
	assert.Equal(t, "DESCRIPTION:"+p.RawValue(), unfolded)
	assert.Contains(t, unfolded, `Lorem ipsum\, dolor`)
}
