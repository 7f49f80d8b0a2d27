package vobject

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Kind encodes and decodes the raw mimedir value of a property. The raw
// value is the text found after the colon of a property line, before
// folding.
type Kind interface {
	// ValueType returns the upper-cased value type, as used in the VALUE
	// parameter, eg. "TEXT".
	ValueType() string
	EncodeRawValue(p *Property) string
	DecodeRawValue(p *Property, raw string)
}

// delimitedKind is implemented by kinds which pick the property delimiter
// depending on the property name.
type delimitedKind interface {
	Delimiter(name string) string
}

// Text is the TEXT value kind. Special characters are backslash-escaped.
type Text struct{}

var _ Kind = Text{}

// Text properties whose value is made of several components, separated by
// semicolons.
var structuredTextProps = map[string]bool{
	"N":              true,
	"ADR":            true,
	"ORG":            true,
	"GENDER":         true,
	"CLIENTPIDMAP":   true,
	"REQUEST-STATUS": true,
}

// Minimum number of components of some structured properties.
var minimumTextParts = map[string]int{
	"N":   5,
	"ADR": 7,
}

func (Text) ValueType() string {
	return "TEXT"
}

func (Text) Delimiter(name string) string {
	if structuredTextProps[name] {
		return ";"
	}
	return ","
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`, "\r", "")

func (Text) EncodeRawValue(p *Property) string {
	parts := p.Parts()
	if n, ok := minimumTextParts[p.Name]; ok {
		for len(parts) < n {
			parts = append(parts, "")
		}
	}
	for i, part := range parts {
		parts[i] = textEscaper.Replace(part)
	}
	return strings.Join(parts, p.delimiter())
}

func (Text) DecodeRawValue(p *Property, raw string) {
	p.SetParts(unescapeText(raw, p.delimiter()))
}

func unescapeText(raw, delim string) []string {
	var (
		parts []string
		sb    strings.Builder
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw):
			switch next := raw[i+1]; next {
			case '\\', ';', ',':
				sb.WriteByte(next)
				i++
			case 'n', 'N':
				sb.WriteByte('\n')
				i++
			default:
				sb.WriteByte(c)
			}
		case delim != "" && strings.HasPrefix(raw[i:], delim):
			parts = append(parts, sb.String())
			sb.Reset()
			i += len(delim) - 1
		default:
			sb.WriteByte(c)
		}
	}
	return append(parts, sb.String())
}

// Raw is a value kind whose raw value is used verbatim, such as URI,
// INTEGER or UTC-OFFSET. Multiple values are separated with commas.
type Raw struct {
	Type string
}

var _ Kind = Raw{}

func (k Raw) ValueType() string {
	return strings.ToUpper(k.Type)
}

func (Raw) EncodeRawValue(p *Property) string {
	return strings.Join(p.Parts(), ",")
}

func (Raw) DecodeRawValue(p *Property, raw string) {
	p.SetParts(strings.Split(raw, ","))
}

// Unknown is the kind of properties whose value type isn't known. The raw
// value is kept as a single opaque string.
type Unknown struct{}

var _ Kind = Unknown{}

func (Unknown) ValueType() string {
	return "UNKNOWN"
}

func (Unknown) EncodeRawValue(p *Property) string {
	return strings.Join(p.Parts(), p.delimiter())
}

func (Unknown) DecodeRawValue(p *Property, raw string) {
	p.SetValue(raw)
}

// Binary is the BINARY value kind. The value holds the base64 encoding of
// the data, use Bytes and SetBytes to access the data itself.
type Binary struct{}

var _ Kind = Binary{}

func (Binary) ValueType() string {
	return "BINARY"
}

func (Binary) EncodeRawValue(p *Property) string {
	return strings.Join(p.Parts(), "")
}

func (Binary) DecodeRawValue(p *Property, raw string) {
	p.SetValue(raw)
}

// Bytes decodes the binary data held by the property.
func (Binary) Bytes(p *Property) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(Binary{}.EncodeRawValue(p))
	if err != nil {
		return nil, fmt.Errorf("vobject: invalid base64 value for %v: %w", p.Name, err)
	}
	return b, nil
}

// SetBytes stores b in the property.
func (Binary) SetBytes(p *Property, b []byte) {
	p.SetValue(base64.StdEncoding.EncodeToString(b))
}

// DateTime is the DATE-TIME value kind. Multiple values are separated with
// commas.
type DateTime struct{}

var _ Kind = DateTime{}

const (
	dateFormat         = "20060102"
	floatingTimeFormat = "20060102T150405"
	utcDateTimeFormat  = "20060102T150405Z"
	tzidParam          = "TZID"
)

func (DateTime) ValueType() string {
	return "DATE-TIME"
}

func (DateTime) EncodeRawValue(p *Property) string {
	return strings.Join(p.Parts(), ",")
}

func (DateTime) DecodeRawValue(p *Property, raw string) {
	p.SetParts(strings.Split(raw, ","))
}

// Times parses the values of the property. Floating times and dates are
// interpreted in the location named by the TZID parameter, or in loc if
// there is none.
func (DateTime) Times(p *Property, loc *time.Location) ([]time.Time, error) {
	if tzid := p.Params.Get(tzidParam); tzid != nil && tzid.Value() != "" {
		var err error
		loc, err = time.LoadLocation(tzid.Value())
		if err != nil {
			return nil, fmt.Errorf("vobject: invalid TZID for %v: %w", p.Name, err)
		}
	}
	if loc == nil {
		loc = time.UTC
	}

	parts := p.Parts()
	l := make([]time.Time, 0, len(parts))
	for _, s := range parts {
		var (
			t   time.Time
			err error
		)
		switch len(s) {
		case len(dateFormat):
			t, err = time.ParseInLocation(dateFormat, s, loc)
		case len(floatingTimeFormat):
			t, err = time.ParseInLocation(floatingTimeFormat, s, loc)
		case len(utcDateTimeFormat):
			t, err = time.ParseInLocation(utcDateTimeFormat, s, time.UTC)
		default:
			err = fmt.Errorf("unexpected length %v", len(s))
		}
		if err != nil {
			return nil, fmt.Errorf("vobject: invalid date-time %q for %v: %w", s, p.Name, err)
		}
		l = append(l, t)
	}
	return l, nil
}

// SetTimes stores times in the property, in UTC.
func (DateTime) SetTimes(p *Property, times ...time.Time) {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = t.UTC().Format(utcDateTimeFormat)
	}
	p.Params.Del(tzidParam)
	p.SetParts(parts)
}

// Date is the DATE value kind. It shares its encoding with DateTime.
type Date struct {
	DateTime
}

var _ Kind = Date{}

func (Date) ValueType() string {
	return "DATE"
}

// Recur is the RECUR value kind, used by RRULE and EXRULE.
type Recur struct{}

var _ Kind = Recur{}

func (Recur) ValueType() string {
	return "RECUR"
}

func (Recur) EncodeRawValue(p *Property) string {
	return strings.Join(p.Parts(), ",")
}

func (Recur) DecodeRawValue(p *Property, raw string) {
	p.SetValue(raw)
}

// ROption parses the recurrence rule held by the property.
func (Recur) ROption(p *Property) (*rrule.ROption, error) {
	opt, err := rrule.StrToROption(Recur{}.EncodeRawValue(p))
	if err != nil {
		return nil, fmt.Errorf("vobject: invalid recurrence rule for %v: %w", p.Name, err)
	}
	return opt, nil
}

// KindByValueType returns the kind for a VALUE parameter, case-insensitively.
// Unrecognized value types map to Unknown.
func KindByValueType(t string) Kind {
	switch t = strings.ToUpper(t); t {
	case "TEXT":
		return Text{}
	case "BINARY":
		return Binary{}
	case "DATE-TIME":
		return DateTime{}
	case "DATE":
		return Date{}
	case "RECUR":
		return Recur{}
	case "BOOLEAN", "CAL-ADDRESS", "DURATION", "FLOAT", "INTEGER", "PERIOD",
		"TIME", "URI", "URL", "UTC-OFFSET", "LANGUAGE-TAG", "TIMESTAMP",
		"DATE-AND-OR-TIME":
		return Raw{Type: t}
	}
	return Unknown{}
}
