package vobject

import (
	"strings"

	"github.com/emersion/go-vobject/internal"
)

// Parameter is a named, possibly multi-valued modifier attached to a
// property, such as TYPE=WORK,FAX.
type Parameter struct {
	// Name is the upper-cased parameter name.
	Name string
	// NoName is set when the name was inferred from the value, as is common
	// with vCard 2.1 bare parameters (TEL;WORK;FAX:...).
	NoName bool

	doc    Document
	values []string
}

// NewParameter creates a new parameter. An empty name is inferred from the
// first value with GuessParameterName.
func NewParameter(doc Document, name string, values ...string) *Parameter {
	param := &Parameter{doc: doc}
	if name == "" {
		param.NoName = true
		if len(values) > 0 {
			name = GuessParameterName(values[0])
		}
	}
	param.Name = strings.ToUpper(name)
	param.AddValue(values...)
	return param
}

// AddValue appends values to the parameter.
func (param *Parameter) AddValue(values ...string) {
	param.values = append(param.values, values...)
}

// SetValues replaces all values of the parameter.
func (param *Parameter) SetValues(values ...string) {
	param.values = append([]string(nil), values...)
}

// Values returns the parameter values.
func (param *Parameter) Values() []string {
	return append([]string(nil), param.values...)
}

// Value returns the values joined with commas.
func (param *Parameter) Value() string {
	return strings.Join(param.values, ",")
}

// Has reports whether the parameter contains value, case-insensitively.
func (param *Parameter) Has(value string) bool {
	for _, v := range param.values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

func (param *Parameter) documentType() DocumentType {
	if param.doc == nil {
		return DocumentUnknown
	}
	return param.doc.DocumentType()
}

// Serialize encodes the parameter as it appears after the semicolon in a
// property line. Values containing special characters are quoted, with the
// characters escaped as defined in RFC 6868.
func (param *Parameter) Serialize() string {
	if len(param.values) == 0 {
		return param.Name + "="
	}
	if param.NoName && param.documentType() == VCard21 {
		return strings.Join(param.values, ";")
	}

	var sb strings.Builder
	sb.WriteString(param.Name)
	sb.WriteByte('=')
	for i, v := range param.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		if !strings.ContainsAny(v, "\n\":;^,+") {
			sb.WriteString(v)
			continue
		}
		sb.WriteByte('"')
		sb.WriteString(paramValueEscaper.Replace(v))
		sb.WriteByte('"')
	}
	return sb.String()
}

var paramValueEscaper = strings.NewReplacer("^", "^^", "\n", "^n", `"`, "^'")

// JSONValue returns the jCal/jCard representation of the parameter value: a
// string, a list of strings, or nil.
func (param *Parameter) JSONValue() interface{} {
	switch len(param.values) {
	case 0:
		return nil
	case 1:
		return param.values[0]
	default:
		return param.Values()
	}
}

func (param *Parameter) xmlChildren() []internal.RawXMLValue {
	children := make([]internal.RawXMLValue, 0, len(param.values))
	for _, v := range param.values {
		children = append(children, internal.NewRawXMLTextElement("text", v))
	}
	return children
}

// Validate checks the parameter. A parameter whose name couldn't be inferred
// and values which aren't valid UTF-8 are reported.
func (param *Parameter) Validate(opts ValidateOptions) []Finding {
	var findings []Finding
	if param.Name == "" && param.documentType() != VCard21 {
		findings = append(findings, Finding{
			Severity: SeveritySevere,
			Message:  "Parameter value " + param.Value() + " has no name and its name couldn't be guessed",
			Node:     param,
		})
	}
	for i, v := range param.values {
		if internal.IsUTF8(v) {
			continue
		}
		level := SeveritySevere
		if opts&Repair != 0 {
			param.values[i] = internal.ToUTF8(v)
			level = SeverityRepaired
		}
		findings = append(findings, Finding{
			Severity: level,
			Message:  "Parameter " + param.Name + " contains a value which is not valid UTF-8",
			Node:     param,
		})
	}
	return findings
}

func (param *Parameter) clone(doc Document) *Parameter {
	return &Parameter{
		Name:   param.Name,
		NoName: param.NoName,
		doc:    doc,
		values: param.Values(),
	}
}

// GuessParameterName infers the name of a vCard 2.1 bare parameter from its
// value. It returns an empty string if the value isn't recognized.
func GuessParameterName(value string) string {
	switch strings.ToUpper(value) {
	// encodings
	case "7-BIT", "QUOTED-PRINTABLE", "BASE64":
		return "ENCODING"

	// common types
	case "WORK", "HOME", "PREF",
		// delivery label types
		"DOM", "INTL", "POSTAL", "PARCEL",
		// telephone types
		"VOICE", "FAX", "MSG", "CELL", "PAGER", "BBS", "MODEM", "CAR", "ISDN", "VIDEO",
		// email types
		"AOL", "APPLELINK", "ATTMAIL", "CIS", "EWORLD", "INTERNET", "IBMMAIL",
		"MCIMAIL", "POWERSHARE", "PRODIGY", "TLX", "X400",
		// photo and logo formats
		"GIF", "CGM", "WMF", "BMP", "DIB", "PICT", "TIFF", "PDF", "PS", "JPEG",
		"MPEG", "MPEG2", "AVI", "QTIME",
		// sound formats
		"WAVE", "PCM", "AIFF",
		// key types
		"X509", "PGP":
		return "TYPE"

	// value locations
	case "INLINE", "URL", "CONTENT-ID", "CID":
		return "VALUE"
	}
	return ""
}

// Params is the ordered parameter table of a property. Names are
// case-insensitive and unique: adding a value under an existing name appends
// to that parameter.
type Params struct {
	doc Document
	l   []*Parameter
}

func (ps *Params) index(name string) int {
	name = strings.ToUpper(name)
	for i, param := range ps.l {
		if param.Name == name {
			return i
		}
	}
	return -1
}

// Add adds a value to the table. If name is empty, it's guessed from the
// value. If a parameter with the same name exists, the value is appended to
// it.
func (ps *Params) Add(name, value string) {
	noName := false
	if name == "" {
		name = GuessParameterName(value)
		noName = true
	}
	if i := ps.index(name); i >= 0 {
		ps.l[i].AddValue(value)
		return
	}
	param := NewParameter(ps.doc, name, value)
	param.NoName = noName
	ps.l = append(ps.l, param)
}

// Get returns the parameter with the provided name, or nil if there is none.
func (ps *Params) Get(name string) *Parameter {
	if i := ps.index(name); i >= 0 {
		return ps.l[i]
	}
	return nil
}

// Set replaces the values of the named parameter. A new parameter is
// appended if none exists.
func (ps *Params) Set(name string, values ...string) {
	if i := ps.index(name); i >= 0 {
		ps.l[i].SetValues(values...)
		ps.l[i].NoName = false
		return
	}
	ps.l = append(ps.l, NewParameter(ps.doc, name, values...))
}

// Del removes the named parameter. It's a no-op if there is none.
func (ps *Params) Del(name string) {
	if i := ps.index(name); i >= 0 {
		ps.l = append(ps.l[:i], ps.l[i+1:]...)
	}
}

// Len returns the number of parameters.
func (ps *Params) Len() int {
	return len(ps.l)
}

// All returns the parameters in insertion order.
func (ps *Params) All() []*Parameter {
	return append([]*Parameter(nil), ps.l...)
}

func (ps *Params) clone(doc Document) Params {
	l := make([]*Parameter, len(ps.l))
	for i, param := range ps.l {
		l[i] = param.clone(doc)
	}
	return Params{doc: doc, l: l}
}
