package vobject

import (
	"strings"
)

// Property is a single line of an iCalendar or vCard document, such as
// SUMMARY:Lunch or item1.TEL;TYPE=WORK:+1-555-0100.
//
// A Property is not safe for concurrent use.
type Property struct {
	// Name is the property name. It's expected to only contain A-Z, 0-9 and
	// dashes, see Validate.
	Name string
	// Group is the vCard group prefix, if any.
	Group string
	// Params holds the property parameters.
	Params Params
	// Delimiter separates multiple values in the raw value.
	Delimiter string
	// Kind encodes and decodes the raw value. A nil Kind behaves like
	// Unknown.
	Kind Kind

	doc   Document // not owned
	parts []string // nil if there is no value
}

// ParamValue is a name and value pair used to populate a property's
// parameters. An empty name is guessed from the value.
type ParamValue struct {
	Name  string
	Value string
}

// NewProperty creates a property belonging to doc. A single value is stored
// as a scalar, several values as a list. The name is upper-cased but never
// rejected.
func NewProperty(doc Document, name string, kind Kind, values ...string) *Property {
	if kind == nil {
		kind = Unknown{}
	}
	name = strings.ToUpper(name)
	delim := ";"
	if dk, ok := kind.(delimitedKind); ok {
		delim = dk.Delimiter(name)
	}
	p := &Property{
		Name:      name,
		Params:    Params{doc: doc},
		Delimiter: delim,
		Kind:      kind,
		doc:       doc,
	}
	p.SetParts(values)
	return p
}

// NewPropertyWithParams is like NewProperty, but also sets the group and
// adds params in order. Repeated names are merged.
func NewPropertyWithParams(doc Document, name string, kind Kind, group string, params []ParamValue, values ...string) *Property {
	p := NewProperty(doc, name, kind, values...)
	p.Group = group
	for _, pv := range params {
		p.Params.Add(pv.Name, pv.Value)
	}
	return p
}

// Document returns the document the property belongs to, or nil.
func (p *Property) Document() Document {
	return p.doc
}

func (p *Property) documentType() DocumentType {
	if p.doc == nil {
		return DocumentUnknown
	}
	return p.doc.DocumentType()
}

func (p *Property) kind() Kind {
	if p.Kind == nil {
		return Unknown{}
	}
	return p.Kind
}

func (p *Property) delimiter() string {
	if p.Delimiter == "" {
		return ";"
	}
	return p.Delimiter
}

// ValueType returns the value type of the property, eg. "TEXT".
func (p *Property) ValueType() string {
	return p.kind().ValueType()
}

// RawValue returns the raw mimedir value, as produced by the property kind.
func (p *Property) RawValue() string {
	return p.kind().EncodeRawValue(p)
}

// SetRawValue decodes a raw mimedir value and stores it.
func (p *Property) SetRawValue(raw string) {
	p.kind().DecodeRawValue(p, raw)
}

// Parameter returns the named parameter, or nil.
func (p *Property) Parameter(name string) *Parameter {
	return p.Params.Get(name)
}

// SetParameter replaces the values of the named parameter.
func (p *Property) SetParameter(name string, values ...string) error {
	if name == "" {
		return ErrInvalidParameterName
	}
	p.Params.Set(name, values...)
	return nil
}

// AddParameter adds a parameter value, see Params.Add.
func (p *Property) AddParameter(name, value string) {
	p.Params.Add(name, value)
}

// RemoveParameter removes the named parameter.
func (p *Property) RemoveParameter(name string) {
	p.Params.Del(name)
}

// AsSequence returns the property as a single-element list.
func (p *Property) AsSequence() []*Property {
	return []*Property{p}
}

// Clone returns a deep copy of the property. Parameters aren't shared with
// the original.
func (p *Property) Clone() *Property {
	clone := *p
	clone.Params = p.Params.clone(p.doc)
	if p.parts != nil {
		clone.parts = append([]string(nil), p.parts...)
	}
	return &clone
}

// Destroy detaches the property from its document and drops its
// parameters. The property shouldn't be used afterwards.
func (p *Property) Destroy() {
	p.doc = nil
	p.Params = Params{}
}

// Serialize encodes the property as one or more folded lines, each
// terminated by CRLF.
func (p *Property) Serialize() string {
	var sb strings.Builder
	if p.Group != "" {
		sb.WriteString(p.Group)
		sb.WriteByte('.')
	}
	sb.WriteString(p.Name)
	for _, param := range p.Params.l {
		sb.WriteByte(';')
		sb.WriteString(param.Serialize())
	}
	sb.WriteByte(':')
	sb.WriteString(p.RawValue())
	return Fold(sb.String()) + "\r\n"
}
