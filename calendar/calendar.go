// Package calendar bridges iCalendar documents decoded by go-ical and the
// vobject property model.
//
// iCalendar is defined in RFC 5545.
package calendar

import (
	"fmt"
	"io"
	"sort"

	"github.com/dimchansky/utfbom"
	"github.com/emersion/go-ical"

	"github.com/emersion/go-vobject"
)

// Calendar is an iCalendar document. It implements vobject.Document.
type Calendar struct {
	*ical.Calendar
}

var _ vobject.Document = (*Calendar)(nil)

// Decode reads a single iCalendar document. A leading byte order mark is
// skipped.
func Decode(r io.Reader) (*Calendar, error) {
	cal, err := ical.NewDecoder(utfbom.SkipOnly(r)).Decode()
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to decode iCalendar: %w", err)
	}
	return &Calendar{cal}, nil
}

// DocumentType implements vobject.Document. Only iCalendar 2.0 is
// recognized.
func (cal *Calendar) DocumentType() vobject.DocumentType {
	if prop := cal.Props.Get(ical.PropVersion); prop != nil && prop.Value != "2.0" {
		return vobject.DocumentUnknown
	}
	return vobject.ICalendar20
}

// Value types of common properties, used when go-ical doesn't know about
// them.
var defaultValueTypes = map[string]ical.ValueType{
	ical.PropRecurrenceRule: ical.ValueRecurrence,
	"EXRULE":                ical.ValueRecurrence,
	ical.PropDescription:    ical.ValueText,
	ical.PropSummary:        ical.ValueText,
	ical.PropDateTimeStart:  ical.ValueDateTime,
	ical.PropDateTimeEnd:    ical.ValueDateTime,
	ical.PropDateTimeStamp:  ical.ValueDateTime,
	ical.PropAttach:         ical.ValueURI,
}

// KindOf returns the value kind of an iCalendar property, from its VALUE
// parameter or its default value type.
func KindOf(prop *ical.Prop) vobject.Kind {
	t := prop.ValueType()
	if t == ical.ValueDefault {
		t = defaultValueTypes[prop.Name]
	}
	return vobject.KindByValueType(string(t))
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewProperty converts a go-ical property. The raw value is decoded by the
// property kind.
func NewProperty(doc vobject.Document, prop *ical.Prop) *vobject.Property {
	p := vobject.NewProperty(doc, prop.Name, KindOf(prop))
	for _, name := range sortedKeys(prop.Params) {
		for _, v := range prop.Params[name] {
			p.AddParameter(name, v)
		}
	}
	p.SetRawValue(prop.Value)
	return p
}

// PropFromProperty converts a property back into a go-ical property.
func PropFromProperty(p *vobject.Property) *ical.Prop {
	prop := ical.NewProp(p.Name)
	for _, param := range p.Params.All() {
		prop.Params[param.Name] = param.Values()
	}
	prop.Value = p.RawValue()
	return prop
}

func propNames(comp *ical.Component) []string {
	names := make([]string, 0, len(comp.Props))
	for name := range comp.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Properties returns the properties of a component, sorted by name.
func (cal *Calendar) Properties(comp *ical.Component) []*vobject.Property {
	var l []*vobject.Property
	for _, name := range propNames(comp) {
		for i := range comp.Props[name] {
			l = append(l, NewProperty(cal, &comp.Props[name][i]))
		}
	}
	return l
}
