package internal

import (
	"encoding/xml"
	"strings"
)

// RawXMLValue is a raw XML element tree. It implements xml.Unmarshaler and
// xml.Marshaler and is used to build the xCal/xCard projection of a property
// and to walk it back.
type RawXMLValue struct {
	tok      xml.Token // guaranteed not to be xml.EndElement
	children []RawXMLValue
}

// NewRawXMLElement creates a new RawXMLValue for an element.
func NewRawXMLElement(name xml.Name, attr []xml.Attr, children []RawXMLValue) *RawXMLValue {
	return &RawXMLValue{tok: xml.StartElement{Name: name, Attr: attr}, children: children}
}

// NewRawXMLText creates a character data node.
func NewRawXMLText(s string) RawXMLValue {
	return RawXMLValue{tok: xml.CharData(s)}
}

// NewRawXMLTextElement creates an element holding a single text node, such
// as <text>foo</text>.
func NewRawXMLTextElement(name string, s string) RawXMLValue {
	return *NewRawXMLElement(xml.Name{Local: name}, nil, []RawXMLValue{NewRawXMLText(s)})
}

// UnmarshalXML implements xml.Unmarshaler.
func (val *RawXMLValue) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	val.tok = start
	val.children = nil

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			child := RawXMLValue{}
			if err := child.UnmarshalXML(d, tok); err != nil {
				return err
			}
			val.children = append(val.children, child)
		case xml.EndElement:
			return nil
		case xml.CharData:
			val.children = append(val.children, RawXMLValue{tok: tok.Copy()})
		default:
			// comments, processing instructions and directives carry no value
		}
	}
}

// MarshalXML implements xml.Marshaler.
func (val *RawXMLValue) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	switch tok := val.tok.(type) {
	case xml.StartElement:
		if err := e.EncodeToken(tok); err != nil {
			return err
		}
		for _, child := range val.children {
			if err := child.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
		return e.EncodeToken(tok.End())
	case xml.EndElement:
		panic("unexpected end element")
	default:
		return e.EncodeToken(tok)
	}
}

var _ xml.Marshaler = (*RawXMLValue)(nil)
var _ xml.Unmarshaler = (*RawXMLValue)(nil)

// XMLName returns the name of the element, if the value is an element.
func (val *RawXMLValue) XMLName() (name xml.Name, ok bool) {
	if start, ok := val.tok.(xml.StartElement); ok {
		return start.Name, true
	}
	return xml.Name{}, false
}

// Elements returns the child elements, skipping character data.
func (val *RawXMLValue) Elements() []*RawXMLValue {
	var l []*RawXMLValue
	for i := range val.children {
		if _, ok := val.children[i].tok.(xml.StartElement); ok {
			l = append(l, &val.children[i])
		}
	}
	return l
}

// Text returns the concatenated character data directly inside the element.
func (val *RawXMLValue) Text() string {
	var sb strings.Builder
	for _, child := range val.children {
		if data, ok := child.tok.(xml.CharData); ok {
			sb.Write(data)
		}
	}
	return sb.String()
}
