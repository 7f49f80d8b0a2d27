package vobject

import (
	"encoding/xml"
	"strings"

	"github.com/emersion/go-vobject/internal"
)

// MarshalXML implements xml.Marshaler. The property is encoded as an
// xCal/xCard element:
//
//	<summary>
//	  <parameters><language><text>en</text></language></parameters>
//	  <text>Lunch</text>
//	</summary>
//
// The VALUE parameter is omitted since it's redundant with the value
// elements. The start element is ignored: the element is always named after
// the property.
func (p *Property) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return p.xmlValue().MarshalXML(e, start)
}

func (p *Property) xmlValue() *internal.RawXMLValue {
	var children []internal.RawXMLValue

	var params []internal.RawXMLValue
	for _, param := range p.Params.l {
		if param.Name == "VALUE" {
			continue
		}
		name := xml.Name{Local: strings.ToLower(param.Name)}
		params = append(params, *internal.NewRawXMLElement(name, nil, param.xmlChildren()))
	}
	if len(params) > 0 {
		children = append(children, *internal.NewRawXMLElement(xml.Name{Local: "parameters"}, nil, params))
	}

	valueType := strings.ToLower(p.ValueType())
	for _, part := range p.JSONValue() {
		children = append(children, internal.NewRawXMLTextElement(valueType, part))
	}

	return internal.NewRawXMLElement(xml.Name{Local: strings.ToLower(p.Name)}, nil, children)
}

// UnmarshalXML implements xml.Unmarshaler. It reads an xCal/xCard property
// element, replacing the property name, parameters, kind and value. The
// document the property belongs to is kept.
func (p *Property) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw internal.RawXMLValue
	if err := raw.UnmarshalXML(d, start); err != nil {
		return err
	}

	var (
		valueType string
		values    []string
		params    []ParamValue
	)
	for _, child := range raw.Elements() {
		name, _ := child.XMLName()
		if name.Local == "parameters" {
			for _, param := range child.Elements() {
				paramName, _ := param.XMLName()
				for _, v := range param.Elements() {
					params = append(params, ParamValue{Name: paramName.Local, Value: v.Text()})
				}
			}
			continue
		}
		if valueType == "" {
			valueType = name.Local
		}
		values = append(values, child.Text())
	}

	*p = *NewPropertyWithParams(p.doc, start.Name.Local, KindByValueType(valueType), "", params)
	p.SetJSONValue(values)
	return nil
}
