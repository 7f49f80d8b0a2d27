package vobject

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONValue returns the jCal/jCard value of the property: the list of its
// parts, never joined.
func (p *Property) JSONValue() []string {
	return p.Parts()
}

// SetJSONValue stores a jCal/jCard value. A single value is stored as a
// scalar, anything else as a list.
func (p *Property) SetJSONValue(values []string) {
	if len(values) == 1 {
		p.SetValue(values[0])
	} else {
		p.SetParts(values)
	}
}

// MarshalJSON implements json.Marshaler. The property is encoded as a
// jCal/jCard tuple: [name, params, value-type, values...]. The VALUE
// parameter is omitted since it's redundant with the value type, the group is
// encoded as a "group" parameter and takes precedence over a GROUP parameter.
func (p *Property) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	if err := writeJSON(&buf, strings.ToLower(p.Name)); err != nil {
		return nil, err
	}

	buf.WriteString(",{")
	n := 0
	writeParam := func(name string, v interface{}) error {
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		if err := writeJSON(&buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		return writeJSON(&buf, v)
	}
	for _, param := range p.Params.l {
		if param.Name == "VALUE" || (param.Name == "GROUP" && p.Group != "") {
			continue
		}
		if err := writeParam(strings.ToLower(param.Name), param.JSONValue()); err != nil {
			return nil, err
		}
	}
	if p.Group != "" {
		if err := writeParam("group", p.Group); err != nil {
			return nil, err
		}
	}
	buf.WriteString("},")

	if err := writeJSON(&buf, strings.ToLower(p.ValueType())); err != nil {
		return nil, err
	}
	for _, part := range p.JSONValue() {
		buf.WriteByte(',')
		if err := writeJSON(&buf, part); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. It reads a jCal/jCard tuple
// into the property, replacing its name, group, parameters, kind and value.
// The document the property belongs to is kept.
func (p *Property) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("vobject: malformed jCal/jCard property: %w", err)
	}
	if len(tuple) < 3 {
		return fmt.Errorf("vobject: malformed jCal/jCard property: expected at least 3 items, got %v", len(tuple))
	}

	var name, valueType string
	if err := json.Unmarshal(tuple[0], &name); err != nil {
		return fmt.Errorf("vobject: malformed jCal/jCard property name: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &valueType); err != nil {
		return fmt.Errorf("vobject: malformed jCal/jCard value type: %w", err)
	}

	*p = *NewProperty(p.doc, name, KindByValueType(valueType))
	if err := p.unmarshalJSONParams(tuple[1]); err != nil {
		return err
	}

	var values []string
	for _, raw := range tuple[3:] {
		var v interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("vobject: malformed jCal/jCard value: %w", err)
		}
		if l, ok := v.([]interface{}); ok {
			for _, item := range l {
				values = append(values, jsonScalar(item))
			}
		} else {
			values = append(values, jsonScalar(v))
		}
	}
	p.SetJSONValue(values)
	return nil
}

// unmarshalJSONParams reads the parameter object, keeping the order of its
// keys.
func (p *Property) unmarshalJSONParams(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil {
		return fmt.Errorf("vobject: malformed jCal/jCard parameters: %w", err)
	} else if tok != json.Delim('{') {
		return fmt.Errorf("vobject: malformed jCal/jCard parameters: expected an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("vobject: malformed jCal/jCard parameters: %w", err)
		}
		name, _ := tok.(string)

		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("vobject: malformed jCal/jCard parameter %q: %w", name, err)
		}

		if name == "group" {
			p.Group = jsonScalar(v)
			continue
		}
		if name == "" {
			return fmt.Errorf("vobject: malformed jCal/jCard parameters: %w", ErrInvalidParameterName)
		}
		switch v := v.(type) {
		case []interface{}:
			for _, item := range v {
				p.Params.Add(name, jsonScalar(item))
			}
		case nil:
			p.Params.Set(name)
		default:
			p.Params.Add(name, jsonScalar(v))
		}
	}
	return nil
}

func jsonScalar(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []interface{}:
		l := make([]string, len(v))
		for i, item := range v {
			l[i] = jsonScalar(item)
		}
		return strings.Join(l, ",")
	default:
		return fmt.Sprint(v)
	}
}
