package vobject

// SetValue replaces the value with a single scalar.
func (p *Property) SetValue(v string) {
	p.parts = []string{v}
}

// SetParts replaces the value with a list. An empty list clears the value.
func (p *Property) SetParts(parts []string) {
	if len(parts) == 0 {
		p.parts = nil
		return
	}
	p.parts = append([]string(nil), parts...)
}

// Parts returns the value as a list. It's empty if there is no value.
func (p *Property) Parts() []string {
	l := make([]string, len(p.parts))
	copy(l, p.parts)
	return l
}

// Value returns the value as a single string. If the property holds several
// values, the raw mimedir encoding is returned, just like it appears in the
// serialized property. ok is false if there is no value.
func (p *Property) Value() (v string, ok bool) {
	switch len(p.parts) {
	case 0:
		return "", false
	case 1:
		return p.parts[0], true
	default:
		return p.RawValue(), true
	}
}

// String returns the value, or an empty string.
func (p *Property) String() string {
	v, _ := p.Value()
	return v
}
