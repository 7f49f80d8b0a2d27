// Package contact bridges vCard documents decoded by go-vcard and the vobject
// property model.
//
// vCard 4.0 is defined in RFC 6350, vCard 3.0 in RFC 2426.
package contact

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/emersion/go-vcard"

	"github.com/emersion/go-vobject"
)

// Card is a vCard. It implements vobject.Document.
type Card struct {
	vcard.Card
}

var _ vobject.Document = Card{}

// DecodeAll reads all vCards from r. A leading byte order mark is skipped.
func DecodeAll(r io.Reader) ([]Card, error) {
	dec := vcard.NewDecoder(utfbom.SkipOnly(r))
	var cards []Card
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("contact: failed to decode vCard: %w", err)
		}
		cards = append(cards, Card{card})
	}
	return cards, nil
}

// DocumentType implements vobject.Document, from the VERSION property.
func (card Card) DocumentType() vobject.DocumentType {
	switch card.Value(vcard.FieldVersion) {
	case "2.1":
		return vobject.VCard21
	case "3.0":
		return vobject.VCard30
	case "4.0":
		return vobject.VCard40
	}
	return vobject.DocumentUnknown
}

// Default value types, for properties without a VALUE parameter.
var defaultValueTypes = map[string]string{
	vcard.FieldBirthday:    "DATE-AND-OR-TIME",
	vcard.FieldAnniversary: "DATE-AND-OR-TIME",
	vcard.FieldRevision:    "TIMESTAMP",
	vcard.FieldURL:         "URI",
	vcard.FieldSource:      "URI",
	vcard.FieldPhoto:       "URI",
	vcard.FieldLogo:        "URI",
	vcard.FieldSound:       "URI",
	vcard.FieldKey:         "URI",
	vcard.FieldVersion:     "TEXT",
}

// KindOf returns the value kind of a field. Inline data carrying an ENCODING
// parameter is binary.
func KindOf(name string, field *vcard.Field) vobject.Kind {
	if t := field.Params.Get(vcard.ParamValue); t != "" && !strings.EqualFold(t, "uri") {
		return vobject.KindByValueType(t)
	}
	if field.Params.Get("ENCODING") != "" {
		return vobject.Binary{}
	}
	if t, ok := defaultValueTypes[strings.ToUpper(name)]; ok {
		return vobject.KindByValueType(t)
	}
	return vobject.Text{}
}

// go-vcard unescapes backslashes, newlines and commas.
var (
	fieldValueEscaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	fieldValueUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";")
)

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewProperty converts a go-vcard field. Parameters are added sorted by
// name since go-vcard doesn't keep their order.
func NewProperty(doc vobject.Document, name string, field *vcard.Field) *vobject.Property {
	p := vobject.NewProperty(doc, name, KindOf(name, field))
	p.Group = field.Group
	for _, k := range sortedKeys(field.Params) {
		for _, v := range field.Params[k] {
			p.AddParameter(k, v)
		}
	}
	p.SetRawValue(fieldValueEscaper.Replace(field.Value))
	return p
}

// FieldFromProperty converts a property back into a go-vcard field.
func FieldFromProperty(p *vobject.Property) *vcard.Field {
	field := &vcard.Field{
		Value:  fieldValueUnescaper.Replace(p.RawValue()),
		Group:  p.Group,
		Params: make(vcard.Params),
	}
	for _, param := range p.Params.All() {
		field.Params[param.Name] = param.Values()
	}
	return field
}

// Properties returns the properties of the card. VERSION comes first, other
// properties are sorted by name.
func (card Card) Properties() []*vobject.Property {
	names := make([]string, 0, len(card.Card))
	for name := range card.Card {
		if name != vcard.FieldVersion {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := card.Card[vcard.FieldVersion]; ok {
		names = append([]string{vcard.FieldVersion}, names...)
	}

	var l []*vobject.Property
	for _, name := range names {
		for _, field := range card.Card[name] {
			l = append(l, NewProperty(card, name, field))
		}
	}
	return l
}

// Validate validates every property of the card. With vobject.Repair,
// repaired properties are written back into the card.
func (card Card) Validate(opts vobject.ValidateOptions) []vobject.Finding {
	var findings []vobject.Finding
	fields := make(vcard.Card, len(card.Card))
	for _, p := range card.Properties() {
		findings = append(findings, p.Validate(opts)...)
		fields[p.Name] = append(fields[p.Name], FieldFromProperty(p))
	}
	if opts&vobject.Repair != 0 {
		for k := range card.Card {
			delete(card.Card, k)
		}
		for k, v := range fields {
			card.Card[k] = v
		}
	}
	return findings
}

// Encode writes the card with folded lines terminated by CRLF.
func (card Card) Encode(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCARD\r\n")
	for _, p := range card.Properties() {
		sb.WriteString(p.Serialize())
	}
	sb.WriteString("END:VCARD\r\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
