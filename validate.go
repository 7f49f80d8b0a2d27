package vobject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emersion/go-vobject/internal"
)

var (
	propertyNameRegexp     = regexp.MustCompile(`^[A-Z0-9-]+$`)
	invalidNameCharsRegexp = regexp.MustCompile(`[^A-Z0-9-]`)
)

// Allowed values of the ENCODING parameter, by document type. vCard 4.0
// doesn't allow the parameter at all.
var allowedEncodings = map[DocumentType][]string{
	ICalendar20: {"8BIT", "BASE64"},
	VCard21:     {"QUOTED-PRINTABLE", "BASE64", "8BIT"},
	VCard30:     {"B"},
}

// Validate checks the property and its parameters. With the Repair option,
// defects which can be fixed are fixed in place and reported with
// SeverityRepaired.
//
// All checks always run: the raw value must be UTF-8 without control
// characters, the name must only contain A-Z, 0-9 and dashes, and the
// ENCODING parameter must be allowed by the document type. Parameter
// findings come last.
func (p *Property) Validate(opts ValidateOptions) []Finding {
	var findings []Finding
	repair := opts&Repair != 0

	if raw := p.RawValue(); !internal.IsUTF8(raw) {
		level := SeveritySevere
		if repair {
			p.SetRawValue(internal.ToUTF8(raw))
			level = SeverityRepaired
		}
		var msg string
		if b, ok := internal.ControlByte(raw); ok {
			msg = fmt.Sprintf("Property %v contains a control character (0x%02x)", p.Name, b)
		} else {
			msg = fmt.Sprintf("Property %v is not valid UTF-8: %q", p.Name, raw)
		}
		findings = append(findings, Finding{Severity: level, Message: msg, Node: p})
	}

	if !propertyNameRegexp.MatchString(p.Name) {
		level := SeveritySevere
		msg := fmt.Sprintf("The property name %q contains invalid characters. Only A-Z, 0-9 and - are allowed", p.Name)
		if repair {
			name := strings.ToUpper(strings.ReplaceAll(p.Name, "_", "-"))
			// a name left empty can't be repaired
			if name = invalidNameCharsRegexp.ReplaceAllString(name, ""); name != "" {
				p.Name = name
				level = SeverityRepaired
			}
		}
		findings = append(findings, Finding{Severity: level, Message: msg, Node: p})
	}

	if enc := p.Params.Get("ENCODING"); enc != nil {
		findings = append(findings, p.validateEncoding(enc, repair)...)
	}

	for _, param := range p.Params.All() {
		findings = append(findings, param.Validate(opts)...)
	}

	return findings
}

func (p *Property) validateEncoding(enc *Parameter, repair bool) []Finding {
	docType := p.documentType()
	if docType == VCard40 {
		return []Finding{{
			Severity: SeveritySevere,
			Message:  "ENCODING parameter is not valid in vCard 4.0",
			Node:     p,
		}}
	}

	var findings []Finding
	encoding := strings.ToUpper(enc.Value())
	if docType == VCard30 && repair && encoding == "BASE64" {
		enc.SetValues("B")
		encoding = "B"
		findings = append(findings, Finding{
			Severity: SeverityRepaired,
			Message:  "ENCODING=BASE64 has been transformed to ENCODING=B",
			Node:     p,
		})
	}

	allowed, ok := allowedEncodings[docType]
	if !ok {
		return findings
	}
	for _, v := range allowed {
		if v == encoding {
			return findings
		}
	}
	return append(findings, Finding{
		Severity: SeveritySevere,
		Message:  fmt.Sprintf("ENCODING=%v is not valid for %v", encoding, docType),
		Node:     p,
	})
}
