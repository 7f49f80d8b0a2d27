package calendar

import (
	"fmt"

	"github.com/emersion/go-ical"

	"github.com/emersion/go-vobject"
)

// Validate validates every property of the calendar. With vobject.Repair,
// repaired properties are written back into the calendar. Recurrence rules
// which can't be parsed are reported as well.
func (cal *Calendar) Validate(opts vobject.ValidateOptions) []vobject.Finding {
	return cal.validateComponent(cal.Component, opts)
}

func (cal *Calendar) validateComponent(comp *ical.Component, opts vobject.ValidateOptions) []vobject.Finding {
	var findings []vobject.Finding

	props := make(ical.Props, len(comp.Props))
	for _, p := range cal.Properties(comp) {
		findings = append(findings, p.Validate(opts)...)
		if p.Name == ical.PropRecurrenceRule {
			if _, err := (vobject.Recur{}).ROption(p); err != nil {
				findings = append(findings, vobject.Finding{
					Severity: vobject.SeveritySevere,
					Message:  fmt.Sprintf("Invalid recurrence rule in %v: %v", comp.Name, err),
					Node:     p,
				})
			}
		}
		props[p.Name] = append(props[p.Name], *PropFromProperty(p))
	}
	if opts&vobject.Repair != 0 {
		comp.Props = props
	}

	for _, child := range comp.Children {
		findings = append(findings, cal.validateComponent(child, opts)...)
	}
	return findings
}
