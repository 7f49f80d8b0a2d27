// Package vobject provides the property model shared by iCalendar and vCard
// documents: a value container, an ordered parameter table, the folded
// mimedir text encoding, the jCal/jCard and xCal/xCard projections and a
// validator able to repair common defects in place.
//
// iCalendar is defined in RFC 5545, vCard in RFC 6350 (4.0), RFC 2426 (3.0)
// and the vCard 2.1 specification.
package vobject

import (
	"errors"
	"fmt"
)

// DocumentType identifies the format and version of a document.
type DocumentType int

const (
	DocumentUnknown DocumentType = iota
	ICalendar20
	VCard21
	VCard30
	VCard40
)

// String formats the document type.
func (t DocumentType) String() string {
	switch t {
	case DocumentUnknown:
		return "unknown"
	case ICalendar20:
		return "iCalendar 2.0"
	case VCard21:
		return "vCard 2.1"
	case VCard30:
		return "vCard 3.0"
	case VCard40:
		return "vCard 4.0"
	}
	panic("vobject: invalid DocumentType value")
}

// Document is the root a property belongs to. Properties only read the
// document type from it.
type Document interface {
	DocumentType() DocumentType
}

type documentType DocumentType

func (t documentType) DocumentType() DocumentType {
	return DocumentType(t)
}

// DocumentOf returns a Document with no content other than its type. It's
// useful for properties built outside of a decoded document.
func DocumentOf(t DocumentType) Document {
	return documentType(t)
}

// ValidateOptions is a bitset controlling validation.
type ValidateOptions uint

const (
	// Repair asks the validator to fix the defects it can in place.
	Repair ValidateOptions = 1 << iota
	// ProfileCardDAV and ProfileCalDAV name the document profile. Property
	// and parameter rules don't depend on them; they're passed down unchanged
	// to Parameter.Validate.
	ProfileCardDAV
	ProfileCalDAV
)

// Severity is the level of a validation finding.
type Severity int

const (
	// SeverityRepaired indicates a defect that has been fixed.
	SeverityRepaired Severity = 1
	// SeverityMinor indicates an informational finding.
	SeverityMinor Severity = 2
	// SeveritySevere indicates a defect that has not been fixed.
	SeveritySevere Severity = 3
)

// String formats the severity.
func (s Severity) String() string {
	switch s {
	case SeverityRepaired:
		return "repaired"
	case SeverityMinor:
		return "minor"
	case SeveritySevere:
		return "severe"
	}
	panic("vobject: invalid Severity value")
}

// Node is an element of a document a finding can point to: a *Property or
// a *Parameter.
type Node interface {
	Serialize() string
}

// Finding is a single validation result.
type Finding struct {
	Severity Severity
	Message  string
	Node     Node
}

// Error implements error, so that callers can treat severe findings as
// errors.
func (f *Finding) Error() string {
	return fmt.Sprintf("vobject: %v: %v", f.Severity, f.Message)
}

// Severe returns the findings which have not been repaired.
func Severe(findings []Finding) []Finding {
	var l []Finding
	for _, f := range findings {
		if f.Severity == SeveritySevere {
			l = append(l, f)
		}
	}
	return l
}

// ErrInvalidParameterName is returned when a parameter is addressed with an
// empty name.
var ErrInvalidParameterName = errors.New("vobject: invalid parameter name")
