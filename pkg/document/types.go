package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is returned (wrapped) whenever a tag outside the closed
// set of document types reaches the pipeline.
var ErrUnsupportedType = errors.New("unsupported document type")

// Type is the closed enumeration of generated agreement kinds.
type Type string

const (
	TypeNDA         Type = "nda"
	TypeMSA         Type = "msa"
	TypeSOW         Type = "sow"
	TypeSLA         Type = "sla"
	TypeSupport     Type = "osa"
	TypeDPA         Type = "dpa"
	TypePartnership Type = "partnership"
)

// Family groups document types that share one input record shape.
type Family string

const (
	FamilyStandard    Family = "standard"
	FamilyPartnership Family = "partnership"
)

var allTypes = []Type{
	TypeNDA,
	TypeMSA,
	TypeSOW,
	TypeSLA,
	TypeSupport,
	TypeDPA,
	TypePartnership,
}

var labels = map[Type]string{
	TypeNDA:         "NDA",
	TypeMSA:         "MSA",
	TypeSOW:         "SOW",
	TypeSLA:         "SLA",
	TypeSupport:     "Support-Agreement",
	TypeDPA:         "DPA",
	TypePartnership: "Partnership-Agreement",
}

// Types returns every supported document type in declaration order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType normalises a caller supplied tag. Unknown tags never fall back to
// another type; they fail with ErrUnsupportedType.
func ParseType(tag string) (Type, error) {
	candidate := Type(strings.ToLower(strings.TrimSpace(tag)))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", fmt.Errorf("document: %w %q", ErrUnsupportedType, tag)
}

// Valid reports whether t belongs to the closed set.
func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

// Label is the human readable, filename safe name of the type.
func (t Type) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return "Document"
}

// Family reports which input record shape the type consumes.
func (t Type) Family() Family {
	if t == TypePartnership {
		return FamilyPartnership
	}
	return FamilyStandard
}

func (t Type) String() string {
	return string(t)
}
