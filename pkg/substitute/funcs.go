package substitute

import (
	"errors"
	"fmt"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

// ErrRecordMismatch reports a record whose shape does not match the document
// type, for example a standard Input passed for a partnership agreement.
var ErrRecordMismatch = errors.New("substitute: record does not match document type")

// Func resolves every placeholder value for one document type. A nil record is
// treated as an empty record of the expected shape.
type Func func(agreement.Record) (Values, error)

var funcs = map[document.Type]Func{
	document.TypeNDA:         standardValues,
	document.TypeMSA:         standardValues,
	document.TypeSOW:         standardValues,
	document.TypeSLA:         standardValues,
	document.TypeSupport:     standardValues,
	document.TypeDPA:         standardValues,
	document.TypePartnership: partnershipValues,
}

// For returns the substitution function of t.
func For(t document.Type) (Func, error) {
	fn, ok := funcs[t]
	if !ok {
		return nil, fmt.Errorf("substitute: %w %q", document.ErrUnsupportedType, t)
	}
	return fn, nil
}

// Render resolves the values for def.Type from record and applies them.
func Render(def templates.Definition, record agreement.Record) (document.Rendered, error) {
	fn, err := For(def.Type)
	if err != nil {
		return document.Rendered{}, err
	}
	values, err := fn(record)
	if err != nil {
		return document.Rendered{}, fmt.Errorf("substitute: %s: %w", def.Type, err)
	}
	return Apply(def, values), nil
}

func standardValues(record agreement.Record) (Values, error) {
	var in agreement.Input
	switch r := record.(type) {
	case nil:
	case agreement.Input:
		in = r
	case *agreement.Input:
		if r != nil {
			in = *r
		}
	default:
		return nil, fmt.Errorf("%w: got %s record, want %s", ErrRecordMismatch, record.Family(), document.FamilyStandard)
	}

	values := resolveFields(document.FamilyStandard, in.Values())
	name := Sanitize(in.DisplayName())
	if name == "" {
		name = agreement.Blank
	}
	values[KeyCounterpartyName] = name
	values[KeyCounterpartyBlock] = addressBlock(
		values["organization_name"], values["address"], values["postal_code"], values["city"], values["country"],
	)
	values[KeyWorkTypes] = workTypes(in.ServiceList())
	return values, nil
}

func partnershipValues(record agreement.Record) (Values, error) {
	var in agreement.PartnershipInput
	switch r := record.(type) {
	case nil:
	case agreement.PartnershipInput:
		in = r
	case *agreement.PartnershipInput:
		if r != nil {
			in = *r
		}
	default:
		return nil, fmt.Errorf("%w: got %s record, want %s", ErrRecordMismatch, record.Family(), document.FamilyPartnership)
	}

	values := resolveFields(document.FamilyPartnership, in.Values())
	name := Sanitize(in.DisplayName())
	if name == "" {
		name = agreement.Blank
	}
	values[KeyCounterpartyName] = name
	values[KeyCounterpartyBlock] = addressBlock(
		values["partner_name"], values["partner_address"], values["partner_postal_code"], values["partner_city"], values["partner_country"],
	)
	values[KeyWorkTypes] = workTypes(in.ServiceList())
	values[KeyFeeDescription] = FeeDescription(in.FeeModel())
	return values, nil
}
