package validation

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
)

const (
	maxValueLength = 500
	maxServices    = 32
)

// Fee model wire keys of the partnership shape.
const (
	KeyFeeModel        = "fee_model"
	KeyMonthlyRetainer = "monthly_retainer"
	KeyHourlyRate      = "hourly_rate"
	KeyCommissionPct   = "commission_pct"
	KeyRevenueSharePct = "revenue_share_pct"
)

// feeAmountKeys maps each fee model selector to the field it requires.
var feeAmountKeys = map[agreement.FeeModelKind]string{
	agreement.FeeKindFixedRetainer:      KeyMonthlyRetainer,
	agreement.FeeKindHourlyRate:         KeyHourlyRate,
	agreement.FeeKindReferralCommission: KeyCommissionPct,
	agreement.FeeKindRevenueShare:       KeyRevenueSharePct,
}

// emailPattern is intentionally loose: the value is printed, never mailed.
const emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

// Schema builds the OpenAPI 3 schema of the input record consumed by t. The
// schema is derived from the agreement field catalog, so defaults and labels
// match what substitution uses.
func Schema(t document.Type) (*openapi3.Schema, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("validation: %w %q", document.ErrUnsupportedType, t)
	}

	schema := openapi3.NewObjectSchema()
	schema.Title = t.Label() + " input"
	schema.Description = fmt.Sprintf("Agreement record for the %s document type. Blank fields fall back to their defaults.", t.Label())
	closed := false
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}

	for _, field := range agreement.Fields(t.Family()) {
		schema.WithProperty(field.Key, fieldSchema(field))
	}

	services := openapi3.NewArraySchema().
		WithItems(openapi3.NewStringSchema().WithMaxLength(maxValueLength)).
		WithMaxItems(maxServices)
	services.Title = "Service categories"
	services.Description = "Selected service categories; known values are offered by the dashboard, any other value is accepted."
	schema.WithProperty(agreement.ServicesKey, services)

	if t.Family() == document.FamilyPartnership {
		selector := openapi3.NewStringSchema().WithEnum("", "A", "B", "C", "D", "a", "b", "c", "d")
		selector.Title = "Fee model"
		selector.Description = "A fixed retainer, B hourly rate, C referral commission, D revenue share."
		schema.WithProperty(KeyFeeModel, selector)
		for _, key := range []string{KeyMonthlyRetainer, KeyHourlyRate, KeyCommissionPct, KeyRevenueSharePct} {
			schema.WithProperty(key, numericSchema(key, ""))
		}
	}
	return schema, nil
}

// SchemaJSON renders the schema of t as indented JSON.
func SchemaJSON(t document.Type) ([]byte, error) {
	schema, err := Schema(t)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("validation: marshal schema: %w", err)
	}
	return out, nil
}

func fieldSchema(field agreement.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Kind {
	case agreement.FieldKindNumber:
		schema = numericSchema(field.Label, field.Default)
	case agreement.FieldKindEmail:
		schema = openapi3.NewStringSchema().WithMaxLength(maxValueLength).WithPattern(`^\s*$|` + emailPattern)
	default:
		schema = openapi3.NewStringSchema().WithMaxLength(maxValueLength)
	}
	schema.Title = field.Label
	if field.Help != "" {
		schema.Description = field.Help
	}
	if field.Default != agreement.Blank && field.Default != "" {
		schema.Default = field.Default
	}
	return schema
}

func numericSchema(title, def string) *openapi3.Schema {
	schema := openapi3.NewStringSchema().WithPattern(`^\s*$|` + agreement.NumericPattern())
	schema.Title = title
	if def != "" {
		schema.Default = def
	}
	return schema
}
