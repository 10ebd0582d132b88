package substitute

import (
	"strings"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
)

// Derived value keys. They are computed from the record rather than read from
// it, and are available to every definition of the matching family.
const (
	KeyWorkTypes         = "work_types"
	KeyCounterpartyName  = "counterparty_name"
	KeyCounterpartyBlock = "counterparty_block"
	KeyFeeDescription    = "fee_description"
)

// DefaultWorkTypes is used when no service category was selected.
const DefaultWorkTypes = "software development and related digital services"

// Fee sentences. The unspecified sentence defers every amount to the SOW.
const (
	feeRetainerSentence   = "The Partner is compensated by a fixed monthly retainer of EUR %s."
	feeHourlySentence     = "The Partner invoices the hours delivered under this Agreement at an hourly rate of EUR %s."
	feeCommissionSentence = "The Partner receives a referral commission of %s%% of the first-year contract value of every client it introduces to IE-Global."
	feeRevenueSentence    = "The Parties share revenue such that the Partner receives %s%% of the net revenue of every joint project."

	// FeeUnspecifiedSentence is the generic fallback for an unspecified or
	// incomplete fee model.
	FeeUnspecifiedSentence = "All fees are as specified in the SOW agreed between the Parties for each engagement."
)

// Values maps placeholder names to resolved, sanitised text.
type Values map[string]string

// DerivedKeys lists the computed keys available to a family.
func DerivedKeys(family document.Family) []string {
	keys := []string{KeyWorkTypes, KeyCounterpartyName, KeyCounterpartyBlock}
	if family == document.FamilyPartnership {
		keys = append(keys, KeyFeeDescription)
	}
	return keys
}

// resolveFields fills every catalog field of family from raw, applying the
// documented defaults to blank values and to numeric fields that do not parse
// as numbers.
func resolveFields(family document.Family, raw map[string]string) Values {
	out := make(Values)
	for _, field := range agreement.Fields(family) {
		value := Sanitize(raw[field.Key])
		if field.Kind == agreement.FieldKindNumber && value != "" && !agreement.IsNumeric(value) {
			value = ""
		}
		if value == "" {
			value = field.Default
		}
		out[field.Key] = value
	}
	return out
}

func workTypes(services []string) string {
	seen := make(map[string]struct{}, len(services))
	parts := make([]string, 0, len(services))
	for _, service := range services {
		cleaned := Sanitize(service)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		parts = append(parts, cleaned)
	}
	if len(parts) == 0 {
		return DefaultWorkTypes
	}
	return strings.Join(parts, ", ")
}

func addressBlock(name, address, postal, city, country string) string {
	locality := strings.TrimSpace(postal + " " + city)
	return strings.Join([]string{name, address, locality, country}, ", ")
}
