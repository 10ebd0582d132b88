package agreement

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ieglobal/go-docgen/pkg/document"
)

type partnershipWire struct {
	PartnershipInput `yaml:",inline"`
	FeeTerms         `yaml:",inline"`
}

// DecodeJSON decodes a JSON record into the shape required by t.
func DecodeJSON(t document.Type, data []byte) (Record, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("agreement: %w %q", document.ErrUnsupportedType, t)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return emptyRecord(t), nil
	}
	if t.Family() == document.FamilyPartnership {
		var wire partnershipWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("agreement: decode %s record: %w", t, err)
		}
		return wire.record(), nil
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("agreement: decode %s record: %w", t, err)
	}
	return in, nil
}

// DecodeYAML decodes a YAML (or JSON, which is valid YAML) record.
func DecodeYAML(t document.Type, data []byte) (Record, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("agreement: %w %q", document.ErrUnsupportedType, t)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return emptyRecord(t), nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("agreement: decode %s record: %w", t, err)
	}
	return DecodeNode(t, &node)
}

// DecodeNode decodes an already parsed YAML node, as found inside batch
// manifests.
func DecodeNode(t document.Type, node *yaml.Node) (Record, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("agreement: %w %q", document.ErrUnsupportedType, t)
	}
	if node == nil || node.Kind == 0 {
		return emptyRecord(t), nil
	}
	if t.Family() == document.FamilyPartnership {
		var wire partnershipWire
		if err := node.Decode(&wire); err != nil {
			return nil, fmt.Errorf("agreement: decode %s record: %w", t, err)
		}
		return wire.record(), nil
	}
	var in Input
	if err := node.Decode(&in); err != nil {
		return nil, fmt.Errorf("agreement: decode %s record: %w", t, err)
	}
	return in, nil
}

// Encode renders a record back into its flat wire map, the inverse of the
// decoders. Used by the interactive CLI to save collected answers.
func Encode(record Record) map[string]any {
	out := make(map[string]any)
	if record == nil {
		return out
	}
	for key, value := range record.Values() {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	if services := record.ServiceList(); len(services) > 0 {
		out[ServicesKey] = services
	}
	if partnership, ok := record.(PartnershipInput); ok {
		terms := TermsOf(partnership.FeeModel())
		for key, value := range map[string]string{
			"fee_model":         terms.Model,
			"monthly_retainer":  terms.MonthlyRetainer,
			"hourly_rate":       terms.HourlyRate,
			"commission_pct":    terms.CommissionPct,
			"revenue_share_pct": terms.RevenueSharePct,
		} {
			if value != "" {
				out[key] = value
			}
		}
	}
	return out
}

func (w partnershipWire) record() PartnershipInput {
	in := w.PartnershipInput
	in.Fee = w.FeeTerms.Resolve()
	return in
}

func emptyRecord(t document.Type) Record {
	if t.Family() == document.FamilyPartnership {
		return PartnershipInput{Fee: UnspecifiedFee{}}
	}
	return Input{}
}
