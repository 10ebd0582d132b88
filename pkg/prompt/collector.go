package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

// feeChoices pairs the fee model selector labels with their wire values and
// the amount field each variant requires.
var feeChoices = []struct {
	label string
	model agreement.FeeModelKind
	key   string
	ask   string
}{
	{"Defer to the statement of work", agreement.FeeKindUnspecified, "", ""},
	{"A - Fixed monthly retainer", agreement.FeeKindFixedRetainer, "monthly_retainer", "Monthly retainer (EUR)"},
	{"B - Hourly rate", agreement.FeeKindHourlyRate, "hourly_rate", "Hourly rate (EUR)"},
	{"C - Referral commission", agreement.FeeKindReferralCommission, "commission_pct", "Commission (%)"},
	{"D - Revenue share", agreement.FeeKindRevenueShare, "revenue_share_pct", "Revenue share (%)"},
}

// Option configures the Collector.
type Option func(*Collector)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithAllFields prompts for every catalog field instead of only those the
// selected template references.
func WithAllFields(enabled bool) Option {
	return func(c *Collector) {
		c.allFields = enabled
	}
}

// Collector asks for the values of one agreement record.
type Collector struct {
	driver    Driver
	allFields bool
}

// NewCollector builds a Collector using the survey driver by default.
func NewCollector(options ...Option) *Collector {
	c := &Collector{driver: NewSurveyDriver()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Collect prompts for the fields def references, the service categories and,
// for partnership agreements, the fee model. Blank answers keep the documented
// defaults.
func (c *Collector) Collect(ctx context.Context, def templates.Definition) (agreement.Record, error) {
	family := def.Type.Family()
	if err := c.driver.Info(ctx, fmt.Sprintf("%s: leave a field blank to use its default.", def.Title)); err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, field := range c.fields(def) {
		answer, err := c.driver.Input(ctx, InputConfig{
			Message:   field.Label + ":",
			Help:      helpFor(field),
			Validator: validatorFor(field),
		})
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", field.Key, err)
		}
		values[field.Key] = strings.TrimSpace(answer)
	}

	services, err := c.services(ctx)
	if err != nil {
		return nil, err
	}

	if family == document.FamilyPartnership {
		if err := c.feeModel(ctx, values); err != nil {
			return nil, err
		}
	}
	return agreement.FromValues(family, values, services), nil
}

func (c *Collector) fields(def templates.Definition) []agreement.Field {
	catalog := agreement.Fields(def.Type.Family())
	if c.allFields {
		return catalog
	}
	referenced := make(map[string]bool)
	for _, token := range def.Tokens() {
		referenced[token] = true
	}
	out := catalog[:0]
	for _, field := range catalog {
		if referenced[field.Key] {
			out = append(out, field)
		}
	}
	return out
}

func (c *Collector) services(ctx context.Context) ([]string, error) {
	picked, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Service categories:",
		Options:  agreement.ServiceCategories,
		PageSize: len(agreement.ServiceCategories),
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: services: %w", err)
	}
	var services []string
	for _, idx := range picked {
		if idx >= 0 && idx < len(agreement.ServiceCategories) {
			services = append(services, agreement.ServiceCategories[idx])
		}
	}

	other, err := c.driver.Input(ctx, InputConfig{
		Message: "Other services (comma separated):",
	})
	if err != nil {
		return nil, fmt.Errorf("prompt: services: %w", err)
	}
	for _, item := range strings.Split(other, ",") {
		if item = strings.TrimSpace(item); item != "" {
			services = append(services, item)
		}
	}
	return services, nil
}

func (c *Collector) feeModel(ctx context.Context, values map[string]string) error {
	labels := make([]string, len(feeChoices))
	for i, choice := range feeChoices {
		labels[i] = choice.label
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: "Fee model:", Options: labels})
	if err != nil {
		return fmt.Errorf("prompt: fee model: %w", err)
	}
	if idx < 0 || idx >= len(feeChoices) {
		return errors.New("prompt: fee model: no option selected")
	}
	choice := feeChoices[idx]
	values["fee_model"] = string(choice.model)
	if choice.key == "" {
		return nil
	}
	amount, err := c.driver.Input(ctx, InputConfig{
		Message:   choice.ask + ":",
		Validator: numericValidator,
	})
	if err != nil {
		return fmt.Errorf("prompt: %s: %w", choice.key, err)
	}
	values[choice.key] = strings.TrimSpace(amount)
	return nil
}

func helpFor(field agreement.Field) string {
	help := field.Help
	if field.Default != agreement.Blank && field.Default != "" {
		if help != "" {
			help += ". "
		}
		help += "Default: " + field.Default
	}
	return help
}

func validatorFor(field agreement.Field) func(string) error {
	if field.Kind == agreement.FieldKindNumber {
		return numericValidator
	}
	return nil
}

func numericValidator(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" || agreement.IsNumeric(answer) {
		return nil
	}
	return fmt.Errorf("%q is not a number", answer)
}
