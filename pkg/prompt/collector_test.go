package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/prompt"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

type scriptedDriver struct {
	answers  map[string]string
	selected []int
	fee      int
	asked    []string
	info     []string
	err      error
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.asked = append(d.asked, cfg.Message)
	answer := d.answers[cfg.Message]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return d.fee, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	return d.selected, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func definition(t *testing.T, docType document.Type) templates.Definition {
	t.Helper()
	def, err := templates.Default().Lookup(docType)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return def
}

func TestCollector_StandardRecord(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string]string{
			"Organization name:":                " Acme Corp ",
			"Effective date:":                   "1 March 2025",
			"Other services (comma separated):": "Security audits, ",
		},
		selected: []int{0, 6},
	}
	record, err := prompt.NewCollector(prompt.WithDriver(driver)).Collect(context.Background(), definition(t, document.TypeNDA))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	input, ok := record.(agreement.Input)
	if !ok {
		t.Fatalf("expected agreement.Input, got %T", record)
	}
	if input.OrganizationName != "Acme Corp" || input.EffectiveDate != "1 March 2025" {
		t.Fatalf("unexpected record %+v", input)
	}
	want := []string{"Web development", "Consulting", "Security audits"}
	if diff := cmp.Diff(want, input.Services); diff != "" {
		t.Fatalf("services mismatch (-want +got):\n%s", diff)
	}
	for _, message := range driver.asked {
		if strings.HasPrefix(message, "Uptime") || strings.HasPrefix(message, "Project") {
			t.Fatalf("nda should not ask %q", message)
		}
	}
	if len(driver.info) != 1 {
		t.Fatalf("expected an introduction line, got %v", driver.info)
	}
}

func TestCollector_PartnershipFeeModel(t *testing.T) {
	driver := &scriptedDriver{
		answers: map[string]string{
			"Partner name:":      "Studio North",
			"Revenue share (%):": "12.5",
		},
		fee: 4,
	}
	record, err := prompt.NewCollector(prompt.WithDriver(driver)).Collect(context.Background(), definition(t, document.TypePartnership))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	partnership, ok := record.(agreement.PartnershipInput)
	if !ok {
		t.Fatalf("expected agreement.PartnershipInput, got %T", record)
	}
	if diff := cmp.Diff(agreement.FeeModel(agreement.RevenueShare{Percent: "12.5"}), partnership.FeeModel()); diff != "" {
		t.Fatalf("fee model mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_AllFieldsAndValidation(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"Term (months):": "twelve"}}
	_, err := prompt.NewCollector(prompt.WithDriver(driver), prompt.WithAllFields(true)).Collect(context.Background(), definition(t, document.TypeNDA))
	if err == nil || !strings.Contains(err.Error(), "term_months") {
		t.Fatalf("expected numeric validation error, got %v", err)
	}
}

func TestCollector_Aborted(t *testing.T) {
	driver := &scriptedDriver{err: prompt.ErrAborted}
	_, err := prompt.NewCollector(prompt.WithDriver(driver)).Collect(context.Background(), definition(t, document.TypeSOW))
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}
