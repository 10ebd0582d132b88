package substitute_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/substitute"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

func recordWith(family document.Family, value func(agreement.Field) string, services []string) agreement.Record {
	values := make(map[string]string)
	for _, field := range agreement.Fields(family) {
		values[field.Key] = value(field)
	}
	return agreement.FromValues(family, values, services)
}

func fixtureRecords(family document.Family) map[string]agreement.Record {
	return map[string]agreement.Record{
		"nil":   nil,
		"empty": agreement.FromValues(family, nil, nil),
		"blank": recordWith(family, func(agreement.Field) string { return "   \t" }, []string{" "}),
		"full": recordWith(family, func(field agreement.Field) string {
			if field.Kind == agreement.FieldKindNumber {
				return "7"
			}
			return "Value for " + field.Label
		}, []string{"Web development", "Consulting"}),
		"malicious": recordWith(family, func(field agreement.Field) string {
			return "{{" + field.Key + "}}\n<script>alert(1)</script>{{ organization_name }} }}{{"
		}, []string{"{{work_types}}", "<b>Design</b>"}),
	}
}

func render(t *testing.T, docType document.Type, record agreement.Record) document.Rendered {
	t.Helper()
	def, err := templates.Default().Lookup(docType)
	if err != nil {
		t.Fatalf("lookup %s: %v", docType, err)
	}
	doc, err := substitute.Render(def, record)
	if err != nil {
		t.Fatalf("render %s: %v", docType, err)
	}
	return doc
}

func TestRender_NoResidualTokens(t *testing.T) {
	for _, docType := range document.Types() {
		for name, record := range fixtureRecords(docType.Family()) {
			doc := render(t, docType, record)
			if residual := doc.Unresolved(); len(residual) > 0 {
				t.Fatalf("%s/%s: unresolved tokens %v", docType, name, residual)
			}
			if strings.ContainsAny(doc.Title+doc.Preamble, "<>") {
				t.Fatalf("%s/%s: markup leaked into title or preamble", docType, name)
			}
			for _, section := range doc.Sections {
				if strings.Contains(section.Body, "<script>") {
					t.Fatalf("%s/%s: markup leaked into section %q", docType, name, section.Title)
				}
			}
		}
	}
}

func TestDefinitions_TokensHaveValues(t *testing.T) {
	for _, docType := range document.Types() {
		def, err := templates.Default().Lookup(docType)
		if err != nil {
			t.Fatalf("lookup %s: %v", docType, err)
		}
		known := make(map[string]bool)
		for _, field := range agreement.Fields(docType.Family()) {
			known[field.Key] = true
		}
		for _, key := range substitute.DerivedKeys(docType.Family()) {
			known[key] = true
		}
		for _, token := range def.Tokens() {
			if !known[token] {
				t.Fatalf("%s references {{%s}} which has no field or derived value", docType, token)
			}
		}
	}
}

func TestValues_DefaultCompleteness(t *testing.T) {
	for _, docType := range document.Types() {
		def, err := templates.Default().Lookup(docType)
		if err != nil {
			t.Fatalf("lookup %s: %v", docType, err)
		}
		fn, err := substitute.For(docType)
		if err != nil {
			t.Fatalf("for %s: %v", docType, err)
		}
		for name, record := range map[string]agreement.Record{
			"empty": agreement.FromValues(docType.Family(), nil, nil),
			"blank": fixtureRecords(docType.Family())["blank"],
		} {
			values, err := fn(record)
			if err != nil {
				t.Fatalf("%s/%s: %v", docType, name, err)
			}
			for _, token := range def.Tokens() {
				got := values[token]
				if strings.TrimSpace(got) == "" || got == "undefined" {
					t.Fatalf("%s/%s: token %q resolved to %q", docType, name, token, got)
				}
			}
		}
	}
}

func TestRender_MinimalNDA(t *testing.T) {
	doc := render(t, document.TypeNDA, agreement.Input{
		OrganizationName: "Acme Corp",
		EffectiveDate:    "1 March 2025",
	})

	if doc.Title != "Mutual Non-Disclosure Agreement" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if !strings.Contains(doc.Preamble, "1 March 2025") || !strings.Contains(doc.Preamble, "Acme Corp") {
		t.Fatalf("preamble not substituted: %q", doc.Preamble)
	}

	parties := doc.Sections[0]
	if !strings.Contains(parties.Body, "Acme Corp") {
		t.Fatalf("organization name missing from parties section: %q", parties.Body)
	}
	for _, fragment := range []string{
		"having its address at " + agreement.Blank,
		"e-mail: " + agreement.Blank,
		"represented by " + agreement.Blank,
	} {
		if !strings.Contains(parties.Body, fragment) {
			t.Fatalf("expected %q in parties section: %q", fragment, parties.Body)
		}
	}

	var term string
	for _, section := range doc.Sections {
		if strings.Contains(section.Title, "Term") {
			term = section.Body
		}
	}
	if !strings.Contains(term, "a period of 3 years") {
		t.Fatalf("expected three-year confidentiality default, got %q", term)
	}
}

func TestRender_PartnershipIncompleteFeeModel(t *testing.T) {
	record, err := agreement.DecodeJSON(document.TypePartnership, []byte(`{"partner_name":"Studio North","fee_model":"D"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	doc := render(t, document.TypePartnership, record)

	var fees string
	for _, section := range doc.Sections {
		if strings.Contains(section.Title, "Fees") {
			fees = section.Body
		}
	}
	if !strings.HasPrefix(fees, substitute.FeeUnspecifiedSentence) {
		t.Fatalf("expected generic SOW sentence, got %q", fees)
	}
	if strings.Contains(fees, "%") {
		t.Fatalf("fee section must not mention a percentage: %q", fees)
	}
}

func TestFeeDescription(t *testing.T) {
	cases := []struct {
		name  string
		model agreement.FeeModel
		want  string
	}{
		{"retainer", agreement.FixedRetainer{MonthlyFee: "2,500"}, "fixed monthly retainer of EUR 2,500."},
		{"hourly", agreement.HourlyRate{Rate: "95"}, "hourly rate of EUR 95."},
		{"commission", agreement.ReferralCommission{Percent: "10"}, "referral commission of 10% of"},
		{"revenue share", agreement.RevenueShare{Percent: "12.5"}, "receives 12.5% of the net revenue"},
		{"revenue share garbage", agreement.RevenueShare{Percent: "lots"}, substitute.FeeUnspecifiedSentence},
		{"unspecified", agreement.UnspecifiedFee{}, substitute.FeeUnspecifiedSentence},
		{"nil", nil, substitute.FeeUnspecifiedSentence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := substitute.FeeDescription(tc.model)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, got)
			}
			if !strings.Contains(substitute.FeeUnspecifiedSentence, "as specified in the SOW") {
				t.Fatalf("fallback sentence must defer to the SOW")
			}
		})
	}
}

func TestStandardValues_NumericFallback(t *testing.T) {
	fn, err := substitute.For(document.TypeMSA)
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	values, err := fn(agreement.Input{TermMonths: "abc", NoticeDays: "45", PaymentDays: "1,000", UptimePercentage: "99.9%"})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	want := map[string]string{
		"term_months":       "12",
		"notice_days":       "45",
		"payment_days":      "1,000",
		"uptime_percentage": "99.5",
	}
	for key, expected := range want {
		if values[key] != expected {
			t.Fatalf("%s: expected %q, got %q", key, expected, values[key])
		}
	}
}

func TestStandardValues_DerivedValues(t *testing.T) {
	fn, err := substitute.For(document.TypeNDA)
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	values, err := fn(agreement.Input{
		OrganizationName: "Acme",
		City:             "Utrecht",
		PostalCode:       "3511 AB",
		Services:         []string{"Web development", " ", "web development", "Consulting"},
	})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if got := values[substitute.KeyWorkTypes]; got != "Web development, Consulting" {
		t.Fatalf("work types: %q", got)
	}
	if got := values[substitute.KeyCounterpartyName]; got != "Acme" {
		t.Fatalf("counterparty name: %q", got)
	}
	wantBlock := "Acme, " + agreement.Blank + ", 3511 AB Utrecht, Netherlands"
	if got := values[substitute.KeyCounterpartyBlock]; got != wantBlock {
		t.Fatalf("counterparty block: %q", got)
	}

	empty, err := fn(nil)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if empty[substitute.KeyWorkTypes] != substitute.DefaultWorkTypes {
		t.Fatalf("expected default work types, got %q", empty[substitute.KeyWorkTypes])
	}
}

func TestFor_RecordMismatch(t *testing.T) {
	fn, err := substitute.For(document.TypePartnership)
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	if _, err := fn(agreement.Input{OrganizationName: "Acme"}); !errors.Is(err, substitute.ErrRecordMismatch) {
		t.Fatalf("expected ErrRecordMismatch, got %v", err)
	}

	fn, err = substitute.For(document.TypeDPA)
	if err != nil {
		t.Fatalf("for: %v", err)
	}
	if _, err := fn(agreement.PartnershipInput{}); !errors.Is(err, substitute.ErrRecordMismatch) {
		t.Fatalf("expected ErrRecordMismatch, got %v", err)
	}
}

func TestFor_UnsupportedType(t *testing.T) {
	if _, err := substitute.For(document.Type("lease")); !errors.Is(err, document.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestApply_SinglePass(t *testing.T) {
	def := templates.Definition{
		Type:     document.TypeNDA,
		Title:    "{{ a }} and {{b}}",
		Preamble: "{{a}}{{a}}",
		Sections: []templates.Section{{Title: "S", Content: "{{b}} {{missing}}"}},
	}
	doc := substitute.Apply(def, substitute.Values{"a": "{{b}}", "b": "x"})

	want := document.Rendered{
		Type:     document.TypeNDA,
		Title:    "{{b}} and x",
		Preamble: "{{b}}{{b}}",
		Sections: []document.Section{{Title: "S", Body: "x {{missing}}"}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("apply mismatch (-want +got):\n%s", diff)
	}
	if got := substitute.Residual(doc.Sections[0].Body); len(got) != 1 || got[0] != "{{missing}}" {
		t.Fatalf("residual: %v", got)
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  Acme Corp ":                 "Acme Corp",
		"<b>Acme</b> & Co":             "Acme & Co",
		"{{organization_name}}":        "organization_name",
		"line\nbreak\r\n\ttab":         "line break tab",
		"   ":                          "",
		"Müller &amp; Söhne GmbH":      "Müller & Söhne GmbH",
		"&#123;&#123;city&#125;&#125;": "city",
	}
	for input, want := range cases {
		if got := substitute.Sanitize(input); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", input, got, want)
		}
	}
}
