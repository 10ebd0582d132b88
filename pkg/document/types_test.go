package document_test

import (
	"errors"
	"testing"

	"github.com/ieglobal/go-docgen/pkg/document"
)

func TestParseType(t *testing.T) {
	for _, tag := range []string{"nda", "MSA", " sow ", "sla", "osa", "dpa", "partnership"} {
		if _, err := document.ParseType(tag); err != nil {
			t.Errorf("ParseType(%q): %v", tag, err)
		}
	}
}

func TestParseTypeRejectsUnknownTag(t *testing.T) {
	_, err := document.ParseType("lease")
	if !errors.Is(err, document.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if want := `document: unsupported document type "lease"`; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestTypeFamiliesAndLabels(t *testing.T) {
	for _, typ := range document.Types() {
		if typ.Label() == "Document" {
			t.Errorf("%s has no label", typ)
		}
		want := document.FamilyStandard
		if typ == document.TypePartnership {
			want = document.FamilyPartnership
		}
		if typ.Family() != want {
			t.Errorf("%s family = %s, want %s", typ, typ.Family(), want)
		}
	}
	if len(document.Types()) != 7 {
		t.Fatalf("expected 7 document types, got %d", len(document.Types()))
	}
}

func TestRenderedUnresolved(t *testing.T) {
	doc := document.Rendered{
		Title:    "Agreement",
		Preamble: "Between {{organization_name}} and IE-Global",
		Sections: []document.Section{{Title: "Term", Body: "For {{ term_months }} months {single}"}},
	}
	got := doc.Unresolved()
	if len(got) != 2 || got[0] != "{{organization_name}}" || got[1] != "{{ term_months }}" {
		t.Fatalf("unexpected tokens: %#v", got)
	}
}
