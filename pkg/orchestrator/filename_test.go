package orchestrator_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":                       "Acme-Corp",
		"  Müller & Söhne / GmbH.  ":      "Muller-Sohne-GmbH",
		"Acme/Holdings: B.V. (NL)":        "Acme-Holdings-B-V-NL",
		"ﬁne print":                       "fine-print",
		"":                                "",
		"株式会社":                            "",
		"---":                             "",
		strings.Repeat("a", 60):           strings.Repeat("a", orchestrator.MaxSlugLength),
		"Ørsted\tCorporate\nServices A/S": "rsted-Corporate-Services-A-S",
	}
	for input, want := range cases {
		if got := orchestrator.Slug(input); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSlug_TruncatesOnBoundary(t *testing.T) {
	got := orchestrator.Slug(strings.Repeat("ab ", 30))
	if len(got) > orchestrator.MaxSlugLength {
		t.Fatalf("slug exceeds cap: %d", len(got))
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Fatalf("slug must not start or end with a hyphen: %q", got)
	}
}

func TestFilename(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9-]+\.[a-z]+$`)
	cases := []struct {
		docType document.Type
		name    string
		ext     string
		want    string
	}{
		{document.TypeNDA, "Acme Corp", "pdf", "IE-Global-NDA-Acme-Corp.pdf"},
		{document.TypeSupport, "Acme Corp", ".pdf", "IE-Global-Support-Agreement-Acme-Corp.pdf"},
		{document.TypePartnership, "Studio North", "txt", "IE-Global-Partnership-Agreement-Studio-North.txt"},
		{document.TypeMSA, "   ", "pdf", "IE-Global-MSA.pdf"},
		{document.TypeDPA, "a/b\\c:d*e?f\"g<h>i|j", "pdf", "IE-Global-DPA-a-b-c-d-e-f-g-h-i-j.pdf"},
	}
	for _, tc := range cases {
		got := orchestrator.Filename(tc.docType, tc.name, tc.ext)
		if got != tc.want {
			t.Fatalf("Filename(%s, %q) = %q, want %q", tc.docType, tc.name, got, tc.want)
		}
		if !safe.MatchString(got) {
			t.Fatalf("filename %q contains unsafe characters", got)
		}
	}
}
