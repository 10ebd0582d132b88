package orchestrator_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
	"github.com/ieglobal/go-docgen/pkg/pdftext"
	"github.com/ieglobal/go-docgen/pkg/render"
	"github.com/ieglobal/go-docgen/pkg/renderers/text"
	"github.com/ieglobal/go-docgen/pkg/substitute"
)

func minimalNDA() agreement.Input {
	return agreement.Input{OrganizationName: "Acme Corp", EffectiveDate: "1 March 2025"}
}

func TestGenerate_MinimalNDA(t *testing.T) {
	gen := orchestrator.New()
	result, err := gen.Generate(context.Background(), orchestrator.Request{
		Type:   document.TypeNDA,
		Record: minimalNDA(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Filename != "IE-Global-NDA-Acme-Corp.pdf" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
	if result.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if result.Pages < 1 || !bytes.HasPrefix(result.Data, []byte("%PDF-")) {
		t.Fatalf("expected a PDF with pages, got %d pages", result.Pages)
	}

	report, err := pdftext.Verify(result.Data)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !report.OK() {
		t.Fatalf("residual tokens: %v", report.Residual)
	}
	collapsed := strings.Join(strings.Fields(report.Text), "")
	for _, want := range []string{"Acme Corp", layout.SignatureHeading, result.Reference()} {
		if !strings.Contains(collapsed, strings.Join(strings.Fields(want), "")) {
			t.Fatalf("document text missing %q", want)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := orchestrator.New()
	req := orchestrator.Request{Type: document.TypeMSA, Record: minimalNDA()}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := orchestrator.New().Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatalf("identical requests produced different documents")
	}
	if first.DocumentID != second.DocumentID || first.DocumentID == "" {
		t.Fatalf("document ids differ: %q vs %q", first.DocumentID, second.DocumentID)
	}

	req.Record = agreement.Input{OrganizationName: "Other Corp"}
	third, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if third.DocumentID == first.DocumentID {
		t.Fatalf("different content should yield a different id")
	}
}

func TestGenerate_SignatureGating(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithDefaultRenderer(text.Name))

	signed, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeNDA, Record: minimalNDA()})
	if err != nil {
		t.Fatalf("generate nda: %v", err)
	}
	if !strings.Contains(string(signed.Data), layout.SignatureHeading) {
		t.Fatalf("nda should carry a signature block")
	}
	if signed.Filename != "IE-Global-NDA-Acme-Corp.txt" {
		t.Fatalf("unexpected filename %q", signed.Filename)
	}

	exempt, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeSOW, Record: minimalNDA()})
	if err != nil {
		t.Fatalf("generate sow: %v", err)
	}
	for _, label := range append([]string{layout.SignatureHeading}, layout.SignatureLabels...) {
		if strings.Contains(string(exempt.Data), label) {
			t.Fatalf("sow must not contain %q", label)
		}
	}
}

func TestGenerate_PartnershipRequiresPartnerRecord(t *testing.T) {
	gen := orchestrator.New()
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		Type:   document.TypePartnership,
		Record: minimalNDA(),
	})
	if !errors.Is(err, substitute.ErrRecordMismatch) {
		t.Fatalf("expected ErrRecordMismatch, got %v", err)
	}

	result, err := gen.Generate(context.Background(), orchestrator.Request{
		Type:     document.TypePartnership,
		Record:   agreement.PartnershipInput{PartnerName: "Studio North"},
		Renderer: text.Name,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	preview := strings.Join(strings.Fields(string(result.Data)), " ")
	if !strings.Contains(preview, substitute.FeeUnspecifiedSentence) {
		t.Fatalf("expected generic fee sentence in partnership preview")
	}
	if result.Filename != "IE-Global-Partnership-Agreement-Studio-North.txt" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
}

func TestGenerate_Errors(t *testing.T) {
	gen := orchestrator.New()

	if _, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.Type("lease")}); !errors.Is(err, document.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeNDA, Renderer: "docx"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, orchestrator.Request{Type: document.TypeNDA}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_NilRecordUsesDefaults(t *testing.T) {
	for _, docType := range document.Types() {
		result, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{Type: docType, Renderer: text.Name})
		if err != nil {
			t.Fatalf("%s: %v", docType, err)
		}
		if residual := substitute.Residual(string(result.Data)); len(residual) > 0 {
			t.Fatalf("%s: residual tokens %v", docType, residual)
		}
		if result.Filename != orchestrator.FilenamePrefix+"-"+docType.Label()+".txt" {
			t.Fatalf("%s: unexpected filename %q", docType, result.Filename)
		}
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestGenerate_ThemeSelector(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "partner-brand",
		Variant: "print",
		Manifest: &theme.Manifest{
			Name:    "partner-brand",
			Version: "1.0.0",
			Tokens: map[string]string{
				orchestrator.TokenBrandName: "Acme Legal Services",
				orchestrator.TokenTagline:   "",
			},
		},
	}}

	gen := orchestrator.New(orchestrator.WithThemeSelector(selector, "partner-brand", "print"))
	result, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeDPA, Record: minimalNDA()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "partner-brand", variant: "print"}) {
		t.Fatalf("unexpected selector calls %+v", selector.calls)
	}

	report, err := pdftext.Verify(result.Data)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(strings.Join(strings.Fields(report.Text), ""), "AcmeLegalServices") {
		t.Fatalf("expected themed brand in letterhead")
	}
}

func TestGenerate_ThemeSelectorError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("theme missing")}
	gen := orchestrator.New(orchestrator.WithThemeSelector(selector, "missing", ""))
	if _, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeNDA}); err == nil || !strings.Contains(err.Error(), "theme missing") {
		t.Fatalf("expected selector error, got %v", err)
	}
}

type captureRenderer struct {
	options render.RenderOptions
	doc     document.Rendered
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "application/octet-stream" }
func (c *captureRenderer) Extension() string   { return "bin" }

func (c *captureRenderer) Render(_ context.Context, doc document.Rendered, options render.RenderOptions) (render.Output, error) {
	c.doc = doc
	c.options = options
	return render.Output{Data: []byte(doc.Title), Pages: 1}, nil
}

func TestGenerate_PassesRenderOptions(t *testing.T) {
	capture := &captureRenderer{}
	registry, err := render.NewRegistry(capture)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	gen := orchestrator.New(orchestrator.WithRendererRegistry(registry), orchestrator.WithDefaultRenderer("capture"))

	result, err := gen.Generate(context.Background(), orchestrator.Request{Type: document.TypeNDA, Record: minimalNDA()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if capture.options.Signatures == nil {
		t.Fatalf("expected signatures for nda")
	}
	if got := capture.options.Signatures.Parties; got[0].Name != orchestrator.Issuer || got[1].Name != "Acme Corp" {
		t.Fatalf("unexpected signatories %+v", got)
	}
	if capture.options.Reference != result.Reference() || !strings.HasPrefix(result.Reference(), "IEG-") {
		t.Fatalf("unexpected reference %q", capture.options.Reference)
	}
	if capture.options.Author != orchestrator.Issuer {
		t.Fatalf("unexpected author %q", capture.options.Author)
	}
	if result.Filename != "IE-Global-NDA-Acme-Corp.bin" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
}
