package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
	"github.com/ieglobal/go-docgen/pkg/letterhead"
	"github.com/ieglobal/go-docgen/pkg/render"
	"github.com/ieglobal/go-docgen/pkg/renderers/pdf"
	"github.com/ieglobal/go-docgen/pkg/renderers/text"
	"github.com/ieglobal/go-docgen/pkg/substitute"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

const defaultRendererName = pdf.Name

// Issuer is the first signatory and the document author.
const Issuer = "IE-Global B.V."

// Theme token keys applied to the default letterhead.
const (
	TokenBrandName = "brand-name"
	TokenTagline   = "tagline"
)

// documentNamespace seeds the name-based document ids.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://ie-global.nl/docgen/documents"))

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects the template registry. Defaults to templates.Default().
func WithRegistry(registry *templates.Registry) Option {
	return func(g *Generator) {
		g.templates = registry
	}
}

// WithRendererRegistry injects a renderer registry. When omitted the
// generator registers the pdf and text renderers.
func WithRendererRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.renderers = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		g.defaultRenderer = name
	}
}

// WithLetterhead replaces the per-page branding of the default PDF renderer.
func WithLetterhead(head layout.Letterhead) Option {
	return func(g *Generator) {
		g.letterhead = head
	}
}

// WithLogoSource supplies the logo used by the default letterhead. Without a
// source the letterhead falls back to the brand name in text.
func WithLogoSource(source *letterhead.Source) Option {
	return func(g *Generator) {
		g.logo = source
	}
}

// WithTheme applies go-theme tokens to the default letterhead and PDF
// renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(g *Generator) {
		g.theme = cfg
	}
}

// WithThemeSelector resolves the theme through a go-theme selector when the
// generator is constructed.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(g *Generator) {
		g.selector = selector
		g.themeName = name
		g.themeVariant = variant
	}
}

// WithLayoutConfig overrides page geometry of the default PDF renderer.
func WithLayoutConfig(cfg layout.Config) Option {
	return func(g *Generator) {
		g.layout = &cfg
	}
}

// WithTimestamp pins the creation date written into generated documents.
func WithTimestamp(ts time.Time) Option {
	return func(g *Generator) {
		g.timestamp = ts
	}
}

// Generator runs the definition, substitution, layout and serialisation
// pipeline. It is safe for concurrent use; every call owns its own canvas and
// rendered document.
type Generator struct {
	templates       *templates.Registry
	renderers       *render.Registry
	defaultRenderer string
	letterhead      layout.Letterhead
	logo            *letterhead.Source
	theme           *theme.RendererConfig
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	layout          *layout.Config
	timestamp       time.Time
	initialiseErr   error
}

// New constructs a Generator applying any provided options. Missing
// dependencies are initialised with the built-in implementations; construction
// problems surface from Generate.
func New(options ...Option) *Generator {
	g := &Generator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request selects the document type, the agreement data and the output
// format.
type Request struct {
	Type   document.Type
	Record agreement.Record
	// Renderer names the renderer to use. If empty, the generator falls back
	// to the configured default renderer.
	Renderer string
	// Timestamp overrides the generator timestamp for this request.
	Timestamp time.Time
}

// Result is a finished document. There is no partial result: Generate either
// returns a complete Result or an error.
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
	DocumentID  string
	Pages       int
}

// Reference is the short form of the document id printed in footers.
func (r Result) Reference() string {
	return ReferenceFor(r.DocumentID)
}

// Generate produces the document described by req.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := g.initialiseErr; err != nil {
		return Result{}, err
	}

	def, err := g.templates.Lookup(req.Type)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}

	doc, err := substitute.Render(def, req.Record)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: substitute %s: %w", req.Type, err)
	}

	renderer, err := g.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	id := DocumentID(doc)
	timestamp := req.Timestamp
	if timestamp.IsZero() {
		timestamp = g.timestamp
	}
	output, err := renderer.Render(ctx, doc, render.RenderOptions{
		Signatures: Signatures(def, req.Record),
		Reference:  ReferenceFor(id),
		Author:     Issuer,
		Subject:    doc.Type.Label(),
		Keywords:   []string{doc.Type.Label(), string(def.Signatures.Party)},
		Timestamp:  timestamp,
	})
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
	}

	return Result{
		Data:        output.Data,
		Filename:    Filename(req.Type, displayName(req.Record), renderer.Extension()),
		ContentType: renderer.ContentType(),
		DocumentID:  id,
		Pages:       output.Pages,
	}, nil
}

// Renderers exposes the renderer registry.
func (g *Generator) Renderers() *render.Registry {
	return g.renderers
}

// Templates exposes the template registry.
func (g *Generator) Templates() *templates.Registry {
	return g.templates
}

// Signatures builds the two-party block for def, or nil when the document type
// is signature exempt. The issuer signs first; the counterparty or partner
// column is pre-filled with the record's display name.
func Signatures(def templates.Definition, record agreement.Record) *layout.Signatures {
	if !def.Signatures.Required {
		return nil
	}
	return &layout.Signatures{Parties: [2]layout.Signatory{
		{Name: Issuer},
		{Name: substitute.Sanitize(displayName(record))},
	}}
}

// DocumentID derives a stable name-based UUID from the rendered content, so
// regenerating the same agreement yields the same id.
func DocumentID(doc document.Rendered) string {
	var b strings.Builder
	b.WriteString(string(doc.Type))
	b.WriteByte(0)
	b.WriteString(doc.Title)
	b.WriteByte(0)
	b.WriteString(doc.Preamble)
	for _, section := range doc.Sections {
		b.WriteByte(0)
		b.WriteString(section.Title)
		b.WriteByte(0)
		b.WriteString(section.Body)
	}
	return uuid.NewSHA1(documentNamespace, []byte(b.String())).String()
}

// ReferenceFor shortens a document id to the footer reference "IEG-XXXXXXXX".
func ReferenceFor(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	if compact == "" {
		return ""
	}
	return "IEG-" + strings.ToUpper(compact)
}

func displayName(record agreement.Record) string {
	if record == nil {
		return ""
	}
	return record.DisplayName()
}

func (g *Generator) rendererFor(name string) (render.Renderer, error) {
	if g.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = g.defaultRenderer
	}
	renderer, err := g.renderers.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (g *Generator) applyDefaults() {
	if g.templates == nil {
		g.templates = templates.Default()
	}
	if g.defaultRenderer == "" {
		g.defaultRenderer = defaultRendererName
	}
	if g.selector != nil && g.theme == nil {
		cfg, err := selectTheme(g.selector, g.themeName, g.themeVariant)
		if err != nil {
			g.initialiseErr = err
			return
		}
		g.theme = cfg
	}
	if g.renderers != nil {
		return
	}

	head := g.letterhead
	if head == nil {
		head = letterhead.New(g.logo, g.letterheadOptions()...)
	}
	pdfOptions := []pdf.Option{pdf.WithLetterhead(head), pdf.WithTheme(g.theme)}
	if g.layout != nil {
		pdfOptions = append(pdfOptions, pdf.WithLayoutConfig(*g.layout))
	}

	registry, err := render.NewRegistry(pdf.New(pdfOptions...), text.New())
	if err != nil {
		g.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		return
	}
	g.renderers = registry
}

func (g *Generator) letterheadOptions() []letterhead.Option {
	if g.theme == nil {
		return nil
	}
	var options []letterhead.Option
	if brand := strings.TrimSpace(g.theme.Tokens[TokenBrandName]); brand != "" {
		options = append(options, letterhead.WithBrand(brand))
	}
	if tagline, ok := g.theme.Tokens[TokenTagline]; ok {
		options = append(options, letterhead.WithTagline(strings.TrimSpace(tagline)))
	}
	if family, ok := pdf.CoreFont(g.theme.Tokens[pdf.TokenFontFamily]); ok {
		options = append(options, letterhead.WithFontFamily(family))
	}
	return options
}

func selectTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil {
		cfg.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			cfg.Tokens[key] = value
		}
	}
	return cfg, nil
}
