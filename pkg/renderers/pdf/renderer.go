package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
	"github.com/ieglobal/go-docgen/pkg/render"
)

// Name is the registry key of the PDF renderer.
const Name = "pdf"

// Theme token keys understood by the renderer.
const (
	TokenFontFamily  = "font-family"
	TokenAccentColor = "accent-color"
	TokenFooterText  = "footer-text"
)

// DefaultProducer is written into the document information dictionary.
const DefaultProducer = "go-docgen"

var coreFonts = map[string]string{
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// Option customises the renderer.
type Option func(*Renderer)

// WithLayoutConfig overrides page geometry and fonts.
func WithLayoutConfig(cfg layout.Config) Option {
	return func(r *Renderer) {
		r.layout = cfg
	}
}

// WithLetterhead sets the branding drawn at the top of every page.
func WithLetterhead(head layout.Letterhead) Option {
	return func(r *Renderer) {
		r.letterhead = head
	}
}

// WithTheme applies go-theme tokens: font-family selects one of the core
// fonts, accent-color (#rrggbb) colours rules and the footer, footer-text
// prefixes the footer reference.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithFooter toggles the page footer.
func WithFooter(enabled bool) Option {
	return func(r *Renderer) {
		r.footer = enabled
	}
}

// WithProducer overrides the producer metadata entry.
func WithProducer(producer string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(producer) != "" {
			r.producer = producer
		}
	}
}

// Renderer lays out documents on an fpdf canvas.
type Renderer struct {
	layout     layout.Config
	letterhead layout.Letterhead
	theme      *theme.RendererConfig
	footer     bool
	producer   string
}

// New constructs the PDF renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		layout:   layout.DefaultConfig(),
		footer:   true,
		producer: DefaultProducer,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	r.layout = r.applyTheme(r.layout.Normalize())
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/pdf" }

func (r *Renderer) Extension() string { return "pdf" }

// Render serialises doc. Generation either produces a complete document or an
// error; partial output is never returned.
func (r *Renderer) Render(ctx context.Context, doc document.Rendered, options render.RenderOptions) (render.Output, error) {
	if err := ctx.Err(); err != nil {
		return render.Output{}, err
	}

	cfg := r.layout
	c := newCanvas(cfg)
	r.describe(c, doc, options)
	if r.footer {
		r.installFooter(c, cfg, options.Reference)
	}

	stats, err := layout.Render(c, cfg, r.letterhead, doc, options.Signatures)
	if err != nil {
		return render.Output{}, fmt.Errorf("pdf: layout: %w", err)
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return render.Output{}, fmt.Errorf("pdf: serialise: %w", err)
	}
	return render.Output{Data: buf.Bytes(), Pages: stats.Pages}, nil
}

func (r *Renderer) describe(c *canvas, doc document.Rendered, options render.RenderOptions) {
	stamp := options.CreatedAt()
	c.pdf.SetCreationDate(stamp)
	c.pdf.SetModificationDate(stamp)
	c.pdf.SetCatalogSort(true)

	c.pdf.SetTitle(doc.Title, true)
	c.pdf.SetProducer(r.producer, true)
	c.pdf.SetCreator(r.producer, true)
	if options.Author != "" {
		c.pdf.SetAuthor(options.Author, true)
	}
	subject := options.Subject
	if subject == "" {
		subject = doc.Type.Label()
	}
	c.pdf.SetSubject(subject, true)
	if len(options.Keywords) > 0 {
		c.pdf.SetKeywords(strings.Join(options.Keywords, " "), true)
	}

	if red, green, blue, ok := r.accent(); ok {
		c.pdf.SetDrawColor(red, green, blue)
	}
}

func (r *Renderer) installFooter(c *canvas, cfg layout.Config, reference string) {
	c.pdf.AliasNbPages("")
	label := reference
	if prefix := r.token(TokenFooterText); prefix != "" {
		label = strings.TrimSpace(prefix + " " + reference)
	}

	c.pdf.SetFooterFunc(func() {
		y := cfg.PageHeight - cfg.MarginBottom/2
		c.pdf.SetFont(cfg.BodyFont.Family, "I", 8)
		if red, green, blue, ok := r.accent(); ok {
			c.pdf.SetTextColor(red, green, blue)
		} else {
			c.pdf.SetTextColor(96, 96, 96)
		}
		if label != "" {
			c.Text(cfg.MarginLeft, y, label)
		}
		page := fmt.Sprintf("Page %d of {nb}", c.pdf.PageNo())
		c.Text(cfg.PageWidth-cfg.MarginRight-c.StringWidth(page), y, page)
		c.pdf.SetTextColor(0, 0, 0)
	})
}

// CoreFont maps a font family name to one of the standard PDF fonts.
func CoreFont(name string) (string, bool) {
	family, ok := coreFonts[strings.ToLower(strings.TrimSpace(name))]
	return family, ok
}

func (r *Renderer) applyTheme(cfg layout.Config) layout.Config {
	family, ok := CoreFont(r.token(TokenFontFamily))
	if !ok {
		return cfg
	}
	cfg.TitleFont.Family = family
	cfg.PreambleFont.Family = family
	cfg.HeadingFont.Family = family
	cfg.BodyFont.Family = family
	return cfg
}

func (r *Renderer) token(key string) string {
	if r.theme == nil {
		return ""
	}
	return strings.TrimSpace(r.theme.Tokens[key])
}

func (r *Renderer) accent() (int, int, int, bool) {
	return parseHexColor(r.token(TokenAccentColor))
}

func parseHexColor(value string) (int, int, int, bool) {
	value = strings.TrimPrefix(value, "#")
	if len(value) != 6 {
		return 0, 0, 0, false
	}
	rgb, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(rgb >> 16 & 0xff), int(rgb >> 8 & 0xff), int(rgb & 0xff), true
}
