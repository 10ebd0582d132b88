package letterhead

import "github.com/ieglobal/go-docgen/pkg/layout"

// DefaultBrand is the text fallback when no logo is available.
const DefaultBrand = "IE-Global"

// DefaultTagline is printed on the right-hand side of the letterhead.
const DefaultTagline = "IE-Global B.V. | Amsterdam, the Netherlands"

const imageName = "letterhead-logo"

// Renderer draws the letterhead band. It implements layout.Letterhead.
type Renderer struct {
	source     *Source
	brand      string
	tagline    string
	fontFamily string
	logoHeight float64
	rule       bool
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithBrand sets the text drawn when no logo is available.
func WithBrand(brand string) Option {
	return func(r *Renderer) {
		if brand != "" {
			r.brand = brand
		}
	}
}

// WithTagline sets the right-aligned tagline. An empty tagline is omitted.
func WithTagline(tagline string) Option {
	return func(r *Renderer) {
		r.tagline = tagline
	}
}

// WithFontFamily sets the core font used for the fallback and tagline.
func WithFontFamily(family string) Option {
	return func(r *Renderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}

// WithLogoHeight sets the logo height in millimetres.
func WithLogoHeight(mm float64) Option {
	return func(r *Renderer) {
		if mm > 0 {
			r.logoHeight = mm
		}
	}
}

// WithRule toggles the horizontal rule under the letterhead.
func WithRule(enabled bool) Option {
	return func(r *Renderer) {
		r.rule = enabled
	}
}

// New returns a letterhead renderer backed by source. A nil source always
// uses the text fallback.
func New(source *Source, opts ...Option) *Renderer {
	r := &Renderer{
		source:     source,
		brand:      DefaultBrand,
		tagline:    DefaultTagline,
		fontFamily: "Helvetica",
		logoHeight: 14,
		rule:       true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ layout.Letterhead = (*Renderer)(nil)

// Draw renders the logo (or brand text), the tagline and the rule into area.
func (r *Renderer) Draw(canvas layout.Canvas, area layout.Box) {
	ruleY := area.Y + area.H - 4
	if logo, ok := r.source.Logo(); ok {
		h := min(r.logoHeight, ruleY-area.Y-2)
		w := h * float64(logo.Width) / float64(logo.Height)
		if limit := area.W / 2; w > limit {
			w = limit
			h = w * float64(logo.Height) / float64(logo.Width)
		}
		canvas.Image(imageName, logo.PNG, area.X, area.Y, w, h)
	} else {
		canvas.SetFont(layout.Font{Family: r.fontFamily, Style: "B", Size: 20})
		canvas.Text(area.X, area.Y+9, r.brand)
	}

	if r.tagline != "" {
		canvas.SetFont(layout.Font{Family: r.fontFamily, Size: 8})
		width := canvas.StringWidth(r.tagline)
		canvas.Text(area.X+area.W-width, area.Y+5, r.tagline)
	}
	if r.rule {
		canvas.Line(area.X, ruleY, area.X+area.W, ruleY)
	}
}
