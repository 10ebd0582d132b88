package layout

// Font selects a typeface on the canvas. Style follows the PDF core font
// convention: "" regular, "B" bold, "I" italic, "BI" bold italic.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Config describes the page geometry in millimetres and the typography used
// for each kind of content.
type Config struct {
	// PageWidth and PageHeight default to A4 (210 x 297).
	PageWidth  float64
	PageHeight float64

	// Margins default to 20.
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	// LetterheadHeight is the band below the top margin reserved for the
	// letterhead on every page.
	// Default: 28
	LetterheadHeight float64

	TitleFont    Font
	PreambleFont Font
	HeadingFont  Font
	BodyFont     Font

	// Line heights per content kind.
	// Defaults: title 8, heading 6.5, body and preamble 5.5
	TitleLineHeight   float64
	HeadingLineHeight float64
	LineHeight        float64

	// SectionGap separates blocks (title, preamble, sections).
	// Default: 4
	SectionGap float64

	// ParagraphGap is the advance used for a blank line inside a body.
	// Default: 2.75
	ParagraphGap float64

	// SignatureThreshold is the minimum remaining height, SignatureGap
	// included, for the signature block to start on the current page.
	// Default: 72
	SignatureThreshold float64

	// SignatureGap separates the last section from the signature block.
	// Default: 10
	SignatureGap float64

	// ColumnGap separates the two signature columns.
	// Default: 10
	ColumnGap float64
}

// DefaultConfig returns the A4 agreement layout.
func DefaultConfig() Config {
	return Config{
		PageWidth:          210,
		PageHeight:         297,
		MarginLeft:         20,
		MarginRight:        20,
		MarginTop:          20,
		MarginBottom:       20,
		LetterheadHeight:   28,
		TitleFont:          Font{Family: "Helvetica", Style: "B", Size: 16},
		PreambleFont:       Font{Family: "Helvetica", Style: "I", Size: 10},
		HeadingFont:        Font{Family: "Helvetica", Style: "B", Size: 11},
		BodyFont:           Font{Family: "Helvetica", Size: 10},
		TitleLineHeight:    8,
		HeadingLineHeight:  6.5,
		LineHeight:         5.5,
		SectionGap:         4,
		ParagraphGap:       2.75,
		SignatureThreshold: 72,
		SignatureGap:       10,
		ColumnGap:          10,
	}
}

// ContentWidth is the writable width between the side margins.
func (c Config) ContentWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

// TopOffset is where body content starts on every page.
func (c Config) TopOffset() float64 {
	return c.MarginTop + c.LetterheadHeight
}

// LowWater is the lowest y at which a line may end.
func (c Config) LowWater() float64 {
	return c.PageHeight - c.MarginBottom
}

// Normalize fills zero or negative values from DefaultConfig and falls back
// to the default geometry when the page cannot hold a heading plus a few body
// lines, so the engine always makes progress on a fresh page.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	positive := func(v *float64, fallback float64) {
		if *v <= 0 {
			*v = fallback
		}
	}

	positive(&c.PageWidth, def.PageWidth)
	positive(&c.PageHeight, def.PageHeight)
	positive(&c.MarginLeft, def.MarginLeft)
	positive(&c.MarginRight, def.MarginRight)
	positive(&c.MarginTop, def.MarginTop)
	positive(&c.MarginBottom, def.MarginBottom)
	positive(&c.LetterheadHeight, def.LetterheadHeight)
	positive(&c.TitleLineHeight, def.TitleLineHeight)
	positive(&c.HeadingLineHeight, def.HeadingLineHeight)
	positive(&c.LineHeight, def.LineHeight)
	positive(&c.SectionGap, def.SectionGap)
	positive(&c.ParagraphGap, def.ParagraphGap)
	positive(&c.SignatureThreshold, def.SignatureThreshold)
	positive(&c.SignatureGap, def.SignatureGap)
	positive(&c.ColumnGap, def.ColumnGap)

	c.TitleFont = c.TitleFont.orDefault(def.TitleFont)
	c.PreambleFont = c.PreambleFont.orDefault(def.PreambleFont)
	c.HeadingFont = c.HeadingFont.orDefault(def.HeadingFont)
	c.BodyFont = c.BodyFont.orDefault(def.BodyFont)

	minimum := c.TitleLineHeight + c.HeadingLineHeight + 3*c.LineHeight
	if c.ContentWidth() <= 2*c.ColumnGap || c.LowWater()-c.TopOffset() < minimum {
		geometry := def
		geometry.TitleFont, geometry.PreambleFont = c.TitleFont, c.PreambleFont
		geometry.HeadingFont, geometry.BodyFont = c.HeadingFont, c.BodyFont
		return geometry
	}
	return c
}

func (f Font) orDefault(fallback Font) Font {
	if f.Family == "" {
		f.Family = fallback.Family
		if f.Style == "" {
			f.Style = fallback.Style
		}
	}
	if f.Size <= 0 {
		f.Size = fallback.Size
	}
	return f
}
