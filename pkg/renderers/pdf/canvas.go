package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/ieglobal/go-docgen/pkg/layout"
	"github.com/ieglobal/go-docgen/pkg/render"
)

// canvas adapts an fpdf document to layout.Canvas. Text is translated to the
// cp1252 encoding used by the core fonts; text outside that repertoire fails
// the render with render.ErrUnsupportedText instead of printing placeholders.
type canvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	images    map[string]bool
}

func newCanvas(cfg layout.Config) *canvas {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	doc.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	// The layout engine owns pagination.
	doc.SetAutoPageBreak(false, cfg.MarginBottom)
	return &canvas{
		pdf:       doc,
		translate: doc.UnicodeTranslatorFromDescriptor(""),
		images:    make(map[string]bool),
	}
}

func (c *canvas) AddPage() { c.pdf.AddPage() }

func (c *canvas) SetFont(font layout.Font) {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
}

func (c *canvas) StringWidth(text string) float64 {
	return c.pdf.GetStringWidth(c.translate(text))
}

func (c *canvas) Text(x, y float64, text string) {
	if bad := layout.Unprintable(text); len(bad) > 0 {
		c.pdf.SetError(fmt.Errorf("%w: %q cannot be printed with the core PDF fonts", render.ErrUnsupportedText, string(bad)))
		return
	}
	c.pdf.Text(x, y, c.translate(text))
}

func (c *canvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *canvas) Image(name string, data []byte, x, y, w, h float64) {
	if c.pdf.Err() {
		return
	}
	options := fpdf.ImageOptions{ImageType: "PNG"}
	if !c.images[name] {
		if info := c.pdf.RegisterImageOptionsReader(name, options, bytes.NewReader(data)); info == nil {
			if !c.pdf.Err() {
				c.pdf.SetError(fmt.Errorf("register image %q", name))
			}
			return
		}
		c.images[name] = true
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, options, 0, "")
}

func (c *canvas) Err() error { return c.pdf.Error() }
