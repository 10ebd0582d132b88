package layout

import (
	"fmt"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// Stats summarises one Render call.
type Stats struct {
	Pages int
	Lines int
}

// cursor is the vertical write position. y is the top of the next line and
// only grows within a page; every page break resets it to the top offset.
type cursor struct {
	page int
	y    float64
}

type pageState int

const (
	freshPage pageState = iota
	writingBody
)

type engine struct {
	canvas Canvas
	cfg    Config
	head   Letterhead
	cur    cursor
	state  pageState
	font   Font
	stats  Stats
}

// Render lays out doc on canvas. sig may be nil for signature-exempt document
// types. Any canvas error aborts the render; the canvas content is then
// undefined and must be discarded.
func Render(canvas Canvas, cfg Config, head Letterhead, doc document.Rendered, sig *Signatures) (Stats, error) {
	if canvas == nil {
		return Stats{}, fmt.Errorf("layout: canvas is required")
	}
	e := &engine{canvas: canvas, cfg: cfg.Normalize(), head: head}

	e.newPage()
	e.title(doc.Title)
	e.preamble(doc.Preamble)
	for _, section := range doc.Sections {
		e.section(section)
		if err := canvas.Err(); err != nil {
			return Stats{}, fmt.Errorf("layout: section %q: %w", section.Title, err)
		}
	}
	if sig != nil {
		e.signatures(*sig)
	}
	if err := canvas.Err(); err != nil {
		return Stats{}, fmt.Errorf("layout: %w", err)
	}
	return e.stats, nil
}

func (e *engine) newPage() {
	e.canvas.AddPage()
	e.cur.page++
	e.stats.Pages++
	if e.head != nil {
		e.head.Draw(e.canvas, Box{
			X: e.cfg.MarginLeft,
			Y: e.cfg.MarginTop,
			W: e.cfg.ContentWidth(),
			H: e.cfg.LetterheadHeight,
		})
		// The letterhead may switch fonts mid-body.
		if e.font.Family != "" {
			e.canvas.SetFont(e.font)
		}
	}
	e.cur.y = e.cfg.TopOffset()
	e.state = freshPage
}

// ensure starts a new page when height does not fit above the low-water mark.
// A fresh page always accepts content so oversized blocks cannot loop.
func (e *engine) ensure(height float64) {
	if e.state == freshPage {
		return
	}
	if e.cur.y+height > e.cfg.LowWater() {
		e.newPage()
	}
}

func (e *engine) advance(height float64) {
	e.cur.y += height
}

// gap adds vertical space unless the cursor sits at the top of a fresh page.
func (e *engine) gap(height float64) {
	if e.state == freshPage {
		return
	}
	if e.cur.y+height > e.cfg.LowWater() {
		e.newPage()
		return
	}
	e.advance(height)
}

func (e *engine) writeLine(x float64, text string, lineHeight float64) {
	e.ensure(lineHeight)
	e.canvas.Text(x, baseline(e.cur.y, lineHeight), text)
	e.advance(lineHeight)
	e.state = writingBody
	e.stats.Lines++
}

func (e *engine) setFont(font Font) {
	e.font = font
	e.canvas.SetFont(font)
}

func (e *engine) measure(text string) float64 {
	return e.canvas.StringWidth(text)
}

func (e *engine) title(text string) {
	if text == "" {
		return
	}
	e.setFont(e.cfg.TitleFont)
	width := e.cfg.ContentWidth()
	for _, line := range Wrap(text, width, e.measure) {
		if line == "" {
			continue
		}
		x := e.cfg.MarginLeft + (width-e.measure(line))/2
		e.writeLine(x, line, e.cfg.TitleLineHeight)
	}
	e.gap(e.cfg.SectionGap)
}

func (e *engine) preamble(text string) {
	if text == "" {
		return
	}
	e.setFont(e.cfg.PreambleFont)
	e.body(text)
	e.gap(e.cfg.SectionGap)
}

func (e *engine) section(section document.Section) {
	lines := trimBlank(e.bodyLines(section.Body))
	e.setFont(e.cfg.HeadingFont)
	headings := Wrap(section.Title, e.cfg.ContentWidth(), e.measure)

	// Keep the title together with the first body line.
	keep := float64(len(headings)) * e.cfg.HeadingLineHeight
	if len(lines) > 0 {
		keep += e.cfg.LineHeight
	}
	e.ensure(keep)
	for _, line := range headings {
		if line == "" {
			continue
		}
		e.writeLine(e.cfg.MarginLeft, line, e.cfg.HeadingLineHeight)
	}

	e.setFont(e.cfg.BodyFont)
	e.writeBody(lines)
	e.gap(e.cfg.SectionGap)
}

func (e *engine) bodyLines(text string) []string {
	e.setFont(e.cfg.BodyFont)
	return Wrap(text, e.cfg.ContentWidth(), e.measure)
}

func (e *engine) body(text string) {
	e.writeBody(Wrap(text, e.cfg.ContentWidth(), e.measure))
}

func (e *engine) writeBody(lines []string) {
	for _, line := range trimBlank(lines) {
		if line == "" {
			e.gap(e.cfg.ParagraphGap)
			continue
		}
		e.writeLine(e.cfg.MarginLeft, line, e.cfg.LineHeight)
	}
}

// trimBlank drops leading and trailing blank lines.
func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func baseline(top, lineHeight float64) float64 {
	return top + lineHeight*0.75
}
