package layout

// Canvas is the drawing surface the engine writes to. Coordinates are in
// millimetres from the top-left corner of the current page; y passed to Text
// is the baseline. Implementations keep the first error and report it from
// Err, ignoring subsequent calls.
type Canvas interface {
	AddPage()
	SetFont(font Font)
	StringWidth(text string) float64
	Text(x, y float64, text string)
	Line(x1, y1, x2, y2 float64)
	Image(name string, data []byte, x, y, w, h float64)
	Err() error
}

// Box is a rectangle on the page.
type Box struct {
	X, Y, W, H float64
}

// Letterhead draws the per-page branding into the band reserved above the
// content area. It is invoked once for every page.
type Letterhead interface {
	Draw(canvas Canvas, area Box)
}

// LetterheadFunc adapts a function to Letterhead.
type LetterheadFunc func(canvas Canvas, area Box)

func (f LetterheadFunc) Draw(canvas Canvas, area Box) { f(canvas, area) }
