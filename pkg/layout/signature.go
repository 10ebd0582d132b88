package layout

import (
	"math"
	"strings"
)

// SignatureHeading opens the signature block.
const SignatureHeading = "Signatures:"

// SignatureLabels are the fixed lines of every signatory column.
var SignatureLabels = []string{"Signature:", "Name:", "Title:", "Date:"}

// Signatory is one column of the signature block. Name is printed in bold on
// the first line; a blank Name leaves an underscore line to fill in by hand.
type Signatory struct {
	Name string
}

// Signatures is the two-party block: IE-Global first, the counterparty or
// partner second.
type Signatures struct {
	Parties [2]Signatory
}

func (e *engine) signatures(sig Signatures) {
	if e.cfg.LowWater()-e.cur.y < e.cfg.SignatureThreshold {
		e.newPage()
	} else {
		e.gap(e.cfg.SignatureGap)
	}

	e.setFont(e.cfg.HeadingFont)
	e.writeLine(e.cfg.MarginLeft, SignatureHeading, e.cfg.HeadingLineHeight)
	e.gap(e.cfg.LineHeight)

	column := (e.cfg.ContentWidth() - e.cfg.ColumnGap) / 2
	xs := [2]float64{e.cfg.MarginLeft, e.cfg.MarginLeft + column + e.cfg.ColumnGap}
	rowHeight := e.cfg.LineHeight * 1.8

	e.setFont(Font{Family: e.cfg.BodyFont.Family, Style: "B", Size: e.cfg.BodyFont.Size})
	var names [2]string
	for idx, party := range sig.Parties {
		names[idx] = strings.TrimSpace(party.Name)
		if names[idx] == "" {
			names[idx] = e.underscores(column)
		} else {
			names[idx] = e.fit(names[idx], column)
		}
	}
	e.row(xs, names, rowHeight)

	e.setFont(e.cfg.BodyFont)
	for _, label := range SignatureLabels {
		var cells [2]string
		for idx := range cells {
			cells[idx] = label + " " + e.underscores(column-e.measure(label+" "))
		}
		e.row(xs, cells, rowHeight)
	}
}

// row writes one line per column at the same baseline.
func (e *engine) row(xs [2]float64, cells [2]string, height float64) {
	e.ensure(height)
	y := baseline(e.cur.y, height)
	for idx, text := range cells {
		e.canvas.Text(xs[idx], y, text)
	}
	e.advance(height)
	e.state = writingBody
	e.stats.Lines++
}

// underscores returns the longest underscore run not wider than width.
func (e *engine) underscores(width float64) string {
	unit := e.measure("_")
	if unit <= 0 || width <= unit {
		return "_"
	}
	return strings.Repeat("_", int(math.Floor(width/unit)))
}

// fit shortens text with an ellipsis until it fits width.
func (e *engine) fit(text string, width float64) string {
	if e.measure(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "..."
		if e.measure(candidate) <= width {
			return candidate
		}
	}
	return string(runes)
}
