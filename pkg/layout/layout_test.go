package layout_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
)

type drawOp struct {
	Kind string
	Page int
	X, Y float64
	Text string
	Font layout.Font
}

// recordingCanvas keeps every draw call so tests can inspect placement.
type recordingCanvas struct {
	page int
	font layout.Font
	ops  []drawOp
	err  error
}

func (c *recordingCanvas) AddPage() {
	c.page++
	c.ops = append(c.ops, drawOp{Kind: "page", Page: c.page})
}

func (c *recordingCanvas) SetFont(font layout.Font) { c.font = font }

func (c *recordingCanvas) StringWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * c.font.Size * 0.2
}

func (c *recordingCanvas) Text(x, y float64, text string) {
	c.ops = append(c.ops, drawOp{Kind: "text", Page: c.page, X: x, Y: y, Text: text, Font: c.font})
}

func (c *recordingCanvas) Line(x1, y1, x2, y2 float64) {
	c.ops = append(c.ops, drawOp{Kind: "line", Page: c.page, X: x1, Y: y1})
}

func (c *recordingCanvas) Image(name string, _ []byte, x, y, _, _ float64) {
	c.ops = append(c.ops, drawOp{Kind: "image", Page: c.page, X: x, Y: y, Text: name})
}

func (c *recordingCanvas) Err() error { return c.err }

func (c *recordingCanvas) texts() []drawOp {
	var out []drawOp
	for _, op := range c.ops {
		if op.Kind == "text" {
			out = append(out, op)
		}
	}
	return out
}

func (c *recordingCanvas) find(text string) []drawOp {
	var out []drawOp
	for _, op := range c.texts() {
		if op.Text == text {
			out = append(out, op)
		}
	}
	return out
}

func (c *recordingCanvas) withPrefix(prefix string) []drawOp {
	var out []drawOp
	for _, op := range c.texts() {
		if strings.HasPrefix(op.Text, prefix) {
			out = append(out, op)
		}
	}
	return out
}

type letterheadLog struct {
	pages []int
}

func (l *letterheadLog) Draw(canvas layout.Canvas, area layout.Box) {
	rc := canvas.(*recordingCanvas)
	l.pages = append(l.pages, rc.page)
	canvas.SetFont(layout.Font{Family: "Courier", Size: 30})
	canvas.Image("logo", nil, area.X, area.Y, 40, 20)
}

func numberedLines(prefix string, count int) string {
	lines := make([]string, count)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s line %02d", prefix, i+1)
	}
	return strings.Join(lines, "\n")
}

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) }
	cases := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"greedy", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"author breaks", "one\n\ntwo three", 20, []string{"one", "", "two three"}},
		{"long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"long word between words", "xx abcdefghij yy", 4, []string{"xx", "abcd", "efgh", "ij", "yy"}},
		{"collapses spaces", "  a   b  ", 10, []string{"a b"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := layout.Wrap(tc.text, tc.width, measure)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
			}
			for _, line := range got {
				if measure(line) > tc.width {
					t.Fatalf("line %q exceeds width %v", line, tc.width)
				}
			}
		})
	}
}

func TestWrap_LongWordMeasuresEachRuneOnce(t *testing.T) {
	measured := 0
	measure := func(s string) float64 {
		n := utf8.RuneCountInString(s)
		measured += n
		return float64(n)
	}
	word := strings.Repeat("x", 4000)

	got := layout.Wrap(word, 200, measure)
	if len(got) != 20 {
		t.Fatalf("expected 20 pieces, got %d", len(got))
	}
	for _, line := range got {
		if n := utf8.RuneCountInString(line); n != 200 {
			t.Fatalf("piece has %d runes, want 200", n)
		}
	}
	if strings.Join(got, "") != word {
		t.Fatalf("pieces do not reassemble the word")
	}
	// One pass over the whole word plus one per rune.
	if measured > 2*len(word) {
		t.Fatalf("measured %d runes for a %d rune word", measured, len(word))
	}
}

func TestUnprintable(t *testing.T) {
	cases := []struct {
		text string
		want []rune
	}{
		{"Acme Corp", nil},
		{"Café Müller – “Zürich” € ™", nil},
		{"株式会社 Tokyo 株式", []rune("株式会社")},
		{"Łódź", []rune("Łź")},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, layout.Unprintable(tc.text)); diff != "" {
			t.Fatalf("Unprintable(%q) mismatch (-want +got):\n%s", tc.text, diff)
		}
	}
}

func TestRender_PaginationMonotonic(t *testing.T) {
	doc := document.Rendered{
		Title:    "Master Services Agreement",
		Preamble: "First preamble line\nSecond preamble line that is written in italics",
	}
	for i := 1; i <= 12; i++ {
		doc.Sections = append(doc.Sections, document.Section{
			Title: fmt.Sprintf("%d. Clause", i),
			Body:  strings.Repeat("lorem ipsum dolor sit amet consectetur ", i*6) + "\n\n" + numberedLines("tail", i),
		})
	}
	cfg := layout.DefaultConfig()
	canvas := &recordingCanvas{}
	head := &letterheadLog{}
	sig := &layout.Signatures{Parties: [2]layout.Signatory{{Name: "IE-Global B.V."}, {Name: "Acme"}}}

	stats, err := layout.Render(canvas, cfg, head, doc, sig)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.Pages < 3 {
		t.Fatalf("expected a multi-page document, got %d pages", stats.Pages)
	}
	if len(head.pages) != stats.Pages {
		t.Fatalf("letterhead drawn %d times for %d pages", len(head.pages), stats.Pages)
	}

	page, prev := 0, 0.0
	for _, op := range canvas.ops {
		switch op.Kind {
		case "page":
			page, prev = op.Page, 0
		case "text":
			if op.Page != page {
				t.Fatalf("text %q recorded on page %d while on page %d", op.Text, op.Page, page)
			}
			if op.Y < prev {
				t.Fatalf("page %d: %q at y=%.2f placed above previous content at y=%.2f", page, op.Text, op.Y, prev)
			}
			if op.Y < cfg.TopOffset() || op.Y > cfg.LowWater() {
				t.Fatalf("page %d: %q at y=%.2f outside content area", page, op.Text, op.Y)
			}
			if op.X+canvasWidth(op) > cfg.PageWidth-cfg.MarginRight+0.001 {
				t.Fatalf("page %d: %q overflows the right margin", page, op.Text)
			}
			prev = op.Y
		}
	}
}

func canvasWidth(op drawOp) float64 {
	return float64(utf8.RuneCountInString(op.Text)) * op.Font.Size * 0.2
}

func TestRender_HeadingsStayWithBody(t *testing.T) {
	doc := document.Rendered{Title: "Agreement"}
	for i := 1; i <= 40; i++ {
		doc.Sections = append(doc.Sections, document.Section{
			Title: fmt.Sprintf("Heading %02d", i),
			Body:  numberedLines(fmt.Sprintf("s%02d", i), 1+i%7),
		})
	}
	canvas := &recordingCanvas{}
	if _, err := layout.Render(canvas, layout.DefaultConfig(), nil, doc, nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	texts := canvas.texts()
	for idx, op := range texts {
		if !strings.HasPrefix(op.Text, "Heading ") {
			continue
		}
		if len(canvas.find(op.Text)) != 1 {
			t.Fatalf("heading %q written more than once", op.Text)
		}
		next := texts[idx+1]
		if next.Page != op.Page {
			t.Fatalf("heading %q on page %d separated from its first line on page %d", op.Text, op.Page, next.Page)
		}
	}
}

func TestRender_BlankBodyHeadingUsesRemainingSpace(t *testing.T) {
	cfg := layout.DefaultConfig()
	for _, body := range []string{"", "\n\n", "  \n \n"} {
		for n := 1; n <= 60; n++ {
			doc := document.Rendered{
				Title: "Agreement",
				Sections: []document.Section{
					{Title: "Terms", Body: numberedLines("filler", n)},
					{Title: "Closing", Body: body},
				},
			}
			canvas := &recordingCanvas{}
			if _, err := layout.Render(canvas, cfg, nil, doc, nil); err != nil {
				t.Fatalf("render: %v", err)
			}
			texts := canvas.texts()
			closing := texts[len(texts)-1]
			if closing.Text != "Closing" {
				t.Fatalf("body %q n=%d: blank body wrote %q after the heading", body, n, closing.Text)
			}
			last := texts[len(texts)-2]
			if closing.Page == last.Page {
				continue
			}
			// A page break is only allowed when the heading alone does not fit.
			top := last.Y - cfg.LineHeight*0.75 + cfg.LineHeight + cfg.SectionGap
			if top+cfg.HeadingLineHeight <= cfg.LowWater() {
				t.Fatalf("body %q n=%d: heading moved to page %d although %.2f mm remained", body, n, closing.Page, cfg.LowWater()-top)
			}
		}
	}
}

func TestRender_LongSectionSpansPages(t *testing.T) {
	doc := document.Rendered{
		Title:    "Statement of Work",
		Preamble: "Preamble",
		Sections: []document.Section{{Title: "1. Scope", Body: numberedLines("scope", 50)}},
	}
	canvas := &recordingCanvas{}
	head := &letterheadLog{}

	stats, err := layout.Render(canvas, layout.DefaultConfig(), head, doc, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", stats.Pages)
	}
	if diff := cmp.Diff([]int{1, 2}, head.pages); diff != "" {
		t.Fatalf("letterhead pages mismatch (-want +got):\n%s", diff)
	}
	if got := canvas.find("1. Scope"); len(got) != 1 || got[0].Page != 1 {
		t.Fatalf("section title must be written once on page 1: %+v", got)
	}

	first := canvas.find("scope line 01")
	last := canvas.find("scope line 50")
	if len(first) != 1 || len(last) != 1 {
		t.Fatalf("expected each body line once")
	}
	if first[0].Page != 1 || last[0].Page != 2 {
		t.Fatalf("expected body to continue from page 1 to page 2, got %d and %d", first[0].Page, last[0].Page)
	}
	if diff := cmp.Diff(layout.DefaultConfig().BodyFont, last[0].Font); diff != "" {
		t.Fatalf("body font not restored after the letterhead (-want +got):\n%s", diff)
	}
	lines := canvas.withPrefix("scope line")
	if len(lines) != 50 {
		t.Fatalf("expected 50 body lines, got %d", len(lines))
	}
	for idx, op := range lines {
		if want := fmt.Sprintf("scope line %02d", idx+1); op.Text != want {
			t.Fatalf("line %d out of order: %q", idx, op.Text)
		}
	}
}

func TestRender_SignatureGating(t *testing.T) {
	doc := document.Rendered{
		Title:    "Mutual Non-Disclosure Agreement",
		Sections: []document.Section{{Title: "1. Parties", Body: "Body"}},
	}

	exempt := &recordingCanvas{}
	if _, err := layout.Render(exempt, layout.DefaultConfig(), nil, doc, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, label := range append([]string{layout.SignatureHeading}, layout.SignatureLabels...) {
		if got := exempt.withPrefix(label); len(got) != 0 {
			t.Fatalf("signature-exempt render contains %q", label)
		}
	}

	signed := &recordingCanvas{}
	sig := &layout.Signatures{Parties: [2]layout.Signatory{{Name: "IE-Global B.V."}, {}}}
	if _, err := layout.Render(signed, layout.DefaultConfig(), nil, doc, sig); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := signed.find(layout.SignatureHeading); len(got) != 1 {
		t.Fatalf("expected one signature heading, got %d", len(got))
	}
	for _, label := range layout.SignatureLabels {
		got := signed.withPrefix(label)
		if len(got) != 2 {
			t.Fatalf("expected %q once per signatory, got %d", label, len(got))
		}
		if got[0].Y != got[1].Y || got[0].X >= got[1].X {
			t.Fatalf("%q columns must share a row left to right: %+v", label, got)
		}
	}

	names := signed.find("IE-Global B.V.")
	if len(names) != 1 || names[0].Font.Style != "B" {
		t.Fatalf("expected bold pre-filled name line: %+v", names)
	}
	blank := signed.withPrefix("____")
	if len(blank) != 1 || blank[0].Y != names[0].Y {
		t.Fatalf("expected an underscore name line beside the pre-filled one: %+v", blank)
	}
}

func TestRender_SignatureThreshold(t *testing.T) {
	cfg := layout.DefaultConfig()
	sig := &layout.Signatures{Parties: [2]layout.Signatory{{Name: "IE-Global B.V."}, {Name: "Acme"}}}

	short := &recordingCanvas{}
	doc := document.Rendered{Title: "Agreement", Sections: []document.Section{{Title: "1. Terms", Body: numberedLines("short", 3)}}}
	if _, err := layout.Render(short, cfg, nil, doc, sig); err != nil {
		t.Fatalf("render: %v", err)
	}
	heading := short.find(layout.SignatureHeading)
	if len(heading) != 1 || heading[0].Page != 1 {
		t.Fatalf("expected signatures on page 1 after a short document: %+v", heading)
	}
	lastBody := short.find("short line 03")[0]
	if heading[0].Y-lastBody.Y < cfg.SignatureGap {
		t.Fatalf("expected a gap of at least %.1f before the signature block", cfg.SignatureGap)
	}

	crowded := &recordingCanvas{}
	doc.Sections[0].Body = numberedLines("long", 30)
	stats, err := layout.Render(crowded, cfg, nil, doc, sig)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	heading = crowded.find(layout.SignatureHeading)
	if stats.Pages != 2 || len(heading) != 1 || heading[0].Page != 2 {
		t.Fatalf("expected the signature block to move to page 2: pages=%d %+v", stats.Pages, heading)
	}
	for _, label := range layout.SignatureLabels {
		for _, op := range crowded.withPrefix(label) {
			if op.Page != 2 {
				t.Fatalf("signature block split across pages: %q on page %d", label, op.Page)
			}
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc := document.Rendered{
		Title:    "Data Processing Agreement",
		Preamble: "Preamble",
		Sections: []document.Section{{Title: "1. Parties", Body: strings.Repeat("word ", 400)}},
	}
	sig := &layout.Signatures{Parties: [2]layout.Signatory{{Name: "IE-Global B.V."}, {Name: "Acme"}}}

	first, second := &recordingCanvas{}, &recordingCanvas{}
	if _, err := layout.Render(first, layout.DefaultConfig(), nil, doc, sig); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := layout.Render(second, layout.DefaultConfig(), nil, doc, sig); err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(first.ops, second.ops); diff != "" {
		t.Fatalf("render is not deterministic (-first +second):\n%s", diff)
	}
}

func TestRender_CanvasErrorAborts(t *testing.T) {
	canvas := &recordingCanvas{err: errors.New("font missing")}
	_, err := layout.Render(canvas, layout.DefaultConfig(), nil, document.Rendered{
		Title:    "Agreement",
		Sections: []document.Section{{Title: "1", Body: "x"}},
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "font missing") {
		t.Fatalf("expected canvas error, got %v", err)
	}

	if _, err := layout.Render(nil, layout.DefaultConfig(), nil, document.Rendered{}, nil); err == nil {
		t.Fatalf("expected error for nil canvas")
	}
}

func TestConfig_Normalize(t *testing.T) {
	if diff := cmp.Diff(layout.DefaultConfig(), layout.Config{}.Normalize()); diff != "" {
		t.Fatalf("zero config should normalise to defaults (-want +got):\n%s", diff)
	}

	tiny := layout.DefaultConfig()
	tiny.PageHeight = 60
	got := tiny.Normalize()
	if got.PageHeight != 297 {
		t.Fatalf("expected fallback geometry for a page that cannot hold content, got height %.1f", got.PageHeight)
	}

	custom := layout.DefaultConfig()
	custom.MarginLeft = 25
	custom.BodyFont = layout.Font{Size: 11}
	got = custom.Normalize()
	if got.MarginLeft != 25 || got.BodyFont.Family != "Helvetica" || got.BodyFont.Size != 11 {
		t.Fatalf("custom values not preserved: %+v", got)
	}
}
