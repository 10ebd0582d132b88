package text

import (
	"context"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
	"github.com/ieglobal/go-docgen/pkg/render"
)

// Name is the registry key of the text renderer.
const Name = "text"

// DefaultWidth is the preview column width.
const DefaultWidth = 80

// signatureGutter separates the two signature columns.
const signatureGutter = 4

// minSignatureColumn fits the longest label plus a short fill line.
const minSignatureColumn = 14

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the embedded templates. The file system must
// contain preview.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.files = files
		}
	}
}

// WithWidth sets the wrap width in columns.
func WithWidth(cols int) Option {
	return func(r *Renderer) {
		if cols > 0 {
			r.width = cols
		}
	}
}

// Renderer produces a UTF-8 plain-text preview.
type Renderer struct {
	files fs.FS
	width int
	set   *templateSet
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{files: defaultTemplates(), width: DefaultWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.set = newTemplateSet(r.files)
	return r
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }
func (r *Renderer) Extension() string   { return "txt" }

// Render executes the preview template.
func (r *Renderer) Render(ctx context.Context, doc document.Rendered, options render.RenderOptions) (render.Output, error) {
	if err := ctx.Err(); err != nil {
		return render.Output{}, err
	}

	sections := make([]map[string]any, 0, len(doc.Sections))
	for _, section := range doc.Sections {
		sections = append(sections, map[string]any{"title": section.Title, "body": section.Body})
	}
	data := pongo2.Context{
		"title":      doc.Title,
		"preamble":   doc.Preamble,
		"sections":   sections,
		"signatures": signatureRows(options.Signatures, r.width),
		"reference":  options.Reference,
		"width":      r.width,
	}

	out, err := r.set.execute(previewTemplate, data)
	if err != nil {
		return render.Output{}, err
	}
	return render.Output{Data: []byte(strings.TrimSpace(out) + "\n")}, nil
}

// signatureRows lays out the two signatory columns side by side within width.
// Names wider than a column wrap onto extra rows.
func signatureRows(sig *layout.Signatures, width int) []string {
	if sig == nil {
		return nil
	}
	column := max(minSignatureColumn, (width-signatureGutter)/2)
	blank := strings.Repeat("_", column)
	cell := func(text string) string {
		return text + strings.Repeat(" ", max(0, column-columnsOf(text))+signatureGutter)
	}

	var names [2][]string
	for idx, party := range sig.Parties {
		name := strings.TrimSpace(party.Name)
		if name == "" {
			names[idx] = []string{blank}
			continue
		}
		names[idx] = layout.Wrap(name, float64(column), columns)
	}

	var rows []string
	for i := range max(len(names[0]), len(names[1])) {
		var left, right string
		if i < len(names[0]) {
			left = names[0][i]
		}
		if i < len(names[1]) {
			right = names[1][i]
		}
		rows = append(rows, strings.TrimRight(cell(left)+right, " "))
	}
	for _, label := range layout.SignatureLabels {
		line := label + " " + strings.Repeat("_", column-columnsOf(label)-1)
		rows = append(rows, cell(line)+line)
	}
	return rows
}

func columnsOf(s string) int {
	return int(columns(s))
}
