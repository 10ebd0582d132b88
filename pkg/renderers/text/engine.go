package text

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/ieglobal/go-docgen/pkg/layout"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const previewTemplate = "preview.tpl"

var filtersOnce sync.Once

func defaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// templateSet wraps a pongo2 set. TrimBlocks and LStripBlocks rewrite a
// template's tokens on every Execute, so each call parses its own copy and
// the set itself is guarded by mu.
type templateSet struct {
	mu  sync.Mutex
	set *pongo2.TemplateSet
}

func newTemplateSet(files fs.FS) *templateSet {
	registerFilters()
	set := pongo2.NewSet("docgen-text", pongo2.NewFSLoader(files))
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true
	return &templateSet{set: set}
}

func (s *templateSet) execute(name string, data pongo2.Context) (string, error) {
	tmpl, err := s.template(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("text: execute template %q: %w", name, err)
	}
	return out, nil
}

func (s *templateSet) template(name string) (*pongo2.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmpl, err := s.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("text: load template %q: %w", name, err)
	}
	return tmpl, nil
}

func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("wrap") {
			_ = pongo2.RegisterFilter("wrap", filterWrap)
		}
		if !pongo2.FilterExists("rule") {
			_ = pongo2.RegisterFilter("rule", filterRule)
		}
	})
}

// filterWrap wraps text to the column count given as parameter, keeping
// author line breaks.
func filterWrap(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	width := param.Integer()
	if width <= 0 {
		width = DefaultWidth
	}
	lines := layout.Wrap(in.String(), float64(width), columns)
	return pongo2.AsValue(strings.Join(lines, "\n")), nil
}

// filterRule underlines text with the character given as parameter.
func filterRule(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	char := param.String()
	if char == "" {
		char = "-"
	}
	return pongo2.AsValue(strings.Repeat(char, utf8.RuneCountInString(in.String()))), nil
}

func columns(s string) float64 {
	return float64(utf8.RuneCountInString(s))
}
