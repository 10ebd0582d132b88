package substitute

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/templates"
)

var spacedToken = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Apply replaces every {{name}} token in def with values[name]. Replacement is
// literal, global and single pass. Tokens without a value are left in place and
// reported by Residual.
func Apply(def templates.Definition, values Values) document.Rendered {
	replacer := newReplacer(values)
	fill := func(text string) string {
		return replacer.Replace(spacedToken.ReplaceAllString(text, "{{$1}}"))
	}

	out := document.Rendered{
		Type:     def.Type,
		Title:    fill(def.Title),
		Preamble: fill(def.Preamble),
		Sections: make([]document.Section, 0, len(def.Sections)),
	}
	for _, section := range def.Sections {
		out.Sections = append(out.Sections, document.Section{
			Title: fill(section.Title),
			Body:  fill(section.Content),
		})
	}
	return out
}

// Residual returns the placeholder tokens remaining in text.
func Residual(text string) []string {
	return document.FindTokens(text)
}

func newReplacer(values Values) *strings.Replacer {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", values[key])
	}
	return strings.NewReplacer(pairs...)
}
