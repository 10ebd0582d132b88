package document

import "regexp"

var tokenPattern = regexp.MustCompile(`\{\{\s*[^{}]*?\s*\}\}`)

// Section is one fully substituted titled block of legal prose.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Rendered is the output of placeholder substitution: every token resolved,
// ready for layout.
type Rendered struct {
	Type     Type      `json:"type"`
	Title    string    `json:"title"`
	Preamble string    `json:"preamble"`
	Sections []Section `json:"sections"`
}

// Unresolved returns every placeholder token still present in the document.
// Production output is expected to return nil.
func (r Rendered) Unresolved() []string {
	var out []string
	out = append(out, FindTokens(r.Title)...)
	out = append(out, FindTokens(r.Preamble)...)
	for _, section := range r.Sections {
		out = append(out, FindTokens(section.Title)...)
		out = append(out, FindTokens(section.Body)...)
	}
	return out
}

// FindTokens returns all double-brace tokens found in text, in order.
func FindTokens(text string) []string {
	if text == "" {
		return nil
	}
	return tokenPattern.FindAllString(text, -1)
}
