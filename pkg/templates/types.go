package templates

import (
	"regexp"
	"sort"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// SignatureParty names who signs opposite IE-Global.
type SignatureParty string

const (
	PartyCounterparty SignatureParty = "counterparty"
	PartyPartner      SignatureParty = "partner"
)

// Section is one titled block of prose containing {{token}} placeholders.
type Section struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Signatures configures the signature block appended after the last section.
type Signatures struct {
	Required bool           `json:"required" yaml:"required"`
	Party    SignatureParty `json:"party,omitempty" yaml:"party,omitempty"`
}

// Definition is the static legal text of one document type.
type Definition struct {
	Type       document.Type `json:"type" yaml:"type"`
	Version    string        `json:"version,omitempty" yaml:"version,omitempty"`
	Title      string        `json:"title" yaml:"title"`
	Preamble   string        `json:"preamble" yaml:"preamble"`
	Sections   []Section     `json:"sections" yaml:"sections"`
	Signatures Signatures    `json:"signatures" yaml:"signatures"`
}

var tokenName = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Tokens returns the distinct placeholder names referenced anywhere in the
// definition, sorted.
func (d Definition) Tokens() []string {
	seen := make(map[string]struct{})
	collect := func(text string) {
		for _, match := range tokenName.FindAllStringSubmatch(text, -1) {
			seen[match[1]] = struct{}{}
		}
	}
	collect(d.Title)
	collect(d.Preamble)
	for _, section := range d.Sections {
		collect(section.Title)
		collect(section.Content)
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (d Definition) clone() Definition {
	out := d
	out.Sections = append([]Section(nil), d.Sections...)
	return out
}
