package orchestrator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// FilenamePrefix opens every suggested filename.
const FilenamePrefix = "IE-Global"

// MaxSlugLength caps the counterparty part of a filename.
const MaxSlugLength = 48

// Slug folds name to ASCII letters, digits and single hyphens. Accents are
// stripped, every other run of characters becomes one hyphen and the result is
// capped at MaxSlugLength. Blank or fully non-ASCII names yield "".
func Slug(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pending := false
	for _, r := range folded {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// Filename builds "IE-Global-<Label>[-<slug>].<ext>".
func Filename(t document.Type, name, ext string) string {
	base := FilenamePrefix + "-" + t.Label()
	if slug := Slug(name); slug != "" {
		base += "-" + slug
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}
