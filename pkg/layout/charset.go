package layout

import "golang.org/x/text/encoding/charmap"

// Unprintable returns the distinct runes of text that the standard PDF core
// fonts cannot print, in order of first appearance. The core fonts are
// limited to the Windows-1252 repertoire.
func Unprintable(text string) []rune {
	var (
		out  []rune
		seen map[rune]bool
	)
	for _, r := range text {
		if r < 0x80 {
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			continue
		}
		if seen == nil {
			seen = make(map[rune]bool)
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
