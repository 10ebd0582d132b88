package layout

import "strings"

// Wrap breaks text into lines no wider than width as reported by measure. Each
// logical line (separated by "\n") is wrapped on its own so author line breaks
// survive, and blank logical lines are returned as empty strings. Words wider
// than width are split between runes.
func Wrap(text string, width float64, measure func(string) float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, logical := range strings.Split(text, "\n") {
		words := strings.Fields(logical)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, wrapWords(words, width, measure)...)
	}
	return out
}

func wrapWords(words []string, width float64, measure func(string) float64) []string {
	var (
		lines   []string
		current string
	)
	for _, word := range words {
		if measure(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			pieces := breakWord(word, width, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits word into pieces that fit width. A piece always holds at
// least one rune.
func breakWord(word string, width float64, measure func(string) float64) []string {
	var (
		pieces []string
		piece  []rune
		used   float64
	)
	for _, r := range word {
		w := measure(string(r))
		if len(piece) > 0 && used+w > width {
			pieces = append(pieces, string(piece))
			piece, used = piece[:0:0], 0
		}
		piece = append(piece, r)
		used += w
	}
	if len(piece) > 0 {
		pieces = append(pieces, string(piece))
	}
	return pieces
}
