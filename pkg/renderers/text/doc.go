// Package text renders a plain-text preview of an agreement through a pongo2
// template. The preview carries the same prose, section order and signature
// labels as the PDF and is meant for review in terminals and diffs.
package text
