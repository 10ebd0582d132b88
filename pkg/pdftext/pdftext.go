// Package pdftext extracts plain text from generated PDFs so documents can be
// verified after serialisation.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ieglobal/go-docgen/pkg/substitute"
)

// Report summarises a generated document.
type Report struct {
	Pages    int      `json:"pages"`
	Text     string   `json:"-"`
	Residual []string `json:"residual,omitempty"`
}

// OK reports whether the document contains no unresolved tokens.
func (r Report) OK() bool { return len(r.Residual) == 0 }

// Extract returns the plain text of every page, pages separated by newlines.
func Extract(data []byte) (string, int, error) {
	if len(data) == 0 {
		return "", 0, errors.New("pdftext: document is empty")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("pdftext: reader: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("pdftext: plain text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", 0, fmt.Errorf("pdftext: read: %w", err)
	}
	return string(text), reader.NumPage(), nil
}

// Verify extracts the document text and scans it for residual tokens.
func Verify(data []byte) (Report, error) {
	text, pages, err := Extract(data)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Pages:    pages,
		Text:     text,
		Residual: substitute.Residual(text),
	}, nil
}

// Collapse folds runs of whitespace to single spaces, which makes extracted
// text comparable regardless of line breaks.
func Collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
