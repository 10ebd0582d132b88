package render

import (
	"context"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// Renderer serialises a substituted agreement into a downloadable artifact
// (PDF, plain text preview, ...).
type Renderer interface {
	Name() string
	ContentType() string
	// Extension is the file extension without the leading dot.
	Extension() string
	Render(ctx context.Context, doc document.Rendered, options RenderOptions) (Output, error)
}

// Output is a finished artifact. Pages is zero for formats without pages.
type Output struct {
	Data  []byte
	Pages int
}
