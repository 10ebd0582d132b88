package render

import (
	"time"

	"github.com/ieglobal/go-docgen/pkg/layout"
)

// FixedTimestamp is used for document metadata when the caller does not pin a
// timestamp, so identical inputs serialise to identical bytes.
var FixedTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderOptions carry per-request data that does not belong to the legal text
// itself.
type RenderOptions struct {
	// Signatures is appended after the last section. Nil for signature-exempt
	// document types.
	Signatures *layout.Signatures
	// Reference identifies the document in footers and metadata.
	Reference string
	// Author and Subject populate document metadata.
	Author  string
	Subject string
	// Keywords populate document metadata.
	Keywords []string
	// Timestamp pins creation and modification dates. Zero means
	// FixedTimestamp; the engine never reads the clock.
	Timestamp time.Time
}

// CreatedAt returns the pinned timestamp.
func (o RenderOptions) CreatedAt() time.Time {
	if o.Timestamp.IsZero() {
		return FixedTimestamp
	}
	return o.Timestamp.UTC()
}
