// Package docgen generates IE-Global legal agreements (NDA, MSA, SOW, SLA,
// support agreements, DPA and partnership agreements) as paginated PDF
// documents with letterhead and signature blocks.
//
// The quickest entry point is Generate:
//
//	data, filename, err := docgen.Generate(ctx, "nda", agreement.Input{
//		OrganizationName: "Acme Corp",
//		EffectiveDate:    "1 March 2025",
//	})
//
// Callers that generate many documents should build one Generator with
// NewGenerator and reuse it.
package docgen

import (
	"context"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/orchestrator"
)

// Result aliases orchestrator.Result for callers that only import the root
// package.
type Result = orchestrator.Result

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewGenerator exposes the orchestrator constructor from the top-level module.
func NewGenerator(options ...orchestrator.Option) *orchestrator.Generator {
	return orchestrator.New(options...)
}

// Generate renders the document identified by tag for record and returns the
// PDF bytes with a suggested ASCII filename. Unknown tags fail with
// document.ErrUnsupportedType.
func Generate(ctx context.Context, tag string, record agreement.Record, options ...orchestrator.Option) ([]byte, string, error) {
	docType, err := document.ParseType(tag)
	if err != nil {
		return nil, "", err
	}
	result, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Type:   docType,
		Record: record,
	})
	if err != nil {
		return nil, "", err
	}
	return result.Data, result.Filename, nil
}
