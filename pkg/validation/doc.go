// Package validation describes agreement input records as OpenAPI 3 schemas
// and reports issues in submitted records before generation.
package validation
