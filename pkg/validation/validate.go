package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
	"github.com/ieglobal/go-docgen/pkg/layout"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes. Generation never requires a valid
// result: blank and malformed values fall back to defaults, so issues point
// out what the generated document will not contain. The one exception is text
// the PDF fonts cannot print, which fails PDF generation.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ValidateJSON checks a JSON record against the schema of t.
func ValidateJSON(t document.Type, raw []byte) Result {
	var value any
	if len(strings.TrimSpace(string(raw))) == 0 {
		value = map[string]any{}
	} else if err := json.Unmarshal(raw, &value); err != nil {
		return invalid(Issue{Message: fmt.Sprintf("invalid JSON: %v", err)})
	}
	return ValidateValue(t, value)
}

// ValidateRecord checks an already decoded record.
func ValidateRecord(t document.Type, record agreement.Record) Result {
	if record == nil {
		return ValidateValue(t, map[string]any{})
	}
	if record.Family() != t.Family() {
		return invalid(Issue{Message: fmt.Sprintf("%s expects a %s record, got %s", t, t.Family(), record.Family())})
	}
	raw, err := json.Marshal(agreement.Encode(record))
	if err != nil {
		return invalid(Issue{Message: fmt.Sprintf("encode record: %v", err)})
	}
	return ValidateJSON(t, raw)
}

// ValidateValue checks a generic decoded value (as produced by encoding/json
// or yaml.v3) against the schema of t.
func ValidateValue(t document.Type, value any) Result {
	schema, err := Schema(t)
	if err != nil {
		return invalid(Issue{Message: err.Error()})
	}

	result := Result{Valid: true}
	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		result.Issues = append(result.Issues, issuesFromError(err)...)
	}
	if object, ok := value.(map[string]any); ok && t.Family() == document.FamilyPartnership {
		result.Issues = append(result.Issues, feeModelIssues(object)...)
	}
	result.Issues = append(result.Issues, charsetIssues(value, nil)...)

	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Field < result.Issues[j].Field
	})
	result.Valid = len(result.Issues) == 0
	return result
}

// feeModelIssues reports a selected fee model whose amount is missing; the
// document would silently defer the fees to the statement of work.
func feeModelIssues(object map[string]any) []Issue {
	selector, _ := object[KeyFeeModel].(string)
	kind := agreement.FeeModelKind(strings.ToUpper(strings.TrimSpace(selector)))
	key, ok := feeAmountKeys[kind]
	if !ok {
		return nil
	}
	amount, _ := object[key].(string)
	if strings.TrimSpace(amount) != "" {
		return nil
	}
	return []Issue{{
		Path:    "/" + key,
		Field:   key,
		Message: fmt.Sprintf("fee model %s requires %s; the fee section will defer to the statement of work", kind, key),
	}}
}

// charsetIssues reports string values holding characters outside the
// Windows-1252 repertoire of the PDF core fonts.
func charsetIssues(value any, pointer []string) []Issue {
	switch v := value.(type) {
	case string:
		bad := layout.Unprintable(v)
		if len(bad) == 0 {
			return nil
		}
		return []Issue{{
			Path:    "/" + strings.Join(pointer, "/"),
			Field:   fieldPathFromPointer(pointer),
			Message: fmt.Sprintf("characters %q cannot be printed in PDF output; use the text renderer or transliterate them", string(bad)),
		}}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var out []Issue
		for _, key := range keys {
			out = append(out, charsetIssues(v[key], append(pointer[:len(pointer):len(pointer)], key))...)
		}
		return out
	case []any:
		var out []Issue
		for idx, item := range v {
			out = append(out, charsetIssues(item, append(pointer[:len(pointer):len(pointer)], strconv.Itoa(idx)))...)
		}
		return out
	}
	return nil
}

func invalid(issue Issue) Result {
	return Result{Valid: false, Issues: []Issue{issue}}
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]Issue, 0, len(multi))
		for _, item := range multi {
			out = append(out, issuesFromError(item)...)
		}
		return out
	}
	return []Issue{issueFromError(err)}
}

func issueFromError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		path := "/" + strings.Join(pointer, "/")
		if len(pointer) == 0 {
			path = ""
		}
		return Issue{
			Path:    path,
			Field:   fieldPathFromPointer(pointer),
			Message: strings.TrimSpace(schemaErr.Reason),
		}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}

func fieldPathFromPointer(pointer []string) string {
	out := make([]string, 0, len(pointer))
	for _, segment := range pointer {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}
