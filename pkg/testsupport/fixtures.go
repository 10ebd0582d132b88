// Package testsupport holds fixture and golden-file helpers shared by package
// tests. Set UPDATE_GOLDENS=1 to rewrite goldens from the current output.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ieglobal/go-docgen/pkg/agreement"
	"github.com/ieglobal/go-docgen/pkg/document"
)

// UpdateGoldens reports whether golden files should be rewritten.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// LoadRecord reads a JSON or YAML agreement fixture decoded into the shape t
// requires.
func LoadRecord(t *testing.T, docType document.Type, path string) agreement.Record {
	t.Helper()

	record, err := LoadRecordFromPath(docType, path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// LoadRecordFromPath returns a record without requiring testing.T, for setup
// code outside a test.
func LoadRecordFromPath(docType document.Type, path string) (agreement.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	if filepath.Ext(path) == ".json" {
		return agreement.DecodeJSON(docType, data)
	}
	return agreement.DecodeYAML(docType, data)
}

// MustLoadJSON decodes a JSON golden file into out.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()

	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if !UpdateGoldens() {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if !UpdateGoldens() {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
