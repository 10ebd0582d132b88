package templates

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ieglobal/go-docgen/pkg/document"
)

// Registry holds one Definition per document type. It is read-only once
// loaded and safe for concurrent use.
type Registry struct {
	definitions map[document.Type]Definition
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded definitions. The
// embedded files are part of the build, so a failure to load them panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		registry, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

// LoadFS walks fsys and parses every JSON/YAML definition file.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := &Registry{definitions: make(map[document.Type]Definition)}
	if fsys == nil {
		return registry, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}

		def, err := parseDefinition(data, path)
		if err != nil {
			return err
		}
		if _, exists := registry.definitions[def.Type]; exists {
			return fmt.Errorf("templates: duplicate definition for %q (file %s)", def.Type, path)
		}
		registry.definitions[def.Type] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

// Lookup returns the definition for t. Unknown types fail with
// document.ErrUnsupportedType.
func (r *Registry) Lookup(t document.Type) (Definition, error) {
	if r == nil {
		return Definition{}, fmt.Errorf("templates: registry is nil")
	}
	def, ok := r.definitions[t]
	if !ok {
		return Definition{}, fmt.Errorf("templates: %w %q", document.ErrUnsupportedType, t)
	}
	return def.clone(), nil
}

// Has reports whether a definition exists for t.
func (r *Registry) Has(t document.Type) bool {
	if r == nil {
		return false
	}
	_, ok := r.definitions[t]
	return ok
}

// Types lists registered types in document.Types order.
func (r *Registry) Types() []document.Type {
	var out []document.Type
	for _, t := range document.Types() {
		if r.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func parseDefinition(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("templates: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		if yerr := yaml.Unmarshal(data, &def); yerr != nil {
			return Definition{}, fmt.Errorf("templates: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	return normaliseDefinition(def, source)
}

func normaliseDefinition(def Definition, source string) (Definition, error) {
	if !def.Type.Valid() {
		return Definition{}, fmt.Errorf("templates: file %s: %w %q", source, document.ErrUnsupportedType, def.Type)
	}
	def.Title = strings.TrimSpace(def.Title)
	def.Preamble = strings.TrimSpace(def.Preamble)
	if def.Title == "" {
		return Definition{}, fmt.Errorf("templates: file %s: title is required", source)
	}
	if len(def.Sections) == 0 {
		return Definition{}, fmt.Errorf("templates: file %s: at least one section is required", source)
	}

	sections := make([]Section, 0, len(def.Sections))
	for idx, section := range def.Sections {
		section.Title = strings.TrimSpace(section.Title)
		section.Content = strings.TrimSpace(section.Content)
		if section.Title == "" {
			return Definition{}, fmt.Errorf("templates: file %s: section %d has no title", source, idx+1)
		}
		sections = append(sections, section)
	}
	def.Sections = sections

	switch def.Signatures.Party {
	case "":
		def.Signatures.Party = defaultParty(def.Type)
	case PartyCounterparty, PartyPartner:
	default:
		return Definition{}, fmt.Errorf("templates: file %s: unknown signature party %q", source, def.Signatures.Party)
	}
	return def, nil
}

func defaultParty(t document.Type) SignatureParty {
	if t.Family() == document.FamilyPartnership {
		return PartyPartner
	}
	return PartyCounterparty
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
