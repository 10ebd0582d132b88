package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores renderers by name. Names are case-insensitive. It is safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns a registry holding renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer)}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a renderer under its Name(). Duplicate names are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name, or an error wrapping
// ErrRendererNotFound.
func (r *Registry) Get(name string) (Renderer, error) {
	if r == nil {
		return nil, fmt.Errorf("render: %w: %q (registry is nil)", ErrRendererNotFound, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("render: %w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// ForExtension returns the renderer producing files with extension ext
// ("pdf", ".txt").
func (r *Registry) ForExtension(ext string) (Renderer, error) {
	want := normalizeName(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.sortedNamesLocked() {
		renderer := r.renderers[name]
		if normalizeName(renderer.Extension()) == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("render: %w: no renderer for extension %q", ErrRendererNotFound, ext)
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNamesLocked()
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

func (r *Registry) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
