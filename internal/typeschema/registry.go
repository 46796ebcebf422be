package typeschema

import (
	"sort"

	"api-recon/internal/javatype"
)

// Registry holds the schemas of every generic declaration seen during a
// discovery pass, keyed by scope. It is filled by one goroutine and read-only
// afterwards.
type Registry struct {
	schemas map[javatype.Scope]*Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[javatype.Scope]*Schema)}
}

// Register adds s. A scope can be registered once.
func (r *Registry) Register(s *Schema) error {
	if _, ok := r.schemas[s.scope]; ok {
		return &DuplicateScopeError{Scope: s.scope}
	}
	r.schemas[s.scope] = s
	return nil
}

// Schema returns the schema registered for scope.
func (r *Registry) Schema(scope javatype.Scope) (*Schema, bool) {
	s, ok := r.schemas[scope]
	return s, ok
}

// Lookup implements Env over every registered schema.
func (r *Registry) Lookup(id javatype.VarID) ([]javatype.Type, bool) {
	s, ok := r.schemas[id.Scope]
	if !ok {
		return nil, false
	}
	return s.Lookup(id)
}

// Scopes returns the registered scopes in sorted order.
func (r *Registry) Scopes() []javatype.Scope {
	out := make([]javatype.Scope, 0, len(r.schemas))
	for scope := range r.schemas {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int { return len(r.schemas) }
