// Package typeschema records the type variables of generic declarations and
// resolves variable-laden Java types against use-site bindings.
//
// A Schema is built once per generic declaration and never mutated after Bind
// returns, so it can be shared read-only between goroutines.
package typeschema

import (
	"maps"

	"api-recon/internal/javatype"
)

// Env answers bound queries for variables by identity.
type Env interface {
	// Lookup returns the declared bounds of id and whether it is declared.
	Lookup(id javatype.VarID) ([]javatype.Type, bool)
}

// Bindings maps type variables to the concrete types they stand for.
type Bindings map[javatype.VarID]javatype.Type

// Merge returns a new Bindings holding b overridden by other.
func (b Bindings) Merge(other Bindings) Bindings {
	out := make(Bindings, len(b)+len(other))
	maps.Copy(out, b)
	maps.Copy(out, other)
	return out
}

// Schema is the set of type variables declared by one generic class or method,
// with their ordered upper bounds.
type Schema struct {
	scope  javatype.Scope
	vars   []*javatype.Variable
	bounds map[string][]javatype.Type
	parent *Schema
}

// Bind builds the schema of the declaration scope. names gives the declaration
// order; bounds maps a name to its bounds (absent means no declared bound).
func Bind(scope javatype.Scope, names []string, bounds map[string][]javatype.Type) (*Schema, error) {
	return bind(scope, names, bounds, nil)
}

// Nest builds the schema of a declaration enclosed by s, such as a generic
// method of a generic class. Bounds may refer to variables of s.
func (s *Schema) Nest(scope javatype.Scope, names []string, bounds map[string][]javatype.Type) (*Schema, error) {
	return bind(scope, names, bounds, s)
}

func bind(scope javatype.Scope, names []string, bounds map[string][]javatype.Type, parent *Schema) (*Schema, error) {
	s := &Schema{
		scope:  scope,
		vars:   make([]*javatype.Variable, 0, len(names)),
		bounds: make(map[string][]javatype.Type, len(names)),
		parent: parent,
	}
	for _, name := range names {
		if _, dup := s.bounds[name]; dup {
			return nil, &DuplicateVariableError{Scope: scope, Name: name}
		}
		v, err := javatype.NewVariable(name, scope)
		if err != nil {
			return nil, err
		}
		s.vars = append(s.vars, v)
		s.bounds[name] = nil
	}
	for name := range bounds {
		if _, ok := s.bounds[name]; !ok {
			return nil, &UnknownVariableError{Scope: scope, Variable: javatype.VarID{Scope: scope, Name: name}}
		}
	}
	for _, name := range names {
		bs := bounds[name]
		copied := make([]javatype.Type, 0, len(bs))
		for i, b := range bs {
			if b == nil {
				return nil, &InvalidBoundError{Variable: javatype.VarID{Scope: scope, Name: name}, Index: i}
			}
			for _, v := range javatype.Variables(b) {
				if _, ok := s.Lookup(v.ID()); !ok {
					return nil, &UnknownVariableError{Scope: scope, Variable: v.ID()}
				}
			}
			copied = append(copied, b)
		}
		s.bounds[name] = copied
	}
	return s, nil
}

// Scope returns the declaring scope.
func (s *Schema) Scope() javatype.Scope { return s.scope }

// Enclosing returns the enclosing schema, or nil.
func (s *Schema) Enclosing() *Schema { return s.parent }

// Len returns the number of declared variables.
func (s *Schema) Len() int { return len(s.vars) }

// Variables returns the declared variables in declaration order.
func (s *Schema) Variables() []*javatype.Variable {
	out := make([]*javatype.Variable, len(s.vars))
	copy(out, s.vars)
	return out
}

// Variable returns the variable declared under name.
func (s *Schema) Variable(name string) (*javatype.Variable, bool) {
	for _, v := range s.vars {
		if v.Name() == name {
			return v, true
		}
	}
	return nil, false
}

// BoundsOf returns the declared bounds of v. v must be declared by s itself;
// enclosing schemas are not consulted.
func (s *Schema) BoundsOf(v *javatype.Variable) ([]javatype.Type, error) {
	if v == nil || v.Scope() != s.scope {
		id := javatype.VarID{}
		if v != nil {
			id = v.ID()
		}
		return nil, &UnknownVariableError{Scope: s.scope, Variable: id}
	}
	bs, ok := s.bounds[v.Name()]
	if !ok {
		return nil, &UnknownVariableError{Scope: s.scope, Variable: v.ID()}
	}
	out := make([]javatype.Type, len(bs))
	copy(out, bs)
	return out, nil
}

// Lookup implements Env over s and its enclosing schemas.
func (s *Schema) Lookup(id javatype.VarID) ([]javatype.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.scope != id.Scope {
			continue
		}
		bs, ok := cur.bounds[id.Name]
		return bs, ok
	}
	return nil, false
}

// Apply binds the declared variables to use-site arguments by position.
// No arguments is a raw use and yields empty bindings.
func (s *Schema) Apply(args ...javatype.Type) (Bindings, error) {
	if len(args) == 0 {
		return Bindings{}, nil
	}
	if len(args) != len(s.vars) {
		return nil, &javatype.InvalidArityError{Type: string(s.scope), Want: len(s.vars), Got: len(args)}
	}
	b := make(Bindings, len(args))
	for i, arg := range args {
		if arg == nil {
			return nil, &javatype.InvalidArityError{Type: string(s.scope), Want: len(s.vars), Got: len(args), NilArgument: true}
		}
		b[s.vars[i].ID()] = arg
	}
	return b, nil
}

// Resolve substitutes b into t with s as the environment.
func (s *Schema) Resolve(t javatype.Type, b Bindings) (javatype.Type, error) {
	return Substitute(t, b, s)
}
