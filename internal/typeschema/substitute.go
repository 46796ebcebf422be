package typeschema

import (
	"errors"
	"slices"

	"api-recon/internal/javatype"
)

// Substitute replaces the type variables in t.
//
// A variable with a binding in b is replaced by that binding. Otherwise, if env
// declares exactly one bound for it, the bound is substituted in its place.
// Any other variable stays in t and is reported with an
// *UnresolvedTypeVariableError; the returned type is still usable.
//
// A variable is expanded at most once along any path. An occurrence inside its
// own expansion becomes a recursive occurrence and is never expanded again, so
// T extends Comparable<T> resolves to Comparable<T> and substituting the
// result again returns it unchanged. env may be nil.
func Substitute(t javatype.Type, b Bindings, env Env) (javatype.Type, error) {
	s := &substituter{bindings: b, env: env, reported: make(map[javatype.VarID]bool)}
	out := javatype.Visit[javatype.Type](t, s)
	return out, errors.Join(s.errs...)
}

type substituter struct {
	bindings Bindings
	env      Env
	visiting []javatype.VarID
	reported map[javatype.VarID]bool
	errs     []error
}

func (s *substituter) VisitBasic(t *javatype.Basic) javatype.Type { return t }

func (s *substituter) VisitArray(t *javatype.Array) javatype.Type {
	return javatype.NewArray(javatype.Visit[javatype.Type](t.Element(), s))
}

func (s *substituter) VisitParameterized(t *javatype.Parameterized) javatype.Type {
	args := t.Arguments()
	for i, arg := range args {
		args[i] = javatype.Visit[javatype.Type](arg, s)
	}
	return javatype.MustParameterized(t.Base(), args...)
}

func (s *substituter) VisitVariable(v *javatype.Variable) javatype.Type {
	if v.Recursive() {
		return v
	}
	id := v.ID()
	if slices.Contains(s.visiting, id) {
		return v.AsRecursive()
	}
	if repl, ok := s.bindings[id]; ok && repl != nil {
		return s.expand(id, repl)
	}

	var (
		bounds   []javatype.Type
		declared bool
	)
	if s.env != nil {
		bounds, declared = s.env.Lookup(id)
	}
	if len(bounds) == 1 {
		return s.expand(id, bounds[0])
	}
	if !s.reported[id] {
		s.reported[id] = true
		s.errs = append(s.errs, &UnresolvedTypeVariableError{Variable: id, Bounds: len(bounds), Declared: declared})
	}
	return v
}

func (s *substituter) expand(id javatype.VarID, t javatype.Type) javatype.Type {
	s.visiting = append(s.visiting, id)
	out := javatype.Visit[javatype.Type](t, s)
	s.visiting = s.visiting[:len(s.visiting)-1]
	return out
}
