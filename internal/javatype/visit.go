package javatype

import "fmt"

// Visitor handles every Type variant. Adding a variant adds a method here, so
// every implementation stops compiling until it handles the new variant.
type Visitor[R any] interface {
	VisitBasic(t *Basic) R
	VisitArray(t *Array) R
	VisitVariable(t *Variable) R
	VisitParameterized(t *Parameterized) R
}

// Visit dispatches t to the matching method of v.
func Visit[R any](t Type, v Visitor[R]) R {
	switch t := t.(type) {
	case *Basic:
		return v.VisitBasic(t)
	case *Array:
		return v.VisitArray(t)
	case *Variable:
		return v.VisitVariable(t)
	case *Parameterized:
		return v.VisitParameterized(t)
	default:
		// Unreachable: Type is sealed.
		panic(fmt.Sprintf("javatype: unknown variant %T", t))
	}
}

// Cases is a function per variant, for ad-hoc matching with Match.
// A nil function rejects its variant.
type Cases[R any] struct {
	Basic         func(*Basic) R
	Array         func(*Array) R
	Variable      func(*Variable) R
	Parameterized func(*Parameterized) R
}

// Match applies the case for t's variant. It returns an *UnhandledVariantError
// when that case is nil.
func Match[R any](t Type, c Cases[R]) (R, error) {
	var zero R
	unhandled := func() (R, error) {
		return zero, &UnhandledVariantError{Kind: t.Kind(), Type: t.String()}
	}
	switch t := t.(type) {
	case *Basic:
		if c.Basic == nil {
			return unhandled()
		}
		return c.Basic(t), nil
	case *Array:
		if c.Array == nil {
			return unhandled()
		}
		return c.Array(t), nil
	case *Variable:
		if c.Variable == nil {
			return unhandled()
		}
		return c.Variable(t), nil
	case *Parameterized:
		if c.Parameterized == nil {
			return unhandled()
		}
		return c.Parameterized(t), nil
	default:
		panic(fmt.Sprintf("javatype: unknown variant %T", t))
	}
}

// Equal reports whether a and b are structurally equal. Variables compare by
// name and scope; a recursive occurrence equals its plain variable.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Visit[bool](a, equalVisitor{other: b})
}

type equalVisitor struct {
	other Type
}

func (e equalVisitor) VisitBasic(t *Basic) bool {
	o, ok := e.other.(*Basic)
	return ok && o.name == t.name
}

func (e equalVisitor) VisitArray(t *Array) bool {
	o, ok := e.other.(*Array)
	return ok && Equal(t.element, o.element)
}

func (e equalVisitor) VisitVariable(t *Variable) bool {
	o, ok := e.other.(*Variable)
	return ok && o.ID() == t.ID()
}

func (e equalVisitor) VisitParameterized(t *Parameterized) bool {
	o, ok := e.other.(*Parameterized)
	if !ok || o.base.name != t.base.name || len(o.args) != len(t.args) {
		return false
	}
	for i := range t.args {
		if !Equal(t.args[i], o.args[i]) {
			return false
		}
	}
	return true
}

// Object is java.lang.Object, the erasure of an unbounded type variable.
var Object = MustBasic("java.lang.Object")

// Erasure returns the raw type of t: the base of a parameterized type, arrays of
// erased elements, and java.lang.Object for a type variable.
func Erasure(t Type) Type {
	e, _ := Match(t, Cases[Type]{
		Basic:         func(b *Basic) Type { return b },
		Array:         func(a *Array) Type { return NewArray(Erasure(a.element)) },
		Variable:      func(*Variable) Type { return Object },
		Parameterized: func(p *Parameterized) Type { return p.base },
	})
	return e
}

// Variables returns the type variables reachable from t in first-occurrence
// order, one entry per identity.
func Variables(t Type) []*Variable {
	var (
		out  []*Variable
		seen = make(map[VarID]bool)
	)
	walk(t, func(v *Variable) {
		if !seen[v.ID()] {
			seen[v.ID()] = true
			out = append(out, v)
		}
	})
	return out
}

// Contains reports whether the variable id occurs anywhere in t.
func Contains(t Type, id VarID) bool {
	found := false
	walk(t, func(v *Variable) {
		if v.ID() == id {
			found = true
		}
	})
	return found
}

// IsResolved reports whether t mentions no type variable other than
// recursive occurrences.
func IsResolved(t Type) bool {
	resolved := true
	walk(t, func(v *Variable) {
		if !v.recursive {
			resolved = false
		}
	})
	return resolved
}

func walk(t Type, fn func(*Variable)) {
	Visit[struct{}](t, walker{fn: fn})
}

type walker struct {
	fn func(*Variable)
}

func (w walker) VisitBasic(*Basic) struct{} { return struct{}{} }

func (w walker) VisitArray(t *Array) struct{} {
	return Visit[struct{}](t.element, w)
}

func (w walker) VisitVariable(t *Variable) struct{} {
	w.fn(t)
	return struct{}{}
}

func (w walker) VisitParameterized(t *Parameterized) struct{} {
	for _, arg := range t.args {
		Visit[struct{}](arg, w)
	}
	return struct{}{}
}
