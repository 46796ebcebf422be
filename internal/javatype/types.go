// Package javatype defines the closed representation of Java types as they
// appear in declaration metadata: basic class references, arrays, type
// variables and parameterized (generic) types.
//
// Values are immutable once constructed and may be shared freely between
// goroutines.
package javatype

import (
	"regexp"
	"strings"
)

// Kind identifies the variant of a Type.
type Kind int

const (
	KindBasic Kind = iota
	KindArray
	KindVariable
	KindParameterized
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "Basic"
	case KindArray:
		return "Array"
	case KindVariable:
		return "TypeVariable"
	case KindParameterized:
		return "Parameterized"
	default:
		return "Unknown"
	}
}

// Type is a Java type. The variant set is closed: only *Basic, *Array,
// *Variable and *Parameterized implement it.
type Type interface {
	// Kind returns the variant of this type.
	Kind() Kind

	// String returns the canonical rendering, e.g. "List<Map<String,Integer>>".
	String() string

	sealed()
}

var (
	qualifiedNamePattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)
	identifierPattern    = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// Basic is a reference to a named class or interface without type arguments,
// or to a primitive such as "int".
type Basic struct {
	name string
}

// NewBasic returns a Basic type for the given (usually fully qualified) name.
func NewBasic(name string) (*Basic, error) {
	if !qualifiedNamePattern.MatchString(name) {
		return nil, &InvalidNameError{Name: name, What: "class name"}
	}
	return &Basic{name: name}, nil
}

// MustBasic is like NewBasic but panics on an invalid name.
// It is meant for literals in tables and tests.
func MustBasic(name string) *Basic {
	b, err := NewBasic(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Name returns the class name as given at construction.
func (b *Basic) Name() string { return b.name }

// SimpleName returns the last segment of the class name.
func (b *Basic) SimpleName() string { return SimpleName(b.name) }

// Kind returns KindBasic.
func (b *Basic) Kind() Kind { return KindBasic }

func (b *Basic) String() string { return b.name }

func (*Basic) sealed() {}

// Array is an array of an element type. Multi-dimensional arrays nest.
type Array struct {
	element Type
}

// NewArray returns an array type of element. element must not be nil.
func NewArray(element Type) *Array {
	if element == nil {
		panic("javatype: NewArray with nil element")
	}
	return &Array{element: element}
}

// Element returns the element type.
func (a *Array) Element() Type { return a.element }

// Kind returns KindArray.
func (a *Array) Kind() Kind { return KindArray }

func (a *Array) String() string { return a.element.String() + "[]" }

func (*Array) sealed() {}

// Scope identifies the declaration (class or method) that declares a type
// variable, e.g. "com.acme.Page" or "com.acme.PageApi#find".
// The zero Scope is valid and stands for an unscoped variable.
type Scope string

// MethodScope returns the scope of a method declared in class.
func MethodScope(class Scope, method string) Scope {
	return Scope(string(class) + "#" + method)
}

// VarID is the identity of a type variable: its name within its declaring scope.
type VarID struct {
	Scope Scope
	Name  string
}

func (id VarID) String() string {
	if id.Scope == "" {
		return id.Name
	}
	return string(id.Scope) + "." + id.Name
}

// Variable is a type variable such as T, scoped to its declaring class or method.
type Variable struct {
	name  string
	scope Scope

	// recursive marks an occurrence of the variable inside its own expansion.
	// Such occurrences are never expanded again.
	recursive bool
}

// NewVariable returns a type variable declared in scope.
func NewVariable(name string, scope Scope) (*Variable, error) {
	if !identifierPattern.MatchString(name) {
		return nil, &InvalidNameError{Name: name, Scope: scope, What: "type variable name"}
	}
	return &Variable{name: name, scope: scope}, nil
}

// MustVariable is like NewVariable but panics on an invalid name.
func MustVariable(name string, scope Scope) *Variable {
	v, err := NewVariable(name, scope)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Scope returns the declaring scope.
func (v *Variable) Scope() Scope { return v.scope }

// ID returns the identity of the variable.
func (v *Variable) ID() VarID { return VarID{Scope: v.scope, Name: v.name} }

// Recursive reports whether this is an occurrence of the variable inside its
// own bound expansion (e.g. the inner T of Comparable<T> when T was expanded
// from T extends Comparable<T>).
func (v *Variable) Recursive() bool { return v.recursive }

// AsRecursive returns the recursive occurrence of v.
func (v *Variable) AsRecursive() *Variable {
	if v.recursive {
		return v
	}
	return &Variable{name: v.name, scope: v.scope, recursive: true}
}

// Kind returns KindVariable.
func (v *Variable) Kind() Kind { return KindVariable }

func (v *Variable) String() string { return v.name }

func (*Variable) sealed() {}

// Parameterized is a generic type applied to type arguments, e.g. List<String>.
type Parameterized struct {
	base *Basic
	args []Type
}

// NewParameterized returns base applied to args. A type with no arguments is
// a Basic, so an empty args list is rejected.
func NewParameterized(base *Basic, args ...Type) (*Parameterized, error) {
	if base == nil {
		return nil, &InvalidNameError{What: "parameterized base type"}
	}
	if len(args) == 0 {
		return nil, &InvalidArityError{Type: base.name, Want: -1, Got: 0}
	}
	for _, arg := range args {
		if arg == nil {
			return nil, &InvalidArityError{Type: base.name, Want: -1, Got: len(args), NilArgument: true}
		}
	}
	copied := make([]Type, len(args))
	copy(copied, args)
	return &Parameterized{base: base, args: copied}, nil
}

// MustParameterized is like NewParameterized but panics on error.
func MustParameterized(base *Basic, args ...Type) *Parameterized {
	p, err := NewParameterized(base, args...)
	if err != nil {
		panic(err)
	}
	return p
}

// Base returns the generic base type.
func (p *Parameterized) Base() *Basic { return p.base }

// Arguments returns a copy of the type arguments.
func (p *Parameterized) Arguments() []Type {
	out := make([]Type, len(p.args))
	copy(out, p.args)
	return out
}

// NumArguments returns the number of type arguments.
func (p *Parameterized) NumArguments() int { return len(p.args) }

// Argument returns the i-th type argument.
func (p *Parameterized) Argument(i int) Type { return p.args[i] }

// Kind returns KindParameterized.
func (p *Parameterized) Kind() Kind { return KindParameterized }

func (p *Parameterized) String() string {
	var sb strings.Builder
	sb.WriteString(p.base.name)
	sb.WriteByte('<')
	for i, arg := range p.args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (*Parameterized) sealed() {}

// SimpleName returns the part of a qualified name after the last dot.
func SimpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
