// Package javatypetest provides composable structural matchers for
// javatype values, for use in tests.
package javatypetest

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"

	"api-recon/internal/javatype"
)

// Matcher is a described predicate over a Java type.
type Matcher struct {
	desc  string
	match func(javatype.Type) bool
}

// Matches reports whether t satisfies m. A nil type never matches.
func (m Matcher) Matches(t javatype.Type) bool {
	return t != nil && m.match(t)
}

func (m Matcher) String() string { return m.desc }

// Any matches every type.
func Any() Matcher {
	return Matcher{desc: "any type", match: func(javatype.Type) bool { return true }}
}

// BasicType matches a Basic type with the given name.
func BasicType(name string) Matcher {
	return Matcher{
		desc: "basic " + name,
		match: func(t javatype.Type) bool {
			b, ok := t.(*javatype.Basic)
			return ok && b.Name() == name
		},
	}
}

// ArrayOf matches an array whose element matches elem.
func ArrayOf(elem Matcher) Matcher {
	return Matcher{
		desc: "array of " + elem.desc,
		match: func(t javatype.Type) bool {
			a, ok := t.(*javatype.Array)
			return ok && elem.Matches(a.Element())
		},
	}
}

// TypeVariable matches a type variable with the given name in any scope.
func TypeVariable(name string) Matcher {
	return Matcher{
		desc: "type variable " + name,
		match: func(t javatype.Type) bool {
			v, ok := t.(*javatype.Variable)
			return ok && v.Name() == name
		},
	}
}

// ScopedVariable matches a type variable by its full identity.
func ScopedVariable(id javatype.VarID) Matcher {
	return Matcher{
		desc: "type variable " + id.String(),
		match: func(t javatype.Type) bool {
			v, ok := t.(*javatype.Variable)
			return ok && v.ID() == id
		},
	}
}

// GenericType matches a parameterized type with the given base name whose
// arguments match args pairwise.
func GenericType(base string, args ...Matcher) Matcher {
	descs := make([]string, len(args))
	for i, a := range args {
		descs[i] = a.desc
	}
	return Matcher{
		desc: fmt.Sprintf("generic %s of [%s]", base, strings.Join(descs, ", ")),
		match: func(t javatype.Type) bool {
			p, ok := t.(*javatype.Parameterized)
			if !ok || p.Base().Name() != base || p.NumArguments() != len(args) {
				return false
			}
			for i, a := range args {
				if !a.Matches(p.Argument(i)) {
					return false
				}
			}
			return true
		},
	}
}

// Representation matches any type whose canonical render equals s.
func Representation(s string) Matcher {
	return Matcher{
		desc: fmt.Sprintf("type rendered %q", s),
		match: func(t javatype.Type) bool {
			return t.String() == s
		},
	}
}

// AllOf matches when every matcher matches.
func AllOf(ms ...Matcher) Matcher {
	descs := make([]string, len(ms))
	for i, m := range ms {
		descs[i] = m.desc
	}
	return Matcher{
		desc: strings.Join(descs, " and "),
		match: func(t javatype.Type) bool {
			for _, m := range ms {
				if !m.Matches(t) {
					return false
				}
			}
			return true
		},
	}
}

// AssertType asserts that t matches m.
func AssertType(tb assert.TestingT, m Matcher, t javatype.Type, msgAndArgs ...any) bool {
	if h, ok := tb.(interface{ Helper() }); ok {
		h.Helper()
	}
	if m.Matches(t) {
		return true
	}
	got := "<nil>"
	if t != nil {
		got = t.String()
	}
	return assert.Fail(tb, fmt.Sprintf("expected %s, got %s", m.desc, got), msgAndArgs...)
}
