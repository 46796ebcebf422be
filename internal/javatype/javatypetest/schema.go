package javatypetest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stretchr/testify/assert"

	"api-recon/internal/javatype"
)

// BoundsSource is the read side of a type schema.
type BoundsSource interface {
	Variables() []*javatype.Variable
	BoundsOf(v *javatype.Variable) ([]javatype.Type, error)
}

// SchemaMatcher checks the declared variables of a schema and their bounds.
type SchemaMatcher struct {
	bounds map[string][]Matcher
}

// Schema matches a schema that declares exactly the variables named in bounds,
// each with bounds matching the given matchers in order.
func Schema(bounds map[string][]Matcher) SchemaMatcher {
	return SchemaMatcher{bounds: bounds}
}

// SingletonSchema matches a schema declaring one variable with one bound.
func SingletonSchema(name string, bound Matcher) SchemaMatcher {
	return Schema(map[string][]Matcher{name: {bound}})
}

// Mismatch returns a description of the first difference between s and m,
// or "" when s matches.
func (m SchemaMatcher) Mismatch(s BoundsSource) string {
	vars := s.Variables()
	if len(vars) != len(m.bounds) {
		return fmt.Sprintf("expected %d variables %s, got %d", len(m.bounds), m.names(), len(vars))
	}
	for _, v := range vars {
		want, ok := m.bounds[v.Name()]
		if !ok {
			return fmt.Sprintf("unexpected variable %s", v.Name())
		}
		got, err := s.BoundsOf(v)
		if err != nil {
			return err.Error()
		}
		if len(got) != len(want) {
			return fmt.Sprintf("variable %s: expected %d bounds, got %d", v.Name(), len(want), len(got))
		}
		for i := range want {
			if !want[i].Matches(got[i]) {
				return fmt.Sprintf("variable %s bound %d: expected %s, got %s", v.Name(), i, want[i], got[i])
			}
		}
	}
	return ""
}

func (m SchemaMatcher) names() string {
	names := make([]string, 0, len(m.bounds))
	for n := range m.bounds {
		names = append(names, n)
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// AssertSchema asserts that s matches m.
func AssertSchema(tb assert.TestingT, m SchemaMatcher, s BoundsSource, msgAndArgs ...any) bool {
	if h, ok := tb.(interface{ Helper() }); ok {
		h.Helper()
	}
	if msg := m.Mismatch(s); msg != "" {
		return assert.Fail(tb, msg, msgAndArgs...)
	}
	return true
}
