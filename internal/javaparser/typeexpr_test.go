package javaparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api-recon/internal/javatype"
	jt "api-recon/internal/javatype/javatypetest"
)

const pageScope = javatype.Scope("com.acme.api.Page")

func apiNames() *Names {
	known := func(fqn string) bool {
		return fqn == "com.acme.api.Page" || fqn == "com.acme.model.Order"
	}
	return NewNames("com.acme.api",
		[]string{"java.util.*", "com.acme.model.User", "com.acme.model.*"},
		known,
		VarScope{Scope: pageScope, Names: []string{"T"}})
}

func TestNamesResolve(t *testing.T) {
	n := apiNames()
	tests := map[string]string{
		"int":                  "int",
		"String":               "java.lang.String",
		"Integer":              "java.lang.Integer",
		"User":                 "com.acme.model.User",
		"Order":                "com.acme.model.Order",
		"Page":                 "com.acme.api.Page",
		"List":                 "java.util.List",
		"Map.Entry":            "java.util.Map.Entry",
		"Unknown":              "com.acme.api.Unknown",
		"java.io.Serializable": "java.io.Serializable",
	}
	for in, want := range tests {
		assert.Equal(t, want, n.Resolve(in), in)
	}

	// single-type imports win over the same package
	shadow := NewNames("com.acme.api", []string{"com.other.Page"}, n.Known)
	assert.Equal(t, "com.other.Page", shadow.Resolve("Page"))
}

func TestParseType(t *testing.T) {
	n := apiNames()
	tests := []struct {
		expr string
		want jt.Matcher
	}{
		{"String", jt.BasicType("java.lang.String")},
		{"int[][]", jt.ArrayOf(jt.ArrayOf(jt.BasicType("int")))},
		{"String...", jt.ArrayOf(jt.BasicType("java.lang.String"))},
		{"T", jt.ScopedVariable(javatype.VarID{Scope: pageScope, Name: "T"})},
		{"T[]", jt.ArrayOf(jt.TypeVariable("T"))},
		{"List<User>", jt.GenericType("java.util.List", jt.BasicType("com.acme.model.User"))},
		{"Map<String, List<User>>", jt.Representation("java.util.Map<java.lang.String,java.util.List<com.acme.model.User>>")},
		{"Map.Entry<String, Integer>", jt.Representation("java.util.Map.Entry<java.lang.String,java.lang.Integer>")},
		{"List<? extends T>", jt.GenericType("java.util.List", jt.TypeVariable("T"))},
		{"Comparable<? super T>", jt.GenericType("java.lang.Comparable", jt.BasicType("java.lang.Object"))},
		{"Map<String, ?>", jt.GenericType("java.util.Map", jt.Any(), jt.BasicType("java.lang.Object"))},
		{"List<@Valid User>", jt.GenericType("java.util.List", jt.BasicType("com.acme.model.User"))},
		{"@NotNull String", jt.BasicType("java.lang.String")},
		{" Page < T > ", jt.GenericType("com.acme.api.Page", jt.TypeVariable("T"))},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseType(tt.expr, n)
			require.NoError(t, err)
			jt.AssertType(t, tt.want, got)
		})
	}
}

func TestParseTypeMethodScope(t *testing.T) {
	method := javatype.MethodScope(pageScope, "map")
	n := apiNames().With(VarScope{Scope: method, Names: []string{"R", "T"}})

	got, err := ParseType("Page<R>", n)
	require.NoError(t, err)
	jt.AssertType(t, jt.GenericType("com.acme.api.Page", jt.ScopedVariable(javatype.VarID{Scope: method, Name: "R"})), got)

	// the method's T shadows the class's T
	got, err = ParseType("T", n)
	require.NoError(t, err)
	jt.AssertType(t, jt.ScopedVariable(javatype.VarID{Scope: method, Name: "T"}), got)
}

func TestParseTypeErrors(t *testing.T) {
	for _, expr := range []string{"", "List<>", "Map<String", "List<String>>", "123", "int[", "List<String,>"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseType(expr, apiNames())
			var perr *TypeParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, expr, perr.Expr)
		})
	}
}

func TestParseTypeNilNames(t *testing.T) {
	got, err := ParseType("List<Foo>", nil)
	require.NoError(t, err)
	assert.Equal(t, "List<Foo>", got.String())

	got, err = ParseType("String", nil)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", got.String())
}

func TestTypeParserCache(t *testing.T) {
	p, err := NewTypeParser(0)
	require.NoError(t, err)

	n := apiNames()
	first, err := p.Parse("List<T>", n)
	require.NoError(t, err)
	second, err := p.Parse("List<T>", n)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, p.CacheLen())

	// same text in another declaration is another type
	other := NewNames("com.acme.api", nil, nil, VarScope{Scope: "com.acme.api.Box", Names: []string{"T"}})
	third, err := p.Parse("List<T>", other)
	require.NoError(t, err)
	assert.False(t, javatype.Equal(first, third))
	assert.Equal(t, 2, p.CacheLen())

	_, err = p.Parse("List<", n)
	require.Error(t, err)
	assert.Equal(t, 2, p.CacheLen())
}

func TestTypeParserCacheSeparatesImports(t *testing.T) {
	p, err := NewTypeParser(0)
	require.NoError(t, err)

	v1 := NewNames("com.acme.api", []string{"com.acme.v1.UserDto"}, nil)
	v2 := NewNames("com.acme.api", []string{"com.acme.v2.UserDto"}, nil)

	first, err := p.Parse("UserDto", v1)
	require.NoError(t, err)
	second, err := p.Parse("UserDto", v2)
	require.NoError(t, err)

	assert.Equal(t, "com.acme.v1.UserDto", first.String())
	assert.Equal(t, "com.acme.v2.UserDto", second.String())
	assert.Equal(t, 2, p.CacheLen())

	uncached, err := ParseType("UserDto", v2)
	require.NoError(t, err)
	assert.True(t, javatype.Equal(uncached, second))
}
