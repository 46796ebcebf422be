package javatype

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	str := MustBasic("String")
	integer := MustBasic("Integer")
	tVar := MustVariable("T", "com.acme.Page")

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"basic", MustBasic("java.util.List"), "java.util.List"},
		{"primitive", MustBasic("int"), "int"},
		{"array", NewArray(MustBasic("int")), "int[]"},
		{"two dimensional array", NewArray(NewArray(MustBasic("int"))), "int[][]"},
		{"parameterized", MustParameterized(MustBasic("List"), str), "List<String>"},
		{
			"nested parameterized",
			MustParameterized(MustBasic("List"), MustParameterized(MustBasic("Map"), str, integer)),
			"List<Map<String,Integer>>",
		},
		{"array of parameterized", NewArray(MustParameterized(MustBasic("List"), str)), "List<String>[]"},
		{"variable", tVar, "T"},
		{"parameterized over variable", MustParameterized(MustBasic("Page"), tVar), "Page<T>"},
		{"recursive occurrence", tVar.AsRecursive(), "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestNewBasicRejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "  ", "java..util", "1abc", "List<String>", "a.b."} {
		_, err := NewBasic(name)
		var nameErr *InvalidNameError
		require.ErrorAs(t, err, &nameErr, "name %q", name)
		assert.Equal(t, name, nameErr.Name)
	}
}

func TestNewVariableRejectsInvalidNames(t *testing.T) {
	_, err := NewVariable("", "com.acme.Page")
	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, Scope("com.acme.Page"), nameErr.Scope)
	assert.Contains(t, err.Error(), "com.acme.Page")

	_, err = NewVariable("a.b", "")
	assert.ErrorAs(t, err, &nameErr)
}

func TestNewParameterizedArity(t *testing.T) {
	_, err := NewParameterized(MustBasic("List"))
	var arityErr *InvalidArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, "List", arityErr.Type)
	assert.Equal(t, 0, arityErr.Got)

	_, err = NewParameterized(MustBasic("List"), nil)
	require.ErrorAs(t, err, &arityErr)
	assert.True(t, arityErr.NilArgument)

	_, err = NewParameterized(nil, MustBasic("String"))
	var nameErr *InvalidNameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestParameterizedCopiesArguments(t *testing.T) {
	args := []Type{MustBasic("String")}
	p := MustParameterized(MustBasic("List"), args...)
	args[0] = MustBasic("Integer")
	assert.Equal(t, "List<String>", p.String())

	got := p.Arguments()
	got[0] = MustBasic("Long")
	assert.Equal(t, "String", p.Argument(0).String())
	assert.Equal(t, 1, p.NumArguments())
}

func TestEqualMatchesRender(t *testing.T) {
	tScope := MustVariable("T", "com.acme.Page")
	types := []Type{
		MustBasic("List"),
		MustBasic("java.util.List"),
		NewArray(MustBasic("int")),
		NewArray(NewArray(MustBasic("int"))),
		MustParameterized(MustBasic("List"), MustBasic("String")),
		MustParameterized(MustBasic("List"), MustBasic("Integer")),
		MustParameterized(MustBasic("Map"), MustBasic("String"), MustBasic("Integer")),
		MustParameterized(MustBasic("Map"), MustBasic("Integer"), MustBasic("String")),
		tScope,
		NewArray(tScope),
	}

	for _, a := range types {
		for _, b := range types {
			assert.Equal(t, a.String() == b.String(), Equal(a, b), "%s vs %s", a, b)
		}
	}
}

// Variables render as their bare name, so render equality holds only within one
// scope: same-named variables of different declarations, or a class named like
// a variable, render alike but are different types.
func TestEqualRenderExceptionForScopes(t *testing.T) {
	inPage := MustVariable("T", "com.acme.Page")
	inSlice := MustVariable("T", "com.acme.Slice")
	cases := []struct {
		a, b Type
	}{
		{inPage, inSlice},
		{inPage, MustBasic("T")},
		{NewArray(inPage), NewArray(inSlice)},
		{MustParameterized(MustBasic("List"), inPage), MustParameterized(MustBasic("List"), inSlice)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.a.String(), tc.b.String())
		assert.False(t, Equal(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestEqualVariables(t *testing.T) {
	a := MustVariable("T", "com.acme.Page")
	b := MustVariable("T", "com.acme.Page")
	other := MustVariable("T", "com.acme.Slice")

	assert.True(t, Equal(a, b))
	assert.True(t, Equal(a, a.AsRecursive()))
	assert.False(t, Equal(a, other))
	assert.False(t, Equal(a, MustBasic("T")))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestMatch(t *testing.T) {
	describe := Cases[string]{
		Basic:         func(b *Basic) string { return "basic " + b.Name() },
		Array:         func(a *Array) string { return "array of " + a.Element().String() },
		Variable:      func(v *Variable) string { return "variable " + v.ID().String() },
		Parameterized: func(p *Parameterized) string { return "generic " + p.Base().Name() },
	}

	got, err := Match(MustVariable("T", "com.acme.Page"), describe)
	require.NoError(t, err)
	assert.Equal(t, "variable com.acme.Page.T", got)

	got, err = Match(NewArray(MustBasic("int")), describe)
	require.NoError(t, err)
	assert.Equal(t, "array of int", got)

	partial := Cases[string]{Basic: describe.Basic}
	_, err = Match(MustParameterized(MustBasic("List"), MustBasic("String")), partial)
	var unhandled *UnhandledVariantError
	require.True(t, errors.As(err, &unhandled))
	assert.Equal(t, KindParameterized, unhandled.Kind)
	assert.Equal(t, "List<String>", unhandled.Type)
}

func TestVariablesAndContains(t *testing.T) {
	k := MustVariable("K", "com.acme.Cache")
	v := MustVariable("V", "com.acme.Cache")
	typ := MustParameterized(MustBasic("List"),
		MustParameterized(MustBasic("Map"), k, MustParameterized(MustBasic("List"), v)),
		NewArray(k),
	)

	vars := Variables(typ)
	require.Len(t, vars, 2)
	assert.Equal(t, "K", vars[0].Name())
	assert.Equal(t, "V", vars[1].Name())

	assert.True(t, Contains(typ, v.ID()))
	assert.False(t, Contains(typ, VarID{Scope: "com.acme.Other", Name: "V"}))
	assert.False(t, IsResolved(typ))
	assert.True(t, IsResolved(MustParameterized(MustBasic("Comparable"), k.AsRecursive())))
}

func TestErasure(t *testing.T) {
	list := MustParameterized(MustBasic("java.util.List"), MustBasic("String"))
	assert.Equal(t, "java.util.List", Erasure(list).String())
	assert.Equal(t, "java.util.List[]", Erasure(NewArray(list)).String())
	assert.Equal(t, "java.lang.Object", Erasure(MustVariable("T", "")).String())
	assert.Equal(t, "int", Erasure(MustBasic("int")).String())
}

func TestScopes(t *testing.T) {
	s := MethodScope("com.acme.PageApi", "find")
	assert.Equal(t, Scope("com.acme.PageApi#find"), s)
	assert.Equal(t, "com.acme.PageApi#find.T", VarID{Scope: s, Name: "T"}.String())
	assert.Equal(t, "T", VarID{Name: "T"}.String())
	assert.Equal(t, "List", MustBasic("java.util.List").SimpleName())
}

func TestMarshalJSON(t *testing.T) {
	typ := MustParameterized(MustBasic("java.util.Map"),
		MustBasic("java.lang.String"),
		NewArray(MustVariable("T", "com.acme.Page")),
	)

	data, err := json.Marshal(typ)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "parameterized",
		"base": "java.util.Map",
		"arguments": [
			{"kind": "basic", "name": "java.lang.String"},
			{"kind": "array", "element": {"kind": "typeVariable", "name": "T", "scope": "com.acme.Page"}}
		]
	}`, string(data))
}
