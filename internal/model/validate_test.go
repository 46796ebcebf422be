package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		if v, ok := err.(*ValidationError); ok {
			out = append(out, v.Code)
		}
	}
	return out
}

func TestValidateEndpoint(t *testing.T) {
	b, err := NewBuilder("getUser", NewURITemplate("/users/{id}"), user)
	require.NoError(t, err)
	require.NoError(t, b.AddParameter(mustPath(t, "id")))
	assert.Empty(t, ValidateEndpoint(b.Build()))

	b, err = NewBuilder("broken", NewURITemplate("/users/{id}/{org}"), nil)
	require.NoError(t, err)
	require.NoError(t, b.AddParameter(mustPath(t, "id")))
	require.NoError(t, b.AddParameter(mustPath(t, "userId")))
	require.NoError(t, b.AddParameter(mustQuery(t, "q")))
	require.NoError(t, b.AddParameter(mustQuery(t, "q")))
	require.NoError(t, b.AddParameter(mustBody(t, "body")))

	got := codes(ValidateEndpoint(b.Build()))
	assert.Equal(t, []string{
		CodeUnknownPlaceholder,
		CodeUnboundPlaceholder,
		CodeDuplicateParameter,
		CodeBodyNotAllowed,
	}, got)
}

func TestReportByController(t *testing.T) {
	r := NewReport()
	mk := func(controller, name, uri string, m HTTPMethod) *Endpoint {
		b, err := NewBuilder(name, NewURITemplate(uri), nil)
		require.NoError(t, err)
		require.NoError(t, b.SetMethod(m))
		return b.SetController(controller).Build()
	}
	r.Endpoints = append(r.Endpoints,
		mk("UserController", "delete", "/users/{id}", MethodDelete),
		mk("OrderController", "list", "/orders", MethodGet),
		mk("UserController", "get", "/users/{id}", MethodGet),
		mk("UserController", "list", "/users", MethodGet),
	)

	groups := r.ByController()
	require.Len(t, groups, 2)
	assert.Equal(t, "OrderController", groups[0].Controller)
	names := []string{}
	for _, ep := range groups[1].Endpoints {
		names = append(names, ep.Name())
	}
	assert.Equal(t, []string{"list", "delete", "get"}, names)

	r.AddDiagnostic(Diagnostic{Severity: SeverityError, Code: "x", Scope: "com.acme.A", Element: "m", Message: "boom"})
	assert.Equal(t, "[ERROR] x com.acme.A.m: boom", r.Diagnostics[0].String())
}
