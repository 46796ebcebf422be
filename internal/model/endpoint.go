package model

import (
	"fmt"
	"strings"

	"api-recon/internal/javatype"
)

// Endpoint is one reachable backend operation. It is immutable; use a Builder
// to assemble one during discovery.
type Endpoint struct {
	name       string
	uri        URITemplate
	method     HTTPMethod
	params     []Parameter
	response   javatype.Type // nil = void
	controller string
	summary    string
}

// Builder assembles an Endpoint. It is not safe for concurrent use.
type Builder struct {
	ep Endpoint
}

// NewBuilder starts an endpoint named after its source method. response may be
// nil for a void operation. The method defaults to GET.
func NewBuilder(name string, uri URITemplate, response javatype.Type) (*Builder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &InvalidArgumentError{Field: "name", Reason: "must not be empty"}
	}
	if uri.IsZero() {
		return nil, &InvalidArgumentError{Endpoint: name, Field: "uri template", Reason: "missing"}
	}
	return &Builder{ep: Endpoint{
		name:     name,
		uri:      uri,
		method:   MethodGet,
		response: response,
	}}, nil
}

// AddParameter appends p. Names are not de-duplicated; see ValidateEndpoint.
// A second request body is rejected.
func (b *Builder) AddParameter(p Parameter) error {
	if p == nil {
		return &InvalidArgumentError{Endpoint: b.ep.name, Field: "parameter", Reason: "nil"}
	}
	if p.Kind() == KindBody {
		if existing, ok := b.ep.RequestBody(); ok {
			return &InvalidArgumentError{
				Endpoint: b.ep.name,
				Field:    "parameter " + p.Name(),
				Reason:   fmt.Sprintf("request body already bound to %s", existing.Name()),
			}
		}
	}
	b.ep.params = append(b.ep.params, p)
	return nil
}

// SetMethod sets the HTTP method. Tokens outside Methods, including the zero
// value, are rejected and leave the method unchanged.
func (b *Builder) SetMethod(m HTTPMethod) error {
	if !m.Valid() {
		return &InvalidArgumentError{Endpoint: b.ep.name, Field: "method", Reason: fmt.Sprintf("unsupported HTTP method %q", string(m))}
	}
	b.ep.method = m
	return nil
}

// SetController records the declaring controller class.
func (b *Builder) SetController(name string) *Builder {
	b.ep.controller = name
	return b
}

// SetSummary records a one-line description, usually from the Javadoc.
func (b *Builder) SetSummary(s string) *Builder {
	b.ep.summary = s
	return b
}

// Build returns an immutable snapshot. The builder can keep being used.
func (b *Builder) Build() *Endpoint {
	ep := b.ep
	ep.params = make([]Parameter, len(b.ep.params))
	copy(ep.params, b.ep.params)
	return &ep
}

// Name returns the source method name.
func (e *Endpoint) Name() string { return e.name }

// URITemplate returns the request path template.
func (e *Endpoint) URITemplate() URITemplate { return e.uri }

// Method returns the HTTP method.
func (e *Endpoint) Method() HTTPMethod { return e.method }

// Controller returns the declaring controller class, or "".
func (e *Endpoint) Controller() string { return e.controller }

// Summary returns the endpoint description, or "".
func (e *Endpoint) Summary() string { return e.summary }

// Parameters returns every parameter in declaration order.
func (e *Endpoint) Parameters() []Parameter {
	out := make([]Parameter, len(e.params))
	copy(out, e.params)
	return out
}

// ResponseBody returns the response type; ok is false for a void operation.
func (e *Endpoint) ResponseBody() (t javatype.Type, ok bool) {
	return e.response, e.response != nil
}

// RequestBody returns the request body parameter, if any.
func (e *Endpoint) RequestBody() (*RequestBody, bool) {
	for _, p := range e.params {
		if body, ok := p.(*RequestBody); ok {
			return body, true
		}
	}
	return nil, false
}

// PathVariables returns the path variables in declaration order.
func (e *Endpoint) PathVariables() []*PathVariable {
	return filterParams[*PathVariable](e.params)
}

// RequestParameters returns the query parameters in declaration order.
func (e *Endpoint) RequestParameters() []*RequestParam {
	return filterParams[*RequestParam](e.params)
}

func filterParams[P Parameter](params []Parameter) []P {
	out := make([]P, 0, len(params))
	for _, p := range params {
		if v, ok := p.(P); ok {
			out = append(out, v)
		}
	}
	return out
}

// String renders the endpoint as "<response> <name>(<params>): <METHOD> <uri>",
// e.g. "User getUser(id): GET /users/{id}".
func (e *Endpoint) String() string {
	response := "void"
	if e.response != nil {
		response = e.response.String()
	}
	names := make([]string, len(e.params))
	for i, p := range e.params {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s %s(%s): %s %s", response, e.name, strings.Join(names, ", "), e.method, e.uri)
}
