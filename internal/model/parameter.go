package model

import (
	"strings"

	"api-recon/internal/javatype"
)

// ParameterKind identifies the variant of a Parameter.
type ParameterKind int

const (
	KindPath ParameterKind = iota
	KindQuery
	KindBody
)

// String returns the OpenAPI location name of the kind.
func (k ParameterKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindQuery:
		return "query"
	case KindBody:
		return "body"
	default:
		return "unknown"
	}
}

// Parameter is one input of an endpoint. The variants are *PathVariable,
// *RequestParam and *RequestBody.
type Parameter interface {
	// Name is the declared Java parameter name.
	Name() string
	// Type is the resolved parameter type.
	Type() javatype.Type
	Kind() ParameterKind
	// String renders the parameter as its name.
	String() string

	parameter()
}

type paramBase struct {
	name string
	typ  javatype.Type
}

func newParamBase(name string, typ javatype.Type) (paramBase, error) {
	if strings.TrimSpace(name) == "" {
		return paramBase{}, &InvalidArgumentError{Field: "parameter name", Reason: "must not be empty"}
	}
	if typ == nil {
		return paramBase{}, &InvalidArgumentError{Field: "parameter type", Reason: "missing type for " + name}
	}
	return paramBase{name: name, typ: typ}, nil
}

func (p paramBase) Name() string        { return p.name }
func (p paramBase) Type() javatype.Type { return p.typ }
func (p paramBase) String() string      { return p.name }

// PathVariable is bound from a placeholder of the URI template.
type PathVariable struct {
	paramBase
	segment string
}

// NewPathVariable returns a path variable. An empty segment defaults to name.
func NewPathVariable(name, segment string, typ javatype.Type) (*PathVariable, error) {
	base, err := newParamBase(name, typ)
	if err != nil {
		return nil, err
	}
	if segment == "" {
		segment = name
	}
	return &PathVariable{paramBase: base, segment: segment}, nil
}

// Segment returns the placeholder name in the URI template.
func (p *PathVariable) Segment() string { return p.segment }

// Kind returns KindPath.
func (p *PathVariable) Kind() ParameterKind { return KindPath }

func (*PathVariable) parameter() {}

// RequestParam is bound from a query or form parameter.
type RequestParam struct {
	paramBase
	queryName    string
	required     bool
	defaultValue string
}

// NewRequestParam returns a query parameter. An empty queryName defaults to name.
func NewRequestParam(name, queryName string, typ javatype.Type, required bool) (*RequestParam, error) {
	base, err := newParamBase(name, typ)
	if err != nil {
		return nil, err
	}
	if queryName == "" {
		queryName = name
	}
	return &RequestParam{paramBase: base, queryName: queryName, required: required}, nil
}

// WithDefault returns a copy of p with a default value. A parameter with a
// default is never required.
func (p *RequestParam) WithDefault(value string) *RequestParam {
	c := *p
	c.defaultValue = value
	c.required = false
	return &c
}

// QueryName returns the name used on the wire.
func (p *RequestParam) QueryName() string { return p.queryName }

// Required reports whether the parameter must be present.
func (p *RequestParam) Required() bool { return p.required }

// DefaultValue returns the declared default, or "".
func (p *RequestParam) DefaultValue() string { return p.defaultValue }

// Kind returns KindQuery.
func (p *RequestParam) Kind() ParameterKind { return KindQuery }

func (*RequestParam) parameter() {}

// RequestBody is bound from the request body.
type RequestBody struct {
	paramBase
	required bool
}

// NewRequestBody returns a request body parameter.
func NewRequestBody(name string, typ javatype.Type, required bool) (*RequestBody, error) {
	base, err := newParamBase(name, typ)
	if err != nil {
		return nil, err
	}
	return &RequestBody{paramBase: base, required: required}, nil
}

// Required reports whether the body must be present.
func (p *RequestBody) Required() bool { return p.required }

// Kind returns KindBody.
func (p *RequestBody) Kind() ParameterKind { return KindBody }

func (*RequestBody) parameter() {}
