package model

import (
	"fmt"
	"strings"
)

// HTTPMethod is an HTTP request method token.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodPatch   HTTPMethod = "PATCH"
	MethodDelete  HTTPMethod = "DELETE"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
)

// Methods lists every supported method.
var Methods = []HTTPMethod{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions}

// Valid reports whether m is one of Methods.
func (m HTTPMethod) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseHTTPMethod parses a method token case-insensitively. It accepts the
// Spring RequestMethod form "RequestMethod.POST" as well.
func ParseHTTPMethod(s string) (HTTPMethod, error) {
	token := strings.ToUpper(strings.TrimSpace(s))
	token = strings.TrimPrefix(token, "REQUESTMETHOD.")
	for _, m := range Methods {
		if string(m) == token {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown HTTP method %q", s)
}

// Lower returns the lower-case token, as used for OpenAPI path items.
func (m HTTPMethod) Lower() string { return strings.ToLower(string(m)) }

// AllowsBody reports whether requests with this method conventionally carry a body.
func (m HTTPMethod) AllowsBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	default:
		return false
	}
}
