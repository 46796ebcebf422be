package model

import "fmt"

// Validation codes.
const (
	CodeUnknownPlaceholder = "unknown_placeholder"
	CodeUnboundPlaceholder = "unbound_placeholder"
	CodeDuplicateParameter = "duplicate_parameter"
	CodeBodyNotAllowed     = "body_not_allowed"
)

// ValidateEndpoint checks the cross-entity rules that the Endpoint itself does
// not enforce: every path variable names a placeholder of the template, every
// placeholder is bound, and no two parameters share a wire name.
func ValidateEndpoint(e *Endpoint) []error {
	var errs []error

	for _, pv := range e.PathVariables() {
		if !e.uri.HasPlaceholder(pv.Segment()) {
			errs = append(errs, &ValidationError{
				Code:    CodeUnknownPlaceholder,
				Message: fmt.Sprintf("%s: path variable %q has no placeholder in %s", e.name, pv.Segment(), e.uri),
			})
		}
	}

	bound := make(map[string]bool)
	for _, pv := range e.PathVariables() {
		bound[pv.Segment()] = true
	}
	for _, ph := range e.uri.Placeholders() {
		if !bound[ph] {
			errs = append(errs, &ValidationError{
				Code:    CodeUnboundPlaceholder,
				Message: fmt.Sprintf("%s: placeholder {%s} is not bound to a path variable", e.name, ph),
			})
		}
	}

	seen := make(map[string]bool)
	for _, p := range e.params {
		key := p.Kind().String() + ":" + wireName(p)
		if seen[key] {
			errs = append(errs, &ValidationError{
				Code:    CodeDuplicateParameter,
				Message: fmt.Sprintf("%s: %s parameter %q declared more than once", e.name, p.Kind(), wireName(p)),
			})
		}
		seen[key] = true
	}

	if _, ok := e.RequestBody(); ok && !e.method.AllowsBody() {
		errs = append(errs, &ValidationError{
			Code:    CodeBodyNotAllowed,
			Message: fmt.Sprintf("%s: %s request declares a body", e.name, e.method),
		})
	}

	return errs
}

func wireName(p Parameter) string {
	switch p := p.(type) {
	case *PathVariable:
		return p.Segment()
	case *RequestParam:
		return p.QueryName()
	default:
		return p.Name()
	}
}
