package javatype

import "fmt"

// InvalidNameError reports an empty or malformed identifier.
type InvalidNameError struct {
	Name  string
	Scope Scope
	What  string // e.g. "class name", "type variable name"
}

func (e *InvalidNameError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.What, e.Name)
	if e.Scope != "" {
		msg += " in " + string(e.Scope)
	}
	return msg
}

// InvalidArityError reports a generic type applied to the wrong number of
// type arguments. Want is -1 when any non-zero number is acceptable.
type InvalidArityError struct {
	Type        string
	Want        int
	Got         int
	NilArgument bool
}

func (e *InvalidArityError) Error() string {
	switch {
	case e.NilArgument:
		return fmt.Sprintf("nil type argument for %s", e.Type)
	case e.Want < 0:
		return fmt.Sprintf("parameterized type %s needs at least one type argument", e.Type)
	default:
		return fmt.Sprintf("%s takes %d type argument(s), got %d", e.Type, e.Want, e.Got)
	}
}

// UnhandledVariantError is returned by Match when the Cases value has no
// handler for the variant it was given.
type UnhandledVariantError struct {
	Kind Kind
	Type string
}

func (e *UnhandledVariantError) Error() string {
	return fmt.Sprintf("no case for %s type %s", e.Kind, e.Type)
}
