package typeschema

import (
	"fmt"

	"api-recon/internal/javatype"
)

// DuplicateVariableError reports a type variable declared twice in one scope.
type DuplicateVariableError struct {
	Scope javatype.Scope
	Name  string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("type variable %s declared twice in %s", e.Name, e.Scope)
}

// UnknownVariableError reports a variable that is not declared where it is
// looked up or used.
type UnknownVariableError struct {
	Scope    javatype.Scope // schema that was asked
	Variable javatype.VarID
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("type variable %s is not declared in %s", e.Variable, e.Scope)
}

// InvalidBoundError reports a missing (nil) entry in a variable's bound list.
type InvalidBoundError struct {
	Variable javatype.VarID
	Index    int
}

func (e *InvalidBoundError) Error() string {
	return fmt.Sprintf("type variable %s: bound %d is nil", e.Variable, e.Index)
}

// UnresolvedTypeVariableError reports a variable that substitution left in
// place because it had no binding and no single bound to fall back to.
type UnresolvedTypeVariableError struct {
	Variable javatype.VarID
	Bounds   int  // number of declared bounds
	Declared bool // whether any schema in the environment declares it
}

func (e *UnresolvedTypeVariableError) Error() string {
	if !e.Declared {
		return fmt.Sprintf("unresolved type variable %s: no binding and no declaring schema", e.Variable)
	}
	return fmt.Sprintf("unresolved type variable %s: no binding and %d declared bounds", e.Variable, e.Bounds)
}

// DuplicateScopeError reports a second schema registered for one scope.
type DuplicateScopeError struct {
	Scope javatype.Scope
}

func (e *DuplicateScopeError) Error() string {
	return fmt.Sprintf("schema for %s already registered", e.Scope)
}
