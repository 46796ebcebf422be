package model

import "fmt"

// InvalidArgumentError reports a missing or malformed input while building an
// endpoint or one of its parameters.
type InvalidArgumentError struct {
	Endpoint string // endpoint name, if known
	Field    string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("endpoint %s: invalid %s: %s", e.Endpoint, e.Field, e.Reason)
}

// ValidationError is one problem found by ValidateEndpoint.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}
